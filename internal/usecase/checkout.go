package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainErrors "github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/domain/errors"
	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/domain/model"
	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/engine/discount"
	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/engine/pricing"
)

// EditDiscount applies an edit to one of the discount inputs against the current subtotal.
func (u *DraftUseCase) EditDiscount(ctx context.Context, id uuid.UUID, field discount.Field, value decimal.Decimal) (*model.Draft, error) {
	return u.mutate(ctx, id, func(d *model.Draft, _ *model.ReferenceData) error {
		return discount.Apply(&d.Discount, d.Totals.TotalSum, field, value)
	})
}

// Calculate sends the hydrated order to the calculation endpoint and stores the totals.
// On failure the previous totals stay in place.
func (u *DraftUseCase) Calculate(ctx context.Context, id uuid.UUID) (*model.Draft, error) {
	s, snapshot, err := u.begin(id, func(p *model.Pending) *bool { return &p.Calculating })
	if err != nil {
		return nil, err
	}
	defer u.end(s, func(p *model.Pending) *bool { return &p.Calculating })

	totals, err := u.calculate(ctx, snapshot)
	u.observer.RecordCalculation(err)
	if err != nil {
		u.logger.Error("order calculation failed", slog.String("draft", id.String()), slog.String("error", err.Error()))
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	work := s.draft.Clone()
	work.Totals = totals
	discount.Rebase(&work.Discount, totals.TotalSum)
	work.UpdatedAt = u.now()
	s.draft = work
	u.saver.Enqueue(work.Clone())

	out := work.Clone()
	out.Pending.Calculating = false
	return out, nil
}

func (u *DraftUseCase) calculate(ctx context.Context, draft *model.Draft) (model.Totals, error) {
	ref, err := u.reference.Load(ctx)
	if err != nil {
		return model.Totals{}, fmt.Errorf("%w: %w", domainErrors.ErrCalculationFailed, err)
	}
	hydrator := pricing.NewHydrator(ref, u.fallbackPriceType, u.logger)
	return u.api.Calculate(ctx, hydrator.BuildCalculationRequest(draft))
}

// Submit validates and posts the order. A successful submission ends the session and
// clears the saved draft; a failed one keeps both.
func (u *DraftUseCase) Submit(ctx context.Context, id uuid.UUID) (json.RawMessage, error) {
	s, snapshot, err := u.begin(id, func(p *model.Pending) *bool { return &p.Submitting })
	if err != nil {
		return nil, err
	}

	payload := pricing.BuildOrderPayload(snapshot)
	if err := u.validatePayload(payload); err != nil {
		u.end(s, func(p *model.Pending) *bool { return &p.Submitting })
		return nil, err
	}

	created, err := u.api.SubmitOrder(ctx, payload)
	u.observer.RecordSubmission(err)
	if err != nil {
		u.end(s, func(p *model.Pending) *bool { return &p.Submitting })
		u.logger.Error("order submission failed", slog.String("draft", id.String()), slog.String("error", err.Error()))
		return nil, err
	}

	u.unregister(snapshot.ID, snapshot.Key)
	u.saver.Discard(snapshot.Key)
	u.logger.Info("order submitted", slog.String("draft", id.String()))
	return created, nil
}

func (u *DraftUseCase) validatePayload(payload pricing.OrderPayload) error {
	err := u.validate.Struct(payload)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %w", domainErrors.ErrValidation, err)
	}
	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, fe.Field())
	}
	return fmt.Errorf("%w: missing or invalid %s", domainErrors.ErrValidation, strings.Join(fields, ", "))
}

// begin raises a pending flag and returns a snapshot of the draft to work on.
func (u *DraftUseCase) begin(id uuid.UUID, flag func(*model.Pending) *bool) (*session, *model.Draft, error) {
	s, err := u.session(id)
	if err != nil {
		return nil, nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if *flag(&s.draft.Pending) {
		return nil, nil, domainErrors.ErrInFlight
	}
	*flag(&s.draft.Pending) = true
	return s, s.draft.Clone(), nil
}

func (u *DraftUseCase) end(s *session, flag func(*model.Pending) *bool) {
	s.mu.Lock()
	*flag(&s.draft.Pending) = false
	s.mu.Unlock()
}
