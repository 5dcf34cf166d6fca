// Package discount reconciles discount percentage, total discount and agreement amount
// and derives the remaining balance of an order.
//
// The percentage is the source of truth. The total discount always satisfies
//
//	total = subtotal * percentage / 100 + agreement
//
// except right after a direct total edit, where the typed value is kept as entered.
// The percentage derived from it is clamped at zero and is zero while there is no
// subtotal.
package discount

import (
	"fmt"

	"github.com/shopspring/decimal"

	domainErrors "github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/domain/errors"
	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/domain/model"
	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/pkg/numeric"
)

// Field names one editable input of the discount block.
type Field string

const (
	FieldPercentage Field = "discount_percentage"
	FieldTotal      Field = "discount_amount"
	FieldAgreement  Field = "agreement_amount"
	FieldAdvance    Field = "advance_payment"
)

var hundred = decimal.NewFromInt(100)

// Base returns the percentage part of the discount.
func Base(subtotal, percentage decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(percentage).Div(hundred)
}

// EditPercentage sets the percentage and recomputes the total from it.
func EditPercentage(s *model.DiscountState, subtotal, percentage decimal.Decimal) {
	s.Percentage = percentage
	s.DiscountAmountInput = Base(subtotal, percentage).Add(s.AgreementAmountInput)
}

// EditTotal keeps the typed total discount and derives the percentage from it.
func EditTotal(s *model.DiscountState, subtotal, total decimal.Decimal) {
	s.DiscountAmountInput = total
	if !subtotal.IsPositive() {
		s.Percentage = decimal.Zero
		return
	}
	base := decimal.Max(decimal.Zero, total.Sub(s.AgreementAmountInput))
	s.Percentage = base.Div(subtotal).Mul(hundred).Round(2)
}

// EditAgreement sets the agreement amount. The percentage is left untouched.
func EditAgreement(s *model.DiscountState, subtotal, agreement decimal.Decimal) {
	s.AgreementAmountInput = agreement
	s.DiscountAmountInput = Base(subtotal, s.Percentage).Add(agreement)
}

// EditAdvance sets the advance payment.
func EditAdvance(s *model.DiscountState, advance decimal.Decimal) {
	s.AdvancePayment = advance
}

// Rebase recomputes the total after the subtotal changed.
func Rebase(s *model.DiscountState, subtotal decimal.Decimal) {
	s.DiscountAmountInput = Base(subtotal, s.Percentage).Add(s.AgreementAmountInput)
}

// Apply dispatches an edit of the named field.
func Apply(s *model.DiscountState, subtotal decimal.Decimal, field Field, value decimal.Decimal) error {
	switch field {
	case FieldPercentage:
		EditPercentage(s, subtotal, value)
	case FieldTotal:
		EditTotal(s, subtotal, value)
	case FieldAgreement:
		EditAgreement(s, subtotal, value)
	case FieldAdvance:
		EditAdvance(s, value)
	default:
		return fmt.Errorf("%w: unknown discount field %q", domainErrors.ErrValidation, field)
	}
	return nil
}

// RemainingBalance is subtotal minus total discount minus advance. It may be negative.
func RemainingBalance(s model.DiscountState, subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Sub(s.DiscountAmountInput).Sub(s.AdvancePayment)
}

// Summary holds the order-level financial figures as fixed-point strings.
type Summary struct {
	TotalAmount        string `json:"total_amount"`
	DiscountPercentage string `json:"discount_percentage"`
	DiscountAmount     string `json:"discount_amount"`
	AgreementAmount    string `json:"agreement_amount"`
	AdvancePayment     string `json:"advance_payment"`
	RemainingBalance   string `json:"remaining_balance"`
}

// Summarize renders the discount state against the given subtotal.
func Summarize(s model.DiscountState, subtotal decimal.Decimal) Summary {
	return Summary{
		TotalAmount:        numeric.Fixed(subtotal),
		DiscountPercentage: numeric.Fixed(s.Percentage),
		DiscountAmount:     numeric.Fixed(s.DiscountAmountInput),
		AgreementAmount:    numeric.Fixed(s.AgreementAmountInput),
		AdvancePayment:     numeric.Fixed(s.AdvancePayment),
		RemainingBalance:   numeric.Fixed(RemainingBalance(s, subtotal)),
	}
}
