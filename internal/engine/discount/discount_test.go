package discount

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/domain/errors"
	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/domain/model"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, got.Equal(d(want)), "want %s, got %s", want, got)
}

func TestScenarioPercentageAgreementAdvance(t *testing.T) {
	subtotal := d("1000000")
	var s model.DiscountState

	EditAgreement(&s, subtotal, d("50000"))
	EditPercentage(&s, subtotal, d("10"))
	assertDecimal(t, "150000", s.DiscountAmountInput)

	EditAdvance(&s, d("200000"))
	assertDecimal(t, "650000", RemainingBalance(s, subtotal))

	sum := Summarize(s, subtotal)
	assert.Equal(t, Summary{
		TotalAmount:        "1000000.00",
		DiscountPercentage: "10.00",
		DiscountAmount:     "150000.00",
		AgreementAmount:    "50000.00",
		AdvancePayment:     "200000.00",
		RemainingBalance:   "650000.00",
	}, sum)
}

func TestEditAgreementKeepsPercentage(t *testing.T) {
	subtotal := d("800000")
	var s model.DiscountState
	EditPercentage(&s, subtotal, d("5"))
	assertDecimal(t, "40000", s.DiscountAmountInput)

	EditAgreement(&s, subtotal, d("12000"))
	assertDecimal(t, "5", s.Percentage)
	assertDecimal(t, "52000", s.DiscountAmountInput)
}

func TestEditTotalDerivesPercentage(t *testing.T) {
	cases := []struct {
		name      string
		subtotal  string
		agreement string
		total     string
		wantPct   string
		wantTotal string
	}{
		{"plain", "1000000", "50000", "150000", "10", "150000"},
		{"rounded", "300000", "0", "100000", "33.33", "100000"},
		{"below agreement keeps typed total", "1000000", "50000", "20000", "0", "20000"},
		{"zero subtotal keeps typed total", "0", "1000", "5000", "0", "5000"},
		{"negative subtotal", "-10", "0", "300", "0", "300"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := model.DiscountState{AgreementAmountInput: d(tc.agreement)}
			EditTotal(&s, d(tc.subtotal), d(tc.total))
			assertDecimal(t, tc.wantPct, s.Percentage)
			assertDecimal(t, tc.wantTotal, s.DiscountAmountInput)
		})
	}
}

func TestEditTotalBeforeCalculationRebasesLater(t *testing.T) {
	s := model.DiscountState{AgreementAmountInput: d("1000")}
	EditTotal(&s, decimal.Zero, d("5000"))
	assertDecimal(t, "5000", s.DiscountAmountInput)
	assertDecimal(t, "0", s.Percentage)

	Rebase(&s, d("200000"))
	assertDecimal(t, "1000", s.DiscountAmountInput)
}

func TestEditOrderIsConsistent(t *testing.T) {
	subtotal := d("500000")

	var a model.DiscountState
	EditPercentage(&a, subtotal, d("4"))
	EditAgreement(&a, subtotal, d("7000"))

	var b model.DiscountState
	EditAgreement(&b, subtotal, d("7000"))
	EditPercentage(&b, subtotal, d("4"))

	assert.Equal(t, a.Percentage.String(), b.Percentage.String())
	assertDecimal(t, "27000", a.DiscountAmountInput)
	assertDecimal(t, "27000", b.DiscountAmountInput)
}

func TestBalanceIsNotClamped(t *testing.T) {
	s := model.DiscountState{DiscountAmountInput: d("100"), AdvancePayment: d("1000")}
	assertDecimal(t, "-600", RemainingBalance(s, d("500")))
}

func TestRebase(t *testing.T) {
	s := model.DiscountState{Percentage: d("10"), AgreementAmountInput: d("100")}
	Rebase(&s, d("2000"))
	assertDecimal(t, "300", s.DiscountAmountInput)
}

func TestApply(t *testing.T) {
	subtotal := d("1000")
	var s model.DiscountState

	require.NoError(t, Apply(&s, subtotal, FieldPercentage, d("10")))
	require.NoError(t, Apply(&s, subtotal, FieldAgreement, d("5")))
	require.NoError(t, Apply(&s, subtotal, FieldAdvance, d("50")))
	assertDecimal(t, "105", s.DiscountAmountInput)

	require.NoError(t, Apply(&s, subtotal, FieldTotal, d("205")))
	assertDecimal(t, "20", s.Percentage)

	err := Apply(&s, subtotal, "bonus", d("1"))
	assert.ErrorIs(t, err, domainErrors.ErrValidation)
}
