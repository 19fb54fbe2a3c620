package finance

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// MaxTermYears bounds the loan term so the payment count stays small.
const MaxTermYears = 50

type MortgageInput struct {
	Price             float64 `json:"price"`
	DownPayment       float64 `json:"down_payment"`
	AnnualRatePercent float64 `json:"annual_rate_percent"`
	TermYears         int     `json:"term_years"`
}

type MortgageResult struct {
	Principal        float64 `json:"principal"`
	NumberOfPayments int     `json:"number_of_payments"`
	MonthlyPayment   float64 `json:"monthly_payment"`
	TotalPayment     float64 `json:"total_payment"`
	TotalInterest    float64 `json:"total_interest"`
}

func (in MortgageInput) validate() error {
	if !finite(in.Price) {
		return invalid("price", "must be a finite number")
	}
	if !finite(in.DownPayment) {
		return invalid("down_payment", "must be a finite number")
	}
	if !finite(in.AnnualRatePercent) {
		return invalid("annual_rate_percent", "must be a finite number")
	}
	if in.Price <= 0 {
		return invalid("price", "must be positive")
	}
	if in.DownPayment < 0 {
		return invalid("down_payment", "cannot be negative")
	}
	if in.DownPayment > in.Price {
		return invalid("down_payment", "cannot exceed the property price")
	}
	if in.AnnualRatePercent < 0 {
		return invalid("annual_rate_percent", "cannot be negative")
	}
	if in.TermYears <= 0 {
		return invalid("term_years", "must be at least one year")
	}
	if in.TermYears > MaxTermYears {
		return invalid("term_years", fmt.Sprintf("cannot exceed %d years", MaxTermYears))
	}
	return nil
}

// ComputeMortgage returns the fixed monthly payment of a fully amortizing
// loan together with the totals over the whole term. No rounding is applied.
func ComputeMortgage(in MortgageInput) (MortgageResult, error) {
	if err := in.validate(); err != nil {
		return MortgageResult{}, err
	}

	principal := in.Price - in.DownPayment
	monthlyRate := in.AnnualRatePercent / 100 / 12
	n := in.TermYears * 12

	res := MortgageResult{
		Principal:        principal,
		NumberOfPayments: n,
	}

	if monthlyRate == 0 {
		res.MonthlyPayment = principal / float64(n)
		res.TotalPayment = res.MonthlyPayment * float64(n)
		res.TotalInterest = 0
		if !finite(res.MonthlyPayment, res.TotalPayment) {
			return MortgageResult{}, invalid("term_years", "does not produce a finite payment")
		}
		return res, nil
	}

	factor := math.Pow(1+monthlyRate, float64(n))
	res.MonthlyPayment = principal * monthlyRate * factor / (factor - 1)
	res.TotalPayment = res.MonthlyPayment * float64(n)
	res.TotalInterest = res.TotalPayment - principal

	if !finite(res.MonthlyPayment, res.TotalPayment, res.TotalInterest) {
		return MortgageResult{}, invalid("annual_rate_percent", "does not produce a finite payment")
	}
	return res, nil
}

// Installment is one month of an amortization schedule, in shillings rounded
// to cents.
type Installment struct {
	Period    int             `json:"period"`
	Payment   decimal.Decimal `json:"payment"`
	Principal decimal.Decimal `json:"principal"`
	Interest  decimal.Decimal `json:"interest"`
	Balance   decimal.Decimal `json:"balance"`
}

// AmortizationSchedule splits every payment of the loan into interest and
// principal. The final installment absorbs rounding so the balance closes at
// exactly zero.
func AmortizationSchedule(in MortgageInput) ([]Installment, error) {
	res, err := ComputeMortgage(in)
	if err != nil {
		return nil, err
	}

	schedule := make([]Installment, 0, res.NumberOfPayments)
	if res.Principal == 0 {
		return schedule, nil
	}

	payment := decimal.NewFromFloat(res.MonthlyPayment).Round(2)
	monthlyRate := decimal.NewFromFloat(in.AnnualRatePercent).Div(decimal.NewFromInt(1200))
	balance := decimal.NewFromFloat(res.Principal).Round(2)

	for period := 1; period <= res.NumberOfPayments; period++ {
		interest := balance.Mul(monthlyRate).Round(2)
		principalPart := payment.Sub(interest)
		if period == res.NumberOfPayments || principalPart.GreaterThan(balance) {
			principalPart = balance
		}
		balance = balance.Sub(principalPart)

		schedule = append(schedule, Installment{
			Period:    period,
			Payment:   principalPart.Add(interest),
			Principal: principalPart,
			Interest:  interest,
			Balance:   balance,
		})
	}

	return schedule, nil
}
