// Package loans provides common loan processing utilities.
package loans

import (
	"math"

	"github.com/iwvelando/deal-calculator/pkg/constants"
	"github.com/iwvelando/deal-calculator/pkg/mathutil"
	"go.uber.org/zap"
)

// Installment holds the values for a given payment.
type Installment struct {
	Month              int     `json:"month"`
	Payment            float64 `json:"payment"`
	Principal          float64 `json:"principal"`
	Interest           float64 `json:"interest"`
	RemainingPrincipal float64 `json:"remainingPrincipal"`
}

// PeriodicRate converts an annual percentage rate into a monthly rate.
func PeriodicRate(annualInterestRate float64) float64 {
	return annualInterestRate / (constants.PercentageMultiplier * constants.MonthsPerYear)
}

// CalculateMonthlyPayment calculates the monthly payment on principal less
// downPayment using the standard amortization formula. A zero rate divides
// the amount evenly over the term. A non-positive amount or term, a negative
// rate, or any non-finite input yields 0.
func CalculateMonthlyPayment(principal, downPayment, annualInterestRate float64, termMonths int) float64 {
	amount := mathutil.Finite(principal) - mathutil.Finite(downPayment)
	rate := mathutil.Finite(annualInterestRate)
	if amount <= 0 || termMonths <= 0 || rate < 0 {
		return 0
	}

	if rate == 0 {
		return amount / float64(termMonths)
	}

	periodicInterestRate := PeriodicRate(rate)
	return amount * periodicInterestRate / (1 - math.Pow(1+periodicInterestRate, -float64(termMonths)))
}

// CalculateInterestPayment calculates the interest portion of a payment.
func CalculateInterestPayment(remainingPrincipal, annualInterestRate float64) float64 {
	return remainingPrincipal * PeriodicRate(annualInterestRate)
}

// CalculateTotalOfPayments is the sum of every scheduled payment, in cents.
func CalculateTotalOfPayments(payment float64, termMonths int) float64 {
	if termMonths <= 0 {
		return 0
	}
	return mathutil.Round(payment * float64(termMonths))
}

// CalculateFinanceCharge is the interest paid over the life of the loan.
func CalculateFinanceCharge(payment float64, termMonths int, amountFinanced float64) float64 {
	if termMonths <= 0 || payment <= 0 {
		return 0
	}
	return mathutil.Round(CalculateTotalOfPayments(payment, termMonths) - amountFinanced)
}

// ScheduleGenerator produces month-by-month amortization schedules.
type ScheduleGenerator struct {
	logger *zap.Logger
}

// NewScheduleGenerator creates a new generator instance
func NewScheduleGenerator(logger *zap.Logger) *ScheduleGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleGenerator{logger: logger}
}

// GenerateSchedule builds the amortization schedule for amount at the annual
// rate over termMonths. Every value is rounded to cents as it is produced and
// the final installment absorbs the leftover so the balance closes at zero.
func (g *ScheduleGenerator) GenerateSchedule(amount, annualInterestRate float64, termMonths int) []Installment {
	payment := mathutil.Round(CalculateMonthlyPayment(amount, 0, annualInterestRate, termMonths))
	if payment <= 0 {
		g.logger.Debug("nothing to amortize",
			zap.String("op", "loans.GenerateSchedule"),
			zap.Float64("amount", amount),
			zap.Float64("rate", annualInterestRate),
			zap.Int("term", termMonths),
		)
		return nil
	}

	schedule := make([]Installment, 0, termMonths)
	balance := mathutil.Round(amount)
	for month := 1; month <= termMonths; month++ {
		interest := mathutil.Round(CalculateInterestPayment(balance, annualInterestRate))
		principal := mathutil.Round(payment - interest)
		current := payment

		// Last month, or the rounding drift would overpay: settle the balance.
		if month == termMonths || principal >= balance {
			principal = balance
			current = mathutil.Round(principal + interest)
		}

		balance = mathutil.Round(balance - principal)
		schedule = append(schedule, Installment{
			Month:              month,
			Payment:            current,
			Principal:          principal,
			Interest:           interest,
			RemainingPrincipal: balance,
		})

		if balance <= 0 {
			break
		}
	}

	g.logger.Debug("generated amortization schedule",
		zap.String("op", "loans.GenerateSchedule"),
		zap.Int("installments", len(schedule)),
		zap.Float64("payment", payment),
	)
	return schedule
}
