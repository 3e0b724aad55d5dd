package offer

import (
	"fmt"
	"sort"

	"github.com/iwvelando/deal-calculator/pkg/constants"

	"github.com/iwvelando/deal-calculator/pkg/loans"
	"github.com/iwvelando/deal-calculator/pkg/mathutil"
)

// uniqueDowns returns the distinct down payments, in cents, ascending.
func uniqueDowns(downs []float64) []float64 {
	seen := make(map[float64]struct{}, len(downs))
	out := make([]float64, 0, len(downs))
	for _, d := range downs {
		d = mathutil.Round(d)
		if _, dup := seen[d]; dup {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	sort.Float64s(out)
	return out
}

// uniqueTerms returns the distinct terms ascending.
func uniqueTerms(terms []int) []int {
	seen := make(map[int]struct{}, len(terms))
	out := make([]int, 0, len(terms))
	for _, t := range terms {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sort.Ints(out)
	return out
}

// CheckFinanceLimits rejects terms beyond constants.MaxTermMonths and a
// payment matrix larger than constants.MaxFinanceTableRows.
func CheckFinanceLimits(downs []float64, terms []int) error {
	terms = uniqueTerms(terms)
	if n := len(terms); n > 0 && terms[n-1] > constants.MaxTermMonths {
		return fmt.Errorf("finance term of %d months exceeds the maximum of %d", terms[n-1], constants.MaxTermMonths)
	}
	if rows := len(uniqueDowns(downs)) * len(terms); rows > constants.MaxFinanceTableRows {
		return fmt.Errorf("finance table of %d rows exceeds the maximum of %d", rows, constants.MaxFinanceTableRows)
	}
	return nil
}

// FinanceTable builds one row per down payment and term, grouped by down
// payment then term, both ascending.
func FinanceTable(totalAmountFinanced, annualInterestRate float64, downs []float64, terms []int) []FinanceRow {
	downs = uniqueDowns(downs)
	terms = uniqueTerms(terms)

	rows := make([]FinanceRow, 0, len(downs)*len(terms))
	for _, down := range downs {
		amount := mathutil.SumCents(totalAmountFinanced, -down)
		for _, term := range terms {
			payment := mathutil.Round(loans.CalculateMonthlyPayment(amount, 0, annualInterestRate, term))
			rows = append(rows, FinanceRow{
				Down:            down,
				Term:            term,
				AmountFinanced:  amount,
				Payment:         payment,
				TotalOfPayments: loans.CalculateTotalOfPayments(payment, term),
				FinanceCharge:   loans.CalculateFinanceCharge(payment, term, amount),
			})
		}
	}
	return rows
}
