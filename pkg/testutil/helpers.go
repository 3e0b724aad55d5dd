// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/deal-calculator/internal/offer"
	"github.com/iwvelando/deal-calculator/pkg/mathutil"
)

// FindRow finds the payment matrix row for a down payment and term.
// Down payments match to the cent. Returns nil if there is no such row.
func FindRow(rows []offer.FinanceRow, down float64, term int) *offer.FinanceRow {
	for i := range rows {
		if rows[i].Term == term && mathutil.Round(rows[i].Down) == mathutil.Round(down) {
			return &rows[i]
		}
	}
	return nil
}
