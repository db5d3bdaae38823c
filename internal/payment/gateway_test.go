package payment

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestMinorUnits(t *testing.T) {
	cases := []struct {
		amount string
		want   int64
	}{
		{"2860", 286000},
		{"2860.00", 286000},
		{"0.01", 1},
		{"4999.50", 499950},
		{"0", 0},
	}
	for _, tc := range cases {
		d, err := decimal.NewFromString(tc.amount)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.amount, err)
		}
		if got := MinorUnits(d); got != tc.want {
			t.Fatalf("MinorUnits(%s) = %d, want %d", tc.amount, got, tc.want)
		}
	}
}
