package currency

import (
	"fmt"
	"math"
	"sort"
	"strconv"
)

// BaseCurrency is the currency all scanned prices are assumed to be in.
//
// The pipeline never detects a source currency; every extracted value is
// treated as BaseCurrency and converted from there. This is an explicit
// simplification of the scanning demo, kept as a documented constant rather
// than an unstated assumption.
const BaseCurrency = "USD"

// Table maps a currency code to its multiplier relative to BaseCurrency.
//
// Rates are static for the lifetime of the process and must not be mutated
// after construction. All multipliers are expected to be positive.
type Table map[string]float64

// DefaultTable returns the built-in demo rate table
// (1 USD = 0.92 EUR, 0.79 GBP, 150 JPY).
//
// A real deployment would load rates from a live source; the pipeline only
// depends on the lookup contract, not on where the numbers come from.
func DefaultTable() Table {
	return Table{
		"EUR": 0.92,
		"USD": 1.0,
		"GBP": 0.79,
		"JPY": 150.0,
	}
}

// UnknownCurrencyError reports a conversion attempt against a code that is
// not present in the rate table.
//
// Target currencies are supposed to be selected from Table.Codes, so hitting
// this error indicates a configuration or programming mistake, not a runtime
// condition of the scanned image.
type UnknownCurrencyError struct {
	Code string
}

func (e *UnknownCurrencyError) Error() string {
	return fmt.Sprintf("unknown currency %q", e.Code)
}

// Convert converts a value from BaseCurrency into the target currency and
// rounds the result to two decimal places.
//
// Rounding is half away from zero at the second decimal (math.Round on the
// value scaled by 100), which is deterministic and matches what users expect
// for displayed currency amounts.
//
// Returns an *UnknownCurrencyError if target is not in the table.
func (t Table) Convert(value float64, target string) (float64, error) {
	rate, ok := t[target]
	if !ok {
		return 0, &UnknownCurrencyError{Code: target}
	}
	return math.Round(value*rate*100) / 100, nil
}

// Codes returns the table's currency codes in sorted order, suitable for
// populating a selection UI or validating configuration.
func (t Table) Codes() []string {
	codes := make([]string, 0, len(t))
	for code := range t {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// FormatLabel renders a converted value as the overlay label, e.g. "4.60 EUR".
// The value is always shown with exactly two fractional digits.
func FormatLabel(value float64, code string) string {
	return strconv.FormatFloat(value, 'f', 2, 64) + " " + code
}
