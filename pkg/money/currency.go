// Package money holds the currency tag carried by loan configurations.
package money

import (
	"fmt"
	"regexp"
	"strings"
)

var currencyCodeRe = regexp.MustCompile(`^[A-Z]{3}$`)

// Currency is an ISO 4217 currency code. The simulator never converts between
// currencies; the code only travels with the amounts it labels.
type Currency struct {
	code string
}

// NewCurrency creates a Currency after validating the code is exactly 3 uppercase letters.
func NewCurrency(code string) (Currency, error) {
	if !currencyCodeRe.MatchString(code) {
		return Currency{}, fmt.Errorf("invalid currency code %q: must be exactly 3 uppercase letters", code)
	}
	return Currency{code: code}, nil
}

// ParseCurrency trims and upper-cases user input before validating it.
func ParseCurrency(raw string) (Currency, error) {
	return NewCurrency(strings.ToUpper(strings.TrimSpace(raw)))
}

// MustCurrency creates a Currency and panics on error. Intended for package-level variable
// initialization only.
func MustCurrency(code string) Currency {
	c, err := NewCurrency(code)
	if err != nil {
		panic(err)
	}
	return c
}

// Code returns the ISO 4217 currency code.
func (c Currency) Code() string {
	return c.code
}

// String returns the currency code.
func (c Currency) String() string {
	return c.code
}

// IsZero returns true if the currency has not been set.
func (c Currency) IsZero() bool {
	return c.code == ""
}

// Currencies the mortgage products are quoted in.
var (
	PEN = MustCurrency("PEN")
	USD = MustCurrency("USD")
)
