package valueobject

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownTag is returned when a raw string does not name a known value.
var ErrUnknownTag = errors.New("unknown tag")

// ---------------------------------------------------------------------------
// RateType – immutable value object
// ---------------------------------------------------------------------------

// RateType tells whether the annual rate of a loan is effective (TEA) or
// nominal (TNA).
type RateType struct {
	value string
}

const (
	rateTypeEffective = "EFFECTIVE"
	rateTypeNominal   = "NOMINAL"
)

var (
	RateTypeEffective = RateType{value: rateTypeEffective}
	RateTypeNominal   = RateType{value: rateTypeNominal}
)

var validRateTypes = map[string]RateType{
	rateTypeEffective: RateTypeEffective,
	rateTypeNominal:   RateTypeNominal,
	"EFECTIVA":        RateTypeEffective,
}

// NewRateType creates a RateType from a raw string. Matching is case-insensitive.
func NewRateType(s string) (RateType, error) {
	v, ok := validRateTypes[normalizeTag(s)]
	if !ok {
		return RateType{}, fmt.Errorf("%w: rate type %q", ErrUnknownTag, s)
	}
	return v, nil
}

// String returns the canonical representation of the rate type.
func (r RateType) String() string { return r.value }

// IsZero returns true if the rate type has not been initialised.
func (r RateType) IsZero() bool { return r.value == "" }

// Equal returns true when both rate types carry the same value.
func (r RateType) Equal(other RateType) bool { return r.value == other.value }

// ---------------------------------------------------------------------------
// Capitalization – immutable value object
// ---------------------------------------------------------------------------

// Capitalization is the compounding frequency of a nominal rate.
type Capitalization struct {
	value string
}

const (
	capitalizationDaily   = "DAILY"
	capitalizationMonthly = "MONTHLY"
)

var (
	CapitalizationDaily   = Capitalization{value: capitalizationDaily}
	CapitalizationMonthly = Capitalization{value: capitalizationMonthly}
)

var validCapitalizations = map[string]Capitalization{
	capitalizationDaily:   CapitalizationDaily,
	capitalizationMonthly: CapitalizationMonthly,
	"DIARIA":              CapitalizationDaily,
	"MENSUAL":             CapitalizationMonthly,
}

// NewCapitalization creates a Capitalization from a raw string. An empty
// string yields the zero value, which is only valid for effective rates.
func NewCapitalization(s string) (Capitalization, error) {
	if strings.TrimSpace(s) == "" {
		return Capitalization{}, nil
	}
	v, ok := validCapitalizations[normalizeTag(s)]
	if !ok {
		return Capitalization{}, fmt.Errorf("%w: capitalization %q", ErrUnknownTag, s)
	}
	return v, nil
}

// String returns the canonical representation of the capitalization.
func (c Capitalization) String() string { return c.value }

// IsZero returns true if the capitalization has not been initialised.
func (c Capitalization) IsZero() bool { return c.value == "" }

// Equal returns true when both capitalizations carry the same value.
func (c Capitalization) Equal(other Capitalization) bool { return c.value == other.value }

// ---------------------------------------------------------------------------
// GracePeriodPolicy – immutable value object
// ---------------------------------------------------------------------------

// GracePeriodPolicy controls what the borrower pays during the first
// grace months of the loan.
//
//	NONE    no grace period
//	PARTIAL only interest is paid, the balance stays flat
//	TOTAL   nothing is paid, interest capitalizes into the balance
type GracePeriodPolicy struct {
	value string
}

const (
	gracePolicyNone    = "NONE"
	gracePolicyPartial = "PARTIAL"
	gracePolicyTotal   = "TOTAL"
)

var (
	GracePeriodNone    = GracePeriodPolicy{value: gracePolicyNone}
	GracePeriodPartial = GracePeriodPolicy{value: gracePolicyPartial}
	GracePeriodTotal   = GracePeriodPolicy{value: gracePolicyTotal}
)

var validGracePolicies = map[string]GracePeriodPolicy{
	gracePolicyNone:    GracePeriodNone,
	gracePolicyPartial: GracePeriodPartial,
	gracePolicyTotal:   GracePeriodTotal,
	"NINGUNO":          GracePeriodNone,
	"PARCIAL":          GracePeriodPartial,
}

// NewGracePeriodPolicy creates a GracePeriodPolicy from a raw string. An
// empty string means no grace period.
func NewGracePeriodPolicy(s string) (GracePeriodPolicy, error) {
	if strings.TrimSpace(s) == "" {
		return GracePeriodNone, nil
	}
	v, ok := validGracePolicies[normalizeTag(s)]
	if !ok {
		return GracePeriodPolicy{}, fmt.Errorf("%w: grace period policy %q", ErrUnknownTag, s)
	}
	return v, nil
}

// String returns the canonical representation of the policy.
func (g GracePeriodPolicy) String() string { return g.value }

// IsZero returns true if the policy has not been initialised.
func (g GracePeriodPolicy) IsZero() bool { return g.value == "" }

// Equal returns true when both policies carry the same value.
func (g GracePeriodPolicy) Equal(other GracePeriodPolicy) bool { return g.value == other.value }

// DefersPrincipal reports whether the policy suspends principal repayment.
func (g GracePeriodPolicy) DefersPrincipal() bool {
	return g.Equal(GracePeriodPartial) || g.Equal(GracePeriodTotal)
}

func normalizeTag(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
