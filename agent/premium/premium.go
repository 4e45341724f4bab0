// Package premium computes monthly and annual premiums from a subject
// profile and a plan tier. Compute is pure: no clock, no I/O, identical
// inputs always produce identical output.
package premium

import (
	"errors"
	"fmt"
	"math"

	catalogx "github.com/pawquote/quote-agent/agent/catalog"
	statex "github.com/pawquote/quote-agent/agent/state"
)

var ErrNegativeAge = errors.New("age must not be negative")

const (
	FieldBreed = "breed"
	FieldAge   = "age"
)

// InsufficientDataError names exactly which profile fields block a quote so
// the dispatcher can ask a targeted follow-up instead of a generic failure.
type InsufficientDataError struct {
	Missing []string
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data: missing %v", e.Missing)
}

// Premium is the computed result. Values are rounded to 2 decimals and
// strictly positive.
type Premium struct {
	Monthly float64
	Annual  float64
}

// Compute derives the premium for a profile and plan tier.
//
// Age bands (lower bound inclusive): under 1 year x1.10, 1-6 x1.00,
// 7-9 x1.30, 10 and over x1.50. A true pre-existing-conditions flag adds
// x1.15; an absent flag is treated as false. An unresolved breed quotes at
// the 1.0 baseline multiplier rather than failing.
//
// All multiplications stay in floating point; rounding happens once at the
// terminal monthly value and once for the derived annual value, never on
// intermediate multipliers.
func Compute(profile *statex.SubjectProfile, plan catalogx.Plan) (Premium, error) {
	if profile == nil {
		return Premium{}, &InsufficientDataError{Missing: []string{FieldBreed, FieldAge}}
	}

	var missing []string
	if !profile.HasEntity() {
		missing = append(missing, FieldBreed)
	}
	if profile.AgeYears == nil {
		missing = append(missing, FieldAge)
	}
	if len(missing) > 0 {
		return Premium{}, &InsufficientDataError{Missing: missing}
	}

	age := *profile.AgeYears
	if age < 0 {
		return Premium{}, fmt.Errorf("%w: %v", ErrNegativeAge, age)
	}

	conditionSurcharge := 1.0
	if profile.HasConditions != nil && *profile.HasConditions {
		conditionSurcharge = 1.15
	}

	monthly := round2(plan.BaseMonthlyRate * profile.RiskMultiplier() * ageMultiplier(age) * conditionSurcharge)
	return Premium{
		Monthly: monthly,
		Annual:  round2(monthly * 12),
	}, nil
}

func ageMultiplier(age float64) float64 {
	switch {
	case age < 1:
		return 1.10
	case age < 7:
		return 1.00
	case age < 10:
		return 1.30
	default:
		return 1.50
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
