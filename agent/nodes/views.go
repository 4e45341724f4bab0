package nodes

import (
	"time"

	catalogx "github.com/pawquote/quote-agent/agent/catalog"
	contractx "github.com/pawquote/quote-agent/agent/contract"
	statex "github.com/pawquote/quote-agent/agent/state"
)

func entityView(b catalogx.Breed) *contractx.EntityView {
	return &contractx.EntityView{
		Name:               b.Name,
		Size:               b.Size,
		RiskCategory:       string(b.RiskCategory),
		AvgLifespanYears:   b.AvgLifespanYears,
		CommonHealthIssues: append([]string(nil), b.CommonHealthIssues...),
		PremiumMultiplier:  b.PremiumMultiplier,
		Temperament:        append([]string(nil), b.Temperament...),
		ExerciseNeeds:      b.ExerciseNeeds,
		GroomingNeeds:      b.GroomingNeeds,
	}
}

func profileView(sp statex.SubjectProfile) *contractx.ProfileView {
	v := &contractx.ProfileView{
		PetName:       sp.PetName,
		BreedName:     sp.BreedName,
		BreedResolved: sp.Breed != nil,
	}
	if sp.AgeYears != nil {
		age := *sp.AgeYears
		v.AgeYears = &age
	}
	if sp.HasConditions != nil {
		hc := *sp.HasConditions
		v.HasConditions = &hc
	}
	return v
}

func quoteView(q statex.IssuedQuote) *contractx.QuoteView {
	return &contractx.QuoteView{
		QuoteID:             q.QuoteID,
		PlanID:              string(q.Plan.ID),
		PlanName:            q.Plan.Name,
		MonthlyPremium:      q.MonthlyPremium,
		AnnualPremium:       q.AnnualPremium,
		AnnualCoverageLimit: q.Plan.AnnualCoverageLimit,
		Deductible:          q.Plan.Deductible,
		Features:            append([]string(nil), q.Plan.Features...),
		IssuedAt:            q.IssuedAt.Format(time.RFC3339),
		ValidUntil:          q.ValidUntil.Format(time.RFC3339),
	}
}

func planView(p catalogx.Plan) contractx.PlanView {
	return contractx.PlanView{
		ID:                  string(p.ID),
		Name:                p.Name,
		BaseMonthlyRate:     p.BaseMonthlyRate,
		AnnualCoverageLimit: p.AnnualCoverageLimit,
		Deductible:          p.Deductible,
		Features:            append([]string(nil), p.Features...),
	}
}
