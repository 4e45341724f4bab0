package nodes

import (
	"errors"
	"fmt"
	"strings"

	catalogx "github.com/pawquote/quote-agent/agent/catalog"
	contractx "github.com/pawquote/quote-agent/agent/contract"
	premiumx "github.com/pawquote/quote-agent/agent/premium"
	quotex "github.com/pawquote/quote-agent/agent/quote"
)

// RequestQuote prices the current profile against a plan tier and records the
// quote on the session. A profile that cannot be priced yet comes back as an
// insufficient_data outcome naming exactly what is missing.
func RequestQuote(in *GraphState, cat *catalogx.Catalog, issuer *quotex.Issuer) (*GraphState, error) {
	if in == nil || in.Session == nil {
		return nil, fmt.Errorf("%w: graph session is nil", contractx.ErrValidation)
	}

	plan := resolvePlan(cat, in.Call.Quote.PlanID)

	p, err := premiumx.Compute(&in.Session.Profile, plan)
	if err != nil {
		var insufficient *premiumx.InsufficientDataError
		switch {
		case errors.As(err, &insufficient):
			in.Result = contractx.Result{
				Outcome:       contractx.OutcomeInsufficientData,
				Message:       missingMessage(insufficient.Missing),
				MissingFields: insufficient.Missing,
				Profile:       profileView(in.Session.Profile),
			}
			return in, nil
		case errors.Is(err, premiumx.ErrNegativeAge):
			in.Result = contractx.Result{
				Outcome: contractx.OutcomeInvalidArgument,
				Message: "The age I have on file is negative, which can't be right. How old is your dog in years?",
				Profile: profileView(in.Session.Profile),
			}
			return in, nil
		}
		return nil, err
	}

	q := issuer.Issue(&in.Session.Profile, plan, p)
	in.Session.AppendQuote(q)
	in.Dirty = true

	subject := "your dog"
	if name := in.Session.Profile.PetName; name != "" {
		subject = name
	}
	in.Result = contractx.Result{
		Outcome: contractx.OutcomeOK,
		Message: fmt.Sprintf(
			"Here's your %s quote for %s: $%.2f a month ($%.2f a year), covering up to $%d annually with a $%d deductible. It's valid until %s.",
			plan.Name, subject, q.MonthlyPremium, q.AnnualPremium,
			plan.AnnualCoverageLimit, plan.Deductible,
			q.ValidUntil.Format("January 2, 2006"),
		),
		Quote:   quoteView(q),
		Profile: profileView(in.Session.Profile),
	}
	return in, nil
}

// resolvePlan maps a caller-supplied plan id to a tier. Unknown or empty ids
// fall back to the standard tier so a vague "get me a quote" still prices.
func resolvePlan(cat *catalogx.Catalog, planID string) catalogx.Plan {
	id := catalogx.PlanID(strings.ToLower(strings.TrimSpace(planID)))
	if p, ok := cat.Plan(id); ok {
		return p
	}
	p, _ := cat.Plan(catalogx.PlanStandard)
	return p
}

func missingMessage(missing []string) string {
	var needs []string
	for _, f := range missing {
		switch f {
		case premiumx.FieldBreed:
			needs = append(needs, "your dog's breed")
		case premiumx.FieldAge:
			needs = append(needs, "your dog's age")
		default:
			needs = append(needs, f)
		}
	}
	return fmt.Sprintf("I still need %s before I can put a quote together.", joinAnd(needs))
}
