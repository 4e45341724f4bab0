package nodes

import (
	"fmt"
	"strings"

	catalogx "github.com/pawquote/quote-agent/agent/catalog"
	contractx "github.com/pawquote/quote-agent/agent/contract"
)

// ListPlans enumerates the plan tiers ascending by price. It reads no session
// state and cannot fail.
func ListPlans(in *GraphState, cat *catalogx.Catalog) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	plans := cat.Plans()
	views := make([]contractx.PlanView, 0, len(plans))
	var names []string
	for _, p := range plans {
		views = append(views, planView(p))
		names = append(names, fmt.Sprintf("%s at $%.0f/month", p.Name, p.BaseMonthlyRate))
	}

	in.Result = contractx.Result{
		Outcome: contractx.OutcomeOK,
		Message: fmt.Sprintf("We offer %d plans: %s. Which one would you like a quote for?",
			len(plans), strings.Join(names, ", ")),
		Plans: views,
	}
	return in, nil
}
