package nodes

import (
	"fmt"
	"strings"

	catalogx "github.com/pawquote/quote-agent/agent/catalog"
	contractx "github.com/pawquote/quote-agent/agent/contract"
)

const maxSuggestions = 3

// LookupEntity resolves a breed name against the catalog. A hit merges the
// resolved breed into the session profile; a miss leaves the profile alone
// and suggests near matches. Both are normal conversational outcomes.
func LookupEntity(in *GraphState, cat *catalogx.Catalog) (*GraphState, error) {
	if in == nil || in.Session == nil {
		return nil, fmt.Errorf("%w: graph session is nil", contractx.ErrValidation)
	}

	name := strings.TrimSpace(in.Call.Lookup.Name)
	if name == "" {
		in.Result = contractx.Result{
			Outcome: contractx.OutcomeInvalidArgument,
			Message: "Which breed should I look up for you?",
		}
		return in, nil
	}

	b, ok := cat.FindBreed(name)
	if !ok {
		in.Result = contractx.Result{
			Outcome: contractx.OutcomeNotFound,
			Message: missMessage(name, cat),
			Profile: profileView(in.Session.Profile),
		}
		return in, nil
	}

	in.Session.Profile.SetBreed(b.Name, &b, in.Now)
	in.Dirty = true
	in.Result = contractx.Result{
		Outcome: contractx.OutcomeOK,
		Message: breedSummary(b),
		Entity:  entityView(b),
		Profile: profileView(in.Session.Profile),
	}
	return in, nil
}

func breedSummary(b catalogx.Breed) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "The %s is a %s-risk %s breed with an average lifespan of %d years.",
		b.Name, b.RiskCategory, b.Size, b.AvgLifespanYears)
	if len(b.CommonHealthIssues) > 0 {
		fmt.Fprintf(&sb, " Common health concerns include %s.", joinAnd(b.CommonHealthIssues))
	}
	return sb.String()
}

func missMessage(name string, cat *catalogx.Catalog) string {
	// Suggest breeds sharing any word of the query, e.g. "golden doodle"
	// still surfaces the Golden Retriever.
	var suggestions []string
	seen := make(map[string]struct{})
	for _, word := range strings.Fields(catalogx.Normalize(name)) {
		for _, b := range cat.Search(word, maxSuggestions) {
			if _, dup := seen[b.Name]; dup {
				continue
			}
			seen[b.Name] = struct{}{}
			suggestions = append(suggestions, b.Name)
		}
	}
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	if len(suggestions) > 0 {
		return fmt.Sprintf("I couldn't find a breed called %q. Did you mean %s?", name, joinOr(suggestions))
	}
	return fmt.Sprintf("I couldn't find a breed called %q. Could you check the spelling, or say \"Mixed Breed\" if you're not sure?", name)
}

func joinAnd(items []string) string { return joinList(items, "and") }
func joinOr(items []string) string  { return joinList(items, "or") }

func joinList(items []string, conj string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " " + conj + " " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + ", " + conj + " " + items[len(items)-1]
	}
}
