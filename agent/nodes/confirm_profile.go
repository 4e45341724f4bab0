package nodes

import (
	"fmt"
	"strings"

	catalogx "github.com/pawquote/quote-agent/agent/catalog"
	contractx "github.com/pawquote/quote-agent/agent/contract"
	statex "github.com/pawquote/quote-agent/agent/state"
)

// ConfirmProfile merges the provided profile fields into the session. The
// merge is all-or-nothing: an invalid field rejects the whole call so the
// stored profile never holds half of a contradictory update.
func ConfirmProfile(in *GraphState, cat *catalogx.Catalog) (*GraphState, error) {
	if in == nil || in.Session == nil {
		return nil, fmt.Errorf("%w: graph session is nil", contractx.ErrValidation)
	}

	args := in.Call.Confirm
	if args.PetName == nil && args.BreedName == nil && args.AgeYears == nil && args.HasConditions == nil {
		in.Result = contractx.Result{
			Outcome: contractx.OutcomeInvalidArgument,
			Message: "I didn't catch any details there. You can tell me your dog's name, breed, age, or whether they have any pre-existing conditions.",
			Profile: profileView(in.Session.Profile),
		}
		return in, nil
	}
	if args.AgeYears != nil && *args.AgeYears < 0 {
		in.Result = contractx.Result{
			Outcome: contractx.OutcomeInvalidArgument,
			Message: "A negative age doesn't work here. How old is your dog in years?",
			Profile: profileView(in.Session.Profile),
		}
		return in, nil
	}

	profile := &in.Session.Profile
	profile.Apply(statex.ProfilePatch{
		PetName:       args.PetName,
		AgeYears:      args.AgeYears,
		HasConditions: args.HasConditions,
	}, in.Now)

	var unresolved string
	if args.BreedName != nil {
		raw := strings.TrimSpace(*args.BreedName)
		if b, ok := cat.FindBreed(raw); ok {
			profile.SetBreed(b.Name, &b, in.Now)
		} else {
			// Keep what the user said so we can echo it back, but quote at
			// the baseline multiplier until a catalog breed is confirmed.
			profile.SetBreed(raw, nil, in.Now)
			unresolved = raw
		}
	}

	in.Dirty = true
	in.Result = contractx.Result{
		Outcome: contractx.OutcomeOK,
		Message: confirmMessage(*profile, unresolved),
		Profile: profileView(*profile),
	}
	return in, nil
}

func confirmMessage(sp statex.SubjectProfile, unresolved string) string {
	subject := "your dog"
	if sp.PetName != "" {
		subject = sp.PetName
	}

	var parts []string
	if sp.BreedName != "" {
		parts = append(parts, "a "+sp.BreedName)
	}
	if sp.AgeYears != nil {
		parts = append(parts, fmt.Sprintf("%s old", formatAge(*sp.AgeYears)))
	}
	if sp.HasConditions != nil {
		if *sp.HasConditions {
			parts = append(parts, "with pre-existing conditions")
		} else {
			parts = append(parts, "with no pre-existing conditions")
		}
	}

	var sb strings.Builder
	if len(parts) == 0 {
		fmt.Fprintf(&sb, "Got it, I've noted that down for %s.", subject)
	} else {
		fmt.Fprintf(&sb, "Got it: %s is %s.", subject, joinList(parts, "and"))
	}
	if unresolved != "" {
		fmt.Fprintf(&sb, " I don't have %q in my breed list, so I'll quote at the standard rate for now.", unresolved)
	}
	return sb.String()
}

func formatAge(age float64) string {
	if age < 1 {
		months := int(age*12 + 0.5)
		if months <= 1 {
			return "1 month"
		}
		return fmt.Sprintf("%d months", months)
	}
	if age == float64(int(age)) {
		if int(age) == 1 {
			return "1 year"
		}
		return fmt.Sprintf("%d years", int(age))
	}
	return fmt.Sprintf("%.1f years", age)
}
