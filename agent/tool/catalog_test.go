package tool

import (
	"context"
	"errors"
	"testing"

	contractx "github.com/pawquote/quote-agent/agent/contract"
)

type fakeDispatcher struct {
	calls []contractx.IntentCall
	res   contractx.Result
	err   error
}

func (f *fakeDispatcher) Dispatch(_ context.Context, call contractx.IntentCall) (contractx.Result, error) {
	f.calls = append(f.calls, call)
	return f.res, f.err
}

func TestInfosCoverEveryIntent(t *testing.T) {
	t.Parallel()

	infos := Infos()
	if len(infos) != 4 {
		t.Fatalf("Infos() = %d tools, want 4", len(infos))
	}
	want := map[string]bool{
		ToolLookupEntity:   false,
		ToolConfirmProfile: false,
		ToolRequestQuote:   false,
		ToolListPlans:      false,
	}
	for _, info := range infos {
		if _, ok := want[info.Name]; !ok {
			t.Errorf("unexpected tool %q", info.Name)
			continue
		}
		want[info.Name] = true
		if info.Desc == "" {
			t.Errorf("tool %q has no description", info.Name)
		}
	}
	for name, seen := range want {
		if !seen {
			t.Errorf("tool %q missing from catalog", name)
		}
	}
}

func TestExecutorLookupEntity(t *testing.T) {
	t.Parallel()

	fake := &fakeDispatcher{res: contractx.Result{Outcome: contractx.OutcomeOK, Message: "ok"}}
	exec := NewExecutor(fake)

	res, err := exec(context.Background(), "s-1", ToolLookupEntity, map[string]any{"name": "Beagle"})
	if err != nil {
		t.Fatalf("exec() error = %v", err)
	}
	if res.Outcome != contractx.OutcomeOK {
		t.Fatalf("outcome = %q", res.Outcome)
	}

	if len(fake.calls) != 1 {
		t.Fatalf("dispatcher calls = %d, want 1", len(fake.calls))
	}
	call := fake.calls[0]
	if call.SessionID != "s-1" || call.Intent != contractx.IntentLookupEntity {
		t.Fatalf("call = %+v", call)
	}
	if call.Lookup == nil || call.Lookup.Name != "Beagle" {
		t.Fatalf("lookup args = %+v", call.Lookup)
	}
}

func TestExecutorConfirmProfileArgTranslation(t *testing.T) {
	t.Parallel()

	fake := &fakeDispatcher{res: contractx.Result{Outcome: contractx.OutcomeOK, Message: "ok"}}
	exec := NewExecutor(fake)

	// JSON-decoded args arrive as float64/bool/string.
	_, err := exec(context.Background(), "s-1", ToolConfirmProfile, map[string]any{
		"pet_name":       "Rex",
		"breed_name":     "French Bulldog",
		"age_years":      float64(8),
		"has_conditions": true,
	})
	if err != nil {
		t.Fatalf("exec() error = %v", err)
	}

	call := fake.calls[0]
	if call.Confirm == nil {
		t.Fatal("confirm args not set")
	}
	if call.Confirm.PetName == nil || *call.Confirm.PetName != "Rex" {
		t.Errorf("pet_name = %v", call.Confirm.PetName)
	}
	if call.Confirm.AgeYears == nil || *call.Confirm.AgeYears != 8 {
		t.Errorf("age_years = %v", call.Confirm.AgeYears)
	}
	if call.Confirm.HasConditions == nil || !*call.Confirm.HasConditions {
		t.Errorf("has_conditions = %v", call.Confirm.HasConditions)
	}
}

func TestExecutorConfirmProfileOmittedFieldsStayNil(t *testing.T) {
	t.Parallel()

	fake := &fakeDispatcher{res: contractx.Result{Outcome: contractx.OutcomeOK, Message: "ok"}}
	exec := NewExecutor(fake)

	if _, err := exec(context.Background(), "s-1", ToolConfirmProfile, map[string]any{
		"age_years": 3,
	}); err != nil {
		t.Fatalf("exec() error = %v", err)
	}

	call := fake.calls[0]
	if call.Confirm.PetName != nil || call.Confirm.BreedName != nil || call.Confirm.HasConditions != nil {
		t.Fatalf("confirm args = %+v, want only age set", call.Confirm)
	}
	if call.Confirm.AgeYears == nil || *call.Confirm.AgeYears != 3 {
		t.Fatalf("age_years = %v, want int tolerated", call.Confirm.AgeYears)
	}
}

func TestExecutorRequestQuoteDefaultsPlan(t *testing.T) {
	t.Parallel()

	fake := &fakeDispatcher{res: contractx.Result{Outcome: contractx.OutcomeOK, Message: "ok"}}
	exec := NewExecutor(fake)

	if _, err := exec(context.Background(), "s-1", ToolRequestQuote, map[string]any{}); err != nil {
		t.Fatalf("exec() error = %v", err)
	}
	if fake.calls[0].Quote == nil || fake.calls[0].Quote.PlanID != "" {
		t.Fatalf("quote args = %+v", fake.calls[0].Quote)
	}
}

func TestExecutorRejectsBadArgs(t *testing.T) {
	t.Parallel()

	fake := &fakeDispatcher{}
	exec := NewExecutor(fake)
	ctx := context.Background()

	if _, err := exec(ctx, "s-1", ToolLookupEntity, map[string]any{}); !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("missing name error = %v, want ErrValidation", err)
	}
	if _, err := exec(ctx, "s-1", ToolConfirmProfile, map[string]any{"age_years": "eight"}); !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("string age error = %v, want ErrValidation", err)
	}
	if _, err := exec(ctx, "s-1", "breed.delete", nil); !errors.Is(err, contractx.ErrUnknownIntent) {
		t.Fatalf("unknown tool error = %v, want ErrUnknownIntent", err)
	}
	if len(fake.calls) != 0 {
		t.Fatalf("dispatcher reached on invalid input: %+v", fake.calls)
	}
}
