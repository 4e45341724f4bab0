package nodes

import (
	"errors"
	"testing"
	"time"

	contractx "github.com/pawquote/quote-agent/agent/contract"
)

func fixedNow() time.Time {
	return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
}

func TestValidateRequestTrimsAndStampsClock(t *testing.T) {
	t.Parallel()

	st, err := ValidateRequest(contractx.IntentCall{
		SessionID: "  s-1  ",
		Intent:    contractx.IntentLookupEntity,
		Lookup:    &contractx.LookupEntityArgs{Name: "Beagle"},
	}, fixedNow)
	if err != nil {
		t.Fatalf("ValidateRequest() error = %v", err)
	}
	if st.Call.SessionID != "s-1" {
		t.Errorf("session id = %q, want trimmed", st.Call.SessionID)
	}
	if !st.Now.Equal(fixedNow()) {
		t.Errorf("now = %v, want clock value", st.Now)
	}
}

func TestValidateRequestStructuralFailures(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		call contractx.IntentCall
		want error
	}{
		{
			name: "empty intent",
			call: contractx.IntentCall{SessionID: "s-1"},
			want: ErrInvalidIntent,
		},
		{
			name: "empty session for stateful intent",
			call: contractx.IntentCall{Intent: contractx.IntentRequestQuote},
			want: ErrInvalidSession,
		},
		{
			name: "unknown intent",
			call: contractx.IntentCall{SessionID: "s-1", Intent: "pet.adopt"},
			want: contractx.ErrUnknownIntent,
		},
		{
			name: "lookup without args",
			call: contractx.IntentCall{SessionID: "s-1", Intent: contractx.IntentLookupEntity},
			want: contractx.ErrMissingArgs,
		},
		{
			name: "confirm without args",
			call: contractx.IntentCall{SessionID: "s-1", Intent: contractx.IntentConfirmProfile},
			want: contractx.ErrMissingArgs,
		},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := ValidateRequest(tc.call, fixedNow)
			if !errors.Is(err, tc.want) {
				t.Fatalf("ValidateRequest() error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestValidateRequestListPlansWithoutSession(t *testing.T) {
	t.Parallel()

	st, err := ValidateRequest(contractx.IntentCall{Intent: contractx.IntentListPlans}, fixedNow)
	if err != nil {
		t.Fatalf("ValidateRequest() error = %v", err)
	}
	if st.Session != nil {
		t.Error("session pre-populated for stateless intent")
	}
}

func TestValidateRequestDefaultsQuoteArgs(t *testing.T) {
	t.Parallel()

	st, err := ValidateRequest(contractx.IntentCall{
		SessionID: "s-1",
		Intent:    contractx.IntentRequestQuote,
	}, fixedNow)
	if err != nil {
		t.Fatalf("ValidateRequest() error = %v", err)
	}
	if st.Call.Quote == nil {
		t.Fatal("quote args not defaulted")
	}
}

func TestFormatAge(t *testing.T) {
	t.Parallel()

	cases := []struct {
		age  float64
		want string
	}{
		{0.5, "6 months"},
		{0.05, "1 month"},
		{1, "1 year"},
		{3, "3 years"},
		{2.5, "2.5 years"},
	}
	for _, tc := range cases {
		if got := formatAge(tc.age); got != tc.want {
			t.Errorf("formatAge(%v) = %q, want %q", tc.age, got, tc.want)
		}
	}
}

func TestJoinList(t *testing.T) {
	t.Parallel()

	if got := joinAnd([]string{"a"}); got != "a" {
		t.Errorf("joinAnd one = %q", got)
	}
	if got := joinAnd([]string{"a", "b"}); got != "a and b" {
		t.Errorf("joinAnd two = %q", got)
	}
	if got := joinOr([]string{"a", "b", "c"}); got != "a, b, or c" {
		t.Errorf("joinOr three = %q", got)
	}
}
