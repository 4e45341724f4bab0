// Package nodes holds the graph steps the dispatcher pipeline is compiled
// from. Each step is a plain function over *GraphState so it can be unit
// tested without compiling a graph.
package nodes

import (
	"errors"
	"fmt"
	"strings"
	"time"

	contractx "github.com/pawquote/quote-agent/agent/contract"
	statex "github.com/pawquote/quote-agent/agent/state"
)

var (
	ErrInvalidSession = errors.New("session id is empty")
	ErrInvalidIntent  = errors.New("intent is empty")
)

// GraphState is the mutable value threaded through one dispatch invocation.
type GraphState struct {
	Call contractx.IntentCall
	Now  time.Time

	Session *statex.SessionState
	Result  contractx.Result

	// Dirty marks that Session changed and must be written back.
	Dirty bool
}

// ValidateRequest checks the structural shape of the call before any state
// is touched. Structural problems are caller integration bugs and surface as
// errors; user-facing problems (typos, negative ages) are outcomes decided
// later by the intent executors.
func ValidateRequest(in contractx.IntentCall, nowFn func() time.Time) (*GraphState, error) {
	in.SessionID = strings.TrimSpace(in.SessionID)
	in.Intent = contractx.Intent(strings.TrimSpace(string(in.Intent)))

	if in.Intent == "" {
		return nil, ErrInvalidIntent
	}
	// Listing plans reads no session state, so it is the one intent that may
	// arrive without a session id.
	if in.SessionID == "" && in.Intent != contractx.IntentListPlans {
		return nil, ErrInvalidSession
	}

	switch in.Intent {
	case contractx.IntentLookupEntity:
		if in.Lookup == nil {
			return nil, fmt.Errorf("%w: lookup args", contractx.ErrMissingArgs)
		}
	case contractx.IntentConfirmProfile:
		if in.Confirm == nil {
			return nil, fmt.Errorf("%w: confirm args", contractx.ErrMissingArgs)
		}
	case contractx.IntentRequestQuote:
		if in.Quote == nil {
			in.Quote = &contractx.RequestQuoteArgs{}
		}
	case contractx.IntentListPlans:
	default:
		return nil, fmt.Errorf("%w: %q", contractx.ErrUnknownIntent, in.Intent)
	}

	return &GraphState{
		Call: in,
		Now:  nowFn().UTC(),
	}, nil
}
