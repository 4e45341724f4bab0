package nodes

import (
	"context"
	"errors"
	"fmt"

	contractx "github.com/pawquote/quote-agent/agent/contract"
	statex "github.com/pawquote/quote-agent/agent/state"
)

func LoadOrCreateState(ctx context.Context, in *GraphState, store statex.Store) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	// Listing plans reads no session state at all.
	if in.Call.Intent == contractx.IntentListPlans {
		return in, nil
	}

	st, err := store.Load(ctx, in.Call.SessionID)
	if err == nil {
		in.Session = st
		return in, nil
	}
	if !errors.Is(err, statex.ErrStateNotFound) {
		return nil, err
	}

	in.Session = statex.NewSessionState(in.Call.SessionID, in.Now)
	return in, nil
}
