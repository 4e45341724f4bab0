package nodes

import (
	"context"
	"fmt"

	contractx "github.com/pawquote/quote-agent/agent/contract"
	statex "github.com/pawquote/quote-agent/agent/state"
)

// ValidateAndSaveState writes the session back only when an executor marked
// it dirty. Read-only intents never touch the store on the way out.
func ValidateAndSaveState(ctx context.Context, in *GraphState, store statex.Store) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}
	if !in.Dirty {
		return in, nil
	}
	if in.Session == nil {
		return nil, fmt.Errorf("%w: dirty graph has no session", contractx.ErrValidation)
	}

	in.Session.Touch(in.Now)
	if err := in.Session.Validate(); err != nil {
		return nil, fmt.Errorf("state validation failed: %w", err)
	}
	if err := store.Save(ctx, in.Session); err != nil {
		return nil, err
	}
	return in, nil
}
