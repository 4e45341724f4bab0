package contract

import "context"

// Dispatcher is the engine's entire external contract: one typed call in,
// one tagged result plus user-facing message out.
type Dispatcher interface {
	Dispatch(ctx context.Context, call IntentCall) (Result, error)
}
