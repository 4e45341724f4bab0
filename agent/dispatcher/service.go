// Package dispatcher is the single typed entry point of the quoting engine.
// It compiles the intent pipeline once at construction and serializes calls
// per session so concurrent messages from the same conversation cannot race
// the session state.
package dispatcher

import (
	"context"
	"errors"
	"hash/fnv"
	"sync"
	"time"

	"github.com/cloudwego/eino/compose"
	"github.com/rs/zerolog/log"

	catalogx "github.com/pawquote/quote-agent/agent/catalog"
	contractx "github.com/pawquote/quote-agent/agent/contract"
	nodex "github.com/pawquote/quote-agent/agent/nodes"
	quotex "github.com/pawquote/quote-agent/agent/quote"
	statex "github.com/pawquote/quote-agent/agent/state"
)

var (
	ErrInvalidSession = nodex.ErrInvalidSession
	ErrInvalidIntent  = nodex.ErrInvalidIntent
)

// sessionLockStripes bounds the lock table: sessions hash onto a fixed
// set of mutexes, so memory stays constant no matter how many distinct
// session ids a long-lived process sees.
const sessionLockStripes = 64

type Dispatcher struct {
	store   statex.Store
	catalog *catalogx.Catalog
	issuer  *quotex.Issuer

	graphRunner compose.Runnable[contractx.IntentCall, contractx.Result]

	sessionLocks [sessionLockStripes]sync.Mutex

	now func() time.Time
}

type Option func(*Dispatcher)

// WithClock overrides the dispatcher clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) {
		if now != nil {
			d.now = now
		}
	}
}

func New(store statex.Store, catalog *catalogx.Catalog, issuer *quotex.Issuer, opts ...Option) (*Dispatcher, error) {
	if store == nil {
		return nil, errors.New("state store is required")
	}
	if catalog == nil {
		return nil, errors.New("catalog is required")
	}
	if issuer == nil {
		return nil, errors.New("quote issuer is required")
	}

	d := &Dispatcher{
		store:   store,
		catalog: catalog,
		issuer:  issuer,
		now:     time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}

	graphRunner, err := d.compileDispatchGraph(context.Background())
	if err != nil {
		return nil, err
	}
	d.graphRunner = graphRunner

	return d, nil
}

// Dispatch routes one intent call through the pipeline. Recoverable
// conversational outcomes come back inside the Result; a non-nil error means
// an infrastructure or caller integration failure.
func (d *Dispatcher) Dispatch(ctx context.Context, call contractx.IntentCall) (contractx.Result, error) {
	unlock := d.lockSession(call.SessionID)
	defer unlock()

	res, err := d.graphRunner.Invoke(ctx, call)
	if err != nil {
		log.Error().Err(err).
			Str("session_id", call.SessionID).
			Str("intent", string(call.Intent)).
			Msg("dispatch failed")
		return contractx.Result{}, err
	}

	log.Debug().
		Str("session_id", call.SessionID).
		Str("intent", string(call.Intent)).
		Str("outcome", string(res.Outcome)).
		Msg("dispatched")
	return res, nil
}

// LookupEntity resolves a breed name and folds a hit into the session profile.
func (d *Dispatcher) LookupEntity(ctx context.Context, sessionID, name string) (contractx.Result, error) {
	return d.Dispatch(ctx, contractx.IntentCall{
		SessionID: sessionID,
		Intent:    contractx.IntentLookupEntity,
		Lookup:    &contractx.LookupEntityArgs{Name: name},
	})
}

// ConfirmProfile merges a partial profile update into the session.
func (d *Dispatcher) ConfirmProfile(ctx context.Context, sessionID string, args contractx.ConfirmProfileArgs) (contractx.Result, error) {
	return d.Dispatch(ctx, contractx.IntentCall{
		SessionID: sessionID,
		Intent:    contractx.IntentConfirmProfile,
		Confirm:   &args,
	})
}

// RequestQuote prices the session profile against a plan tier.
func (d *Dispatcher) RequestQuote(ctx context.Context, sessionID, planID string) (contractx.Result, error) {
	return d.Dispatch(ctx, contractx.IntentCall{
		SessionID: sessionID,
		Intent:    contractx.IntentRequestQuote,
		Quote:     &contractx.RequestQuoteArgs{PlanID: planID},
	})
}

// ListPlans enumerates the plan tiers.
func (d *Dispatcher) ListPlans(ctx context.Context) (contractx.Result, error) {
	return d.Dispatch(ctx, contractx.IntentCall{Intent: contractx.IntentListPlans})
}

// lockSession serializes calls that share a session id. Distinct sessions
// may collide on a stripe and briefly wait on each other; correctness only
// needs same-session calls to never interleave.
func (d *Dispatcher) lockSession(sessionID string) func() {
	if sessionID == "" {
		return func() {}
	}
	h := fnv.New32a()
	h.Write([]byte(sessionID))
	m := &d.sessionLocks[h.Sum32()%sessionLockStripes]
	m.Lock()
	return m.Unlock
}
