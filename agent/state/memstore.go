package state

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rs/zerolog/log"
)

const (
	defaultMaxSessions = 1024
	defaultSessionTTL  = 24 * time.Hour
)

type MemoryStoreConfig struct {
	MaxSessions int           `envconfig:"MAX_SESSIONS" split_words:"true" default:"1024"`
	TTL         time.Duration `envconfig:"TTL" split_words:"true" default:"24h"`
}

// MemoryStore keeps session state in a bounded expirable LRU for
// single-process deployments. Abandoned sessions age out via TTL; the size
// bound evicts the least recently used session under pressure.
type MemoryStore struct {
	cache *expirable.LRU[string, []byte]
}

func NewMemoryStore(cfg MemoryStoreConfig) *MemoryStore {
	maxSessions := cfg.MaxSessions
	if maxSessions <= 0 {
		maxSessions = defaultMaxSessions
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}

	onEvict := func(sessionID string, _ []byte) {
		log.Debug().Str("session_id", sessionID).Msg("session state evicted")
	}
	return &MemoryStore{
		cache: expirable.NewLRU[string, []byte](maxSessions, onEvict, ttl),
	}
}

func (m *MemoryStore) Load(_ context.Context, sessionID string) (*SessionState, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, ErrInvalidSession
	}
	raw, ok := m.cache.Get(sessionID)
	if !ok {
		return nil, ErrStateNotFound
	}
	var st SessionState
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, fmt.Errorf("unmarshal session state: %w", err)
	}
	return &st, nil
}

func (m *MemoryStore) Save(_ context.Context, st *SessionState) error {
	if st == nil {
		return ErrNilSessionState
	}
	if strings.TrimSpace(st.SessionID) == "" {
		return ErrInvalidSession
	}
	if st.Version <= 0 {
		st.Version = 1
	}
	// Stored as a serialized snapshot so later mutations of the caller's
	// state cannot alias into the store.
	raw, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("marshal session state: %w", err)
	}
	m.cache.Add(st.SessionID, raw)
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return ErrInvalidSession
	}
	m.cache.Remove(sessionID)
	return nil
}

// Len reports the number of live sessions, for diagnostics.
func (m *MemoryStore) Len() int {
	return m.cache.Len()
}
