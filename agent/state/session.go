package state

import (
	"errors"
	"fmt"
	"strings"
	"time"

	catalogx "github.com/pawquote/quote-agent/agent/catalog"
)

var (
	ErrInvalidSession  = errors.New("session id is empty")
	ErrNilSessionState = errors.New("session state is nil")
)

// SubjectProfile is the evolving pet/customer profile for one conversation.
// Optional fields are pointers so "not yet provided" is distinct from a zero
// value. BreedName keeps the raw string the user said even when the catalog
// could not resolve it, so the UI can echo it back.
type SubjectProfile struct {
	PetName       string          `json:"pet_name,omitempty"`
	BreedName     string          `json:"breed_name,omitempty"`
	Breed         *catalogx.Breed `json:"breed,omitempty"`
	AgeYears      *float64        `json:"age_years,omitempty"`
	HasConditions *bool           `json:"has_conditions,omitempty"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProfilePatch is a partial update. Nil fields are "not provided" and leave
// the stored value untouched; a non-nil pointer to a zero value is an
// explicit set.
type ProfilePatch struct {
	PetName       *string
	AgeYears      *float64
	HasConditions *bool
}

// IsZero reports whether the patch carries no fields at all.
func (p ProfilePatch) IsZero() bool {
	return p.PetName == nil && p.AgeYears == nil && p.HasConditions == nil
}

// Apply merges the patch field-by-field. Merging the same patch twice yields
// the same profile as merging it once.
func (sp *SubjectProfile) Apply(patch ProfilePatch, now time.Time) {
	if patch.PetName != nil {
		sp.PetName = strings.TrimSpace(*patch.PetName)
	}
	if patch.AgeYears != nil {
		age := *patch.AgeYears
		sp.AgeYears = &age
	}
	if patch.HasConditions != nil {
		v := *patch.HasConditions
		sp.HasConditions = &v
	}
	sp.UpdatedAt = now.UTC()
}

// SetBreed overwrites the breed reference as one unit: the raw name the user
// said plus the resolved catalog entry, or nil when the catalog had no match.
// Passing resolved nil deliberately clears a stale resolution when the user
// switches to an unknown breed.
func (sp *SubjectProfile) SetBreed(rawName string, resolved *catalogx.Breed, now time.Time) {
	sp.BreedName = strings.TrimSpace(rawName)
	if resolved != nil {
		b := *resolved
		sp.Breed = &b
		sp.BreedName = b.Name
	} else {
		sp.Breed = nil
	}
	sp.UpdatedAt = now.UTC()
}

// HasEntity reports whether the profile carries any breed reference, resolved
// or raw. An unresolved breed still quotes at the baseline multiplier.
func (sp *SubjectProfile) HasEntity() bool {
	return sp.Breed != nil || strings.TrimSpace(sp.BreedName) != ""
}

// RiskMultiplier is the resolved breed's multiplier, or the 1.0 baseline when
// the breed is unresolved.
func (sp *SubjectProfile) RiskMultiplier() float64 {
	if sp.Breed != nil {
		return sp.Breed.PremiumMultiplier
	}
	return 1.0
}

// Snapshot returns a deep value copy, safe to freeze inside a quote while the
// live profile keeps mutating.
func (sp *SubjectProfile) Snapshot() SubjectProfile {
	out := *sp
	if sp.Breed != nil {
		b := *sp.Breed
		out.Breed = &b
	}
	if sp.AgeYears != nil {
		v := *sp.AgeYears
		out.AgeYears = &v
	}
	if sp.HasConditions != nil {
		v := *sp.HasConditions
		out.HasConditions = &v
	}
	return out
}

// IssuedQuote is the session-local record of a quote produced during the
// conversation. Write-once: revisions are always new records.
type IssuedQuote struct {
	QuoteID        string         `json:"quote_id"`
	Profile        SubjectProfile `json:"profile"`
	Plan           catalogx.Plan  `json:"plan"`
	MonthlyPremium float64        `json:"monthly_premium"`
	AnnualPremium  float64        `json:"annual_premium"`
	IssuedAt       time.Time      `json:"issued_at"`
	ValidUntil     time.Time      `json:"valid_until"`
}

// SessionState is the source of truth for one conversation session.
type SessionState struct {
	SessionID string         `json:"session_id"`
	Version   int            `json:"version"`
	Profile   SubjectProfile `json:"profile"`
	Quotes    []IssuedQuote  `json:"quotes,omitempty"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func NewSessionState(sessionID string, now time.Time) *SessionState {
	return &SessionState{
		SessionID: sessionID,
		Version:   1,
		UpdatedAt: now.UTC(),
	}
}

func (s *SessionState) Touch(now time.Time) {
	s.UpdatedAt = now.UTC()
}

// AppendQuote records an issued quote on the session.
func (s *SessionState) AppendQuote(q IssuedQuote) {
	s.Quotes = append(s.Quotes, q)
}

// FindQuote returns a previously issued quote by id.
func (s *SessionState) FindQuote(quoteID string) (IssuedQuote, bool) {
	for _, q := range s.Quotes {
		if q.QuoteID == quoteID {
			return q, true
		}
	}
	return IssuedQuote{}, false
}

func (s *SessionState) Validate() error {
	if strings.TrimSpace(s.SessionID) == "" {
		return ErrInvalidSession
	}
	for _, q := range s.Quotes {
		if q.MonthlyPremium <= 0 || q.AnnualPremium <= 0 {
			return fmt.Errorf("quote %s has non-positive premium", q.QuoteID)
		}
		if q.ValidUntil.Before(q.IssuedAt) {
			return fmt.Errorf("quote %s validity window is inverted", q.QuoteID)
		}
	}
	return nil
}
