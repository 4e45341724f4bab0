// Package quote turns a calculator result into an immutable quote record
// with a unique identifier and a fixed validity window.
package quote

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	catalogx "github.com/pawquote/quote-agent/agent/catalog"
	premiumx "github.com/pawquote/quote-agent/agent/premium"
	statex "github.com/pawquote/quote-agent/agent/state"
)

const defaultValidityWindow = 30 * 24 * time.Hour

type Config struct {
	ValidityWindow time.Duration `envconfig:"VALIDITY_WINDOW" split_words:"true" default:"720h"`
}

// Issuer mints quote records. It does not re-validate business rules; the
// calculator already did. Quotes are write-once: a revised quote is always a
// fresh record.
type Issuer struct {
	window time.Duration
	now    func() time.Time
	newID  func(time.Time) string
}

type IssuerOption func(*Issuer)

// WithClock overrides the issuer clock, for tests.
func WithClock(now func() time.Time) IssuerOption {
	return func(i *Issuer) {
		if now != nil {
			i.now = now
		}
	}
}

func NewIssuer(cfg Config, opts ...IssuerOption) *Issuer {
	window := cfg.ValidityWindow
	if window <= 0 {
		window = defaultValidityWindow
	}
	i := &Issuer{
		window: window,
		now:    time.Now,
		newID:  newQuoteID,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(i)
		}
	}
	return i
}

// Issue packages a computed premium into an immutable quote. The profile is
// snapshotted by value so later session merges cannot reach back into it.
func (i *Issuer) Issue(profile *statex.SubjectProfile, plan catalogx.Plan, p premiumx.Premium) statex.IssuedQuote {
	now := i.now().UTC()
	return statex.IssuedQuote{
		QuoteID:        i.newID(now),
		Profile:        profile.Snapshot(),
		Plan:           plan,
		MonthlyPremium: p.Monthly,
		AnnualPremium:  p.Annual,
		IssuedAt:       now,
		ValidUntil:     now.Add(i.window),
	}
}

// Quote ids look like QTE-1756700000000-A1B2C3: sortable by issue time with
// a random suffix for uniqueness.
func newQuoteID(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return "QTE-" + strconv.FormatInt(now.UnixMilli(), 10) + "-" + suffix
}
