// Package catalog holds the read-only reference data the quoting engine runs
// against: insurable dog breeds with their risk profiles, and the four plan
// tiers. The catalog is loaded once at startup and is safe for concurrent
// reads; nothing here mutates after Load returns.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	contractx "github.com/pawquote/quote-agent/agent/contract"
)

var (
	//go:embed data/breeds.json
	breedsRaw []byte

	//go:embed data/plans.json
	plansRaw []byte
)

type RiskCategory string

const (
	RiskLow    RiskCategory = "low"
	RiskMedium RiskCategory = "medium"
	RiskHigh   RiskCategory = "high"
)

// Breed is an immutable catalog entry describing an insurable breed.
type Breed struct {
	Name               string       `json:"name"`
	Size               string       `json:"size"`
	RiskCategory       RiskCategory `json:"risk_category"`
	AvgLifespanYears   int          `json:"avg_lifespan_years"`
	CommonHealthIssues []string     `json:"common_health_issues"`
	PremiumMultiplier  float64      `json:"premium_multiplier"`
	Temperament        []string     `json:"temperament,omitempty"`
	ExerciseNeeds      string       `json:"exercise_needs,omitempty"`
	GroomingNeeds      string       `json:"grooming_needs,omitempty"`
}

type PlanID string

const (
	PlanBasic         PlanID = "basic"
	PlanStandard      PlanID = "standard"
	PlanPremium       PlanID = "premium"
	PlanComprehensive PlanID = "comprehensive"
)

// Plan is an immutable plan tier. Tiers are strictly ordered by base rate,
// and each tier's feature list is a superset of the tier below it.
type Plan struct {
	ID                  PlanID   `json:"id"`
	Name                string   `json:"name"`
	BaseMonthlyRate     float64  `json:"base_monthly_rate"`
	AnnualCoverageLimit int      `json:"annual_coverage_limit"`
	Deductible          int      `json:"deductible"`
	Features            []string `json:"features"`
}

// Catalog indexes breeds by normalized name and keeps insertion order for
// deterministic substring tie-breaks.
type Catalog struct {
	breeds  []Breed
	byName  map[string]int
	plans   []Plan
	planIdx map[PlanID]int
}

// Load parses the embedded datasets and validates the plan tier invariants.
// A Load failure is fatal configuration: callers should abort startup.
func Load() (*Catalog, error) {
	var breeds []Breed
	if err := json.Unmarshal(breedsRaw, &breeds); err != nil {
		return nil, fmt.Errorf("%w: parse breeds: %v", contractx.ErrCatalogLoad, err)
	}
	if len(breeds) == 0 {
		return nil, fmt.Errorf("%w: breed dataset is empty", contractx.ErrCatalogLoad)
	}

	var plans []Plan
	if err := json.Unmarshal(plansRaw, &plans); err != nil {
		return nil, fmt.Errorf("%w: parse plans: %v", contractx.ErrCatalogLoad, err)
	}
	if err := validatePlans(plans); err != nil {
		return nil, err
	}

	c := &Catalog{
		breeds:  breeds,
		byName:  make(map[string]int, len(breeds)),
		plans:   plans,
		planIdx: make(map[PlanID]int, len(plans)),
	}
	for i, b := range breeds {
		key := Normalize(b.Name)
		if key == "" {
			return nil, fmt.Errorf("%w: breed %d has empty name", contractx.ErrCatalogLoad, i)
		}
		if _, dup := c.byName[key]; dup {
			return nil, fmt.Errorf("%w: duplicate breed name %q", contractx.ErrCatalogLoad, b.Name)
		}
		if b.PremiumMultiplier <= 0 {
			return nil, fmt.Errorf("%w: breed %q has non-positive multiplier", contractx.ErrCatalogLoad, b.Name)
		}
		c.byName[key] = i
	}
	for i, p := range plans {
		c.planIdx[p.ID] = i
	}
	return c, nil
}

func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

func validatePlans(plans []Plan) error {
	if len(plans) != 4 {
		return fmt.Errorf("%w: expected 4 plan tiers, got %d", contractx.ErrCatalogLoad, len(plans))
	}
	for i := 1; i < len(plans); i++ {
		lower, higher := plans[i-1], plans[i]
		if higher.BaseMonthlyRate <= lower.BaseMonthlyRate {
			return fmt.Errorf("%w: plan %q base rate must exceed %q", contractx.ErrCatalogLoad, higher.ID, lower.ID)
		}
		have := make(map[string]struct{}, len(higher.Features))
		for _, f := range higher.Features {
			have[f] = struct{}{}
		}
		for _, f := range lower.Features {
			if _, ok := have[f]; !ok {
				return fmt.Errorf("%w: plan %q is missing feature %q of plan %q", contractx.ErrCatalogLoad, higher.ID, f, lower.ID)
			}
		}
	}
	return nil
}

// Normalize lowercases and collapses internal whitespace so that
// "  french  BULLDOG " and "French Bulldog" index identically.
func Normalize(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// FindBreed resolves a user-supplied breed name. Exact normalized match wins;
// otherwise the first breed in catalog order whose name contains the query, or
// is contained by it, is returned. A miss is a normal outcome, not an error.
func (c *Catalog) FindBreed(name string) (Breed, bool) {
	query := Normalize(name)
	if query == "" {
		return Breed{}, false
	}
	if i, ok := c.byName[query]; ok {
		return c.breeds[i], true
	}
	for _, b := range c.breeds {
		candidate := Normalize(b.Name)
		if strings.Contains(candidate, query) || strings.Contains(query, candidate) {
			return b, true
		}
	}
	return Breed{}, false
}

// Search returns up to limit breeds whose names contain the query, in catalog
// order. Used to suggest near misses after a failed lookup.
func (c *Catalog) Search(query string, limit int) []Breed {
	q := Normalize(query)
	if q == "" || limit <= 0 {
		return nil
	}
	var out []Breed
	for _, b := range c.breeds {
		if strings.Contains(Normalize(b.Name), q) {
			out = append(out, b)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

// Breeds returns all breeds in insertion order.
func (c *Catalog) Breeds() []Breed {
	out := make([]Breed, len(c.breeds))
	copy(out, c.breeds)
	return out
}

// Plan looks up a tier by id.
func (c *Catalog) Plan(id PlanID) (Plan, bool) {
	i, ok := c.planIdx[id]
	if !ok {
		return Plan{}, false
	}
	return c.plans[i], true
}

// Plans returns the four tiers ascending by base monthly rate.
func (c *Catalog) Plans() []Plan {
	out := make([]Plan, len(c.plans))
	copy(out, c.plans)
	return out
}
