package contract

// Intent names the dispatcher operations an external agent may invoke.
type Intent string

const (
	IntentLookupEntity   Intent = "entity.lookup"
	IntentConfirmProfile Intent = "profile.confirm"
	IntentRequestQuote   Intent = "quote.request"
	IntentListPlans      Intent = "plans.list"
)

// Outcome tags every dispatcher result. Recoverable conversational outcomes
// travel here, not as Go errors, so the conversation can always continue.
type Outcome string

const (
	OutcomeOK               Outcome = "ok"
	OutcomeNotFound         Outcome = "not_found"
	OutcomeInsufficientData Outcome = "insufficient_data"
	OutcomeInvalidArgument  Outcome = "invalid_argument"
)

// IntentCall is the single typed envelope the dispatcher accepts. Exactly one
// args pointer is set for the intents that take arguments; ListPlans takes
// none.
type IntentCall struct {
	SessionID string `json:"session_id"`
	Intent    Intent `json:"intent"`

	Lookup  *LookupEntityArgs   `json:"lookup,omitempty"`
	Confirm *ConfirmProfileArgs `json:"confirm,omitempty"`
	Quote   *RequestQuoteArgs   `json:"quote,omitempty"`
}

type LookupEntityArgs struct {
	Name string `json:"name"`
}

// ConfirmProfileArgs carries a partial profile update. Nil pointers mean
// "not provided" and leave the stored value untouched.
type ConfirmProfileArgs struct {
	PetName       *string  `json:"pet_name,omitempty"`
	BreedName     *string  `json:"breed_name,omitempty"`
	AgeYears      *float64 `json:"age_years,omitempty"`
	HasConditions *bool    `json:"has_conditions,omitempty"`
}

type RequestQuoteArgs struct {
	PlanID string `json:"plan_id,omitempty"`
}

// Result is the tagged-variant reply for every intent: a machine-readable
// outcome plus payload, and a human-readable message for the end user.
type Result struct {
	Outcome Outcome `json:"outcome"`
	Message string  `json:"message"`

	// MissingFields names exactly what blocks a quote when Outcome is
	// insufficient_data ("breed", "age").
	MissingFields []string `json:"missing_fields,omitempty"`

	Entity  *EntityView  `json:"entity,omitempty"`
	Profile *ProfileView `json:"profile,omitempty"`
	Quote   *QuoteView   `json:"quote,omitempty"`
	Plans   []PlanView   `json:"plans,omitempty"`
}

// EntityView is the breed payload returned to the agent and UI.
type EntityView struct {
	Name               string   `json:"name"`
	Size               string   `json:"size"`
	RiskCategory       string   `json:"risk_category"`
	AvgLifespanYears   int      `json:"avg_lifespan_years"`
	CommonHealthIssues []string `json:"common_health_issues"`
	PremiumMultiplier  float64  `json:"premium_multiplier"`
	Temperament        []string `json:"temperament,omitempty"`
	ExerciseNeeds      string   `json:"exercise_needs,omitempty"`
	GroomingNeeds      string   `json:"grooming_needs,omitempty"`
}

type ProfileView struct {
	PetName       string   `json:"pet_name,omitempty"`
	BreedName     string   `json:"breed_name,omitempty"`
	BreedResolved bool     `json:"breed_resolved"`
	AgeYears      *float64 `json:"age_years,omitempty"`
	HasConditions *bool    `json:"has_conditions,omitempty"`
}

type QuoteView struct {
	QuoteID             string   `json:"quote_id"`
	PlanID              string   `json:"plan_id"`
	PlanName            string   `json:"plan_name"`
	MonthlyPremium      float64  `json:"monthly_premium"`
	AnnualPremium       float64  `json:"annual_premium"`
	AnnualCoverageLimit int      `json:"annual_coverage_limit"`
	Deductible          int      `json:"deductible"`
	Features            []string `json:"features"`
	IssuedAt            string   `json:"issued_at"`
	ValidUntil          string   `json:"valid_until"`
}

type PlanView struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	BaseMonthlyRate     float64  `json:"base_monthly_rate"`
	AnnualCoverageLimit int      `json:"annual_coverage_limit"`
	Deductible          int      `json:"deductible"`
	Features            []string `json:"features"`
}
