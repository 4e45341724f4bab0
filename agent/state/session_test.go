package state

import (
	"testing"
	"time"

	catalogx "github.com/pawquote/quote-agent/agent/catalog"
)

func strPtr(s string) *string   { return &s }
func f64Ptr(v float64) *float64 { return &v }
func boolPtr(v bool) *bool      { return &v }

func TestProfileApplyMergesOnlyProvidedFields(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	sp := SubjectProfile{PetName: "Rex"}
	sp.Apply(ProfilePatch{AgeYears: f64Ptr(3)}, now)

	if sp.PetName != "Rex" {
		t.Errorf("PetName = %q, want Rex untouched", sp.PetName)
	}
	if sp.AgeYears == nil || *sp.AgeYears != 3 {
		t.Errorf("AgeYears = %v, want 3", sp.AgeYears)
	}
	if sp.HasConditions != nil {
		t.Errorf("HasConditions = %v, want still unset", *sp.HasConditions)
	}
}

func TestProfileApplyIsIdempotent(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	patch := ProfilePatch{
		PetName:       strPtr("  Bella "),
		AgeYears:      f64Ptr(2),
		HasConditions: boolPtr(true),
	}

	var once, twice SubjectProfile
	once.Apply(patch, now)
	twice.Apply(patch, now)
	twice.Apply(patch, now)

	if once.PetName != "Bella" || twice.PetName != "Bella" {
		t.Errorf("PetName = %q / %q, want trimmed Bella", once.PetName, twice.PetName)
	}
	if *once.AgeYears != *twice.AgeYears || *once.HasConditions != *twice.HasConditions {
		t.Error("applying the same patch twice diverged from applying it once")
	}
}

func TestSetBreedResolved(t *testing.T) {
	t.Parallel()

	c := catalogx.MustLoad()
	b, ok := c.FindBreed("French Bulldog")
	if !ok {
		t.Fatal("French Bulldog missing from catalog")
	}

	now := time.Now()
	var sp SubjectProfile
	sp.SetBreed("frenchie input", &b, now)

	if sp.BreedName != "French Bulldog" {
		t.Errorf("BreedName = %q, want canonical French Bulldog", sp.BreedName)
	}
	if sp.Breed == nil || sp.Breed.PremiumMultiplier != 1.4 {
		t.Errorf("Breed = %+v, want resolved entry", sp.Breed)
	}
	if got := sp.RiskMultiplier(); got != 1.4 {
		t.Errorf("RiskMultiplier() = %v, want 1.4", got)
	}
}

func TestSetBreedUnresolvedKeepsRawNameAndClearsStaleEntry(t *testing.T) {
	t.Parallel()

	c := catalogx.MustLoad()
	b, _ := c.FindBreed("Beagle")

	now := time.Now()
	var sp SubjectProfile
	sp.SetBreed("Beagle", &b, now)
	sp.SetBreed(" Some Rare Breed ", nil, now)

	if sp.BreedName != "Some Rare Breed" {
		t.Errorf("BreedName = %q, want raw name kept", sp.BreedName)
	}
	if sp.Breed != nil {
		t.Errorf("Breed = %+v, want stale resolution cleared", sp.Breed)
	}
	if !sp.HasEntity() {
		t.Error("HasEntity() = false, raw breed name should count")
	}
	if got := sp.RiskMultiplier(); got != 1.0 {
		t.Errorf("RiskMultiplier() = %v, want 1.0 baseline", got)
	}
}

func TestSnapshotIsDeep(t *testing.T) {
	t.Parallel()

	c := catalogx.MustLoad()
	b, _ := c.FindBreed("Beagle")
	now := time.Now()

	var sp SubjectProfile
	sp.SetBreed("Beagle", &b, now)
	sp.Apply(ProfilePatch{AgeYears: f64Ptr(4), HasConditions: boolPtr(false)}, now)

	snap := sp.Snapshot()
	*sp.AgeYears = 9
	*sp.HasConditions = true
	sp.Breed.PremiumMultiplier = 99

	if *snap.AgeYears != 4 {
		t.Errorf("snapshot age = %v, want 4", *snap.AgeYears)
	}
	if *snap.HasConditions {
		t.Error("snapshot conditions flag mutated through the live profile")
	}
	if snap.Breed.PremiumMultiplier == 99 {
		t.Error("snapshot breed mutated through the live profile")
	}
}

func TestSessionStateQuotes(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	st := NewSessionState("s-1", now)
	if st.Version != 1 {
		t.Fatalf("Version = %d, want 1", st.Version)
	}

	st.AppendQuote(IssuedQuote{
		QuoteID:        "QTE-1-AAAAAA",
		MonthlyPremium: 35,
		AnnualPremium:  420,
		IssuedAt:       now,
		ValidUntil:     now.Add(30 * 24 * time.Hour),
	})
	st.AppendQuote(IssuedQuote{
		QuoteID:        "QTE-2-BBBBBB",
		MonthlyPremium: 55,
		AnnualPremium:  660,
		IssuedAt:       now,
		ValidUntil:     now.Add(30 * 24 * time.Hour),
	})

	if err := st.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	q, ok := st.FindQuote("QTE-2-BBBBBB")
	if !ok || q.MonthlyPremium != 55 {
		t.Fatalf("FindQuote() = %+v, %v", q, ok)
	}
	if _, ok := st.FindQuote("QTE-missing"); ok {
		t.Fatal("FindQuote(missing) = true, want false")
	}
}

func TestSessionStateValidateRejectsBadQuotes(t *testing.T) {
	t.Parallel()

	now := time.Now()
	st := NewSessionState("s-1", now)
	st.AppendQuote(IssuedQuote{
		QuoteID:        "QTE-1-AAAAAA",
		MonthlyPremium: 0,
		AnnualPremium:  420,
		IssuedAt:       now,
		ValidUntil:     now.Add(time.Hour),
	})
	if err := st.Validate(); err == nil {
		t.Fatal("Validate() = nil, want error for non-positive premium")
	}

	empty := &SessionState{}
	if err := empty.Validate(); err == nil {
		t.Fatal("Validate() = nil, want error for empty session id")
	}
}
