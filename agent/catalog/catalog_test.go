package catalog

import (
	"strings"
	"testing"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	c, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := len(c.Breeds()); got == 0 {
		t.Fatal("Load() produced no breeds")
	}
	if got := len(c.Plans()); got != 4 {
		t.Fatalf("Load() produced %d plans, want 4", got)
	}
}

func TestPlansAscendingWithSupersetFeatures(t *testing.T) {
	t.Parallel()

	c := MustLoad()
	plans := c.Plans()
	for i := 1; i < len(plans); i++ {
		lower, higher := plans[i-1], plans[i]
		if higher.BaseMonthlyRate <= lower.BaseMonthlyRate {
			t.Errorf("plan %q rate %.2f not above %q rate %.2f",
				higher.ID, higher.BaseMonthlyRate, lower.ID, lower.BaseMonthlyRate)
		}
		have := make(map[string]struct{}, len(higher.Features))
		for _, f := range higher.Features {
			have[f] = struct{}{}
		}
		for _, f := range lower.Features {
			if _, ok := have[f]; !ok {
				t.Errorf("plan %q is missing feature %q of plan %q", higher.ID, f, lower.ID)
			}
		}
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"French Bulldog", "french bulldog"},
		{"  french  BULLDOG ", "french bulldog"},
		{"\tGolden\n Retriever", "golden retriever"},
		{"   ", ""},
	}
	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFindBreedExactMatch(t *testing.T) {
	t.Parallel()

	c := MustLoad()
	b, ok := c.FindBreed("  labrador   RETRIEVER ")
	if !ok {
		t.Fatal("FindBreed() miss, want hit")
	}
	if b.Name != "Labrador Retriever" {
		t.Fatalf("FindBreed() = %q, want Labrador Retriever", b.Name)
	}
	if b.PremiumMultiplier != 1.0 {
		t.Fatalf("multiplier = %v, want 1.0", b.PremiumMultiplier)
	}
}

func TestFindBreedQueryContainedInName(t *testing.T) {
	t.Parallel()

	c := MustLoad()
	b, ok := c.FindBreed("retriever")
	if !ok {
		t.Fatal("FindBreed(retriever) miss, want hit")
	}
	// Two breeds contain "retriever"; catalog order decides.
	if b.Name != firstContaining(c, "retriever") {
		t.Fatalf("FindBreed(retriever) = %q, want first catalog match %q", b.Name, firstContaining(c, "retriever"))
	}
}

func TestFindBreedNameContainedInQuery(t *testing.T) {
	t.Parallel()

	c := MustLoad()
	b, ok := c.FindBreed("miniature poodle mix")
	if !ok {
		t.Fatal("FindBreed(miniature poodle mix) miss, want hit")
	}
	if b.Name != "Poodle" {
		t.Fatalf("FindBreed(miniature poodle mix) = %q, want Poodle", b.Name)
	}
}

func TestFindBreedMiss(t *testing.T) {
	t.Parallel()

	c := MustLoad()
	for _, query := range []string{"Unicorn Hound", "", "   "} {
		if _, ok := c.FindBreed(query); ok {
			t.Errorf("FindBreed(%q) hit, want miss", query)
		}
	}
}

func TestSearch(t *testing.T) {
	t.Parallel()

	c := MustLoad()
	got := c.Search("bulldog", 5)
	if len(got) < 2 {
		t.Fatalf("Search(bulldog) returned %d breeds, want at least 2", len(got))
	}
	for _, b := range got {
		if !strings.Contains(Normalize(b.Name), "bulldog") {
			t.Errorf("Search(bulldog) returned %q", b.Name)
		}
	}

	if got := c.Search("bulldog", 1); len(got) != 1 {
		t.Fatalf("Search limit 1 returned %d breeds", len(got))
	}
	if got := c.Search("", 5); got != nil {
		t.Fatalf("Search(empty) = %v, want nil", got)
	}
}

func TestPlanLookup(t *testing.T) {
	t.Parallel()

	c := MustLoad()
	p, ok := c.Plan(PlanStandard)
	if !ok {
		t.Fatal("Plan(standard) miss")
	}
	if p.BaseMonthlyRate != 35 {
		t.Fatalf("standard rate = %v, want 35", p.BaseMonthlyRate)
	}
	if _, ok := c.Plan("platinum"); ok {
		t.Fatal("Plan(platinum) hit, want miss")
	}
}

func TestBreedsReturnsCopy(t *testing.T) {
	t.Parallel()

	c := MustLoad()
	breeds := c.Breeds()
	original := breeds[0].Name
	breeds[0].Name = "Mutated"

	again, _ := c.FindBreed(original)
	if again.Name != original {
		t.Fatal("mutating Breeds() result leaked into the catalog")
	}
}

func firstContaining(c *Catalog, q string) string {
	for _, b := range c.Breeds() {
		if strings.Contains(Normalize(b.Name), q) {
			return b.Name
		}
	}
	return ""
}
