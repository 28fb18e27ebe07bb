package mock

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"LaunchTracker/internal/domain"
	"LaunchTracker/internal/extract"
)

func roster(n int) []domain.Developer {
	devs := make([]domain.Developer, 0, n)
	for i := 0; i < n; i++ {
		devs = append(devs, domain.Developer{
			Name: fmt.Sprintf("Dev%02d", i),
			Tier: domain.AllTiers[i%len(domain.AllTiers)],
		})
	}
	return devs
}

func fixedNow() time.Time {
	return time.Date(2026, time.October, 14, 9, 0, 0, 0, time.UTC)
}

func TestGenerateRecordsAreValid(t *testing.T) {
	t.Parallel()

	devs := roster(60)
	tiers := map[string]domain.Tier{}
	for _, d := range devs {
		tiers[d.Name] = d.Tier
	}

	records := NewGenerator(rand.New(rand.NewPCG(7, 7)), fixedNow).Generate(devs)
	if len(records) == 0 || len(records) == len(devs) {
		t.Fatalf("coin flip produced an implausible count: %d of %d", len(records), len(devs))
	}

	for _, rec := range records {
		want, ok := tiers[rec.Developer]
		if !ok {
			t.Fatalf("record for unknown developer %s", rec.Developer)
		}
		if rec.Tier != want {
			t.Fatalf("record tier %v differs from developer tier %v", rec.Tier, want)
		}
		if rec.Source != domain.SourceMock || rec.Source.Live() {
			t.Fatalf("mock record must be tagged as mock: %s", rec.Source)
		}
		if rec.Units < 100 || rec.Units > 800 {
			t.Fatalf("units out of range: %d", rec.Units)
		}
		if rec.Date != "2026-10-14" {
			t.Fatalf("unexpected date: %s", rec.Date)
		}
		if len(rec.UnitTypes) == 0 {
			t.Fatalf("unit types must not be empty")
		}
		if !strings.HasPrefix(rec.ProjectName, rec.Developer+" ") {
			t.Fatalf("unexpected project name: %s", rec.ProjectName)
		}
		if extract.Price(rec.Price) != rec.Price {
			t.Fatalf("mock price should be extractable verbatim: %s", rec.Price)
		}
	}
}

func TestGenerateSeedReproducible(t *testing.T) {
	t.Parallel()

	devs := roster(20)
	a := NewGenerator(rand.New(rand.NewPCG(1, 1)), fixedNow).Generate(devs)
	b := NewGenerator(rand.New(rand.NewPCG(1, 1)), fixedNow).Generate(devs)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("same seed should reproduce output (-a +b):\n%s", diff)
	}
}

func TestPerDeveloper(t *testing.T) {
	t.Parallel()

	devs := roster(30)
	per := NewGenerator(rand.New(rand.NewPCG(5, 9)), fixedNow).PerDeveloper(devs)
	for name, recs := range per {
		if len(recs) != 1 || recs[0].Developer != name {
			t.Fatalf("unexpected bucket for %s: %+v", name, recs)
		}
	}
}

func TestGenerateEmptyRoster(t *testing.T) {
	t.Parallel()

	if got := NewGenerator(nil, nil).Generate(nil); len(got) != 0 {
		t.Fatalf("expected no records, got %d", len(got))
	}
}
