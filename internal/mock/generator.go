// Package mock synthesises demo launch records. Every record it produces is tagged
// domain.SourceMock and is not real launch information.
package mock

import (
	"fmt"
	"math/rand/v2"
	"time"

	"LaunchTracker/internal/domain"
)

const (
	minUnits = 100
	maxUnits = 800
)

var (
	projectSuffixes = []string{"Heights", "Residences", "Gardens", "Bay", "Towers", "Vista", "Grove", "Harbour"}

	locations = []string{
		"Downtown Dubai",
		"Dubai Marina",
		"Business Bay",
		"Palm Jumeirah",
		"Dubai Hills Estate",
		"Jumeirah Village Circle",
		"Dubai Creek Harbour",
		"Saadiyat Island",
		"Yas Island",
		"Al Marjan Island",
	}

	unitOptions = [][]string{
		{"1 BR", "2 BR", "3 BR"},
		{"Studio", "1 BR"},
		{"3 BR", "4 BR", "5 BR", "Villa"},
		{"2 BR", "3 BR", "Townhouse"},
		{"4 BR", "Penthouse"},
	}
)

// Generator produces synthetic launches from an injected random source.
type Generator struct {
	rnd *rand.Rand
	now func() time.Time
}

// NewGenerator uses rnd and now; nil values fall back to a clock-seeded source and time.Now.
func NewGenerator(rnd *rand.Rand, now func() time.Time) *Generator {
	if rnd == nil {
		seed := uint64(time.Now().UnixNano())
		rnd = rand.New(rand.NewPCG(seed, seed>>1))
	}
	if now == nil {
		now = time.Now
	}
	return &Generator{rnd: rnd, now: now}
}

// Generate flips a coin per developer and emits at most one launch for each.
func (g *Generator) Generate(developers []domain.Developer) []domain.LaunchRecord {
	today := g.now().Format("2006-01-02")

	var records []domain.LaunchRecord
	for _, dev := range developers {
		if g.rnd.IntN(2) == 0 {
			continue
		}
		records = append(records, g.launch(dev, today))
	}
	return records
}

// PerDeveloper is Generate keyed by developer name, the shape consumed by the aggregator.
func (g *Generator) PerDeveloper(developers []domain.Developer) map[string][]domain.LaunchRecord {
	out := make(map[string][]domain.LaunchRecord, len(developers))
	for _, rec := range g.Generate(developers) {
		out[rec.Developer] = append(out[rec.Developer], rec)
	}
	return out
}

func (g *Generator) launch(dev domain.Developer, today string) domain.LaunchRecord {
	units := unitOptions[g.rnd.IntN(len(unitOptions))]

	return domain.LaunchRecord{
		ProjectName: fmt.Sprintf("%s %s", dev.Name, projectSuffixes[g.rnd.IntN(len(projectSuffixes))]),
		Developer:   dev.Name,
		Tier:        dev.Tier,
		Location:    locations[g.rnd.IntN(len(locations))],
		Price:       fmt.Sprintf("AED %d.%dM", 1+g.rnd.IntN(15), g.rnd.IntN(10)),
		UnitTypes:   append([]string(nil), units...),
		Units:       minUnits + g.rnd.IntN(maxUnits-minUnits+1),
		Image:       domain.PlaceholderImages[g.rnd.IntN(len(domain.PlaceholderImages))],
		Date:        today,
		Source:      domain.SourceMock,
	}
}
