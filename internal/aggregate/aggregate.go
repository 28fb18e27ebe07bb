// Package aggregate tags launches with their developer and tier and filters them by tier.
package aggregate

import (
	"strings"

	"LaunchTracker/internal/domain"
)

// Launches maps developer names to their untagged launches.
type Launches map[string][]domain.LaunchRecord

// Aggregate stamps each developer's launches with its name and tier, in developer
// order and then list order. A developer without a name or a valid tier makes the
// whole table unusable and yields a SchemaError with no records, as does a name
// listed twice (compared case-insensitively).
func Aggregate(developers []domain.Developer, perDeveloper Launches) ([]domain.LaunchRecord, error) {
	total := 0
	seen := make(map[string]struct{}, len(developers))
	for i, dev := range developers {
		if dev.Name == "" {
			return nil, &domain.SchemaError{Row: i + 1, Reason: "developer name is empty"}
		}
		if !dev.Tier.Valid() {
			return nil, &domain.SchemaError{Row: i + 1, Reason: "developer " + dev.Name + " has no valid tier"}
		}
		key := NameKey(dev.Name)
		if _, dup := seen[key]; dup {
			return nil, &domain.SchemaError{Row: i + 1, Reason: "duplicate developer " + dev.Name}
		}
		seen[key] = struct{}{}
		total += len(perDeveloper[dev.Name])
	}

	records := make([]domain.LaunchRecord, 0, total)
	for _, dev := range developers {
		for _, launch := range perDeveloper[dev.Name] {
			launch.Developer = dev.Name
			launch.Tier = dev.Tier
			launch.UnitTypes = cloneUnits(launch.UnitTypes)
			records = append(records, launch)
		}
	}
	return records, nil
}

// NameKey normalises a developer name for identity comparisons.
func NameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// FilterDevelopers keeps developers whose tier is selected, preserving order.
func FilterDevelopers(developers []domain.Developer, selected TierSet) []domain.Developer {
	out := make([]domain.Developer, 0, len(developers))
	for _, dev := range developers {
		if selected.Has(dev.Tier) {
			out = append(out, dev)
		}
	}
	return out
}

// TierSet is a set of selected tiers.
type TierSet map[domain.Tier]struct{}

// NewTierSet builds a set from tiers.
func NewTierSet(tiers ...domain.Tier) TierSet {
	set := make(TierSet, len(tiers))
	for _, t := range tiers {
		set[t] = struct{}{}
	}
	return set
}

// ParseTierSet parses labels such as "Tier 1"; unknown labels are returned as an error.
func ParseTierSet(labels []string) (TierSet, error) {
	set := make(TierSet, len(labels))
	for _, label := range labels {
		t, err := domain.ParseTier(label)
		if err != nil {
			return nil, err
		}
		set[t] = struct{}{}
	}
	return set, nil
}

// Has reports whether t is selected.
func (s TierSet) Has(t domain.Tier) bool {
	_, ok := s[t]
	return ok
}

// Sorted returns the selected tiers in display order.
func (s TierSet) Sorted() []domain.Tier {
	var out []domain.Tier
	for _, t := range domain.AllTiers {
		if s.Has(t) {
			out = append(out, t)
		}
	}
	return out
}

// FilterByTier keeps records whose tier is selected, preserving order.
func FilterByTier(records []domain.LaunchRecord, selected TierSet) []domain.LaunchRecord {
	out := make([]domain.LaunchRecord, 0, len(records))
	if len(selected) == 0 {
		return out
	}
	for _, rec := range records {
		if selected.Has(rec.Tier) {
			out = append(out, rec)
		}
	}
	return out
}

// GroupByTier buckets records per tier, preserving order inside each bucket.
func GroupByTier(records []domain.LaunchRecord) map[domain.Tier][]domain.LaunchRecord {
	groups := make(map[domain.Tier][]domain.LaunchRecord, len(domain.AllTiers))
	for _, rec := range records {
		groups[rec.Tier] = append(groups[rec.Tier], rec)
	}
	return groups
}

// CountByTier returns the number of records per tier.
func CountByTier(records []domain.LaunchRecord) map[domain.Tier]int {
	counts := make(map[domain.Tier]int, len(domain.AllTiers))
	for _, rec := range records {
		counts[rec.Tier]++
	}
	return counts
}

func cloneUnits(units []string) []string {
	if len(units) == 0 {
		return []string{domain.UnitTypesUnknown}
	}
	return append([]string(nil), units...)
}
