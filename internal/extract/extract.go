// Package extract pulls unit types, price and location out of free-text launch titles.
package extract

import (
	"regexp"
	"strings"

	"LaunchTracker/internal/domain"
)

var (
	unitExpr  = regexp.MustCompile(`(?i)\d+\s?(?:BR|Bedroom|Bed)|Penthouse|Villa|Townhouse`)
	priceExpr = regexp.MustCompile(`(?i)AED\s?\d[\d,]*(?:\.\d+)?[MK]?`)
)

// Districts is the ordered list of recognised locations. Earlier entries win when
// several names occur in the same text, so more specific names come first.
var Districts = []string{
	"Downtown Dubai",
	"Dubai Marina",
	"Business Bay",
	"Palm Jumeirah",
	"Jumeirah Village Circle",
	"Jumeirah Lake Towers",
	"Dubai Hills Estate",
	"Dubai Hills",
	"Dubai Creek Harbour",
	"Mohammed Bin Rashid City",
	"Arabian Ranches",
	"Dubai South",
	"Damac Hills",
	"Meydan",
	"Al Reem Island",
	"Saadiyat Island",
	"Yas Island",
	"Al Marjan Island",
	"Abu Dhabi",
	"Sharjah",
	"Ras Al Khaimah",
	"Ajman",
	"Dubai",
}

// Details holds the structured fields found in a title.
type Details struct {
	UnitTypes []string
	Price     string
	Location  string
}

// Extract never fails; absent fields fall back to the domain placeholders.
func Extract(text string) Details {
	return Details{
		UnitTypes: UnitTypes(text),
		Price:     Price(text),
		Location:  Location(text),
	}
}

// UnitTypes returns the distinct unit matches in order of first appearance.
func UnitTypes(text string) []string {
	matches := unitExpr.FindAllString(text, -1)
	if len(matches) == 0 {
		return []string{domain.UnitTypesUnknown}
	}

	seen := make(map[string]struct{}, len(matches))
	units := make([]string, 0, len(matches))
	for _, m := range matches {
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		units = append(units, m)
	}
	return units
}

// Price returns the first AED amount verbatim.
func Price(text string) string {
	if m := priceExpr.FindString(text); m != "" {
		return m
	}
	return domain.PriceOnRequest
}

// Location returns the first district from Districts mentioned in text.
func Location(text string) string {
	lower := strings.ToLower(text)
	for _, district := range Districts {
		if strings.Contains(lower, strings.ToLower(district)) {
			return district
		}
	}
	return domain.LocationGeneral
}
