package domain

import (
	"fmt"
	"strings"
)

// Tier is the coarse developer classification used for grouping and filtering.
type Tier int

const (
	TierUnknown Tier = iota
	Tier1
	Tier2
	Tier3
)

// AllTiers lists the known tiers in display order.
var AllTiers = []Tier{Tier1, Tier2, Tier3}

func (t Tier) String() string {
	switch t {
	case Tier1:
		return "Tier 1"
	case Tier2:
		return "Tier 2"
	case Tier3:
		return "Tier 3"
	default:
		return "Unknown"
	}
}

// Valid reports whether t is one of the known tiers.
func (t Tier) Valid() bool {
	return t >= Tier1 && t <= Tier3
}

// MarshalText renders the tier label ("Tier 1"); an unassigned tier is empty.
func (t Tier) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return []byte{}, nil
	}
	return []byte(t.String()), nil
}

// UnmarshalText accepts any form understood by ParseTier, or empty for unassigned.
func (t *Tier) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*t = TierUnknown
		return nil
	}
	parsed, err := ParseTier(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseTier accepts "Tier 1", "tier1", "T1" and "1" style labels.
func ParseTier(value string) (Tier, error) {
	v := strings.ToLower(strings.Join(strings.Fields(value), ""))
	v = strings.TrimPrefix(v, "tier")
	v = strings.TrimPrefix(v, "t")
	switch v {
	case "1":
		return Tier1, nil
	case "2":
		return Tier2, nil
	case "3":
		return Tier3, nil
	}
	return TierUnknown, fmt.Errorf("unknown tier %q", value)
}

// Developer is a single roster row.
type Developer struct {
	Name   string `json:"name"`
	Tier   Tier   `json:"tier"`
	Region string `json:"region"`
}

// RawItem is the narrow contract for feed entries; everything else upstream is ignored.
type RawItem struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	PubDate string `json:"pubDate"`
}

// Source tags where a launch record came from.
type Source string

const (
	SourceNews Source = "news"
	SourceHTML Source = "html"
	SourceMock Source = "mock"
	// SourceUpload marks records parsed from feed XML supplied by a user.
	SourceUpload Source = "upload"
)

// Live reports whether records from this source describe real announcements.
func (s Source) Live() bool {
	return s == SourceNews || s == SourceHTML || s == SourceUpload
}

// Placeholder values used when a title carries no recognizable detail.
const (
	UnitTypesUnknown = "TBD"
	PriceOnRequest   = "Price on Request"
	LocationGeneral  = "UAE (General)"
)

// LaunchRecord is one project announcement tagged with its developer and tier.
type LaunchRecord struct {
	ProjectName string   `json:"projectName"`
	Developer   string   `json:"developer"`
	Tier        Tier     `json:"tier"`
	Location    string   `json:"location"`
	Price       string   `json:"price"`
	UnitTypes   []string `json:"unitTypes"`
	Units       int      `json:"units"`
	Image       string   `json:"image"`
	Date        string   `json:"date"`
	SourceURL   string   `json:"sourceUrl"`
	Source      Source   `json:"source"`
}

// PlaceholderImages are stock card images attached to records that carry none.
var PlaceholderImages = []string{
	"https://images.unsplash.com/photo-1512453979798-5ea266f8880c?w=800",
	"https://images.unsplash.com/photo-1518684079-3c830dcef090?w=800",
	"https://images.unsplash.com/photo-1582672060674-bc2bd808a8b5?w=800",
	"https://images.unsplash.com/photo-1546412414-e1885259563a?w=800",
	"https://images.unsplash.com/photo-1526495124232-a04e1849168c?w=800",
}
