package domain

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseTier(t *testing.T) {
	t.Parallel()

	cases := map[string]Tier{
		"Tier 1":  Tier1,
		"tier2":   Tier2,
		" TIER 3": Tier3,
		"T1":      Tier1,
		"2":       Tier2,
	}
	for in, want := range cases {
		got, err := ParseTier(in)
		if err != nil {
			t.Fatalf("ParseTier(%q) returned error: %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseTier(%q) = %v, want %v", in, got, want)
		}
	}

	for _, bad := range []string{"", "Tier 4", "gold", "tier"} {
		if _, err := ParseTier(bad); err == nil {
			t.Fatalf("ParseTier(%q) should fail", bad)
		}
	}
}

func TestTierJSON(t *testing.T) {
	t.Parallel()

	raw, err := json.Marshal(LaunchRecord{ProjectName: "x", Tier: Tier2, UnitTypes: []string{"TBD"}})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded LaunchRecord
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Tier != Tier2 {
		t.Fatalf("unexpected tier after round trip: %v", decoded.Tier)
	}

	raw, err = json.Marshal(LaunchRecord{})
	if err != nil {
		t.Fatalf("unassigned tier should marshal: %v", err)
	}
	if err := json.Unmarshal(raw, &decoded); err != nil || decoded.Tier != TierUnknown {
		t.Fatalf("unexpected unassigned tier: %v, %v", decoded.Tier, err)
	}
}

func TestErrorsUnwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("status 500")
	var err error = &FetchError{Developer: "DevA", Op: "news", Err: cause}
	if !errors.Is(err, cause) {
		t.Fatalf("FetchError should unwrap to its cause")
	}
	err = &ParseError{Source: "feed xml", Err: cause}
	if !errors.Is(err, cause) {
		t.Fatalf("ParseError should unwrap to its cause")
	}

	schema := &SchemaError{Missing: []string{"Tier", "Main Region"}}
	if schema.Error() != "schema: missing required columns Tier, Main Region" {
		t.Fatalf("unexpected message: %s", schema.Error())
	}
	if (&SchemaError{Row: 3, Reason: "bad tier"}).Error() != "schema: row 3: bad tier" {
		t.Fatalf("unexpected row message")
	}
}

func TestSourceLive(t *testing.T) {
	t.Parallel()

	if SourceMock.Live() {
		t.Fatalf("mock data must not be live")
	}
	if !SourceNews.Live() || !SourceHTML.Live() || !SourceUpload.Live() {
		t.Fatalf("fetched data must be live")
	}
}
