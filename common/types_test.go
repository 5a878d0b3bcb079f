package common

import (
	"encoding/json"
	"testing"
)

func TestPartyPerspectiveString(t *testing.T) {
	if PartyA.String() != "party_a" {
		t.Errorf("PartyA.String() = %s, want party_a", PartyA.String())
	}
	if PartyB.String() != "party_b" {
		t.Errorf("PartyB.String() = %s, want party_b", PartyB.String())
	}
}

func TestPartyPerspectiveOther(t *testing.T) {
	if PartyA.Other() != PartyB {
		t.Error("PartyA.Other() should be PartyB")
	}
	if PartyB.Other() != PartyA {
		t.Error("PartyB.Other() should be PartyA")
	}
}

func TestParsePartyPerspective(t *testing.T) {
	for input, want := range map[string]PartyPerspective{
		"party_a": PartyA,
		"PARTY_A": PartyA,
		"A":       PartyA,
		"party_b": PartyB,
	} {
		got, err := ParsePartyPerspective(input)
		if err != nil {
			t.Errorf("ParsePartyPerspective(%q) returned error: %v", input, err)
		}
		if got != want {
			t.Errorf("ParsePartyPerspective(%q) = %v, want %v", input, got, want)
		}
	}

	if _, err := ParsePartyPerspective("party_c"); err == nil {
		t.Error("ParsePartyPerspective(party_c) should fail")
	}
}

func TestPartyPerspectiveJSON(t *testing.T) {
	data, err := json.Marshal(PartyB)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `"party_b"` {
		t.Errorf("Marshal(PartyB) = %s, want \"party_b\"", data)
	}

	var p PartyPerspective
	if err := json.Unmarshal([]byte(`"party_a"`), &p); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if p != PartyA {
		t.Errorf("Unmarshal(\"party_a\") = %v, want PartyA", p)
	}

	if err := json.Unmarshal([]byte(`"party_x"`), &p); err == nil {
		t.Error("Unmarshal of invalid perspective should fail")
	}
}
