package common

import (
	"encoding/json"
	"fmt"
)

type PartyPerspective int

const (
	PartyA PartyPerspective = iota
	PartyB
)

func (p PartyPerspective) String() string {
	switch p {
	case PartyA:
		return "party_a"
	case PartyB:
		return "party_b"
	default:
		return "unknown"
	}
}

// Other returns the opposing party.
func (p PartyPerspective) Other() PartyPerspective {
	if p == PartyA {
		return PartyB
	}
	return PartyA
}

// ParsePartyPerspective parses the wire form ("party_a" / "party_b").
func ParsePartyPerspective(s string) (PartyPerspective, error) {
	switch s {
	case "party_a", "PARTY_A", "A":
		return PartyA, nil
	case "party_b", "PARTY_B", "B":
		return PartyB, nil
	default:
		return PartyA, fmt.Errorf("invalid party perspective: %q", s)
	}
}

func (p PartyPerspective) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *PartyPerspective) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParsePartyPerspective(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
