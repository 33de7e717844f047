package domain

import (
	"encoding/json"
	"slices"
	"strings"
	"time"
)

type Invitation struct {
	ID        string
	FirstName string
	Email     string
	Token     string   // Set once on creation, never user supplied
	Groups    GroupSet // Group codes to join on acceptance
	InvitedBy string   // Account ID of the inviter, empty if none was present
	CreatedAt time.Time
	UpdatedAt time.Time // Expiry anchor
}

// State is the observable state of an invitation. Expired is derived at
// read time and never stored; a consumed invitation no longer exists.
type State string

const (
	StatePending State = "pending"
	StateExpired State = "expired"
)

// GroupSet is a sorted, de-duplicated set of group codes. It is stored as a
// JSON array of strings.
type GroupSet []string

// NewGroupSet trims, drops blanks, de-duplicates and sorts codes.
func NewGroupSet(codes ...string) GroupSet {
	out := make(GroupSet, 0, len(codes))
	for _, c := range codes {
		c = strings.TrimSpace(c)
		if c == "" || slices.Contains(out, c) {
			continue
		}
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}

func (g GroupSet) Empty() bool { return len(g) == 0 }

// MarshalJSON always encodes an array, never null.
func (g GroupSet) MarshalJSON() ([]byte, error) {
	if g == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(g))
}

func (g *GroupSet) UnmarshalJSON(b []byte) error {
	var codes []string
	if err := json.Unmarshal(b, &codes); err != nil {
		return err
	}
	*g = NewGroupSet(codes...)
	return nil
}

// ParseGroupSet decodes the stored representation. Empty or "null" input
// yields an empty set.
func ParseGroupSet(raw string) (GroupSet, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return GroupSet{}, nil
	}
	var g GroupSet
	if err := json.Unmarshal([]byte(raw), &g); err != nil {
		return nil, err
	}
	return g, nil
}

// Encode returns the stored representation.
func (g GroupSet) Encode() string {
	b, _ := g.MarshalJSON()
	return string(b)
}
