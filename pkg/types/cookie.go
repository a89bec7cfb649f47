package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// CookieType names one of the fixed cookie categories a jar accepts.
type CookieType string

// Cookie types. The set is closed; adding a type is a code change.
const (
	CookieChocolateChip CookieType = "Chocolate Chip"
	CookieSugar         CookieType = "Sugar"
	CookieOatmealRaisin CookieType = "Oatmeal Raisin"
	CookiePeanutButter  CookieType = "Peanut Butter"
	CookieSnickerdoodle CookieType = "Snickerdoodle"
)

// cookieTypes lists the recognized cookie types in declaration order.
var cookieTypes = []CookieType{
	CookieChocolateChip,
	CookieSugar,
	CookieOatmealRaisin,
	CookiePeanutButter,
	CookieSnickerdoodle,
}

// validCookieTypes is the set of recognized cookie type values.
var validCookieTypes = map[CookieType]bool{
	CookieChocolateChip: true,
	CookieSugar:         true,
	CookieOatmealRaisin: true,
	CookiePeanutButter:  true,
	CookieSnickerdoodle: true,
}

// CookieTypes returns the recognized cookie types in declaration order.
// The returned slice is a copy.
func CookieTypes() []CookieType {
	out := make([]CookieType, len(cookieTypes))
	copy(out, cookieTypes)
	return out
}

// Valid reports whether t is one of the recognized cookie types.
func (t CookieType) Valid() bool {
	return validCookieTypes[t]
}

func (t CookieType) String() string {
	return string(t)
}

// ParseCookieType resolves a user-supplied name to a CookieType. Matching is
// case-insensitive and treats '-' and '_' as spaces, so "chocolate-chip"
// resolves to CookieChocolateChip. Returns ErrInvalidType on no match.
func ParseCookieType(s string) (CookieType, error) {
	norm := normalizeTypeName(s)
	for _, t := range cookieTypes {
		if normalizeTypeName(string(t)) == norm {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidType, s)
}

func normalizeTypeName(s string) string {
	s = strings.NewReplacer("-", " ", "_", " ").Replace(s)
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// Cookie is an immutable typed token held by a Jar. The zero value is not a
// valid cookie; construct cookies with NewCookie.
type Cookie struct {
	id  string
	typ CookieType
}

// NewCookie creates a cookie of the given type with an identifier drawn from
// gen. Returns ErrInvalidType if t is not a recognized type; in that case gen
// is not consulted and no identifier is consumed.
func NewCookie(gen IDGenerator, t CookieType) (Cookie, error) {
	if !t.Valid() {
		return Cookie{}, fmt.Errorf("%w: %q", ErrInvalidType, string(t))
	}
	return Cookie{id: gen.NextID(), typ: t}, nil
}

// ID returns the cookie's identifier.
func (c Cookie) ID() string { return c.id }

// Type returns the cookie's type.
func (c Cookie) Type() CookieType { return c.typ }

func (c Cookie) String() string {
	return fmt.Sprintf("%s#%s", c.typ, c.id)
}

// MarshalJSON renders the cookie as {"id": ..., "type": ...}.
func (c Cookie) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID   string     `json:"id"`
		Type CookieType `json:"type"`
	}{c.id, c.typ})
}
