package types

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultCapacity is the capacity of a jar created with NewDefaultJar.
const DefaultCapacity = 12

// DefaultMarker is the glyph used by Jar.String, one per held cookie.
const DefaultMarker = "🍪"

// Jar holds up to Capacity cookies in deposit order and keeps a per-type
// count alongside. A Jar is owned by a single caller and is not safe for
// concurrent use.
type Jar struct {
	capacity int
	items    []Cookie
	counts   map[CookieType]int
}

// NewJar creates an empty jar. Returns ErrInvalidCapacity if capacity is
// negative.
func NewJar(capacity int) (*Jar, error) {
	if capacity < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}
	counts := make(map[CookieType]int, len(cookieTypes))
	for _, t := range cookieTypes {
		counts[t] = 0
	}
	return &Jar{capacity: capacity, counts: counts}, nil
}

// NewDefaultJar creates an empty jar with DefaultCapacity.
func NewDefaultJar() *Jar {
	j, _ := NewJar(DefaultCapacity)
	return j
}

// Capacity returns the maximum number of cookies the jar accepts.
func (j *Jar) Capacity() int { return j.capacity }

// SetCapacity changes the jar's capacity. Returns ErrInvalidCapacity if
// capacity is negative, leaving the previous capacity in place.
//
// Shrinking below the current size is allowed. Cookies already held stay in
// the jar; deposits fail with ErrCapacityExceeded until withdrawals bring
// the size below the new capacity.
func (j *Jar) SetCapacity(capacity int) error {
	if capacity < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}
	j.capacity = capacity
	return nil
}

// Size returns the number of cookies currently held.
func (j *Jar) Size() int { return len(j.items) }

// Free returns how many more cookies fit, never less than zero.
func (j *Jar) Free() int {
	if free := j.capacity - len(j.items); free > 0 {
		return free
	}
	return 0
}

// Deposit appends c to the jar. Returns ErrCapacityExceeded if the jar is
// full and ErrInvalidType if c was not built by NewCookie. The jar is
// unchanged on error.
func (j *Jar) Deposit(c Cookie) error {
	if !c.typ.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidType, string(c.typ))
	}
	if len(j.items)+1 > j.capacity {
		return fmt.Errorf("%w: capacity %d, holding %d", ErrCapacityExceeded, j.capacity, len(j.items))
	}
	j.items = append(j.items, c)
	j.counts[c.typ]++
	return nil
}

// Withdraw removes and returns the most recently deposited cookie.
// Returns ErrEmptyJar if the jar holds nothing.
func (j *Jar) Withdraw() (Cookie, error) {
	n := len(j.items)
	if n == 0 {
		return Cookie{}, ErrEmptyJar
	}
	return j.removeAt(n - 1), nil
}

// WithdrawType removes and returns the earliest deposited cookie of type t.
// Returns ErrEmptyJar if the jar holds nothing, ErrInvalidType if t is not
// a recognized type, and ErrTypeUnavailable if no cookie of type t is held.
func (j *Jar) WithdrawType(t CookieType) (Cookie, error) {
	if len(j.items) == 0 {
		return Cookie{}, ErrEmptyJar
	}
	if !t.Valid() {
		return Cookie{}, fmt.Errorf("%w: %q", ErrInvalidType, string(t))
	}
	if j.counts[t] == 0 {
		return Cookie{}, fmt.Errorf("%w: %s", ErrTypeUnavailable, t)
	}
	for i, c := range j.items {
		if c.typ == t {
			return j.removeAt(i), nil
		}
	}
	// counts[t] > 0 guarantees a match above.
	return Cookie{}, fmt.Errorf("%w: count for %s is %d but no cookie found", ErrInvariant, t, j.counts[t])
}

// removeAt drops the cookie at index i and returns it.
func (j *Jar) removeAt(i int) Cookie {
	c := j.items[i]
	copy(j.items[i:], j.items[i+1:])
	j.items[len(j.items)-1] = Cookie{}
	j.items = j.items[:len(j.items)-1]
	j.counts[c.typ]--
	return c
}

// Counts returns the number of held cookies per type. Every recognized type
// is present, including those with a zero count. The map is a copy.
func (j *Jar) Counts() map[CookieType]int {
	out := make(map[CookieType]int, len(j.counts))
	for t, n := range j.counts {
		out[t] = n
	}
	return out
}

// Cookies returns the held cookies in deposit order. The slice is a copy.
func (j *Jar) Cookies() []Cookie {
	out := make([]Cookie, len(j.items))
	copy(out, j.items)
	return out
}

// Check recounts the held cookies and returns an error wrapping
// ErrInvariant if the per-type counts disagree with the items, or if an item
// carries an unrecognized type. A size above capacity is tolerated because
// SetCapacity may shrink a populated jar.
func (j *Jar) Check() error {
	recount := make(map[CookieType]int, len(cookieTypes))
	for i, c := range j.items {
		if !c.typ.Valid() {
			return fmt.Errorf("%w: item %d has type %q", ErrInvariant, i, string(c.typ))
		}
		recount[c.typ]++
	}
	sum := 0
	for _, t := range cookieTypes {
		if recount[t] != j.counts[t] {
			return fmt.Errorf("%w: %s counted %d, holding %d", ErrInvariant, t, j.counts[t], recount[t])
		}
		sum += j.counts[t]
	}
	if sum != len(j.items) {
		return fmt.Errorf("%w: counts sum to %d, holding %d", ErrInvariant, sum, len(j.items))
	}
	return nil
}

// String renders one DefaultMarker per held cookie.
func (j *Jar) String() string {
	return Render(len(j.items), DefaultMarker)
}

// Render returns marker repeated n times. A negative n renders as empty.
func Render(n int, marker string) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(marker, n)
}

// ParseCapacity parses a capacity given as text. Returns ErrInvalidCapacity
// if s is not an integer or is negative.
func ParseCapacity(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCapacity, s)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidCapacity, n)
	}
	return n, nil
}
