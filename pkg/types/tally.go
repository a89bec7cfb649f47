package types

import "fmt"

// Tally is the count-only jar: it tracks how many cookies it holds without
// distinguishing them, and moves them in bulk.
type Tally struct {
	capacity int
	cookies  int
}

// NewTally creates an empty tally. Returns ErrInvalidCapacity if capacity is
// negative.
func NewTally(capacity int) (*Tally, error) {
	t := &Tally{}
	if err := t.SetCapacity(capacity); err != nil {
		return nil, err
	}
	return t, nil
}

// Capacity returns the maximum number of cookies the tally accepts.
func (t *Tally) Capacity() int { return t.capacity }

// SetCapacity changes the capacity. Returns ErrInvalidCapacity if capacity
// is negative.
func (t *Tally) SetCapacity(capacity int) error {
	if capacity < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}
	t.capacity = capacity
	return nil
}

// Size returns the number of cookies held.
func (t *Tally) Size() int { return t.cookies }

// Deposit adds n cookies. Returns ErrNegativeQuantity for n < 0 and
// ErrCapacityExceeded if the result would exceed capacity.
func (t *Tally) Deposit(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: deposit %d", ErrNegativeQuantity, n)
	}
	if t.cookies+n > t.capacity {
		return fmt.Errorf("%w: capacity %d, holding %d, adding %d", ErrCapacityExceeded, t.capacity, t.cookies, n)
	}
	t.cookies += n
	return nil
}

// Withdraw removes n cookies. Returns ErrNegativeQuantity for n < 0 and
// ErrEmptyJar if fewer than n cookies are held.
func (t *Tally) Withdraw(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: withdraw %d", ErrNegativeQuantity, n)
	}
	if t.cookies < n {
		return fmt.Errorf("%w: holding %d, removing %d", ErrEmptyJar, t.cookies, n)
	}
	t.cookies -= n
	return nil
}

func (t *Tally) String() string {
	return Render(t.cookies, DefaultMarker)
}
