package types

import (
	"errors"
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator hands out cookie identifiers. An identifier returned by a
// generator is never returned again by the same generator.
type IDGenerator interface {
	NextID() string
}

// Identifier schemes accepted by NewIDGenerator.
const (
	IDSchemeSequence = "sequence"
	IDSchemeUUID     = "uuid"
)

// ErrUnknownIDScheme is returned by NewIDGenerator for an unrecognized scheme.
var ErrUnknownIDScheme = errors.New("unknown id scheme")

// NewIDGenerator returns a fresh generator for the named scheme.
func NewIDGenerator(scheme string) (IDGenerator, error) {
	switch scheme {
	case IDSchemeSequence, "":
		return NewSequence(), nil
	case IDSchemeUUID:
		return UUIDGenerator{}, nil
	default:
		return nil, ErrUnknownIDScheme
	}
}

// Sequence is a monotonic counter producing "1", "2", "3", ...
// It is safe for concurrent use.
type Sequence struct {
	last atomic.Uint64
}

// NewSequence returns a Sequence whose first identifier is "1".
func NewSequence() *Sequence {
	return &Sequence{}
}

// NextID increments the counter and returns its new value.
func (s *Sequence) NextID() string {
	return strconv.FormatUint(s.last.Add(1), 10)
}

// UUIDGenerator produces UUID v7 identifiers. It holds no state.
type UUIDGenerator struct{}

// NextID returns a new UUID v7 string. If the v7 source fails it falls back
// to a random v4 UUID.
func (UUIDGenerator) NextID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
