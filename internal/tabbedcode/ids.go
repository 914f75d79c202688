package tabbedcode

import (
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
)

const idPrefix = "tabbed-code-"

// IDGenerator hands out component identifiers used to scope the client side
// script of one tabbed block.
type IDGenerator interface {
	NewID() string
}

// RandomIDs builds identifiers from 48 bits of a random v4 UUID. For n blocks
// in one build the collision probability is roughly n^2 / 2^49.
type RandomIDs struct{}

// NewID implements IDGenerator.
func (RandomIDs) NewID() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return idPrefix + raw[len(raw)-12:]
}

// SequenceIDs numbers blocks monotonically within one build. It is safe for
// concurrent use.
type SequenceIDs struct {
	next atomic.Uint64
}

// NewSequenceIDs returns a counter starting at 1.
func NewSequenceIDs() *SequenceIDs {
	return &SequenceIDs{}
}

// NewID implements IDGenerator.
func (s *SequenceIDs) NewID() string {
	return idPrefix + strconv.FormatUint(s.next.Add(1), 10)
}

// NewIDGenerator maps a configured strategy name to a generator. Unknown names
// fall back to random identifiers.
func NewIDGenerator(strategy string) IDGenerator {
	switch strings.ToLower(strings.TrimSpace(strategy)) {
	case "sequence":
		return NewSequenceIDs()
	default:
		return RandomIDs{}
	}
}
