package ids

import (
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

const (
	SchemeUUID     = "uuid"
	SchemeSequence = "sequence"
)

func NewID() string {
	return uuid.NewString()
}

// Sequence hands out "1", "2", ... and is safe for concurrent use.
type Sequence struct {
	n atomic.Uint64
}

func (s *Sequence) Next() string {
	return strconv.FormatUint(s.n.Add(1), 10)
}

func ForScheme(scheme string) (func() string, error) {
	switch scheme {
	case "", SchemeUUID:
		return NewID, nil
	case SchemeSequence:
		return new(Sequence).Next, nil
	default:
		return nil, fmt.Errorf("unknown id scheme %q", scheme)
	}
}
