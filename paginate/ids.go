package paginate

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"

	"repage/common"
)

// IDSource produces opaque split-group identifiers. Injected at construction
// so the engine stays deterministic under test - identifiers are never
// derived from wall-clock time.
type IDSource interface {
	Next() string
}

type seqSource struct {
	prefix string
	n      atomic.Int64
}

// NewSequentialSource returns a deterministic monotonic id source
// ("prefix-1", "prefix-2", ...).
func NewSequentialSource(prefix string) IDSource {
	return &seqSource{prefix: prefix}
}

func (s *seqSource) Next() string {
	return s.prefix + "-" + strconv.FormatInt(s.n.Add(1), 10)
}

type uuidSource struct{}

// NewUUIDSource returns an id source generating random UUIDs, for documents
// whose fragments may travel between editing sessions.
func NewUUIDSource() IDSource {
	return uuidSource{}
}

func (uuidSource) Next() string {
	return uuid.NewString()
}

// SourceFor maps the configured mode to an id source.
func SourceFor(mode common.SplitIDMode) IDSource {
	if mode == common.SplitIDModeUuid {
		return NewUUIDSource()
	}
	return NewSequentialSource("split")
}
