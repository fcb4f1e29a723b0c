package gateway

import (
	"sort"
	"strings"
	"sync"
	"time"

	trackererrors "github.com/DeBrosOfficial/assettracker/pkg/errors"
	"github.com/google/uuid"
)

// operation is a write that has been accepted and not yet answered.
type operation struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	StartedAt time.Time `json:"started_at"`
}

// inflightRegistry refuses a second submission of the same logical action while the first
// is still awaiting confirmation. Different actions proceed concurrently.
type inflightRegistry struct {
	mu  sync.Mutex
	ops map[string]operation
}

func newInflightRegistry() *inflightRegistry {
	return &inflightRegistry{ops: make(map[string]operation)}
}

// begin registers action and returns its operation and a release func.
func (f *inflightRegistry) begin(action string) (operation, func(), error) {
	key := strings.ToLower(action)

	f.mu.Lock()
	defer f.mu.Unlock()

	if running, ok := f.ops[key]; ok {
		err := trackererrors.NewConflictError("transaction", "action", running.Action)
		return operation{}, nil, err
	}
	op := operation{ID: uuid.NewString(), Action: action, StartedAt: time.Now()}
	f.ops[key] = op

	var once sync.Once
	release := func() {
		once.Do(func() {
			f.mu.Lock()
			delete(f.ops, key)
			f.mu.Unlock()
		})
	}
	return op, release, nil
}

func (f *inflightRegistry) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.ops)
}

// list returns the running operations, oldest first.
func (f *inflightRegistry) list() []operation {
	f.mu.Lock()
	out := make([]operation, 0, len(f.ops))
	for _, op := range f.ops {
		out = append(out, op)
	}
	f.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].StartedAt.Before(out[j].StartedAt) })
	return out
}
