package engine

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// IDGenerator produces opaque entity ids.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator issues time-sortable UUIDv7 strings.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// SequenceGenerator issues prefix-1, prefix-2, ... for deterministic tests.
type SequenceGenerator struct {
	mu     sync.Mutex
	prefix string
	n      int
}

func NewSequenceGenerator(prefix string) *SequenceGenerator {
	return &SequenceGenerator{prefix: prefix}
}

func (g *SequenceGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s-%d", g.prefix, g.n)
}

// newID draws ids until one is not taken.
func (e *Engine) newID(taken func(string) bool) string {
	for {
		id := e.ids.NewID()
		if !taken(id) {
			return id
		}
	}
}
