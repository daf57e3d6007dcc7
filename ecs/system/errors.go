package system

import (
	"errors"
	"log"

	"github.com/milk9111/spikerun/ecs"
)

var (
	// ErrConfigurationMissing means a required reference was never set: a
	// spawn point, the player prefab or probe geometry.
	ErrConfigurationMissing = errors.New("configuration missing")
	// ErrCollaboratorMissing means an entity lacks a companion component or
	// a system lacks an injected collaborator.
	ErrCollaboratorMissing = errors.New("collaborator missing")
)

// diagnostics logs a problem once per entity and reason so a broken entity
// does not flood the log every tick.
type diagnostics struct {
	logger *log.Logger
	seen   map[diagKey]struct{}
}

type diagKey struct {
	entity ecs.Entity
	reason string
}

func newDiagnostics(logger *log.Logger) diagnostics {
	if logger == nil {
		logger = log.Default()
	}
	return diagnostics{logger: logger, seen: make(map[diagKey]struct{})}
}

func (d *diagnostics) once(e ecs.Entity, reason string, format string, args ...any) {
	key := diagKey{entity: e, reason: reason}
	if _, ok := d.seen[key]; ok {
		return
	}
	d.seen[key] = struct{}{}
	d.logger.Printf(format, args...)
}

func (d *diagnostics) forget(e ecs.Entity) {
	for k := range d.seen {
		if k.entity == e {
			delete(d.seen, k)
		}
	}
}
