package system

import (
	"log"

	"github.com/milk9111/spikerun/ecs"
)

// ChangeSource reports files that changed since the last call.
// prefabs.Watcher implements it.
type ChangeSource interface {
	Drain() []string
}

// ErrorSource is implemented by change sources that can fail in the
// background, such as prefabs.Watcher.
type ErrorSource interface {
	DrainErrors() []error
}

// ReloadHandler applies one changed file to the running world.
type ReloadHandler func(w *ecs.World, name string) error

// ReloadSystem applies prefab edits between ticks. Watcher events arrive on
// another goroutine but are only acted on here, inside the loop.
type ReloadSystem struct {
	source   ChangeSource
	handlers map[string]ReloadHandler
	logger   *log.Logger
}

func NewReloadSystem(source ChangeSource, logger *log.Logger) *ReloadSystem {
	if logger == nil {
		logger = log.Default()
	}
	return &ReloadSystem{source: source, handlers: make(map[string]ReloadHandler), logger: logger}
}

// Handle registers h for a file base name such as "player.yaml".
func (r *ReloadSystem) Handle(name string, h ReloadHandler) {
	if h == nil {
		delete(r.handlers, name)
		return
	}
	r.handlers[name] = h
}

func (r *ReloadSystem) Update(w *ecs.World) {
	if r.source == nil || w == nil {
		return
	}
	if es, ok := r.source.(ErrorSource); ok {
		for _, err := range es.DrainErrors() {
			r.logger.Printf("reload: watcher: %v", err)
		}
	}
	seen := make(map[string]struct{})
	for _, name := range r.source.Drain() {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		h, ok := r.handlers[name]
		if !ok {
			continue
		}
		if err := h(w, name); err != nil {
			r.logger.Printf("reload: %s: %v", name, err)
			continue
		}
		r.logger.Printf("reload: applied %s", name)
	}
}
