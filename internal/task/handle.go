package task

import (
	"sync"

	"github.com/google/uuid"
)

// Handle is the join handle for one launched task. The worker surrenders
// the parameter block through the handle's channel; Join is the only way
// to get it back.
type Handle struct {
	id   uuid.UUID
	done chan *Params

	once  sync.Once
	block *Params
}

// ID is the task identity.
func (h *Handle) ID() uuid.UUID { return h.id }

// Join blocks until the worker finishes and transfers the parameter
// block back to the caller. Joining again returns the same block.
func (h *Handle) Join() *Params {
	h.once.Do(func() {
		h.block = <-h.done
	})
	return h.block
}
