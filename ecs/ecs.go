// Package ecs couples an entity allocator with a set of component tables.
//
// The component set is a generated struct (see the schemagen package) holding one component.Table per declared
// component, together with an EntityData struct that holds an optional value per component. ECS uses the pair to
// create, remove and move whole entities at once.
package ecs

import (
	"iter"

	"github.com/rs/zerolog"

	"pkg.world.dev/world-engine/entitystore/component"
	"pkg.world.dev/world-engine/entitystore/entity"
	"pkg.world.dev/world-engine/entitystore/log"
)

// EntityData holds every component of one entity, absent components being nil.
type EntityData interface {
	ComponentNames() []string
}

// Components is implemented by generated component sets.
type Components[D EntityData] interface {
	// RemoveEntity removes e from every table, whether or not the table holds it.
	RemoveEntity(e entity.Entity)
	CloneEntityData(e entity.Entity) D
	RemoveEntityData(e entity.Entity) D
	// InsertEntityData inserts every non-nil field of data. Nil fields leave the table untouched.
	InsertEntityData(e entity.Entity, data D)
	// ComponentEntities yields the owner of every stored component, once per component.
	ComponentEntities() iter.Seq[entity.Entity]
	Schemas() []component.Schema
	Clear()
}

type ECS[C Components[D], D EntityData] struct {
	allocator  *entity.Allocator
	components C
	logger     *zerolog.Logger
}

// New wraps components, which must be an empty, non-nil component set.
func New[C Components[D], D EntityData](components C, opts ...Option) *ECS[C, D] {
	o := newOptions(opts)
	return &ECS[C, D]{
		allocator:  entity.NewAllocator(),
		components: components,
		logger:     &o.logger,
	}
}

// Components gives direct access to the component tables.
func (w *ECS[C, D]) Components() C {
	return w.components
}

func (w *ECS[C, D]) Allocator() *entity.Allocator {
	return w.allocator
}

// Create allocates an entity with no components.
func (w *ECS[C, D]) Create() entity.Entity {
	e := w.allocator.Alloc()
	log.Entity(w.logger, zerolog.TraceLevel, e, nil, "entity created")
	return e
}

// CreateWithEntityData allocates an entity and installs data on it.
func (w *ECS[C, D]) CreateWithEntityData(data D) entity.Entity {
	e := w.allocator.Alloc()
	w.components.InsertEntityData(e, data)
	log.Entity(w.logger, zerolog.TraceLevel, e, data.ComponentNames(), "entity created")
	return e
}

func (w *ECS[C, D]) Exists(e entity.Entity) bool {
	return w.allocator.Exists(e)
}

// Remove frees e and strips its components. Removing an entity that does not exist frees nothing, and the tables
// ignore it because they check the entity id before removing.
func (w *ECS[C, D]) Remove(e entity.Entity) {
	w.allocator.Free(e)
	w.components.RemoveEntity(e)
	log.Entity(w.logger, zerolog.TraceLevel, e, nil, "entity removed")
}

// RemoveEntityData frees e and returns the components it carried.
func (w *ECS[C, D]) RemoveEntityData(e entity.Entity) D {
	w.allocator.Free(e)
	data := w.components.RemoveEntityData(e)
	log.Entity(w.logger, zerolog.TraceLevel, e, data.ComponentNames(), "entity removed")
	return data
}

// CloneEntityData copies every component of e.
func (w *ECS[C, D]) CloneEntityData(e entity.Entity) D {
	return w.components.CloneEntityData(e)
}

// MoveTo transfers e with all of its components into dst, returning the entity it was given there.
func (w *ECS[C, D]) MoveTo(dst *ECS[C, D], e entity.Entity) (entity.Entity, bool) {
	if !w.Exists(e) {
		return entity.Entity{}, false
	}
	return dst.CreateWithEntityData(w.RemoveEntityData(e)), true
}

func (w *ECS[C, D]) Len() int {
	return w.allocator.Len()
}

// Entities yields every live entity in index order.
func (w *ECS[C, D]) Entities() iter.Seq[entity.Entity] {
	return w.allocator.All()
}

// Clear removes every entity and component.
func (w *ECS[C, D]) Clear() {
	w.allocator.Clear()
	w.components.Clear()
}
