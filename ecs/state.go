package ecs

import (
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"pkg.world.dev/world-engine/entitystore/codec"
	"pkg.world.dev/world-engine/entitystore/component"
	"pkg.world.dev/world-engine/entitystore/entity"
	"pkg.world.dev/world-engine/entitystore/log"
)

type state struct {
	Entities   *entity.Allocator  `json:"entities"`
	Schemas    []component.Schema `json:"schemas"`
	Components codec.RawMessage   `json:"components"`
}

// MarshalJSON encodes the live entities, the component schemas and every component table.
func (w *ECS[C, D]) MarshalJSON() ([]byte, error) {
	components, err := codec.Encode(w.components)
	if err != nil {
		return nil, err
	}
	return codec.Encode(state{
		Entities:   w.allocator,
		Schemas:    w.components.Schemas(),
		Components: components,
	})
}

// UnmarshalJSON replaces the contents of w with a saved state. The saved schemas must match the component set of
// w. Components saved for an entity that is not in the saved entity list are dropped. A schema mismatch leaves w
// untouched; any later error leaves it empty.
func (w *ECS[C, D]) UnmarshalJSON(bz []byte) error {
	st, err := codec.Decode[state](bz)
	if err != nil {
		return err
	}
	if err := component.CheckSchemas(w.components.Schemas(), st.Schemas); err != nil {
		return eris.Wrapf(ErrComponentMismatchWithSavedState, "%v", err)
	}

	w.Clear()
	if st.Entities != nil {
		w.allocator = st.Entities
	}
	if len(st.Components) > 0 {
		if err := codec.DecodeInto(st.Components, w.components); err != nil {
			w.Clear()
			return err
		}
	}
	var orphans []entity.Entity
	for e := range w.components.ComponentEntities() {
		if !w.allocator.Exists(e) {
			orphans = append(orphans, e)
		}
	}
	for _, e := range orphans {
		w.components.RemoveEntity(e)
		log.Entity(w.logger, zerolog.DebugLevel, e, nil, "dropped saved component of missing entity")
	}

	log.Components(w.logger, w.components, zerolog.DebugLevel)
	w.logger.Debug().Int("total_entities", w.allocator.Len()).Msg("loaded saved state")
	return nil
}
