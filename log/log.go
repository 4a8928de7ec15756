// Package log builds the structured log events shared by the storage packages.
package log

import (
	"io"
	"os"
	"sort"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"pkg.world.dev/world-engine/entitystore/component"
	"pkg.world.dev/world-engine/entitystore/entity"
)

type Loggable interface {
	Schemas() []component.Schema
}

// New creates a logger writing JSON lines to w, or human readable lines when pretty is set.
func New(w io.Writer, level zerolog.Level, pretty bool) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	if pretty {
		w = zerolog.ConsoleWriter{Out: w}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// ParseLevel parses a level name such as "debug". An empty string means info.
func ParseLevel(s string) (zerolog.Level, error) {
	if s == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.NoLevel, eris.Wrapf(err, "invalid log level %q", s)
	}
	return level, nil
}

func loadComponentsToEvent(zeroLoggerEvent *zerolog.Event, target Loggable) *zerolog.Event {
	schemas := target.Schemas()
	names := make([]string, 0, len(schemas))
	for _, s := range schemas {
		names = append(names, s.Name)
	}
	sort.Strings(names)
	zeroLoggerEvent.Int("total_components", len(names))
	return zeroLoggerEvent.Strs("components", names)
}

func loadEntityIntoEvent(zeroLoggerEvent *zerolog.Event, e entity.Entity, components []string) *zerolog.Event {
	if components != nil {
		zeroLoggerEvent.Strs("components", components)
	}
	zeroLoggerEvent.Uint64("entity_id", e.ID)
	return zeroLoggerEvent.Uint32("entity_index", e.Index)
}

// Components logs the component tables registered on target.
func Components(logger *zerolog.Logger, target Loggable, level zerolog.Level) {
	zeroLoggerEvent := logger.WithLevel(level)
	loadComponentsToEvent(zeroLoggerEvent, target).Send()
}

// Entity logs an entity and, when known, the names of the components it carries.
func Entity(logger *zerolog.Logger, level zerolog.Level, e entity.Entity, components []string, msg string) {
	zeroLoggerEvent := logger.WithLevel(level)
	loadEntityIntoEvent(zeroLoggerEvent, e, components).Msg(msg)
}

// CreateTraceLogger Creates a trace Logger. Using a single id you can use this Logger to follow and log a data path.
func CreateTraceLogger(logger *zerolog.Logger, traceID string) *zerolog.Logger {
	newLogger := logger.With().Str("trace_id", traceID).Logger()
	return &newLogger
}
