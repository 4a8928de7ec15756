package snapshot

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"pkg.world.dev/world-engine/entitystore/codec"
	"pkg.world.dev/world-engine/entitystore/log"
	"pkg.world.dev/world-engine/entitystore/statsd"
)

// Save encodes v and stores it under key. Progress is logged to the zerolog logger carried by ctx, if any.
func Save(ctx context.Context, store Store, key string, v any) error {
	defer statsd.EmitSnapshotStat(time.Now(), "save")
	logger := log.CreateTraceLogger(zerolog.Ctx(ctx), uuid.NewString())

	bz, err := codec.Encode(v)
	if err != nil {
		logger.Error().Err(err).Str("key", key).Msg("failed to encode snapshot")
		return err
	}
	if err := store.Save(ctx, key, bz); err != nil {
		logger.Error().Err(err).Str("key", key).Msg("failed to store snapshot")
		return err
	}
	logger.Debug().Str("key", key).Int("bytes", len(bz)).Msg("snapshot saved")
	return nil
}

// Load fetches the snapshot stored under key and decodes it into v, which must be a pointer.
func Load(ctx context.Context, store Store, key string, v any) error {
	defer statsd.EmitSnapshotStat(time.Now(), "load")
	logger := log.CreateTraceLogger(zerolog.Ctx(ctx), uuid.NewString())

	bz, err := store.Load(ctx, key)
	if err != nil {
		logger.Debug().Err(err).Str("key", key).Msg("failed to fetch snapshot")
		return err
	}
	if err := codec.DecodeInto(bz, v); err != nil {
		logger.Error().Err(err).Str("key", key).Msg("failed to decode snapshot")
		return err
	}
	logger.Debug().Str("key", key).Int("bytes", len(bz)).Msg("snapshot loaded")
	return nil
}
