package main

import (
	"sort"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"pkg.world.dev/world-engine/entitystore/codec"
	"pkg.world.dev/world-engine/entitystore/component"
	"pkg.world.dev/world-engine/entitystore/config"
	"pkg.world.dev/world-engine/entitystore/log"
	"pkg.world.dev/world-engine/entitystore/snapshot"
	"pkg.world.dev/world-engine/entitystore/statsd"
)

// savedECS mirrors the encoded form of an ecs.ECS without knowing its component types.
type savedECS struct {
	Entities   []codec.RawMessage            `json:"entities"`
	Schemas    []component.Schema            `json:"schemas"`
	Components map[string][]codec.RawMessage `json:"components"`
}

func NewInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "inspect [key]",
		Short:   "Summarize an ECS snapshot stored in Redis",
		Example: "REDIS_ADDRESS=localhost:6379 ecstool inspect world",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := log.New(cmd.ErrOrStderr(), cfg.Level(), cfg.LogPretty)

			if cfg.StatsdAddress != "" {
				if err := statsd.Init(cfg.StatsdAddress, cfg.Tags()); err != nil {
					return err
				}
				defer func() {
					if err := statsd.Close(); err != nil {
						logger.Warn().Err(err).Msg("failed to close statsd client")
					}
				}()
			}

			client := redis.NewClient(&redis.Options{
				Addr:     cfg.RedisAddress,
				Password: cfg.RedisPassword,
				DB:       0,
			})
			defer client.Close()
			store := snapshot.NewRedisStore(client, cfg.SnapshotNamespace)

			var saved savedECS
			ctx := logger.WithContext(cmd.Context())
			if err := snapshot.Load(ctx, store, args[0], &saved); err != nil {
				return err
			}
			logSummary(&logger, args[0], saved)
			return nil
		},
	}
	return cmd
}

func logSummary(logger *zerolog.Logger, key string, saved savedECS) {
	names := make([]string, 0, len(saved.Components))
	for name := range saved.Components {
		names = append(names, name)
	}
	sort.Strings(names)

	counts := zerolog.Dict()
	for _, name := range names {
		counts.Int(name, len(saved.Components[name]))
	}
	logger.Info().
		Str("key", key).
		Int("total_entities", len(saved.Entities)).
		Int("total_components", len(saved.Schemas)).
		Dict("component_counts", counts).
		Msg("snapshot summary")
}
