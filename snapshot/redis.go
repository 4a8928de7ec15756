package snapshot

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rotisserie/eris"
)

var _ Store = &RedisStore{}

// RedisStore keeps each snapshot as a string value under "<namespace>:SNAPSHOT:<key>".
type RedisStore struct {
	client    redis.Cmdable
	namespace string
}

func NewRedisStore(client redis.Cmdable, namespace string) *RedisStore {
	return &RedisStore{
		client:    client,
		namespace: namespace,
	}
}

func (r *RedisStore) redisKey(key string) string {
	return fmt.Sprintf("%s:SNAPSHOT:%s", r.namespace, key)
}

func (r *RedisStore) Save(ctx context.Context, key string, bz []byte) error {
	if err := r.client.Set(ctx, r.redisKey(key), bz, 0).Err(); err != nil {
		return eris.Wrap(err, "")
	}
	return nil
}

func (r *RedisStore) Load(ctx context.Context, key string) ([]byte, error) {
	bz, err := r.client.Get(ctx, r.redisKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, eris.Wrapf(ErrSnapshotNotFound, "key %q", key)
	} else if err != nil {
		return nil, eris.Wrap(err, "")
	}
	return bz, nil
}

func (r *RedisStore) Delete(ctx context.Context, key string) error {
	n, err := r.client.Del(ctx, r.redisKey(key)).Result()
	if err != nil {
		return eris.Wrap(err, "")
	}
	if n == 0 {
		return eris.Wrapf(ErrSnapshotNotFound, "key %q", key)
	}
	return nil
}
