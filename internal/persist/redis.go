package persist

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"

	"gradtrack/projects/internal/model"
)

// Redis stores the snapshot as one JSON value under a single key.
type Redis struct {
	client *redis.Client
	key    string
}

func NewRedis(client *redis.Client, key string) *Redis {
	return &Redis{client: client, key: key}
}

func (r *Redis) Load(ctx context.Context) (model.Snapshot, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.Snapshot{}, ErrNoSnapshot
		}
		return model.Snapshot{}, err
	}
	var snap model.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return model.Snapshot{}, err
	}
	return snap, nil
}

func (r *Redis) Save(ctx context.Context, snap model.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key, data, 0).Err()
}
