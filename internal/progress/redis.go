package progress

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/careerpath/roadmappdf/internal/model"
	"github.com/redis/go-redis/v9"
)

// Redis keeps each role's progress in a set at Key(role).
type Redis struct {
	client *redis.Client
	logger *log.Logger
}

// NewRedis connects and pings the server.
func NewRedis(ctx context.Context, addr, password string, db int, logger *log.Logger) (*Redis, error) {
	if addr == "" {
		addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	if logger != nil {
		logger.Printf("[Progress] using redis at %s", addr)
	}
	return &Redis{client: client, logger: logger}, nil
}

// NewRedisClient wraps an existing client.
func NewRedisClient(client *redis.Client, logger *log.Logger) *Redis {
	return &Redis{client: client, logger: logger}
}

func (r *Redis) Load(ctx context.Context, role string) (model.ProgressState, error) {
	if err := checkRole(role); err != nil {
		return nil, err
	}
	skills, err := r.client.SMembers(ctx, Key(role)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load progress for %q: %w", role, err)
	}
	return model.NewProgressState(skills...), nil
}

// Save replaces the set atomically.
func (r *Redis) Save(ctx context.Context, role string, state model.ProgressState) error {
	if err := checkRole(role); err != nil {
		return err
	}
	key := Key(role)
	skills := state.Skills()
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		if len(skills) > 0 {
			members := make([]interface{}, len(skills))
			for i, s := range skills {
				members[i] = s
			}
			pipe.SAdd(ctx, key, members...)
		}
		return nil
	})
	if err != nil {
		if r.logger != nil {
			r.logger.Printf("[Progress] redis save key=%s err=%v", key, err)
		}
		return fmt.Errorf("failed to save progress for %q: %w", role, err)
	}
	return nil
}

// maxToggleRetries bounds optimistic retries when the key changes between
// WATCH and EXEC.
const maxToggleRetries = 10

// ToggleSkill flips skill inside a WATCH/MULTI transaction on Key(role).
func (r *Redis) ToggleSkill(ctx context.Context, role, skill string) (bool, model.ProgressState, error) {
	if err := checkRole(role); err != nil {
		return false, nil, err
	}
	key := Key(role)
	var done bool
	toggle := func(tx *redis.Tx) error {
		member, err := tx.SIsMember(ctx, key, skill).Result()
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if member {
				pipe.SRem(ctx, key, skill)
			} else {
				pipe.SAdd(ctx, key, skill)
			}
			return nil
		})
		done = !member
		return err
	}

	for i := 0; i < maxToggleRetries; i++ {
		err := r.client.Watch(ctx, toggle, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return false, nil, fmt.Errorf("failed to toggle %q for %q: %w", skill, role, err)
		}
		state, err := r.Load(ctx, role)
		if err != nil {
			return false, nil, err
		}
		return done, state, nil
	}
	if r.logger != nil {
		r.logger.Printf("[Progress] redis toggle key=%s gave up after %d retries", key, maxToggleRetries)
	}
	return false, nil, fmt.Errorf("failed to toggle %q for %q: %w", skill, role, redis.TxFailedErr)
}

func (r *Redis) Close() error {
	return r.client.Close()
}
