package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/khanh208/shop-noithat-vp-sub000/internal/backend"
)

// RedisStorage keeps the token and the user profile under two keys, as the
// browser client did with its two storage entries, plus a third key for UI
// state. All three share the session TTL.
type RedisStorage struct {
	rdb    redis.UniversalClient
	prefix string
}

func NewRedisStorage(rdb redis.UniversalClient, prefix string) *RedisStorage {
	if prefix == "" {
		prefix = "sf:sess:"
	}
	return &RedisStorage{rdb: rdb, prefix: prefix}
}

func (s *RedisStorage) tokenKey(id string) string { return s.prefix + id + ":token" }
func (s *RedisStorage) userKey(id string) string  { return s.prefix + id + ":user" }
func (s *RedisStorage) uiKey(id string) string    { return s.prefix + id + ":ui" }

func (s *RedisStorage) Get(ctx context.Context, id string) (Record, error) {
	vals, err := s.rdb.MGet(ctx, s.tokenKey(id), s.userKey(id), s.uiKey(id)).Result()
	if err != nil {
		return Record{}, err
	}
	if vals[0] == nil && vals[1] == nil && vals[2] == nil {
		return Record{}, ErrNotFound
	}

	var rec Record
	if v, ok := vals[0].(string); ok {
		rec.Token = v
	}
	if v, ok := vals[1].(string); ok && v != "" && v != "null" {
		var u backend.User
		if err := json.Unmarshal([]byte(v), &u); err != nil {
			return Record{}, err
		}
		rec.User = &u
	}
	if v, ok := vals[2].(string); ok && v != "" {
		if err := json.Unmarshal([]byte(v), &rec.UI); err != nil {
			return Record{}, err
		}
	}
	return rec, nil
}

func (s *RedisStorage) Put(ctx context.Context, id string, r Record, ttl time.Duration) error {
	userJSON, err := json.Marshal(r.User)
	if err != nil {
		return err
	}
	uiJSON, err := json.Marshal(r.UI)
	if err != nil {
		return err
	}
	_, err = s.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, s.tokenKey(id), r.Token, ttl)
		p.Set(ctx, s.userKey(id), userJSON, ttl)
		p.Set(ctx, s.uiKey(id), uiJSON, ttl)
		return nil
	})
	return err
}

func (s *RedisStorage) SaveUI(ctx context.Context, id string, ui UIState) error {
	uiJSON, err := json.Marshal(ui)
	if err != nil {
		return err
	}
	// XX: only while the session exists; KEEPTTL: expire with the token key
	err = s.rdb.SetArgs(ctx, s.uiKey(id), uiJSON, redis.SetArgs{Mode: "XX", KeepTTL: true}).Err()
	if errors.Is(err, redis.Nil) {
		return ErrNotFound
	}
	return err
}

func (s *RedisStorage) Delete(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, s.tokenKey(id), s.userKey(id), s.uiKey(id)).Err()
}
