package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/AradGolbaghi/new-hw-planner/model"
)

const (
	redisAssignmentsKey = "planner:assignments"
	redisTemplatesKey   = "planner:templates"

	redisOpTimeout = 5 * time.Second
)

// RedisStore keeps each record set as one JSON value under a fixed key.
// Save replaces the value wholesale, matching the Storage contract.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to Redis and verifies the connection
func NewRedisStore(redisURL string) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Init() error { return nil }

func (s *RedisStore) Close() error { return s.client.Close() }

func (s *RedisStore) HealthCheck() error {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) LoadAssignments() ([]model.Assignment, error) {
	var assignments []model.Assignment
	if err := s.load(redisAssignmentsKey, &assignments); err != nil {
		return nil, err
	}
	return NormalizeAssignments(assignments), nil
}

func (s *RedisStore) SaveAssignments(assignments []model.Assignment) error {
	return s.save(redisAssignmentsKey, assignments)
}

func (s *RedisStore) LoadTemplates() ([]model.Template, error) {
	var templates []model.Template
	if err := s.load(redisTemplatesKey, &templates); err != nil {
		return nil, err
	}
	return NormalizeTemplates(templates), nil
}

func (s *RedisStore) SaveTemplates(templates []model.Template) error {
	return s.save(redisTemplatesKey, templates)
}

// load reads and decodes one record set; a missing key means an empty set
func (s *RedisStore) load(key string, dest interface{}) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	val, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}

// save encodes and replaces one record set
func (s *RedisStore) save(key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	if err := s.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}
