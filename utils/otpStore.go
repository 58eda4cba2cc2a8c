package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"warrantyhub/models"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ErrOTPStoreMiss is returned by an OTPStore when no code is stored for a key.
var ErrOTPStoreMiss = errors.New("otp: no code stored")

// OTPRetention is how long a record outlives its ExpiresAt in a store.
const OTPRetention = time.Hour

// OTPStore keeps pending one-time codes keyed by normalized email or mobile.
type OTPStore interface {
	Save(ctx context.Context, rec models.OTP, ttl time.Duration) error
	Get(ctx context.Context, key string) (models.OTP, error)
	Delete(ctx context.Context, key string) error
	// Sweep drops records expired for longer than OTPRetention and returns how many were removed.
	Sweep(ctx context.Context, now time.Time) (int, error)
}

// MemoryOTPStore is a process-local OTPStore used when Redis is not configured.
type MemoryOTPStore struct {
	mu   sync.Mutex
	data map[string]models.OTP
}

func NewMemoryOTPStore() *MemoryOTPStore {
	return &MemoryOTPStore{data: make(map[string]models.OTP)}
}

func (s *MemoryOTPStore) Save(_ context.Context, rec models.OTP, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[rec.Key] = rec
	return nil
}

func (s *MemoryOTPStore) Get(_ context.Context, key string) (models.OTP, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.data[key]
	if !ok {
		return models.OTP{}, ErrOTPStoreMiss
	}
	return rec, nil
}

func (s *MemoryOTPStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

func (s *MemoryOTPStore) Sweep(_ context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for k, rec := range s.data {
		if rec.Expired(now.Add(-OTPRetention)) {
			delete(s.data, k)
			removed++
		}
	}
	return removed, nil
}

// RedisOTPStore keeps codes in Redis. The key TTL covers the code expiry plus OTPRetention.
type RedisOTPStore struct {
	client *redis.Client
	prefix string
}

// NewRedisOTPStore connects to Redis and verifies the connection.
func NewRedisOTPStore(addr, password string, db int) (*RedisOTPStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}

	logrus.WithField("addr", addr).Info("Connected to Redis OTP store")
	return &RedisOTPStore{client: client, prefix: "otp:"}, nil
}

func (s *RedisOTPStore) Save(ctx context.Context, rec models.OTP, ttl time.Duration) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.prefix+rec.Key, payload, ttl).Err()
}

func (s *RedisOTPStore) Get(ctx context.Context, key string) (models.OTP, error) {
	val, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err == redis.Nil {
		return models.OTP{}, ErrOTPStoreMiss
	}
	if err != nil {
		return models.OTP{}, err
	}

	var rec models.OTP
	if err := json.Unmarshal(val, &rec); err != nil {
		return models.OTP{}, fmt.Errorf("decode otp record: %w", err)
	}
	return rec, nil
}

func (s *RedisOTPStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.prefix+key).Err()
}

// Sweep is a no-op: Redis expires keys on its own.
func (s *RedisOTPStore) Sweep(context.Context, time.Time) (int, error) {
	return 0, nil
}

// Close releases the Redis connection pool.
func (s *RedisOTPStore) Close() error {
	return s.client.Close()
}
