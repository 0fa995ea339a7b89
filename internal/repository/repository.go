// Package repository stores dashboard login sessions. Fleet, alert and insight
// state is never persisted.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/domain"
)

// SessionStore is satisfied by every backend below. Get returns
// domain.ErrNotFound for unknown or expired tokens.
type SessionStore interface {
	Create(ctx context.Context, s domain.Session) error
	Get(ctx context.Context, token string) (domain.Session, error)
	Delete(ctx context.Context, token string) error
}

type MemoryStore struct {
	mu       sync.RWMutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]domain.Session
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, now: time.Now, sessions: make(map[string]domain.Session)}
}

func (m *MemoryStore) Create(_ context.Context, s domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.Token] = s
	return nil
}

func (m *MemoryStore) Get(_ context.Context, token string) (domain.Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[token]
	m.mu.RUnlock()
	if !ok {
		return domain.Session{}, fmt.Errorf("session: %w", domain.ErrNotFound)
	}
	if m.ttl > 0 && m.now().After(s.CreatedAt.Add(m.ttl)) {
		m.mu.Lock()
		delete(m.sessions, token)
		m.mu.Unlock()
		return domain.Session{}, fmt.Errorf("session expired: %w", domain.ErrNotFound)
	}
	return s, nil
}

func (m *MemoryStore) Delete(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
	return nil
}

// PostgresStore keeps sessions in the sessions table created by database.EnsureSchema.
type PostgresStore struct {
	db  *sqlx.DB
	ttl time.Duration
}

func NewPostgresStore(db *sqlx.DB, ttl time.Duration) *PostgresStore {
	return &PostgresStore{db: db, ttl: ttl}
}

func (r *PostgresStore) Create(ctx context.Context, s domain.Session) error {
	_, err := r.db.NamedExecContext(ctx,
		`INSERT INTO sessions(token, username, role, created_at) VALUES (:token, :username, :role, :created_at)`, s)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (r *PostgresStore) Get(ctx context.Context, token string) (domain.Session, error) {
	var s domain.Session
	err := r.db.GetContext(ctx, &s, `SELECT token, username, role, created_at FROM sessions WHERE token = $1`, token)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Session{}, fmt.Errorf("session: %w", domain.ErrNotFound)
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("select session: %w", err)
	}
	if r.ttl > 0 && time.Now().After(s.CreatedAt.Add(r.ttl)) {
		return domain.Session{}, fmt.Errorf("session expired: %w", domain.ErrNotFound)
	}
	return s, nil
}

func (r *PostgresStore) Delete(ctx context.Context, token string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = $1`, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// RedisStore keeps each session as a JSON value expiring after the TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(ctx context.Context, addr string, ttl time.Duration) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		PoolSize:     20,
		MinIdleConns: 2,
		MaxRetries:   3,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return &RedisStore{client: client, ttl: ttl}, nil
}

func sessionKey(token string) string { return "session:" + token }

func (r *RedisStore) Create(ctx context.Context, s domain.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	return r.client.Set(ctx, sessionKey(s.Token), data, r.ttl).Err()
}

func (r *RedisStore) Get(ctx context.Context, token string) (domain.Session, error) {
	data, err := r.client.Get(ctx, sessionKey(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Session{}, fmt.Errorf("session: %w", domain.ErrNotFound)
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("get session: %w", err)
	}
	var s domain.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return domain.Session{}, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return s, nil
}

func (r *RedisStore) Delete(ctx context.Context, token string) error {
	return r.client.Del(ctx, sessionKey(token)).Err()
}

func (r *RedisStore) Close() error { return r.client.Close() }
