package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/konigunited/restdelbot/internal/domain"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "eventbot:session:"

type Config struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// SessionStore keeps conversation sessions as JSON values that expire after TTL of inactivity.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func New(ctx context.Context, cfg Config) (*SessionStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return NewSessionStore(client, cfg.TTL), nil
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	if ttl == 0 {
		ttl = 24 * time.Hour
	}
	return &SessionStore{client: client, ttl: ttl}
}

func (s *SessionStore) Get(ctx context.Context, conversationID string) (domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	raw, err := s.client.Get(ctx, keyPrefix+conversationID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Session{ConversationID: conversationID}, nil
		}
		return domain.Session{ConversationID: conversationID}, fmt.Errorf("failed to get session: %w", err)
	}

	var session domain.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return domain.Session{ConversationID: conversationID}, fmt.Errorf("failed to decode session: %w", err)
	}

	return session, nil
}

func (s *SessionStore) Save(ctx context.Context, session domain.Session) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := s.client.Set(ctx, keyPrefix+session.ConversationID, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

func (s *SessionStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *SessionStore) Close() error {
	return s.client.Close()
}
