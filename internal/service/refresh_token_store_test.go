package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type mockRedisKVClient struct {
	values map[string]string

	lastSetTTL time.Duration
	lastDel    []string

	setErr    error
	getDelErr error
	delErr    error
}

func newMockRedisKVClient() *mockRedisKVClient {
	return &mockRedisKVClient{values: make(map[string]string)}
}

func (m *mockRedisKVClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx)
	if m.setErr != nil {
		cmd.SetErr(m.setErr)
		return cmd
	}
	m.values[key] = value.(string)
	m.lastSetTTL = expiration
	cmd.SetVal("OK")
	return cmd
}

func (m *mockRedisKVClient) GetDel(ctx context.Context, key string) *redis.StringCmd {
	cmd := redis.NewStringCmd(ctx)
	if m.getDelErr != nil {
		cmd.SetErr(m.getDelErr)
		return cmd
	}
	v, ok := m.values[key]
	if !ok {
		cmd.SetErr(redis.Nil)
		return cmd
	}
	delete(m.values, key)
	cmd.SetVal(v)
	return cmd
}

func (m *mockRedisKVClient) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	m.lastDel = keys
	cmd := redis.NewIntCmd(ctx)
	if m.delErr != nil {
		cmd.SetErr(m.delErr)
		return cmd
	}
	for _, k := range keys {
		delete(m.values, k)
	}
	cmd.SetVal(int64(len(keys)))
	return cmd
}

func TestMemoryRefreshTokenStore_ConsumeOnce(t *testing.T) {
	store := NewMemoryRefreshTokenStore()

	if owner, err := store.Consume("missing"); err != nil || owner != "" {
		t.Fatalf("expected missing token empty,nil; got %q,%v", owner, err)
	}

	if err := store.Store(" jti-a ", "u1", time.Minute); err != nil {
		t.Fatalf("store failed: %v", err)
	}
	if owner, err := store.Consume("jti-a"); err != nil || owner != "u1" {
		t.Fatalf("expected owner u1, got %q,%v", owner, err)
	}
	if owner, _ := store.Consume("jti-a"); owner != "" {
		t.Fatalf("expected second consume to find nothing, got %q", owner)
	}
}

func TestMemoryRefreshTokenStore_ExpiryAndRevoke(t *testing.T) {
	store := NewMemoryRefreshTokenStore()

	if err := store.Store("jti-exp", "u1", 30*time.Millisecond); err != nil {
		t.Fatalf("store failed: %v", err)
	}
	time.Sleep(50 * time.Millisecond)
	if owner, _ := store.Consume("jti-exp"); owner != "" {
		t.Fatalf("expected expired token, got owner %q", owner)
	}

	if err := store.Store("", "u1", time.Minute); err != nil {
		t.Fatalf("empty jti store should be no-op, got %v", err)
	}
	if err := store.Store("jti-b", "u1", 0); err != nil {
		t.Fatalf("store failed: %v", err)
	}
	if err := store.Revoke("jti-b"); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	if owner, _ := store.Consume("jti-b"); owner != "" {
		t.Fatalf("expected revoked token absent, got %q", owner)
	}
}

func TestRedisRefreshTokenStore_Flow(t *testing.T) {
	mock := newMockRedisKVClient()
	store := &redisRefreshTokenStore{client: mock, prefix: "auth:refresh:"}

	if err := store.Store(" j1 ", "u1", 0); err != nil {
		t.Fatalf("store failed: %v", err)
	}
	if mock.values["auth:refresh:j1"] != "u1" {
		t.Fatalf("expected owner stored under prefixed key, got %+v", mock.values)
	}
	if mock.lastSetTTL != defaultRefreshTTL {
		t.Fatalf("expected default ttl, got %v", mock.lastSetTTL)
	}

	owner, err := store.Consume("j1")
	if err != nil || owner != "u1" {
		t.Fatalf("expected u1,nil; got %q,%v", owner, err)
	}
	if owner, err := store.Consume("j1"); err != nil || owner != "" {
		t.Fatalf("expected redis.Nil mapped to empty owner, got %q,%v", owner, err)
	}

	if err := store.Revoke(" j2 "); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	if len(mock.lastDel) != 1 || mock.lastDel[0] != "auth:refresh:j2" {
		t.Fatalf("unexpected del key: %+v", mock.lastDel)
	}
}

func TestRedisRefreshTokenStore_ErrorPathsAndEmptyJTI(t *testing.T) {
	mock := newMockRedisKVClient()
	mock.setErr = errors.New("set failed")
	mock.getDelErr = errors.New("getdel failed")
	mock.delErr = errors.New("del failed")
	store := &redisRefreshTokenStore{client: mock, prefix: "auth:refresh:"}

	if err := store.Store("", "u1", time.Minute); err != nil {
		t.Fatalf("empty jti store should be no-op, got %v", err)
	}
	if owner, err := store.Consume(""); err != nil || owner != "" {
		t.Fatalf("empty jti consume should be empty,nil; got %q,%v", owner, err)
	}
	if err := store.Revoke(""); err != nil {
		t.Fatalf("empty jti revoke should be no-op, got %v", err)
	}

	if err := store.Store("j3", "u1", time.Minute); err == nil {
		t.Fatalf("expected store error")
	}
	if _, err := store.Consume("j3"); err == nil {
		t.Fatalf("expected consume error")
	}
	if err := store.Revoke("j3"); err == nil {
		t.Fatalf("expected revoke error")
	}
}

type fixedOwnerStore struct{ owner string }

func (f fixedOwnerStore) Store(jti, userID string, ttl time.Duration) error {
	return nil
}

func (f fixedOwnerStore) Consume(jti string) (string, error) {
	return f.owner, nil
}

func (f fixedOwnerStore) Revoke(jti string) error {
	return nil
}

func TestJWTService_RefreshRejectsForeignOwner(t *testing.T) {
	svc := NewJWTServiceWithStore("secret", 15*time.Minute, 30*time.Minute, fixedOwnerStore{owner: "someone-else"})
	pair, err := svc.GeneratePair(testUser())
	if err != nil {
		t.Fatalf("generate pair: %v", err)
	}
	if _, err := svc.RefreshPair(pair.RefreshToken); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected ErrJWTInvalid for foreign owner, got %v", err)
	}
}
