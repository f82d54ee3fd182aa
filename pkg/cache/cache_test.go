package cache

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()

	if err := c.Set(ctx, "k", []byte("v"), time.Hour); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, ok, err := c.Get(ctx, "k"); ok || err != nil {
		t.Errorf("Get() = (_, %v, %v), want miss", ok, err)
	}
}

func TestFileCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}

	want := []byte(strings.Repeat(`<path d="M 0 0"/>`, 50))
	if err := c.Set(ctx, "artifact:abc", want, time.Hour); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, ok, err := c.Get(ctx, "artifact:abc")
	if err != nil || !ok {
		t.Fatalf("Get() = (_, %v, %v), want hit", ok, err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("Get() data mismatch")
	}

	n, size, err := c.Stats()
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if n != 1 {
		t.Errorf("Stats() entries = %d, want 1", n)
	}
	if size >= int64(len(want)) {
		t.Errorf("Stats() size = %d, want compressed below %d", size, len(want))
	}

	if err := c.Delete(ctx, "artifact:abc"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, ok, _ := c.Get(ctx, "artifact:abc"); ok {
		t.Error("Get() after Delete() = hit, want miss")
	}
	if err := c.Delete(ctx, "artifact:abc"); err != nil {
		t.Errorf("Delete() of missing key error = %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	time.Sleep(2 * time.Millisecond)
	if _, ok, err := c.Get(ctx, "k"); ok || err != nil {
		t.Errorf("Get() expired = (_, %v, %v), want miss", ok, err)
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Errorf("expired entry still on disk")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	path := c.path("k")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("not snappy"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, ok, err := c.Get(ctx, "k"); ok || err != nil {
		t.Errorf("Get() corrupt = (_, %v, %v), want miss", ok, err)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}

	n, err := c.Clear()
	if err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if n != 3 {
		t.Errorf("Clear() = %d, want 3", n)
	}
	if n, _, _ := c.Stats(); n != 0 {
		t.Errorf("Stats() after Clear() = %d entries, want 0", n)
	}
}

func TestFileCacheCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c, _ := NewFileCache(t.TempDir())
	if err := c.Set(ctx, "k", nil, 0); !errors.Is(err, context.Canceled) {
		t.Errorf("Set() error = %v, want context.Canceled", err)
	}
}

func TestKeyer(t *testing.T) {
	k := NewDefaultKeyer()
	cfg := map[string]any{"bits": 8, "encoder_diameter": 100.0}

	ck := k.ConfigKey(cfg)
	if !strings.HasPrefix(ck, "config:") || len(ck) != len("config:")+64 {
		t.Errorf("ConfigKey() = %q", ck)
	}
	if ck != k.ConfigKey(map[string]any{"bits": 8, "encoder_diameter": 100.0}) {
		t.Error("ConfigKey() not deterministic")
	}
	if ck == k.ConfigKey(map[string]any{"bits": 9, "encoder_diameter": 100.0}) {
		t.Error("ConfigKey() ignores config changes")
	}

	svg := k.ArtifactKey(ck, ArtifactKeyOpts{Format: "svg", Precision: 6})
	png := k.ArtifactKey(ck, ArtifactKeyOpts{Format: "png", Precision: 6, Scale: 4})
	if svg == png {
		t.Error("ArtifactKey() same for svg and png")
	}

	scoped := NewScopedKeyer(nil, "encoderdisk:")
	if got := scoped.ArtifactKey(ck, ArtifactKeyOpts{Format: "svg", Precision: 6}); got != "encoderdisk:"+svg {
		t.Errorf("ScopedKeyer.ArtifactKey() = %q, want prefixed %q", got, svg)
	}
}

func TestRetryWithBackoff(t *testing.T) {
	old := backoff
	backoff = time.Millisecond
	t.Cleanup(func() { backoff = old })

	tests := []struct {
		name      string
		errs      []error
		wantCalls int
		wantErr   bool
	}{
		{"success", []error{nil}, 1, false},
		{"permanent", []error{errors.New("boom")}, 1, true},
		{"recovers", []error{Retryable(ErrBackend), nil}, 2, false},
		{"exhausted", []error{Retryable(ErrBackend), Retryable(ErrBackend), Retryable(ErrBackend)}, 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := RetryWithBackoff(context.Background(), func() error {
				err := tt.errs[calls]
				calls++
				return err
			})
			if (err != nil) != tt.wantErr {
				t.Errorf("RetryWithBackoff() error = %v, wantErr %v", err, tt.wantErr)
			}
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
		})
	}
}

func TestRetryable(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) != nil")
	}
	err := Retryable(ErrBackend)
	if !IsRetryable(err) || !errors.Is(err, ErrBackend) {
		t.Errorf("Retryable(ErrBackend) = %v, lost identity", err)
	}
}

func TestNewRedisCacheBadURL(t *testing.T) {
	if _, err := NewRedisCache(context.Background(), "not-a-url"); err == nil {
		t.Error("NewRedisCache() with bad url: want error")
	}
}

func TestRedisCacheUnreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		MaxRetries:  -1,
		DialTimeout: 100 * time.Millisecond,
	})
	c := NewRedisCacheFromClient(client)
	defer c.Close()

	_, ok, err := c.Get(context.Background(), "k")
	if ok || err == nil {
		t.Fatalf("Get() = (_, %v, %v), want backend error", ok, err)
	}
	if !IsRetryable(err) || !errors.Is(err, ErrBackend) {
		t.Errorf("Get() error = %v, want retryable ErrBackend", err)
	}
}
