package featureflag

import (
	"context"
	"errors"
	"testing"
	"time"
)

type stubSource struct {
	values map[string]string
	err    error
	calls  int
}

func (s *stubSource) Lookup(ctx context.Context, key string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.values[key], nil
}

func TestGetMemoizes(t *testing.T) {
	src := &stubSource{values: map[string]string{"enhance_enabled": "true"}}
	c := NewCache(src, time.Minute, nil)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if got := c.Get(ctx, "enhance_enabled"); got != "true" {
			t.Fatalf("Get() = %q, want true", got)
		}
	}
	if src.calls != 1 {
		t.Errorf("source called %d times, want 1", src.calls)
	}
}

func TestGetFallsBackWhenSourceFails(t *testing.T) {
	src := &stubSource{err: errors.New("db down")}
	c := NewCache(src, time.Minute, map[string]string{"max_attachments": "5"})

	if got := c.Get(context.Background(), "max_attachments"); got != "5" {
		t.Errorf("Get() = %q, want fallback 5", got)
	}
	if got := c.Get(context.Background(), "unknown_flag"); got != "" {
		t.Errorf("Get() = %q, want empty for unknown key", got)
	}
}

func TestInvalidateForcesSourceLookup(t *testing.T) {
	src := &stubSource{values: map[string]string{"k": "v"}}
	c := NewCache(src, time.Minute, nil)

	ctx := context.Background()
	c.Get(ctx, "k")
	c.Invalidate()
	c.Get(ctx, "k")

	if src.calls != 2 {
		t.Errorf("source called %d times after invalidate, want 2", src.calls)
	}
}
