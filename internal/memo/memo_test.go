package memo

import (
	"errors"
	"testing"
)

func TestDoRunsComputationOnce(t *testing.T) {
	cache := New()
	calls := 0

	for i := 0; i < 3; i++ {
		got, err := Do(cache, Key("ensure-dir", "/tmp/ws/src"), func() (string, error) {
			calls++
			return "/tmp/ws/src", nil
		})
		if err != nil {
			t.Fatalf("Do failed: %v", err)
		}
		if got != "/tmp/ws/src" {
			t.Errorf("unexpected result: %q", got)
		}
	}

	if calls != 1 {
		t.Errorf("expected exactly one execution, got %d", calls)
	}
}

func TestDoDistinguishesArguments(t *testing.T) {
	cache := New()
	calls := 0
	run := func(arg string) {
		_, err := Do(cache, Key("link", arg), func() (string, error) {
			calls++
			return arg, nil
		})
		if err != nil {
			t.Fatalf("Do failed: %v", err)
		}
	}

	run("a")
	run("b")
	run("a")

	if calls != 2 {
		t.Errorf("expected one execution per distinct key, got %d", calls)
	}
	if cache.Len() != 2 {
		t.Errorf("expected 2 entries, got %d", cache.Len())
	}
}

func TestDoDoesNotCacheFailures(t *testing.T) {
	cache := New()
	calls := 0
	boom := errors.New("boom")

	fn := func() (string, error) {
		calls++
		if calls == 1 {
			return "", boom
		}
		return "ok", nil
	}

	if _, err := Do(cache, "vendor", fn); !errors.Is(err, boom) {
		t.Fatalf("expected failure on first call, got %v", err)
	}
	got, err := Do(cache, "vendor", fn)
	if err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if got != "ok" {
		t.Errorf("unexpected result: %q", got)
	}
	if calls != 2 {
		t.Errorf("expected failed call to be retried exactly once, got %d calls", calls)
	}
}

func TestKeyCollisionResistance(t *testing.T) {
	if Key("op", "a", "b") == Key("op", "ab") {
		t.Error("keys with different argument splits must not collide")
	}
	if Key("op") != "op" {
		t.Errorf("zero-argument key should be the bare operation name")
	}
}
