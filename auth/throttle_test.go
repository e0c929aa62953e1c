// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"fmt"
	"testing"
	"time"
)

func TestThrottleLocksAfterMaxFailures(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	th := NewThrottle(3, time.Minute)
	th.now = func() time.Time { return now }

	for i := 0; i < 2; i++ {
		th.Fail("login:7")
		if ok, _ := th.Allow("login:7"); !ok {
			t.Fatalf("locked out after %d failures", i+1)
		}
	}

	th.Fail("login:7")
	ok, wait := th.Allow("login:7")
	if ok {
		t.Fatal("expected lockout after 3 failures")
	}
	if wait != time.Minute {
		t.Errorf("wait = %v, want 1m", wait)
	}

	if ok, _ := th.Allow("login:8"); !ok {
		t.Error("other keys should not be affected")
	}

	now = now.Add(time.Minute)
	if ok, _ := th.Allow("login:7"); !ok {
		t.Error("lockout should expire")
	}
}

func TestThrottleSucceedResets(t *testing.T) {
	th := NewThrottle(2, time.Minute)

	th.Fail("k")
	th.Succeed("k")
	th.Fail("k")

	if ok, _ := th.Allow("k"); !ok {
		t.Error("success should reset the failure count")
	}
}

func TestNewThrottleDefaults(t *testing.T) {
	th := NewThrottle(0, 0)
	if th.maxFailures != DefaultMaxFailures || th.lockout != DefaultLockout {
		t.Errorf("defaults not applied: %d %v", th.maxFailures, th.lockout)
	}
}

func TestThrottleForgetsIdleKeys(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	th := NewThrottle(3, time.Minute)
	th.now = func() time.Time { return now }

	for i := 0; i < 50; i++ {
		th.Fail(fmt.Sprintf("login:%d", i))
	}
	for i := 0; i < 3; i++ {
		th.Fail("login:locked")
	}
	if th.Len() != 51 {
		t.Fatalf("Len = %d, want 51", th.Len())
	}

	// Still within the idle window: nothing is dropped and counts survive
	now = now.Add(5 * time.Minute)
	th.Fail("login:0")
	th.Fail("login:0")
	if ok, _ := th.Allow("login:0"); ok {
		t.Error("failures inside the idle window should still add up to a lockout")
	}

	now = now.Add(idleLockouts * time.Minute)
	th.Fail("login:new")
	if th.Len() != 1 {
		t.Errorf("Len = %d after sweep, want only the new key", th.Len())
	}

	// Allow drops an idle key it looks up
	now = now.Add(idleLockouts * time.Minute)
	if ok, _ := th.Allow("login:new"); !ok {
		t.Error("idle key should be allowed")
	}
	if th.Len() != 0 {
		t.Errorf("Len = %d, want 0", th.Len())
	}
}
