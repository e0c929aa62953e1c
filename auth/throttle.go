// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"sync"
	"time"
)

const (
	DefaultMaxFailures = 5
	DefaultLockout     = time.Minute
)

// idleLockouts is how many lockout periods a key must go without a failure,
// and without being locked, before it is forgotten.
const idleLockouts = 10

type failure struct {
	count       int
	lastFail    time.Time
	lockedUntil time.Time
}

// Throttle locks a key out for a cooldown after too many failed logins in a
// row. A four-digit PIN is otherwise trivial to enumerate.
type Throttle struct {
	mu          sync.Mutex
	failures    map[string]*failure
	maxFailures int
	lockout     time.Duration
	lastSweep   time.Time
	now         func() time.Time
}

func NewThrottle(maxFailures int, lockout time.Duration) *Throttle {
	if maxFailures <= 0 {
		maxFailures = DefaultMaxFailures
	}
	if lockout <= 0 {
		lockout = DefaultLockout
	}
	return &Throttle{
		failures:    make(map[string]*failure),
		maxFailures: maxFailures,
		lockout:     lockout,
		now:         time.Now,
	}
}

// Allow reports whether key may attempt a login, and if not, how long
// until it may.
func (t *Throttle) Allow(key string) (bool, time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	f, ok := t.failures[key]
	if !ok {
		return true, 0
	}
	now := t.now()
	if now.Before(f.lockedUntil) {
		return false, f.lockedUntil.Sub(now)
	}
	if t.idle(f, now) {
		delete(t.failures, key)
	}
	return true, 0
}

// Fail records a failed attempt. Reaching maxFailures starts the lockout
// and resets the count.
func (t *Throttle) Fail(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	t.sweep(now)

	f, ok := t.failures[key]
	if !ok || t.idle(f, now) {
		f = &failure{}
		t.failures[key] = f
	}
	f.count++
	f.lastFail = now
	if f.count >= t.maxFailures {
		f.count = 0
		f.lockedUntil = now.Add(t.lockout)
	}
}

func (t *Throttle) idle(f *failure, now time.Time) bool {
	return !now.Before(f.lockedUntil) && now.Sub(f.lastFail) >= idleLockouts*t.lockout
}

// sweep drops idle keys at most once per lockout period. Caller holds mu.
func (t *Throttle) sweep(now time.Time) {
	if now.Sub(t.lastSweep) < t.lockout {
		return
	}
	t.lastSweep = now
	for key, f := range t.failures {
		if t.idle(f, now) {
			delete(t.failures, key)
		}
	}
}

// Len returns the number of keys currently tracked.
func (t *Throttle) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.failures)
}

// Succeed forgets key.
func (t *Throttle) Succeed(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.failures, key)
}
