// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides session cookies, team PINs and login throttling.

# Sessions

Sessions are stateless signed cookies:

	sessions := auth.NewSessions(secret, secure)
	sess, err := sessions.Issue(w, teamID, false)
	sess, err = sessions.Read(r)
	sessions.Clear(w)

The cookie value is base64url(JSON payload) + "." + base64url(HMAC-SHA256).
Admin sessions have IsAdmin set and TeamID 0. Sessions expire after
SessionTTL.

# PINs

	pin, err := auth.GeneratePIN() // 4 random digits
	ok := auth.ValidPIN(pin)
	ok = auth.EqualPIN(given, stored) // constant time

# Throttling

Throttle counts failed logins per key and locks the key out for a cooldown
once the limit is reached:

	if ok, wait := throttle.Allow(key); !ok { ... }
	throttle.Fail(key)
	throttle.Succeed(key)
*/
package auth
