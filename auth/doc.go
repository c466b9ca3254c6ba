// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides credential checks and token generation.

# Admin Keys

After a successful admin login the server hands out an HMAC-SHA256 key
derived from the stored admin username and bcrypt hash:

	adminKey := auth.GenerateAdminKey(username, passwordHash, salt)
	err := auth.ValidateAdminKey(username, passwordHash, adminKey, salt)

The key is URL-safe base64 without padding. It is deterministic, so it can
be validated without storing it. Any credential change produces a new
bcrypt hash, which revokes every key handed out before.

# Admin Passwords

Passwords are stored as bcrypt hashes only:

	hash, err := auth.HashPassword(password)
	ok := auth.MatchCredentials(storedUser, hash, username, password)

# Voter Tokens

Voter tokens are random 24-byte (192-bit) secrets:

	token, err := auth.GenerateVoterToken()

Tokens are URL-safe base64 encoded and sent back in the X-Voter-Token
header. ValidateTokenFormat rejects malformed values before any lookup.
*/
package auth
