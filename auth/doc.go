// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides actor token validation and ID generation.

# Actor Tokens

Login, registration and 2FA belong to the external identity provider. It hands
each signed-in user a token derived with HMAC-SHA256 from their role and
identity:

	token := auth.GenerateActorToken("ada@example.com", models.RoleVoter, salt)
	actor, err := auth.ValidateActorToken(identity, role, token, salt)

The token is URL-safe base64 encoded without padding. Because it is
deterministic, validation needs only the shared salt (ACTOR_TOKEN_SALT), no
session storage. Identities are lower-cased before signing.

A token for one role never validates for another, so a voter cannot present
their token as an admin.

# ID Generation

Records use random UUIDs:

	id := auth.NewID()
*/
package auth
