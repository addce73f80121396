package models

import "github.com/golang-jwt/jwt/v5"

// Session is the authenticated caller, resolved once per request by the
// auth middleware. A request without a Session is signed out.
type Session struct {
	UserID        string `json:"user_id"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
}

// SupabaseClaims represents the JWT claims structure from Supabase Auth.
// See: https://supabase.com/docs/guides/auth/jwts
type SupabaseClaims struct {
	// Standard JWT claims (sub, iss, aud, exp, iat, etc.)
	jwt.RegisteredClaims
	Email         string                   `json:"email"`
	EmailVerified *bool                    `json:"email_verified,omitempty"`
	Phone         string                   `json:"phone"`
	AppMetadata   map[string]interface{}   `json:"app_metadata"`
	UserMetadata  map[string]interface{}   `json:"user_metadata"`
	Role          string                   `json:"role"` // "authenticated" or "anon"
	AAL           string                   `json:"aal"`  // Authentication Assurance Level: "aal1" or "aal2"
	AMR           []map[string]interface{} `json:"amr"`  // Authentication Method References
	SessionID     string                   `json:"session_id"`
	IsAnonymous   bool                     `json:"is_anonymous"`
}

// GetUserID returns the user ID from the JWT subject claim.
func (c *SupabaseClaims) GetUserID() string {
	return c.Subject
}

// IsEmailVerified reads the verification flag. Supabase puts it in
// user_metadata for email sign-ups; some hooks add it at the top level.
func (c *SupabaseClaims) IsEmailVerified() bool {
	if c.EmailVerified != nil {
		return *c.EmailVerified
	}
	if v, ok := c.UserMetadata["email_verified"].(bool); ok {
		return v
	}
	return false
}

// Session converts verified claims into the request session.
func (c *SupabaseClaims) Session() *Session {
	return &Session{
		UserID:        c.GetUserID(),
		Email:         c.Email,
		EmailVerified: c.IsEmailVerified(),
	}
}
