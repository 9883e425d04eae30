// Package session encodes the admin identity into a signed, expiring token
// carried in the admin-session cookie. Tokens are HMAC-signed (HS256) so the
// guard can trust the payload it reads back; an unverifiable or expired token
// is treated exactly like no session.
package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	domain "steppingstones/internal/domain/admin"
)

// CookieName is the session cookie per the public contract.
const CookieName = "admin-session"

// TTL is the absolute session lifetime.
const TTL = 24 * time.Hour

// Errors returned by Verify. Callers treat all of them as "no session".
var (
	ErrNoSession = errors.New("no session")
	ErrExpired   = errors.New("session expired")
)

// Claims is the token payload: {userId, email, name, role, expires}.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Codec signs and verifies session tokens.
type Codec struct {
	secret []byte
	now    func() time.Time
}

// NewCodec creates a codec with the given signing secret.
// PRE: secret is non-empty
func NewCodec(secret []byte) *Codec {
	return &Codec{secret: secret, now: time.Now}
}

// NewCodecAt creates a codec with an injectable clock, for tests.
func NewCodecAt(secret []byte, now func() time.Time) *Codec {
	return &Codec{secret: secret, now: now}
}

// Issue builds a signed session token for an authenticated admin.
// PRE: user was returned by a successful authentication
// POST: token verifies for TTL from now and reconstructs the same identity
func (c *Codec) Issue(user domain.User) (string, error) {
	now := c.now()
	claims := Claims{
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Verify parses a session token and reconstructs the admin identity.
// POST: returns ErrNoSession for unparsable or mis-signed tokens and
// ErrExpired past the deadline; a valid token yields an active User
func (c *Codec) Verify(token string) (domain.User, error) {
	if token == "" {
		return domain.User{}, ErrNoSession
	}

	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, jwt.ErrSignatureInvalid
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(c.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.User{}, ErrExpired
		}
		return domain.User{}, ErrNoSession
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return domain.User{}, ErrNoSession
	}

	return domain.User{
		ID:       claims.Subject,
		Email:    claims.Email,
		Name:     claims.Name,
		Role:     claims.Role,
		IsActive: true,
	}, nil
}

// SecureCookies controls the Secure flag; enabled in production by main.
var SecureCookies = false

// SetCookie stores the session token on the response.
// POST: cookie is HttpOnly, SameSite=Lax, max age 24 hours
func SetCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		HttpOnly: true,
		Secure:   SecureCookies,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   int(TTL.Seconds()),
	})
}

// ClearCookie removes the session cookie.
func ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		HttpOnly: true,
		Secure:   SecureCookies,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   -1,
	})
}
