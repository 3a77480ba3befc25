package utils // package utils provides helper functions for hashing and session tokens

import (
    "errors" // sentinel error for rejected tokens
    "time"   // expiry calculations

    "github.com/golang-jwt/jwt/v5" // JWT library for creating and parsing signed tokens
)

// ErrInvalidToken is returned when a presented session token fails signature
// or claim validation.
var ErrInvalidToken = errors.New("invalid session token")

// SessionToken is a signed HS256 JWT asserting an authenticated admin
// session, together with its expiry. The token replaces the reversible
// encoding the original console used: holders of the storage can still wipe a
// session, but they can no longer mint one without the signing secret.
type SessionToken struct {
    Token string    // the serialized JWT string
    Exp   time.Time // the UTC expiration time
}

// NewSessionToken builds and signs an HS256 JWT for the admin session. The
// claims carry the subject (username), role, issuance time and expiry; ttl
// controls the validity window.
func NewSessionToken(secret, username, role string, ttl time.Duration) (SessionToken, error) {
    now := time.Now().UTC()
    exp := now.Add(ttl)
    claims := jwt.MapClaims{
        "sub":  username,
        "role": role,
        "iat":  now.Unix(),
        "exp":  exp.Unix(),
    }
    t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    signed, err := t.SignedString([]byte(secret))
    if err != nil {
        return SessionToken{}, err
    }
    return SessionToken{Token: signed, Exp: exp}, nil
}

// ParseSessionToken verifies the signature and expiry of a session token and
// returns the embedded username and role. Tokens signed with an unexpected
// algorithm are rejected.
func ParseSessionToken(secret, raw string) (username, role string, err error) {
    tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
        if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, ErrInvalidToken
        }
        return []byte(secret), nil
    })
    if err != nil || !tok.Valid {
        return "", "", ErrInvalidToken
    }
    claims, ok := tok.Claims.(jwt.MapClaims)
    if !ok {
        return "", "", ErrInvalidToken
    }
    username, _ = claims["sub"].(string)
    role, _ = claims["role"].(string)
    if username == "" || role == "" {
        return "", "", ErrInvalidToken
    }
    return username, role, nil
}
