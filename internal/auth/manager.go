// Package auth implements the single-admin session manager: credential
// loading with a configured fallback, login/logout, password change and
// session restoration. The credential record lives in the document store
// under admin_credentials; active sessions live in the session store as two
// redundant records (signed token + plaintext mirror) whose lifetime is
// bounded only by the store's own expiry.
package auth

import (
	"context"
	"encoding/json"
	"time"

	"github.com/urbanchill/cafe-console/internal/model"
	"github.com/urbanchill/cafe-console/internal/repository"
	"github.com/urbanchill/cafe-console/internal/utils"
)

// Session record keys. Single-admin system, so the keys are fixed rather
// than derived per user.
const (
	SessionTokenKey = "admin:session:token"
	SessionUserKey  = "admin:session:user"
)

// RoleAdmin is the only role the console knows about.
const RoleAdmin = "admin"

// Manager owns the admin credential and the session lifecycle.
type Manager struct {
	docs       repository.DocumentStore
	sessions   repository.SessionStore
	secret     string
	bcryptCost int
	ttl        time.Duration
	fallback   model.Credential
}

// NewManager builds a session manager. defaultUser/defaultPass seed the
// built-in credential used until a password change persists an override; the
// password is hashed once here so the plaintext never lingers on the struct.
func NewManager(docs repository.DocumentStore, sessions repository.SessionStore,
	secret string, bcryptCost int, ttl time.Duration, defaultUser, defaultPass string) (*Manager, error) {

	hash, err := utils.HashPassword(defaultPass, bcryptCost)
	if err != nil {
		return nil, err
	}
	return &Manager{
		docs:       docs,
		sessions:   sessions,
		secret:     secret,
		bcryptCost: bcryptCost,
		ttl:        ttl,
		fallback: model.Credential{
			Username:     defaultUser,
			PasswordHash: hash,
			Role:         RoleAdmin,
		},
	}, nil
}

// credential returns the persisted override when present and parseable,
// otherwise the built-in default. A malformed stored record degrades to the
// default rather than locking the admin out.
func (m *Manager) credential(ctx context.Context) model.Credential {
	body, err := m.docs.Get(ctx, repository.KeyCredentials)
	if err != nil {
		return m.fallback
	}
	var cred model.Credential
	if err := json.Unmarshal(body, &cred); err != nil || cred.Username == "" || cred.PasswordHash == "" {
		return m.fallback
	}
	if cred.Role == "" {
		cred.Role = RoleAdmin
	}
	return cred
}

// Issued is the result of a successful login: the session fields plus the
// signed token the client must present on subsequent requests.
type Issued struct {
	Session model.Session
	Token   string
	Expires time.Time
}

// Login verifies the credentials and, on success, issues a session: a signed
// token plus a plaintext mirror, both written with the configured TTL. A
// mismatch returns (nil, nil) with no records created; no lockout or
// attempt counting happens here.
func (m *Manager) Login(ctx context.Context, username, password string) (*Issued, error) {
	cred := m.credential(ctx)
	if username != cred.Username || !utils.VerifyPassword(cred.PasswordHash, password) {
		return nil, nil
	}

	sess := model.Session{
		Username: cred.Username,
		Role:     cred.Role,
		IssuedAt: time.Now().UnixMilli(),
	}
	tok, err := utils.NewSessionToken(m.secret, sess.Username, sess.Role, m.ttl)
	if err != nil {
		return nil, err
	}
	mirror, err := json.Marshal(sess)
	if err != nil {
		return nil, err
	}
	if err := m.sessions.Set(ctx, SessionTokenKey, tok.Token, m.ttl); err != nil {
		return nil, err
	}
	if err := m.sessions.Set(ctx, SessionUserKey, string(mirror), m.ttl); err != nil {
		return nil, err
	}
	return &Issued{Session: sess, Token: tok.Token, Expires: tok.Exp}, nil
}

// Logout deletes both session records unconditionally.
func (m *Manager) Logout(ctx context.Context) error {
	return m.sessions.Del(ctx, SessionTokenKey, SessionUserKey)
}

// ChangePassword verifies the current password and persists a full
// replacement credential record hashed from the new one. Returns false
// without side effects when current does not verify.
func (m *Manager) ChangePassword(ctx context.Context, current, newPassword string) (bool, error) {
	cred := m.credential(ctx)
	if !utils.VerifyPassword(cred.PasswordHash, current) {
		return false, nil
	}
	hash, err := utils.HashPassword(newPassword, m.bcryptCost)
	if err != nil {
		return false, err
	}
	cred.PasswordHash = hash
	body, err := json.Marshal(cred)
	if err != nil {
		return false, err
	}
	if err := m.docs.Put(ctx, repository.KeyCredentials, body); err != nil {
		return false, err
	}
	return true, nil
}

// Restore reports whether a live session exists. Both records must be
// present and the mirror parseable; a malformed mirror wipes both records so
// the system fails safe to logged-out.
func (m *Manager) Restore(ctx context.Context) (model.Session, bool) {
	if _, err := m.sessions.Get(ctx, SessionTokenKey); err != nil {
		return model.Session{}, false
	}
	raw, err := m.sessions.Get(ctx, SessionUserKey)
	if err != nil {
		return model.Session{}, false
	}
	var sess model.Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil || sess.Username == "" {
		_ = m.sessions.Del(ctx, SessionTokenKey, SessionUserKey)
		return model.Session{}, false
	}
	return sess, true
}

// Validate checks a presented bearer token: the signature must verify and
// the token must still match the live session record, so a logout revokes
// outstanding tokens immediately.
func (m *Manager) Validate(ctx context.Context, raw string) (model.Session, bool) {
	username, role, err := utils.ParseSessionToken(m.secret, raw)
	if err != nil {
		return model.Session{}, false
	}
	stored, err := m.sessions.Get(ctx, SessionTokenKey)
	if err != nil || stored != raw {
		return model.Session{}, false
	}
	sess, ok := m.Restore(ctx)
	if !ok || sess.Username != username || sess.Role != role {
		return model.Session{}, false
	}
	return sess, true
}
