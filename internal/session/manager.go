package session

import (
	"net/http"

	"github.com/gorilla/sessions"

	"tfl_backend/internal/config"
)

const userIDKey = "userId"

// Manager keeps the signed-in user's id in a signed cookie
type Manager struct {
	store *sessions.CookieStore
	name  string
}

// NewManager builds the cookie store from config. The cookie is HttpOnly,
// SameSite=Lax and Secure in production.
func NewManager(cfg *config.Config) *Manager {
	store := sessions.NewCookieStore([]byte(cfg.Session.Secret))
	maxAge := cfg.SessionMaxAge()
	// MaxAge also bounds the signed timestamp, so stale cookies are rejected
	store.MaxAge(maxAge)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	}
	return &Manager{store: store, name: cfg.Session.CookieName}
}

// UserID returns the user stored in the request's session. A missing,
// tampered or expired cookie is reported as no user.
func (m *Manager) UserID(r *http.Request) (uint, bool) {
	sess, err := m.store.Get(r, m.name)
	if err != nil {
		return 0, false
	}
	id, ok := sess.Values[userIDKey].(uint)
	if !ok || id == 0 {
		return 0, false
	}
	return id, true
}

// Create starts a session for the user and writes the cookie
func (m *Manager) Create(w http.ResponseWriter, r *http.Request, userID uint) error {
	sess, _ := m.store.Get(r, m.name)
	sess.Values = map[interface{}]interface{}{userIDKey: userID}
	sess.Options.MaxAge = m.store.Options.MaxAge
	return sess.Save(r, w)
}

// Destroy expires the cookie
func (m *Manager) Destroy(w http.ResponseWriter, r *http.Request) error {
	sess, _ := m.store.Get(r, m.name)
	sess.Values = map[interface{}]interface{}{}
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}

func (m *Manager) CookieName() string {
	return m.name
}
