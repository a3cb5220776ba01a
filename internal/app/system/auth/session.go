package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

// castwatch has no user accounts: the operator "session" is just a signed
// cookie carrying a random session id. The id scopes the in-memory threshold
// store so two browsers tuning limits at once never see each other's values.

const sessionIDKey = "session_id"

type ctxKey int

const sessionIDCtxKey ctxKey = iota

// SessionManager issues and reads the operator session cookie.
// Use NewSessionManager to create an instance.
type SessionManager struct {
	store  *sessions.CookieStore
	logger *zap.Logger
	name   string
}

// SessionConfigError is returned when session configuration is invalid.
type SessionConfigError struct {
	Message string
}

func (e *SessionConfigError) Error() string {
	return e.Message
}

// NewSessionManager creates a SessionManager.
//
// Parameters:
//   - sessionKey: signing key for cookies (must be ≥32 chars in production)
//   - name: session cookie name (defaults to "castwatch-session" if empty)
//   - domain: cookie domain (empty means current host)
//   - maxAge: session cookie lifetime
//   - secure: if true, cookies are marked Secure (HTTPS production)
//   - logger: zap logger for session error logging
func NewSessionManager(sessionKey, name, domain string, maxAge time.Duration, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if sessionKey == "" {
		return nil, &SessionConfigError{Message: "session key is empty; provide ≥32 random chars"}
	}
	if secure && len(sessionKey) < 32 {
		return nil, &SessionConfigError{Message: "session key is too weak for production; provide ≥32 random chars"}
	}
	if !secure && len(sessionKey) < 32 {
		logger.Warn("session key is weak; 32+ random chars required in production",
			zap.Int("length", len(sessionKey)))
	}

	if name == "" {
		name = "castwatch-session"
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	store.Options = &sessions.Options{
		Domain:   domain,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	logger.Info("session manager initialized",
		zap.Bool("secure", secure),
		zap.String("name", name),
		zap.String("domain", domain))

	return &SessionManager{
		store:  store,
		logger: logger,
		name:   name,
	}, nil
}

// SessionName returns the configured session cookie name.
func (sm *SessionManager) SessionName() string {
	return sm.name
}

// EnsureSession is middleware that guarantees every request carries an
// operator session id, minting one when the cookie is absent, expired, or
// tampered. The id is placed in the request context for handlers.
func (sm *SessionManager) EnsureSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := sm.store.Get(r, sm.name)
		if err != nil {
			// A bad cookie is not fatal; classify for monitoring and fall
			// through to the fresh session gorilla returns alongside err.
			if _, ok := err.(securecookie.MultiError); ok {
				sm.logger.Debug("session cookie rejected, issuing new session",
					zap.Error(err))
			} else {
				sm.logger.Warn("session decode failed, issuing new session",
					zap.Error(err))
			}
		}

		id, _ := sess.Values[sessionIDKey].(string)
		if id == "" {
			id = newSessionID()
			sess.Values[sessionIDKey] = id
			if err := sess.Save(r, w); err != nil {
				sm.logger.Warn("failed to save session cookie", zap.Error(err))
			}
		}

		ctx := context.WithValue(r.Context(), sessionIDCtxKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionID returns the operator session id for the request, or "" when the
// request did not pass through EnsureSession.
func SessionID(r *http.Request) string {
	id, _ := r.Context().Value(sessionIDCtxKey).(string)
	return id
}

// newSessionID returns 24 bytes of randomness, URL-safe base64 encoded.
func newSessionID() string {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failing means the platform is broken; an id derived
		// from the zero buffer would silently merge operator sessions.
		panic("auth: crypto/rand unavailable: " + err.Error())
	}
	return base64.RawURLEncoding.EncodeToString(b)
}
