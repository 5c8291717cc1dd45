// internal/httpserver/session.go
//
// Session identity and per-session serialization.
//   - A session token is an HS256 JWT whose "sid" claim is the game ID.
//   - Tokens travel in the reddle_session cookie or an Authorization: Bearer header.
//   - sessionLocks serializes load → mutate → save on one game.

package httpserver

import (
	"errors"
	"hash/fnv"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const sessionCookieName = "reddle_session"

var errNoSession = errors.New("no session")

// signSession creates a token for game sid, valid for cfg.SessionDays.
func (s *Server) signSession(sid string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(time.Duration(s.cfg.SessionDays) * 24 * time.Hour)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid": sid,
		"exp": exp.Unix(),
		"iat": now.Unix(),
	})
	ss, err := t.SignedString([]byte(s.cfg.JWTSecret))
	return ss, exp, err
}

// sessionID extracts and verifies the caller's session token.
// Returns errNoSession if there is none or it does not verify.
func (s *Server) sessionID(r *http.Request) (string, error) {
	return s.sessionIDFromToken(bearerOrCookie(r))
}

// sessionIDFromToken verifies tok and returns its "sid" claim.
func (s *Server) sessionIDFromToken(tok string) (string, error) {
	if tok == "" {
		return "", errNoSession
	}
	claims := jwt.MapClaims{}
	t, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !t.Valid {
		return "", errNoSession
	}
	sid, _ := claims["sid"].(string)
	if sid == "" {
		return "", errNoSession
	}
	return sid, nil
}

// setSessionCookie writes the session cookie with appropriate security attributes.
func (s *Server) setSessionCookie(w http.ResponseWriter, token string, exp time.Time) {
	secure := s.cfg.Production()
	sameSite := http.SameSiteLaxMode
	if secure {
		sameSite = http.SameSiteNoneMode // required for cross-site clients when Secure
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite,
		Expires:  exp,
	})
}

// bearerOrCookie extracts a bearer token from the Authorization header or the session cookie.
func bearerOrCookie(r *http.Request) string {
	// Authorization: Bearer <token>
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(sessionCookieName); err == nil {
		return c.Value
	}
	return ""
}

// sessionLocks is a fixed set of mutexes; a session always maps to the same one.
type sessionLocks [64]sync.Mutex

// lock acquires the mutex for sid and returns its unlock func.
func (l *sessionLocks) lock(sid string) func() {
	h := fnv.New32a()
	_, _ = h.Write([]byte(sid))
	m := &l[h.Sum32()%uint32(len(l))]
	m.Lock()
	return m.Unlock
}
