package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/abhisek/mathsheet/internal/session"
)

const tokenIssuerName = "mathsheet"

// tokenIssuer signs HS256 bearer tokens whose subject is a session id.
type tokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func (t *tokenIssuer) Issue(sessionID string) (string, time.Time, error) {
	now := t.now()
	exp := now.Add(t.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    tokenIssuerName,
		Subject:   sessionID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	})

	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

// Verify returns the session id carried by a valid token.
func (t *tokenIssuer) Verify(raw string) (string, error) {
	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuerName),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return "", err
	}
	if !token.Valid || claims.Subject == "" {
		return "", errors.New("invalid token")
	}
	return claims.Subject, nil
}

type sessionKey struct{}

func sessionFrom(ctx context.Context) *session.Session {
	s, _ := ctx.Value(sessionKey{}).(*session.Session)
	return s
}

// requireSession resolves the caller's session from a bearer token or the
// session cookie, answering 401 when neither names a live session.
func (s *Server) requireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := s.sessionID(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "login required")
			return
		}
		sess, err := s.sessions.Get(id)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "session expired, please log in again")
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), sessionKey{}, sess)))
	}
}

func (s *Server) sessionID(r *http.Request) (string, error) {
	if h := r.Header.Get("Authorization"); h != "" {
		raw, ok := strings.CutPrefix(h, "Bearer ")
		if !ok {
			return "", errors.New("unsupported authorization scheme")
		}
		return s.tokens.Verify(strings.TrimSpace(raw))
	}

	cs, err := s.cookies.Get(r, cookieName)
	if err != nil {
		return "", err
	}
	id, _ := cs.Values[cookieSession].(string)
	if id == "" {
		return "", errors.New("no session cookie")
	}
	return id, nil
}

func (s *Server) saveCookie(w http.ResponseWriter, r *http.Request, sessionID string) {
	// A stale cookie signed with another secret fails to decode; Get still
	// returns a usable new session in that case.
	cs, _ := s.cookies.Get(r, cookieName)
	cs.Values[cookieSession] = sessionID
	if err := cs.Save(r, w); err != nil {
		log.Printf("Session save error: %v", err)
	}
}

func (s *Server) clearCookie(w http.ResponseWriter, r *http.Request) {
	cs, _ := s.cookies.Get(r, cookieName)
	cs.Options.MaxAge = -1
	delete(cs.Values, cookieSession)
	if err := cs.Save(r, w); err != nil {
		log.Printf("Session save error: %v", err)
	}
}
