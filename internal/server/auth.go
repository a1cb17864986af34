package server

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	"blogsite/internal/models"
)

// Session cookies carry "token.signature" where the signature is an
// HMAC-SHA256 of the token under the configured secret key. Tampered cookies
// are dropped before any database lookup.

func signValue(secret []byte, token string) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(token))
	return token + "." + hex.EncodeToString(mac.Sum(nil))
}

func verifyValue(secret []byte, value string) (string, bool) {
	i := strings.LastIndexByte(value, '.')
	if i < 0 {
		return "", false
	}
	token, sig := value[:i], value[i+1:]
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(token))
	expected := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(sig)) {
		return "", false
	}
	return token, true
}

func (s *Server) setSessionCookie(w http.ResponseWriter, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.CookieName,
		Value:    signValue(s.Cfg.SecretKey, token),
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{Name: s.CookieName, Path: "/", MaxAge: -1, HttpOnly: true})
}

// sessionToken extracts and authenticates the session token from the request,
// or returns "" when there is none.
func (s *Server) sessionToken(r *http.Request) string {
	cookie, err := r.Cookie(s.CookieName)
	if err != nil {
		return ""
	}
	token, ok := verifyValue(s.Cfg.SecretKey, cookie.Value)
	if !ok {
		return ""
	}
	return token
}

func (s *Server) currentUser(r *http.Request) *models.User {
	token := s.sessionToken(r)
	if token == "" {
		return nil
	}
	sess, err := models.GetSession(s.DB, token)
	if err != nil || sess.RevokedAt != nil || sess.ExpiresAt.Before(time.Now()) {
		return nil
	}
	user, err := models.GetUserByID(s.DB, sess.UserID)
	if err != nil {
		return nil
	}
	return user
}

func (s *Server) requireAuth(next func(http.ResponseWriter, *http.Request, *models.User)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := s.currentUser(r)
		if user == nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next(w, r, user)
	}
}

// canModify reports whether the user may edit or delete the blog.
func canModify(user *models.User, blog *models.Blog) bool {
	return blog.UserID == user.ID || user.IsAdmin
}
