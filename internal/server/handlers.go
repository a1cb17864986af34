package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"blogsite/internal/forms"
	"blogsite/internal/models"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	blogs, err := models.ListBlogs(s.DB)
	if err != nil {
		http.Error(w, "error", http.StatusInternalServerError)
		return
	}
	s.render(w, r, "home", map[string]any{
		"Blogs": blogs,
		"User":  s.currentUser(r),
	})
}

func (s *Server) handleRegisterForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "register", map[string]any{"User": s.currentUser(r)})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	form := forms.ParseRegister(r)
	if errs := form.Validate(); len(errs) > 0 {
		s.render(w, r, "register", map[string]any{"Form": form, "Errors": errs})
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "error", http.StatusInternalServerError)
		return
	}
	_, err = models.CreateUser(s.DB, form.Username, form.Email, string(hash))
	switch {
	case errors.Is(err, models.ErrDuplicateUsername):
		s.flash(w, "danger", "Username already exists. Please choose a different one.")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
	case errors.Is(err, models.ErrDuplicateEmail):
		s.flash(w, "danger", "Email already registered. Please use a different one.")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
	case err != nil:
		http.Error(w, "could not create user", http.StatusInternalServerError)
	default:
		s.flash(w, "success", "Registration successful! You can now log in.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}
}

func (s *Server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "login", map[string]any{"User": s.currentUser(r)})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	form := forms.ParseLogin(r)
	if errs := form.Validate(); len(errs) > 0 {
		s.render(w, r, "login", map[string]any{"Form": form, "Errors": errs})
		return
	}
	// same message for unknown username and wrong password
	user, err := models.GetUserByUsername(s.DB, form.Username)
	if err != nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(form.Password)) != nil {
		s.render(w, r, "login", map[string]any{"Form": form, "Errors": []string{"Invalid username or password."}})
		return
	}
	sid := uuid.NewString()
	expires := time.Now().Add(sessionTTL)
	if err := models.CreateSession(s.DB, user.ID, sid, expires); err != nil {
		http.Error(w, "could not create session", http.StatusInternalServerError)
		return
	}
	s.setSessionCookie(w, sid, expires)
	s.flash(w, "success", "Login successful!")
	if user.IsAdmin {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/user/dashboard", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request, _ *models.User) {
	if token := s.sessionToken(r); token != "" {
		models.RevokeSession(s.DB, token)
	}
	s.clearSessionCookie(w)
	s.flash(w, "info", "You have logged out.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleAdmin(w http.ResponseWriter, r *http.Request, user *models.User) {
	if !user.IsAdmin {
		s.flash(w, "danger", "Access denied!")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	blogs, err := models.ListBlogs(s.DB)
	if err != nil {
		http.Error(w, "error", http.StatusInternalServerError)
		return
	}
	s.render(w, r, "admin", map[string]any{"Blogs": blogs, "User": user})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request, user *models.User) {
	blogs, err := models.ListBlogsByUser(s.DB, user.ID)
	if err != nil {
		http.Error(w, "error", http.StatusInternalServerError)
		return
	}
	s.render(w, r, "dashboard", map[string]any{"Blogs": blogs, "User": user})
}
