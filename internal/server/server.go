package server

import (
	"database/sql"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"blogsite/internal/config"
)

type Server struct {
	DB  *sql.DB
	Cfg config.Config

	tmpl map[string]*template.Template

	CookieName string
}

const sessionTTL = 24 * time.Hour

var funcMap = template.FuncMap{
	"formatDate": func(t time.Time) string {
		return t.Format("January 2, 2006 at 15:04")
	},
}

func New(db *sql.DB, cfg config.Config) (*Server, error) {
	templates := map[string]*template.Template{}
	layout := filepath.Join(cfg.TemplateDir, "layout.html")
	pages, err := filepath.Glob(filepath.Join(cfg.TemplateDir, "*.html"))
	if err != nil {
		return nil, err
	}
	for _, page := range pages {
		if filepath.Base(page) == "layout.html" {
			continue
		}
		t, err := template.New("layout.html").Funcs(funcMap).ParseFiles(layout, page)
		if err != nil {
			return nil, err
		}
		name := strings.TrimSuffix(filepath.Base(page), ".html")
		templates[name] = t
	}
	if err := os.MkdirAll(cfg.UploadDir, 0755); err != nil {
		return nil, err
	}
	return &Server{DB: db, Cfg: cfg, tmpl: templates, CookieName: "session_id"}, nil
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleHome)
	r.Get("/register", s.handleRegisterForm)
	r.Post("/register", s.handleRegister)
	r.Get("/login", s.handleLoginForm)
	r.Post("/login", s.handleLogin)
	r.Get("/logout", s.requireAuth(s.handleLogout))

	r.Get("/admin", s.requireAuth(s.handleAdmin))
	r.Get("/user/dashboard", s.requireAuth(s.handleDashboard))
	r.Post("/user/dashboard", s.requireAuth(s.handleCreateBlog))

	r.Get("/blog/{id}", s.handleBlogDetail)
	r.Get("/blog/edit/{id}", s.requireAuth(s.handleEditBlogForm))
	r.Post("/blog/edit/{id}", s.requireAuth(s.handleEditBlog))
	r.Post("/blog/delete/{id}", s.requireAuth(s.handleDeleteBlog))

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(s.Cfg.StaticDir))))
	return r
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.routes().ServeHTTP(w, r)
}

// render executes the named page inside the layout. Pending flash messages are
// popped into the template data.
func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) {
	t, ok := s.tmpl[name]
	if !ok {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}
	if data == nil {
		data = map[string]any{}
	}
	if _, ok := data["Flash"]; !ok {
		data["Flash"] = s.popFlash(w, r)
	}
	if err := t.ExecuteTemplate(w, "layout", data); err != nil {
		http.Error(w, "render error", http.StatusInternalServerError)
	}
}

func (s *Server) renderNotFound(w http.ResponseWriter, r *http.Request) {
	// pop before WriteHeader so the clearing Set-Cookie still goes out
	flash := s.popFlash(w, r)
	w.WriteHeader(http.StatusNotFound)
	s.render(w, r, "error", map[string]any{
		"User":    s.currentUser(r),
		"Flash":   flash,
		"Status":  http.StatusNotFound,
		"Message": "The page you are looking for does not exist.",
	})
}
