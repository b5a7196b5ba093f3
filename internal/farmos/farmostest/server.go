// Package farmostest runs an in-process farmOS 1.x server for tests.
package farmostest

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"

	"github.com/go-chi/chi/v5"
)

const (
	sessionCookie = "SESSfieldkit"
	sessionValue  = "session-1"
)

// DefaultFarmJSON is served from /farm.json unless Server.FarmJSON is set.
const DefaultFarmJSON = `{
  "name": "Green Acres",
  "url": "https://farm.example.com",
  "api_version": "1.0",
  "user": {"uid": "7", "name": "farmer", "mail": "farmer@example.com"},
  "mapbox_api_key": "pk.test",
  "system_of_measurement": "us",
  "resources": {
    "log": {
      "farm_activity": {"label": "Activity", "label_plural": "Activities"},
      "farm_observation": {"label": "Observation", "label_plural": "Observations"},
      "farm_harvest": {"label": "Harvest", "label_plural": "Harvests"}
    }
  }
}`

// Server is a fake farmOS site accepting a single account.
type Server struct {
	*httptest.Server

	Username string
	Password string
	Token    string
	// LoginStatus, when non-zero, is returned from /user/login for every attempt.
	LoginStatus int

	mu       sync.Mutex
	farmJSON string

	logins    atomic.Int32
	logouts   atomic.Int32
	infoCalls atomic.Int32
}

// New starts a server accepting username and password. Close it when done.
func New(username, password string) *Server {
	s := &Server{
		Username: username,
		Password: password,
		Token:    "csrf-token-1",
		farmJSON: DefaultFarmJSON,
	}
	s.Server = httptest.NewServer(s.routes())
	return s
}

// SetFarmJSON replaces the /farm.json body.
func (s *Server) SetFarmJSON(body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.farmJSON = body
}

func (s *Server) Logins() int    { return int(s.logins.Load()) }
func (s *Server) Logouts() int   { return int(s.logouts.Load()) }
func (s *Server) InfoCalls() int { return int(s.infoCalls.Load()) }

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Post("/user/login", s.login)
	r.Get("/user/logout", s.logout)
	r.Group(func(r chi.Router) {
		r.Use(s.requireSession)
		r.Get("/restws/session/token", s.token)
		r.With(s.requireToken).Get("/farm.json", s.info)
	})
	return r
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	s.logins.Add(1)
	if s.LoginStatus != 0 {
		w.WriteHeader(s.LoginStatus)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	if r.PostForm.Get("form_id") != "user_login" ||
		r.PostForm.Get("name") != s.Username ||
		r.PostForm.Get("pass") != s.Password {
		// Drupal re-renders the form on a bad password.
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<form id="user-login"></form>`))
		return
	}
	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: sessionValue, Path: "/", HttpOnly: true})
	http.Redirect(w, r, "/user/1", http.StatusFound)
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	s.logouts.Add(1)
	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: "", Path: "/", MaxAge: -1})
	http.Redirect(w, r, "/", http.StatusFound)
}

func (s *Server) token(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	_, _ = w.Write([]byte(s.Token))
}

func (s *Server) info(w http.ResponseWriter, _ *http.Request) {
	s.infoCalls.Add(1)
	s.mu.Lock()
	body := s.farmJSON
	s.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(body))
}

func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(sessionCookie)
		if err != nil || c.Value != sessionValue {
			http.Error(w, "Access denied", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-CSRF-Token") != s.Token {
			http.Error(w, "CSRF validation failed", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
