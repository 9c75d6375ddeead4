package httpserver

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/goliatone/go-sitekit/downloads"
	"github.com/goliatone/go-sitekit/internal/logging"
	"github.com/goliatone/go-sitekit/pkg/interfaces"
)

// Server exposes the password gate over HTTP. Every path below the mount
// point names a blob key; the same URL serves the form, the landing page,
// and the byte transfer depending on method and query.
type Server struct {
	service  *downloads.Service
	logger   interfaces.Logger
	siteName string
	logoURL  string
}

type Option func(*Server)

func WithLogger(logger interfaces.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithBranding sets the site name and logo shown on the form and
// landing pages.
func WithBranding(siteName, logoURL string) Option {
	return func(s *Server) {
		if siteName != "" {
			s.siteName = siteName
		}
		s.logoURL = logoURL
	}
}

func New(service *downloads.Service, opts ...Option) *Server {
	s := &Server{
		service:  service,
		logger:   logging.NoOp(),
		siteName: "Downloads",
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Routes mounts the gate on a chi router. All paths are dynamic blob keys,
// so a single wildcard handles everything.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/*", s.handleGet)
	r.Post("/*", s.handlePost)
	return r
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	if !s.service.Configured() {
		s.unavailable(w)
		return
	}

	path := downloads.NormalizePath(r.URL.Path)
	if path == "" {
		s.renderIndex(w)
		return
	}

	if r.URL.Query().Get("download") == "1" {
		s.streamBlob(w, r, path)
		return
	}

	s.renderForm(w, r, "")
}

func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	if !s.service.Configured() {
		s.unavailable(w)
		return
	}

	path := downloads.NormalizePath(r.URL.Path)
	if path == "" {
		s.renderIndex(w)
		return
	}

	if err := r.ParseForm(); err != nil {
		s.renderForm(w, r, "Wrong password. Try again.")
		return
	}

	password := r.PostFormValue("password")
	email := r.PostFormValue("email")

	switch err := s.service.Gate(password, email); {
	case errors.Is(err, downloads.ErrWrongPassword):
		s.logger.Warn("download denied", "path", path)
		s.renderForm(w, r, "Wrong password. Try again.")
		return
	case errors.Is(err, downloads.ErrEmailRequired):
		s.renderForm(w, r, "Email address is required.")
		return
	case err != nil:
		s.unavailable(w)
		return
	}

	s.service.QueueNotification(r.Context(), email, path)

	s.logger.Info("download authorized", "path", path)
	s.renderLanding(w, r, path)
}

func (s *Server) streamBlob(w http.ResponseWriter, r *http.Request, path string) {
	obj, err := s.service.Fetch(r.Context(), path)
	if err != nil {
		if errors.Is(err, interfaces.ErrBlobNotFound) {
			s.logger.Warn("blob missing", "path", path)
			http.Error(w, "File not found", http.StatusNotFound)
			return
		}
		s.logger.Error("blob fetch failed", "path", path, "error", err)
		http.Error(w, "Download failed", http.StatusInternalServerError)
		return
	}
	defer obj.Body.Close()

	contentType := obj.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", downloads.Filename(path)))
	if obj.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(obj.Size, 10))
	}

	if _, err := io.Copy(w, obj.Body); err != nil {
		s.logger.Warn("blob stream interrupted", "path", path, "error", err)
	}
}

func (s *Server) unavailable(w http.ResponseWriter) {
	s.logger.Error("no download passwords configured")
	http.Error(w,
		"No passwords configured. Add DOWNLOAD_PASSWORD or DOWNLOAD_PASSWORD_1 in the environment.",
		http.StatusInternalServerError,
	)
}

func (s *Server) renderIndex(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, indexData{SiteName: s.siteName}); err != nil {
		s.logger.Error("index render failed", "error", err)
	}
}

func (s *Server) renderForm(w http.ResponseWriter, r *http.Request, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := formData{
		SiteName: s.siteName,
		LogoURL:  s.logoURL,
		Action:   r.URL.Path,
		Message:  message,
	}
	if err := formTemplate.Execute(w, data); err != nil {
		s.logger.Error("form render failed", "error", err)
	}
}

func (s *Server) renderLanding(w http.ResponseWriter, r *http.Request, path string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := landingData{
		SiteName:    s.siteName,
		LogoURL:     s.logoURL,
		Filename:    downloads.Filename(path),
		DownloadURL: r.URL.Path + "?download=1",
	}
	if err := landingTemplate.Execute(w, data); err != nil {
		s.logger.Error("landing render failed", "error", err)
	}
}
