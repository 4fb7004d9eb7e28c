package server

import (
	"log/slog"
	"net/http"

	"github.com/collegegate/collegegate/pkg/core/catalog"
	"github.com/collegegate/collegegate/pkg/gateway/config"
	"github.com/collegegate/collegegate/pkg/gateway/handlers"
	"github.com/collegegate/collegegate/pkg/gateway/mw"
	"github.com/collegegate/collegegate/pkg/store"
)

// Deps carries the collaborators the route handlers need. Research and
// Media may be nil when no Gemini key is configured; their routes then
// answer with a service-unavailable style error.
type Deps struct {
	Catalog   *catalog.Catalog
	Users     store.UserRepository
	Inquiries store.InquiryRepository
	Research  handlers.ResearchService
	Media     handlers.CampusMediaService
}

type Server struct {
	cfg    config.Config
	logger *slog.Logger
	mux    *http.ServeMux
	deps   Deps
}

func New(cfg config.Config, logger *slog.Logger, deps Deps) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if deps.Catalog == nil {
		deps.Catalog = catalog.Default()
	}
	if deps.Users == nil {
		deps.Users = store.NewMemoryUserRepository()
	}
	if deps.Inquiries == nil {
		deps.Inquiries = store.NewMemoryInquiryRepository()
	}

	s := &Server{
		cfg:    cfg,
		logger: logger,
		mux:    http.NewServeMux(),
		deps:   deps,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.Handle("/healthz", handlers.HealthHandler{})

	s.mux.Handle("/v1/colleges", handlers.CollegesHandler{Catalog: s.deps.Catalog})
	s.mux.Handle("/v1/colleges/compare", handlers.CompareHandler{Catalog: s.deps.Catalog})

	s.mux.Handle("/v1/register", handlers.RegisterHandler{Users: s.deps.Users})
	s.mux.Handle("/v1/inquiries", handlers.InquiriesHandler{Inquiries: s.deps.Inquiries})

	s.mux.Handle("/v1/admin/users.csv", handlers.AdminUsersCSVHandler{
		Users: s.deps.Users,
		Token: s.cfg.AdminToken,
	})
	s.mux.Handle("/v1/admin/ban", handlers.AdminBanHandler{
		Users: s.deps.Users,
		Token: s.cfg.AdminToken,
	})

	if s.deps.Research != nil {
		s.mux.Handle("/v1/research", handlers.ResearchHandler{Research: s.deps.Research})
	}
	if s.deps.Media != nil {
		s.mux.Handle("/v1/campus/image", handlers.CampusImageHandler{Media: s.deps.Media})
		s.mux.Handle("/v1/campus/video", handlers.CampusVideoHandler{Media: s.deps.Media})
	}
}

// handlerTimeoutBody is what http.TimeoutHandler writes on a deadline;
// it mirrors the apierror envelope shape.
const handlerTimeoutBody = `{"error":{"type":"api_error","message":"request timed out"}}`

func (s *Server) Handler() http.Handler {
	var h http.Handler = s.mux
	if s.cfg.HandlerTimeout > 0 {
		h = http.TimeoutHandler(h, s.cfg.HandlerTimeout, handlerTimeoutBody)
	}
	h = s.limitBody(h)
	h = mw.CORS(s.cfg, h)
	h = mw.Recover(s.logger, h)
	h = mw.AccessLog(s.logger, h)
	h = mw.RequestID(h)
	return h
}

func (s *Server) limitBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
		}
		next.ServeHTTP(w, r)
	})
}
