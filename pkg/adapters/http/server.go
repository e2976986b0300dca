package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/goliatone/go-formschema/pkg/loader"
	"github.com/goliatone/go-formschema/pkg/orchestrator"
	"github.com/goliatone/go-formschema/pkg/schema"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// Option configures the handler.
type Option func(*Server)

// WithLogger sets the request logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithCORSOrigins allows cross-origin calls from the listed origins. "*"
// allows any origin.
func WithCORSOrigins(origins ...string) Option {
	return func(s *Server) {
		s.origins = append(s.origins, origins...)
	}
}

// WithMetrics serves the gatherer's metrics on GET /metrics.
func WithMetrics(gatherer prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = gatherer
	}
}

// WithOptionSource serves h on GET /options/{name}, for selects that search
// their options remotely.
func WithOptionSource(name string, h http.Handler) Option {
	return func(s *Server) {
		if name != "" && h != nil {
			s.sources[name] = h
		}
	}
}

// Server exposes an orchestrator over JSON HTTP.
type Server struct {
	orch     *orchestrator.Orchestrator
	logger   *slog.Logger
	origins  []string
	gatherer prometheus.Gatherer
	sources  map[string]http.Handler
}

// NewHandler creates the router:
//
//	GET  /schemas
//	GET  /schemas/{name}
//	POST /schemas/{name}/props
//	POST /schemas/{name}/validate
//	GET  /schemas/{name}/rules
//	POST /schemas/{name}/errors
//	GET  /options/{source}
//	GET  /metrics
func NewHandler(orch *orchestrator.Orchestrator, opts ...Option) http.Handler {
	s := &Server{orch: orch, logger: slog.Default(), sources: map[string]http.Handler{}}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	if len(s.origins) > 0 {
		r.Use(s.cors)
	}

	r.Route("/schemas", func(r chi.Router) {
		r.Get("/", s.listSchemas)
		r.Route("/{name}", func(r chi.Router) {
			r.Get("/", s.getSchema)
			r.Post("/props", s.props)
			r.Post("/validate", s.validate)
			r.Get("/rules", s.rules)
			r.Post("/errors", s.mapErrors)
		})
	})
	for name, h := range s.sources {
		r.Method(http.MethodGet, "/options/"+name, h)
	}
	if s.gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

type propsRequest struct {
	Data         map[string]any  `json:"data"`
	Record       any             `json:"record"`
	ChangedField string          `json:"changedField"`
	Repeater     *repeaterChange `json:"repeater"`
	Locale       string          `json:"locale"`
}

type repeaterChange struct {
	Repeater string `json:"repeater"`
	Index    int    `json:"index"`
	Field    string `json:"field"`
}

type validateRequest struct {
	Data   map[string]any `json:"data"`
	Record any            `json:"record"`
	Locale string         `json:"locale"`
}

type errorsRequest struct {
	Errors map[string][]string `json:"errors"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) listSchemas(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string][]string{"schemas": s.orch.Schemas()})
}

func (s *Server) getSchema(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	def, ok := s.orch.Store().Definition(name)
	if !ok {
		s.writeError(w, r, http.StatusNotFound, loader.ErrSchemaNotFound)
		return
	}
	s.writeJSON(w, http.StatusOK, def)
}

func (s *Server) props(w http.ResponseWriter, r *http.Request) {
	var body propsRequest
	if !s.decode(w, r, &body) {
		return
	}
	req := orchestrator.RenderRequest{
		Schema:       chi.URLParam(r, "name"),
		Data:         body.Data,
		Record:       body.Record,
		ChangedField: body.ChangedField,
		Locale:       body.Locale,
	}
	if body.Repeater != nil {
		req.Repeater = &schema.RepeaterChange{
			Repeater: body.Repeater.Repeater,
			Index:    body.Repeater.Index,
			Field:    body.Repeater.Field,
		}
	}
	result, err := s.orch.Render(r.Context(), req)
	if err != nil {
		s.writeError(w, r, statusFor(err), err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) validate(w http.ResponseWriter, r *http.Request) {
	var body validateRequest
	if !s.decode(w, r, &body) {
		return
	}
	result, err := s.orch.Validate(r.Context(), orchestrator.ValidateRequest{
		Schema: chi.URLParam(r, "name"),
		Data:   body.Data,
		Record: body.Record,
		Locale: body.Locale,
	})
	if err != nil {
		s.writeError(w, r, statusFor(err), err)
		return
	}
	status := http.StatusOK
	if !result.Valid {
		status = http.StatusUnprocessableEntity
	}
	s.writeJSON(w, status, result)
}

func (s *Server) rules(w http.ResponseWriter, r *http.Request) {
	rules, err := s.orch.Rules(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, r, statusFor(err), err)
		return
	}
	s.writeJSON(w, http.StatusOK, rules)
}

func (s *Server) mapErrors(w http.ResponseWriter, r *http.Request) {
	var body errorsRequest
	if !s.decode(w, r, &body) {
		return
	}
	mapping, err := s.orch.MapErrors(r.Context(), chi.URLParam(r, "name"), body.Errors)
	if err != nil {
		s.writeError(w, r, statusFor(err), err)
		return
	}
	s.writeJSON(w, http.StatusOK, mapping)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		s.writeError(w, r, http.StatusBadRequest, errors.New("invalid request body: "+err.Error()))
		return false
	}
	return true
}

func statusFor(err error) int {
	if errors.Is(err, loader.ErrSchemaNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	s.logger.Log(r.Context(), level, "request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"status", status,
		"request_id", middleware.GetReqID(r.Context()),
		"error", err,
	)
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := r.Header.Get("Origin"); origin != "" && s.allowed(origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			w.Header().Add("Vary", "Origin")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) allowed(origin string) bool {
	for _, allowed := range s.origins {
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}
	return false
}
