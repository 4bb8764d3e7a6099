package cli

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/autocrate/autocrate/pkg/buildinfo"
	"github.com/autocrate/autocrate/pkg/errors"
	"github.com/autocrate/autocrate/pkg/pipeline"
	"github.com/autocrate/autocrate/pkg/policy"
	"github.com/autocrate/autocrate/pkg/spec"
)

// serveCommand creates the serve command exposing the pipeline over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr       string
		policyPath string
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the generation pipeline over HTTP",
		Long: `Serve the generation pipeline over HTTP.

Endpoints:

    POST /v1/expressions   generate an expressions file from a JSON crate spec
    GET  /v1/policy        return the effective stock policy as JSON
    GET  /healthz          liveness probe

POST /v1/expressions accepts the crate spec as JSON and returns the
rendered expressions file as text/plain. Invalid inputs map to 400,
infeasible or capacity-exceeded layouts to 422.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, policyPath, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&policyPath, "policy", "", "stock policy TOML file (default: built-in policy)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr, policyPath string, noCache bool) error {
	p, err := loadPolicy(policyPath)
	if err != nil {
		return err
	}

	runner := c.newRunner(noCache)
	defer runner.Close()

	s := &server{
		runner:  runner,
		policy:  p,
		logger:  c.Logger,
		noCache: noCache,
	}

	srv := &http.Server{
		Addr:         addr,
		Handler:      s.routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// server holds the HTTP handler state.
type server struct {
	runner  *pipeline.Runner
	policy  *policy.StockPolicy
	logger  *log.Logger
	noCache bool
}

// routes builds the router.
func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(requestID)

	r.Post("/v1/expressions", s.handleExpressions)
	r.Get("/v1/policy", s.handlePolicy)
	r.Get("/healthz", s.handleHealth)

	return r
}

// requestID tags each request with a UUID for log correlation.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r)
	})
}

// errorResponse is the JSON error body.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// handleExpressions generates an expressions file from a JSON crate
// spec. An optional top-level "policy" object overlays the server's
// effective policy for this request only.
func (s *server) handleExpressions(w http.ResponseWriter, r *http.Request) {
	var req struct {
		spec.CrateSpec
		Policy json.RawMessage `json:"policy"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.New(errors.ErrCodeInvalidSpec, "invalid JSON body"))
		return
	}

	p, err := s.requestPolicy(req.Policy)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	result, err := s.runner.Execute(r.Context(), pipeline.Options{
		Spec:    &req.CrateSpec,
		Policy:  p,
		NoCache: s.noCache,
	})
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	s.logger.Info("served expressions",
		"request_id", w.Header().Get("X-Request-Id"),
		"bytes", len(result.Data),
		"cached", result.CacheHit)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(result.Data)
}

// requestPolicy overlays per-request policy overrides on the server's
// effective policy. The base is deep-copied so concurrent requests
// never share table slices.
func (s *server) requestPolicy(raw json.RawMessage) (*policy.StockPolicy, error) {
	if len(raw) == 0 {
		return s.policy, nil
	}
	base, err := json.Marshal(s.policy)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode base policy")
	}
	var p policy.StockPolicy
	if err := json.Unmarshal(base, &p); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "copy base policy")
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPolicy, err, "parse policy overrides")
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// handlePolicy returns the effective stock policy.
func (s *server) handlePolicy(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.policy)
}

// handleHealth is the liveness probe.
func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// statusFor maps pipeline error codes to HTTP status codes.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidSpec, errors.ErrCodeInvalidPolicy:
		return http.StatusBadRequest
	case errors.ErrCodeLayoutInfeasible, errors.ErrCodeCapacityExceeded:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{
		Code:    string(errors.GetCode(err)),
		Message: errors.UserMessage(err),
	})
}
