// Package server implements the HTTP API mode: a JSON conversion endpoint
// with Prometheus instrumentation, security headers and graceful shutdown.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/bitcalc/bits"
	"github.com/agbru/bitcalc/internal/cli"
	"github.com/agbru/bitcalc/internal/config"
	"github.com/agbru/bitcalc/internal/logging"
)

const (
	// maxRequestBody bounds the size of a conversion request.
	maxRequestBody = 64 << 10
	// shutdownGrace is how long in-flight requests get to finish.
	shutdownGrace = 5 * time.Second
)

// Server is the HTTP API server.
type Server struct {
	cfg      config.AppConfig
	security SecurityConfig
	metrics  *Metrics
	logger   logging.Logger
	version  string
}

// New creates a new Server with the default security configuration.
func New(cfg config.AppConfig, logger logging.Logger, version string) *Server {
	return &Server{
		cfg:      cfg,
		security: DefaultSecurityConfig(),
		metrics:  NewMetrics(),
		logger:   logger,
		version:  version,
	}
}

// ConvertRequest is the JSON body of a conversion request.
type ConvertRequest struct {
	// Literal is the input to parse, in the standalone literal grammar.
	Literal string `json:"literal"`
	// Radixes selects the output radixes. Defaults to [2, 8, 10, 16].
	Radixes []int `json:"radixes,omitempty"`
	// MaxFrac caps the fractional digits of fixed-point renderings.
	MaxFrac int `json:"maxFrac,omitempty"`
}

// ConvertResponse is the JSON body of a successful conversion.
type ConvertResponse struct {
	Literal    string            `json:"literal"`
	Bitwidth   uint              `json:"bitwidth"`
	Signed     bool              `json:"signed"`
	FixedPoint *int              `json:"fixedPoint,omitempty"`
	Pattern    string            `json:"pattern"`
	Forms      map[string]string `json:"forms"`
	DurationUs int64             `json:"durationUs"`
}

// ErrorResponse is the JSON body of a failed request.
type ErrorResponse struct {
	Error  string `json:"error"`
	Kind   string `json:"kind,omitempty"`
	Offset *int   `json:"offset,omitempty"`
}

// Handler builds the full request router with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/convert", s.wrap(s.handleConvert))
	mux.HandleFunc("/healthz", s.wrap(s.handleHealthz))
	mux.HandleFunc("/metrics", s.wrap(s.handleMetrics))
	return mux
}

// wrap applies the security and metrics middleware to a handler.
func (s *Server) wrap(h http.HandlerFunc) http.HandlerFunc {
	return SecurityMiddleware(s.security, s.metricsMiddleware(h))
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// metricsMiddleware tracks active requests, totals and latency.
func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncrementActiveRequests()
		defer s.metrics.DecrementActiveRequests()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next(rec, r)
		s.metrics.ObserveRequest(time.Since(start).Seconds(), rec.status >= 400)
	}
}

// handleConvert evaluates a literal and returns its renderings.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "use POST", nil)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	var req ConvertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body", err)
		return
	}
	if req.Literal == "" {
		s.writeError(w, http.StatusBadRequest, "missing literal", nil)
		return
	}
	radixes := req.Radixes
	if len(radixes) == 0 {
		radixes = cli.DefaultRadixes
	}
	for _, radix := range radixes {
		if radix < 2 || radix > 36 {
			s.writeError(w, http.StatusBadRequest,
				fmt.Sprintf("radix %d out of range (2 to 36)", radix), nil)
			return
		}
	}
	maxFrac := req.MaxFrac
	if maxFrac <= 0 {
		maxFrac = s.cfg.MaxFrac
	}

	c, err := cli.ConvertLiteral(req.Literal, radixes, maxFrac)
	if err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, "conversion failed", err)
		return
	}
	if c.Bw > s.security.MaxWidth {
		s.writeError(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("bitwidth %d exceeds the limit of %d", c.Bw, s.security.MaxWidth), nil)
		return
	}

	forms := make(map[string]string, len(c.Forms))
	for radix, v := range c.Forms {
		forms[strconv.Itoa(radix)] = v
	}
	resp := ConvertResponse{
		Literal:    c.Literal,
		Bitwidth:   c.Bw,
		Signed:     c.Signed,
		Pattern:    "0x" + c.Hex,
		Forms:      forms,
		DurationUs: c.Duration.Microseconds(),
	}
	if c.HasFp {
		fp := c.Fp
		resp.FixedPoint = &fp
	}

	s.logger.Debug("conversion served",
		logging.String("literal", c.Literal),
		logging.Uint64("bitwidth", uint64(c.Bw)))
	s.writeJSON(w, http.StatusOK, resp)
}

// handleHealthz reports liveness.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "use GET", nil)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": s.version,
	})
}

// handleMetrics serves the Prometheus exposition endpoint.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "use GET", nil)
		return
	}
	s.metrics.WritePrometheus(w, r)
}

// writeJSON writes a JSON response with the given status.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encoding response", err)
	}
}

// writeError writes a JSON error response, surfacing parse error details
// when the cause carries them.
func (s *Server) writeError(w http.ResponseWriter, status int, msg string, cause error) {
	resp := ErrorResponse{Error: msg}
	if cause != nil {
		resp.Error = msg + ": " + cause.Error()
		var perr *bits.ParseError
		if errors.As(cause, &perr) {
			resp.Kind = perr.Kind.String()
			off := perr.Off
			resp.Offset = &off
		}
	}
	if s.logger != nil {
		s.logger.Debug("request rejected",
			logging.Int("status", status),
			logging.String("error", resp.Error))
	}
	s.writeJSON(w, status, resp)
}

// Run serves the API until the context is canceled, then shuts down
// gracefully. It blocks until the listener has closed.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("server listening",
		logging.String("addr", s.cfg.Addr),
		logging.String("version", s.version))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		s.logger.Info("server shutting down")
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
