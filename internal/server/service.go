package server

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/jiwoo-han/testcase-gen/internal/common"
	"github.com/jiwoo-han/testcase-gen/internal/pipeline"
)

// Server is the HTTP ingress: one route for upload->testItems, one for
// testItems->xlsx, plus a health probe.
type Server struct {
	proc   *pipeline.Processor
	logger *slog.Logger
}

func NewServer(proc *pipeline.Processor, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{proc: proc, logger: logger}
}

// Register mounts routes and shared middleware on the echo instance.
func (s *Server) Register(e *echo.Echo) {
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	// Backstop above the handler's own size gate, so an abusive stream is cut
	// off before it is buffered. The gate still owns the 400 response.
	e.Use(middleware.BodyLimit("12M"))
	e.Use(s.requestLogger)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.POST("/api/upload", s.handleUpload)
	e.POST("/api/generate", s.handleGenerate)
}

// errorBody is the JSON shape of every failure response.
type errorBody struct {
	Error string `json:"error"`
}

// respondError maps the pipeline error taxonomy onto HTTP statuses and always
// returns a short human-readable message.
func (s *Server) respondError(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, common.ErrUnsupportedFormat),
		errors.Is(err, common.ErrSizeExceeded),
		errors.Is(err, common.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, common.ErrServiceUnavailable):
		status = http.StatusServiceUnavailable
	}

	msg := err.Error()
	var appErr *common.AppError
	if errors.As(err, &appErr) {
		msg = appErr.Message
	}

	s.logger.Warn("http.request.failed",
		"path", c.Path(),
		"status", status,
		"error", err,
	)
	return c.JSON(status, errorBody{Error: msg})
}

func (s *Server) requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		rid := c.Response().Header().Get(echo.HeaderXRequestID)
		c.SetRequest(c.Request().WithContext(
			common.WithRequestID(c.Request().Context(), rid)))

		err := next(c)

		s.logger.Info("http.request",
			"req_id", rid,
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			"status", c.Response().Status,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return err
	}
}
