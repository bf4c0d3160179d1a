// Package server exposes the tax engine over HTTP.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rpgo/income-tax-calculator/internal/calculation"
	"github.com/rpgo/income-tax-calculator/internal/domain"
	money "github.com/rpgo/income-tax-calculator/pkg/decimal"
)

// RequestIDHeader carries the per-request id, echoed back or generated.
const RequestIDHeader = "X-Request-ID"

// Server is the HTTP front end for a TaxEngine. The engine can be swapped
// while serving; each request sees exactly one engine.
type Server struct {
	router *gin.Engine
	engine atomic.Pointer[calculation.TaxEngine]
	log    *zap.Logger
}

// NewServer builds the router. A nil logger discards request logs.
func NewServer(engine *calculation.TaxEngine, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		router: gin.New(),
		log:    log.Named("http"),
	}
	s.engine.Store(engine)
	s.router.Use(gin.Recovery(), s.requestLogger())
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := s.router.Group("/api/v1")
	{
		api.POST("/tax", s.postTax)
		api.GET("/tax", s.getTax)
		api.GET("/slabs", s.getSlabs)
		api.GET("/rules", s.getRules)
	}
}

// SetEngine replaces the engine used by subsequent requests.
func (s *Server) SetEngine(engine *calculation.TaxEngine) {
	s.engine.Store(engine)
	s.log.Info("rules swapped", zap.String("rules", engine.Rules.Name))
}

// Engine returns the engine currently serving requests.
func (s *Server) Engine() *calculation.TaxEngine {
	return s.engine.Load()
}

// Handler returns the router for use with httptest or a custom http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Header(RequestIDHeader, id)

		c.Next()
		s.log.Info("request",
			zap.String("request_id", id),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

// taxRequest accepts income as a JSON number or as a string such as "25,00,000".
type taxRequest struct {
	Income   json.RawMessage `json:"income"`
	Category string          `json:"category"`
}

func (s *Server) postTax(c *gin.Context) {
	var req taxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json: " + err.Error(), "code": "INVALID_REQUEST"})
		return
	}
	raw := string(bytes.Trim(bytes.TrimSpace(req.Income), `"`))
	s.respondReport(c, raw, req.Category)
}

func (s *Server) getTax(c *gin.Context) {
	s.respondReport(c, c.Query("income"), c.Query("category"))
}

func (s *Server) respondReport(c *gin.Context, rawIncome, rawCategory string) {
	income, err := parseIncome(rawIncome)
	if err != nil {
		s.fail(c, err)
		return
	}
	category, err := domain.ParseCategory(rawCategory)
	if err != nil {
		s.fail(c, err)
		return
	}

	report, err := s.Engine().BuildReport(calculation.Request{Income: income.Decimal, Category: category})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (s *Server) getSlabs(c *gin.Context) {
	engine := s.Engine()
	raw := c.Query("income")
	if raw == "" {
		c.JSON(http.StatusOK, gin.H{"rules": engine.Rules.Name, "slabs": engine.ReferenceTable()})
		return
	}
	income, err := parseIncome(raw)
	if err != nil {
		s.fail(c, err)
		return
	}
	category := domain.CategorySalaried
	if rawCategory := c.Query("category"); rawCategory != "" {
		if category, err = domain.ParseCategory(rawCategory); err != nil {
			s.fail(c, err)
			return
		}
	}
	report, err := engine.BuildReport(calculation.Request{Income: income.Decimal, Category: category})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rules": report.RulesName, "slabs": report.Slabs})
}

func (s *Server) getRules(c *gin.Context) {
	c.JSON(http.StatusOK, s.Engine().Rules)
}

// fail reports input errors as 400 and everything else as 500.
func (s *Server) fail(c *gin.Context, err error) {
	code := domain.ErrorCode(err)
	status := http.StatusBadRequest
	if code == "INTERNAL_ERROR" {
		status = http.StatusInternalServerError
		s.log.Error("request failed", zap.Error(err))
	}
	c.JSON(status, gin.H{"error": err.Error(), "code": code})
}

func parseIncome(raw string) (money.Money, error) {
	if raw == "" {
		return money.Money{}, fmt.Errorf("%w: income is required", domain.ErrInvalidIncome)
	}
	m, err := money.NewMoneyFromString(raw)
	if err != nil {
		return money.Money{}, fmt.Errorf("%w: %q is not a number", domain.ErrInvalidIncome, raw)
	}
	if m.IsNegative() {
		return money.Money{}, fmt.Errorf("%w: %s is negative", domain.ErrInvalidIncome, m.String())
	}
	return m, nil
}
