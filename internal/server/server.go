package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/agenthands/gbif-reconcile/internal/config"
	"github.com/agenthands/gbif-reconcile/internal/core"
	"github.com/agenthands/gbif-reconcile/internal/core/common"
	"github.com/agenthands/gbif-reconcile/internal/core/model"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

const indexPage = `Please head to <a href="/reconcile">reconciliation service</a>`

type Server struct {
	Reconciler *core.Reconciler
	Metadata   model.ServiceMetadata
	Logger     *slog.Logger
}

func NewServer(reconciler *core.Reconciler, metadata model.ServiceMetadata, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		Reconciler: reconciler,
		Metadata:   metadata,
		Logger:     logger,
	}
}

// NewMetadata builds the service manifest from configuration.
func NewMetadata(cfg config.ServiceConfig) model.ServiceMetadata {
	types := make([]model.TypeRef, 0, len(cfg.DefaultTypes))
	for _, t := range cfg.DefaultTypes {
		types = append(types, model.TypeRef{ID: t, Name: t})
	}

	return model.ServiceMetadata{
		Name:            cfg.Name,
		IdentifierSpace: cfg.IdentifierSpace,
		SchemaSpace:     cfg.SchemaSpace,
		View:            model.ViewTemplate{URL: cfg.ViewURL},
		Preview: model.PreviewTemplate{
			URL:    cfg.PreviewURL,
			Width:  cfg.PreviewWidth,
			Height: cfg.PreviewHeight,
		},
		DefaultTypes: types,
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()
	r.Use(requestID())

	r.GET("/", s.Index)
	r.GET("/index", s.Index)
	r.GET("/reconcile", s.Reconcile)
	r.POST("/reconcile", s.Reconcile)

	return r
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func (s *Server) Index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(indexPage))
}

// Reconcile serves single queries ("query"), batches ("queries") and, when
// neither is given, the service metadata. A "callback" URL parameter wraps
// the response as JSONP.
func (s *Server) Reconcile(c *gin.Context) {
	logger := s.Logger.With(requestIDKey, c.GetString(requestIDKey))
	ctx := c.Request.Context()

	if raw := formValue(c, "query"); raw != "" {
		q, err := common.ParseQuery(raw)
		if err != nil {
			logger.Warn("invalid query", "error", err)
			c.JSONP(http.StatusBadRequest, gin.H{"error": "Invalid query"})
			return
		}

		logger.Info("got query", "query", q.Query)
		result, err := s.Reconciler.Reconcile(ctx, q)
		if err != nil {
			logger.Error("failed to reconcile", "query", q.Query, "error", err)
			c.JSONP(http.StatusInternalServerError, gin.H{"error": "Failed to reconcile"})
			return
		}

		c.JSONP(http.StatusOK, result)
		return
	}

	if raw := formValue(c, "queries"); raw != "" {
		queries, err := common.ParseQueries(raw)
		if err != nil {
			logger.Warn("invalid queries", "error", err)
			c.JSONP(http.StatusBadRequest, gin.H{"error": "Invalid queries"})
			return
		}

		logger.Info("got queries", "count", len(queries))
		results, err := s.Reconciler.ReconcileBatch(ctx, queries)
		if err != nil {
			logger.Error("failed to reconcile batch", "error", err)
			c.JSONP(http.StatusInternalServerError, gin.H{"error": "Failed to reconcile"})
			return
		}

		c.JSONP(http.StatusOK, results)
		return
	}

	c.JSONP(http.StatusOK, s.Metadata)
}

// formValue reads a form body field, falling back to the URL query string.
func formValue(c *gin.Context, key string) string {
	if v := c.PostForm(key); v != "" {
		return v
	}
	return c.Query(key)
}
