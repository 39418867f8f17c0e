// file: internal/server/server.go
// version: 1.0.0
// guid: 4c5d6e7f-8091-0213-2435-465768798a9b

// Package server exposes the metadata source over HTTP so a host
// application can call identify and cover resolution as JSON endpoints.
package server

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jdfalk/goodreads-metadata/internal/metadata"
)

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// GetDefaultServerConfig returns sensible server defaults.
func GetDefaultServerConfig() ServerConfig {
	return ServerConfig{
		Host:         "localhost",
		Port:         "8080",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// Server wraps the gin engine around one metadata source.
type Server struct {
	source *metadata.Source
	router *gin.Engine
}

// NewServer creates the HTTP surface for a source.
func NewServer(source *metadata.Source) *Server {
	gin.SetMode(gin.ReleaseMode)
	s := &Server{source: source}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger())

	router.GET("/healthz", s.handleHealth)
	router.GET("/identify", s.handleIdentify)
	router.GET("/cover", s.handleCover)

	s.router = router
	return s
}

// Router exposes the engine (for tests).
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start runs the HTTP server until it fails.
func (s *Server) Start(cfg ServerConfig) error {
	addr := fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
	log.Printf("[INFO] listening on %s", addr)
	return srv.ListenAndServe()
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleIdentify(c *gin.Context) {
	if !s.source.IsConfigured() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "goodreads API key not configured"})
		return
	}

	req := metadata.Request{
		Title:       c.Query("title"),
		Identifiers: identifiersFromQuery(c),
	}
	if author := c.Query("author"); author != "" {
		req.Authors = []string{author}
	}

	var results []*metadata.Metadata
	err := s.source.Identify(c.Request.Context(), req, func(mi *metadata.Metadata) {
		results = append(results, mi)
	})
	if err != nil {
		if errors.Is(err, metadata.ErrUnconfigured) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	if len(results) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no match"})
		return
	}
	c.JSON(http.StatusOK, results[0])
}

func (s *Server) handleCover(c *gin.Context) {
	identifiers := identifiersFromQuery(c)
	url := s.source.CoverStore().CachedURL(identifiers)
	if url == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "no cached cover for identifiers"})
		return
	}
	c.Redirect(http.StatusFound, url)
}

func identifiersFromQuery(c *gin.Context) map[string]string {
	identifiers := map[string]string{}
	for _, scheme := range []string{"isbn", "asin", "goodreads"} {
		if v := c.Query(scheme); v != "" {
			key := scheme
			if scheme == "asin" {
				key = "amazon"
			}
			identifiers[key] = v
		}
	}
	return identifiers
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Printf("[INFO] %s %s -> %d (%s)",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}
