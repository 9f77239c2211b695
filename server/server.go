// Package server is the backend for browser front ends: it serves the site
// document, proxies the GitHub and Medium feeds with a short cache, and
// stores the display preferences.
package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/phanxgames/folio/feeds"
	"github.com/phanxgames/folio/prefs"
	"github.com/phanxgames/folio/site"
)

// Fetcher is the subset of feeds.Client the server uses.
type Fetcher interface {
	Repos(ctx context.Context, user string, max int) ([]feeds.Repo, error)
	Readme(ctx context.Context, owner, repo string) (string, error)
	Posts(ctx context.Context, user string, max int) ([]feeds.Post, error)
}

// Options configures a Server. Zero fields take the defaults noted.
type Options struct {
	Site       *site.Site    // default site.Default()
	Feeds      Fetcher       // default feeds.NewClient(nil)
	Prefs      prefs.Backend // default prefs.NewMemory()
	TTL        time.Duration // feed cache lifetime, default 10m; negative disables
	GitHubUser string        // default Site.Personal.GitHub
	MediumUser string        // default Site.Personal.Medium
	MaxRepos   int           // default 4
	MaxPosts   int           // default 3
	Logger     *log.Logger   // default log.Default()
}

// Server wires the routes over a gin engine.
type Server struct {
	opts   Options
	cache  *sectionCache
	engine *gin.Engine
}

// New builds a server and its routes.
func New(opts Options) *Server {
	if opts.Site == nil {
		opts.Site = site.Default()
	}
	if opts.Feeds == nil {
		opts.Feeds = feeds.NewClient(nil)
	}
	if opts.Prefs == nil {
		opts.Prefs = prefs.NewMemory()
	}
	if opts.TTL == 0 {
		opts.TTL = 10 * time.Minute
	}
	if opts.GitHubUser == "" {
		opts.GitHubUser = opts.Site.Personal.GitHub
	}
	if opts.MediumUser == "" {
		opts.MediumUser = opts.Site.Personal.Medium
	}
	if opts.MaxRepos <= 0 {
		opts.MaxRepos = 4
	}
	if opts.MaxPosts <= 0 {
		opts.MaxPosts = 3
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	s := &Server{opts: opts, cache: newSectionCache(opts.TTL)}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), corsMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	api := r.Group("/api")
	api.GET("/site", s.handleSite)
	api.GET("/repos", s.handleRepos)
	api.GET("/repos/:owner/:repo/readme", s.handleReadme)
	api.GET("/posts", s.handlePosts)
	api.GET("/prefs/:key", s.handleGetPref)
	api.PUT("/prefs/:key", s.handlePutPref)

	s.engine = r
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		s.opts.Logger.Printf("listening on %s", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// corsMiddleware lets pages on other origins call the API.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, PUT, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func (s *Server) handleSite(c *gin.Context) {
	c.JSON(http.StatusOK, s.opts.Site)
}

// serveSection answers from the cache or runs fetch, caching only success.
func (s *Server) serveSection(c *gin.Context, key string, fetch func(ctx context.Context) feeds.Section) {
	if sec, ok := s.cache.get(key); ok {
		c.Header("X-Cache", "hit")
		c.JSON(http.StatusOK, sec)
		return
	}
	sec := fetch(c.Request.Context())
	c.Header("X-Cache", "miss")
	if sec.Failed() {
		c.JSON(http.StatusBadGateway, sec)
		return
	}
	s.cache.put(key, sec)
	c.JSON(http.StatusOK, sec)
}

func (s *Server) handleRepos(c *gin.Context) {
	s.serveSection(c, "repos", func(ctx context.Context) feeds.Section {
		repos, err := s.opts.Feeds.Repos(ctx, s.opts.GitHubUser, s.opts.MaxRepos)
		if err != nil {
			s.opts.Logger.Printf("Error fetching GitHub repositories: %v", err)
		}
		return feeds.RepoSection(repos, err)
	})
}

func (s *Server) handleReadme(c *gin.Context) {
	owner, repo := c.Param("owner"), c.Param("repo")
	s.serveSection(c, "readme:"+owner+"/"+repo, func(ctx context.Context) feeds.Section {
		md, err := s.opts.Feeds.Readme(ctx, owner, repo)
		if err != nil {
			s.opts.Logger.Printf("Error fetching README %s/%s: %v", owner, repo, err)
		}
		return feeds.ReadmeSection(repo, md, err)
	})
}

func (s *Server) handlePosts(c *gin.Context) {
	s.serveSection(c, "posts", func(ctx context.Context) feeds.Section {
		posts, err := s.opts.Feeds.Posts(ctx, s.opts.MediumUser, s.opts.MaxPosts)
		if err != nil {
			s.opts.Logger.Printf("Error fetching Medium feed: %v", err)
		}
		return feeds.PostSection(s.opts.MediumUser, posts, err)
	})
}

func (s *Server) handleGetPref(c *gin.Context) {
	key := c.Param("key")
	v, ok, err := s.opts.Prefs.Get(key)
	switch {
	case errors.Is(err, prefs.ErrUnknownKey):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case err != nil:
		s.opts.Logger.Printf("Error reading preference %s: %v", key, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read preference"})
	case !ok:
		c.JSON(http.StatusNotFound, gin.H{"error": "Preference not set"})
	default:
		c.JSON(http.StatusOK, gin.H{"key": key, "value": v})
	}
}

type prefBody struct {
	Value string `json:"value" binding:"required"`
}

func (s *Server) handlePutPref(c *gin.Context) {
	key := c.Param("key")
	var body prefBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Body must be {\"value\": \"...\"}"})
		return
	}
	if msg := s.validatePref(key, body.Value); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}
	if err := s.opts.Prefs.Set(key, body.Value); err != nil {
		if errors.Is(err, prefs.ErrUnknownKey) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		s.opts.Logger.Printf("Error saving preference %s: %v", key, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save preference"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": key, "value": body.Value})
}

// validatePref returns a client error message for a bad value, or "".
func (s *Server) validatePref(key, value string) string {
	switch key {
	case "theme":
		if value != "light" && value != "dark" {
			return "theme must be light or dark"
		}
	case "spider-theme":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 || n >= len(s.opts.Site.Themes) {
			return "spider-theme must be a palette index"
		}
	}
	return ""
}
