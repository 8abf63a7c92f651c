package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/parkwoobin/News-temperature/internal/article"
	"github.com/parkwoobin/News-temperature/internal/config"
	"github.com/parkwoobin/News-temperature/internal/logger"
	"github.com/parkwoobin/News-temperature/internal/metrics"
	"github.com/parkwoobin/News-temperature/internal/naver"
	"github.com/parkwoobin/News-temperature/internal/ratelimit"
	"github.com/parkwoobin/News-temperature/internal/scraper"
	"github.com/parkwoobin/News-temperature/internal/sentiment"
	"github.com/parkwoobin/News-temperature/internal/session"
	"github.com/parkwoobin/News-temperature/internal/summary"
)

const sessionCookie = "session_id"

// LoginRequest carries the search API credentials to validate.
type LoginRequest struct {
	ClientID     string `json:"client_id" binding:"required"`
	ClientSecret string `json:"client_secret" binding:"required"`
}

// SearchRequest is the body of POST /api/search.
type SearchRequest struct {
	Query        string `json:"query"`
	MaxResults   int    `json:"max_results"`
	Days         int    `json:"days"`
	SortBy       string `json:"sort_by"`
	ModelMode    string `json:"model_mode"`
	OpenAIAPIKey string `json:"openai_api_key"`
}

// VerifyFunc checks a credential pair against the search API.
type VerifyFunc func(ctx context.Context, clientID, clientSecret string) error

// CollectFunc runs one search-and-assemble pass for a logged-in user.
type CollectFunc func(ctx context.Context, sess session.Session, req SearchRequest) ([]article.Record, error)

// Server wires the HTTP API together. Verify and Collect default to the
// real clients and can be swapped in tests.
type Server struct {
	cfg      *config.Config
	sessions *session.Store
	limiter  *ratelimit.AIRateLimiter

	verify  VerifyFunc
	collect CollectFunc
}

// New returns a Server bound to cfg and the given session store.
func New(cfg *config.Config, sessions *session.Store, limiter *ratelimit.AIRateLimiter) *Server {
	s := &Server{
		cfg:      cfg,
		sessions: sessions,
		limiter:  limiter,
	}
	s.verify = s.defaultVerify
	s.collect = s.defaultCollect
	return s
}

// Router builds the gin engine with all routes attached.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if len(s.cfg.AllowedOrigins) == 0 || s.cfg.AllowedOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = s.cfg.AllowedOrigins
		corsConfig.AllowCredentials = true
	}
	r.Use(cors.New(corsConfig))

	r.Static("/static", "./static")

	api := r.Group("/api")
	api.POST("/login", s.handleLogin)
	api.POST("/logout", s.handleLogout)
	api.GET("/health", s.handleHealth)
	api.GET("/metrics", s.handleMetrics)

	authed := api.Group("")
	authed.Use(s.requireLogin())
	authed.POST("/search", s.handleSearch)

	return r
}

func (s *Server) defaultVerify(ctx context.Context, clientID, clientSecret string) error {
	client := naver.NewClient(clientID, clientSecret, s.cfg.RequestDelay)
	return client.Verify(ctx)
}

func (s *Server) defaultCollect(ctx context.Context, sess session.Session, req SearchRequest) ([]article.Record, error) {
	client := naver.NewClient(sess.ClientID, sess.ClientSecret, s.cfg.RequestDelay)
	pages := scraper.New(s.cfg.RequestTimeout, s.cfg.MinArticleLen)

	openAIKey := req.OpenAIAPIKey
	if openAIKey == "" {
		openAIKey = s.cfg.OpenAIAPIKey
	}

	var strategy summary.Strategy
	var scorer sentiment.Scorer
	switch {
	case openAIKey != "":
		// A provided key always wins, local models are too heavy for
		// the hosting plan the service targets.
		strategy = summary.NewOpenAIStrategy(openAIKey, s.limiter)
		scorer = sentiment.NewOpenAIScorer(openAIKey, s.limiter)
	case s.cfg.GeminiAPIKey != "":
		gemini, err := summary.NewGeminiStrategy(s.cfg.GeminiAPIKey, s.limiter)
		if err != nil {
			logger.Warn("gemini setup failed, summaries degrade to truncation", "error", err)
		} else {
			defer gemini.Close()
			strategy = gemini
		}
	case req.ModelMode == "kosum-v1-fast":
		strategy = summary.NewKosumFast(nil)
	default:
		strategy = summary.NewKosumTuned(nil)
	}

	dispatcher := summary.NewDispatcher(strategy, summary.DefaultMaxLength)
	assembler := article.New(client, pages, dispatcher, scorer, s.cfg.RequestDelay)

	return assembler.Collect(ctx, article.CollectOptions{
		Query:      req.Query,
		MaxResults: req.MaxResults,
		Days:       req.Days,
		SortBy:     req.SortBy,
	})
}

// requireLogin resolves the session cookie and aborts with 401 when the
// session is missing or expired.
func (s *Server) requireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(sessionCookie)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "로그인이 필요합니다",
			})
			return
		}
		sess, ok := s.sessions.Get(token)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "로그인이 필요합니다",
			})
			return
		}
		c.Set("session", sess)
		c.Next()
	}
}

func (s *Server) handleLogin(c *gin.Context) {
	metrics.Global.IncrementLoginAttempts()

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.Global.IncrementFailedLogins()
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "client_id와 client_secret이 필요합니다",
		})
		return
	}

	req.ClientID = strings.TrimSpace(req.ClientID)
	req.ClientSecret = strings.TrimSpace(req.ClientSecret)

	if err := s.verify(c.Request.Context(), req.ClientID, req.ClientSecret); err != nil {
		if errors.Is(err, naver.ErrUnauthorized) {
			metrics.Global.IncrementFailedLogins()
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Client ID 또는 Client Secret이 올바르지 않습니다.",
			})
			return
		}
		// Transient failures (network, rate limits) must not lock the
		// user out, the credentials get checked again on every search.
		logger.Warn("credential check inconclusive, accepting login", "error", err)
	}

	token, err := s.sessions.Create(req.ClientID, req.ClientSecret)
	if err != nil {
		logger.Error("failed to create session", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "로그인 중 오류가 발생했습니다",
		})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, token, int(s.sessions.TTL().Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "로그인 성공",
	})
}

func (s *Server) handleLogout(c *gin.Context) {
	if token, err := c.Cookie(sessionCookie); err == nil && token != "" {
		s.sessions.Delete(token)
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "로그아웃 성공",
	})
}

func (s *Server) handleSearch(c *gin.Context) {
	start := time.Now()
	metrics.Global.IncrementSearchRequests()

	req := SearchRequest{
		MaxResults: s.cfg.DefaultResults,
		Days:       s.cfg.DefaultDays,
		SortBy:     s.cfg.DefaultSort,
		ModelMode:  s.cfg.DefaultModelMode,
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "잘못된 요청 형식입니다",
		})
		return
	}

	req.Query = strings.TrimSpace(req.Query)
	if req.Query == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "검색어를 입력해주세요",
		})
		return
	}
	if req.MaxResults < 1 {
		req.MaxResults = s.cfg.DefaultResults
	}
	if req.MaxResults > s.cfg.MaxResultsCap {
		logger.Warn("capping max_results", "requested", req.MaxResults, "cap", s.cfg.MaxResultsCap)
		req.MaxResults = s.cfg.MaxResultsCap
	}
	if req.Days < 1 {
		req.Days = s.cfg.DefaultDays
	}
	if req.SortBy != "view" {
		req.SortBy = "date"
	}

	sess := c.MustGet("session").(session.Session)

	records, err := s.collect(c.Request.Context(), sess, req)
	if err != nil {
		logger.Error("search failed", "query", req.Query, "error", err)
		metrics.Global.SetError(err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "뉴스 검색 실패: " + err.Error(),
		})
		return
	}

	metrics.Global.RecordSearchTime(time.Since(start))
	metrics.Global.SetLastRun()

	if records == nil {
		records = []article.Record{}
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    records,
		"count":   len(records),
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "뉴스 온도계 서버가 정상 작동 중입니다.",
	})
}

func (s *Server) handleMetrics(c *gin.Context) {
	stats := metrics.Global.GetStats()
	stats["active_sessions"] = s.sessions.Count()
	if s.limiter != nil {
		stats["ai_rate_limit"] = s.limiter.GetStats()
	}
	c.JSON(http.StatusOK, stats)
}
