package app

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/parkwoobin/News-temperature/internal/config"
	"github.com/parkwoobin/News-temperature/internal/logger"
	"github.com/parkwoobin/News-temperature/internal/ratelimit"
	"github.com/parkwoobin/News-temperature/internal/server"
	"github.com/parkwoobin/News-temperature/internal/session"
)

// Run wires the service together and blocks serving HTTP.
func Run() {
	// .env is optional, real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger.Init()
	logger.Info("starting news temperature server",
		"addr", cfg.ListenAddr,
		"model_mode", cfg.DefaultModelMode,
		"max_results_cap", cfg.MaxResultsCap,
	)

	var limiter *ratelimit.AIRateLimiter
	if cfg.MaxAIRequests > 0 {
		limiter = ratelimit.NewAIRateLimiter(map[string]int{
			"openai": cfg.MaxAIRequests,
			"gemini": cfg.MaxAIRequests,
		}, cfg.MaxAIRequests*2)
	}

	sessions := session.NewStore(cfg.SessionTTL)

	srv := server.New(cfg, sessions, limiter)
	router := srv.Router()

	logger.Info("listening", "addr", cfg.ListenAddr, "session_ttl", cfg.SessionTTL.String())
	if err := router.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("server: %v", err)
	}
}
