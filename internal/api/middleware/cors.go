package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"ezcrow.dev/crowdfund/internal/config"
)

// defaultAllowedOrigins is used when no origin is configured.
var defaultAllowedOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}

// CORS allows the dashboard origins to call the API.
func CORS(cfg config.CORSConfig) gin.HandlerFunc {
	return cors.New(buildCORSConfig(cfg))
}

// buildCORSConfig drops wildcard entries and falls back to the local
// dashboard origins when the resulting allowlist is empty.
func buildCORSConfig(cfg config.CORSConfig) cors.Config {
	origins := make([]string, 0, len(cfg.AllowedOrigins))
	for _, o := range cfg.AllowedOrigins {
		if o == "" || o == "*" {
			continue
		}
		origins = append(origins, o)
	}
	if len(origins) == 0 {
		origins = append(origins, defaultAllowedOrigins...)
	}

	return cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", RequestIDHeader},
		ExposeHeaders:    []string{RequestIDHeader},
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           12 * time.Hour,
	}
}
