package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-hexagonal-users/internal/interface/middleware"
)

// EngineOptions controls the global middleware stack.
type EngineOptions struct {
	CORSOrigins []string
	AccessLog   bool
	Logger      logrus.FieldLogger
}

// NewEngine builds the gin engine with global middleware and all modules
// registered.
func NewEngine(opts EngineOptions, d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP())
	r.Use(cors.New(corsConfig(opts.CORSOrigins)))

	reg := NewRegistry(r)
	// Access log covers /api only.
	if opts.AccessLog && opts.Logger != nil {
		reg.Use(middleware.AccessLog(opts.Logger))
	}
	InitModules(reg, d)
	reg.RegisterAll()
	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	// Credentials cannot be combined with a wildcard origin.
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
