package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/anvaya/replen/internal/api/handlers"
	"github.com/anvaya/replen/internal/api/middleware"
	"github.com/anvaya/replen/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter wires up the HTTP surface: the allocated plan list (filterable
// by channel and seller flag) and the two summary projections.
func NewRouter(planService *service.PlanService, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	corsConfig := cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalized, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalized) > 0 {
			corsConfig.AllowOrigins = normalized
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	planHandler := handlers.NewPlanHandler(planService)

	v1 := router.Group("/api/v1")
	{
		planGroup := v1.Group("/plan")
		{
			planGroup.GET("", planHandler.GetRows)
			planGroup.POST("/refresh", planHandler.Refresh)
			planGroup.GET("/summary/warehouses", planHandler.GetWarehouseSummary)
			planGroup.GET("/summary/top", planHandler.GetTopItems)
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		for _, part := range strings.Split(origin, ",") {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
