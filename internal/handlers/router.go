package handlers

import (
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/justsurfingit/trackjob/internal/auth"
	"github.com/justsurfingit/trackjob/internal/dtos"
	"go.uber.org/zap"
)

// Dependencies is everything the router wires into its handlers.
type Dependencies struct {
	Tokens      *auth.TokenIssuer
	Auth        *AuthHandler
	Jobs        *JobHandler
	FollowUps   *FollowUpHandler
	Settings    *SettingsHandler
	CORSOrigins []string
	Logger      *zap.Logger
}

var registerOnce sync.Once

// NewRouter builds the /api route tree.
func NewRouter(deps Dependencies) *gin.Engine {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			if err := dtos.RegisterValidations(v); err != nil {
				panic(err)
			}
		}
	})

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(deps.Logger))

	config := cors.DefaultConfig()
	if len(deps.CORSOrigins) == 0 {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = deps.CORSOrigins
	}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(config))

	api := r.Group("/api")
	{
		api.GET("/health", HealthCheck)

		api.POST("/auth/register", deps.Auth.Register)
		api.POST("/auth/login", deps.Auth.Login)
	}

	authed := api.Group("", RequireAuth(deps.Tokens))
	{
		authed.GET("/auth/me", deps.Auth.Me)
		authed.PUT("/auth/update-profile", deps.Auth.UpdateProfile)

		// Job Routes
		authed.GET("/jobs", deps.Jobs.ListJobs)
		authed.POST("/jobs", deps.Jobs.CreateJob)
		authed.POST("/jobs/extract", deps.Jobs.ParseJob)
		authed.PUT("/jobs/:id", deps.Jobs.UpdateJob)
		authed.DELETE("/jobs/:id", deps.Jobs.DeleteJob)
		authed.PUT("/jobs/:id/followup", deps.FollowUps.JobFollowUp)
		authed.POST("/jobs/:id/followup", deps.FollowUps.JobFollowUp)

		authed.GET("/followups", deps.FollowUps.ListFollowUps)
		authed.GET("/followups/:jobId", deps.FollowUps.ListJobFollowUps)
		authed.POST("/followups", deps.FollowUps.CreateFollowUp)
		authed.DELETE("/followups/:id", deps.FollowUps.DeleteFollowUp)

		authed.GET("/email/settings", deps.Settings.GetEmailSettings)
		authed.POST("/email/settings", deps.Settings.SaveEmailSettings)
	}

	return r
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("took", time.Since(start)),
		)
	}
}
