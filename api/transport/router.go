package transport

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hackday-platform/judging-api/logging"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const judgeIDKey = "judgeID"

func NewRouter(ginMode string) *gin.Engine {
	gin.SetMode(ginMode)
	engine := gin.New()
	engine.Use(RequestIDMiddleware())
	engine.Use(CORSMiddleware())
	engine.Use(MetricsMiddleware())

	engine.GET("/metrics", MetricsHandler())

	//Bypass swagger for non-local
	if os.Getenv("APP_ENV") == "local" {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	engine.NoRoute(NoRouteHandler())

	return engine
}

func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, x-judge-token")

		if c.Request.Method == "OPTIONS" {
			logging.Log.Infof("OPTIONS request received:%s", c.Request.URL.Path)
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// RequestIDMiddleware tags every response so a judge's report can be matched
// to the server logs.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Writer.Header().Set("X-Request-ID", requestID)
		c.Set("requestID", requestID)
		c.Next()
	}
}

func NoRouteHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		logging.Log.Infof("No routed request received for:%s", c.Request.URL.Path)
		c.JSON(http.StatusNotFound, gin.H{"code": "PAGE_NOT_FOUND", "message": "Page not found"})
	}
}

// JudgeAuthMiddleware resolves the x-judge-token header against the
// configured judge table and stores the judge identity on the context.
// Everything behind it can trust the identity as given; requests with no
// valid token never reach storage.
func JudgeAuthMiddleware(judges map[string]string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("x-judge-token")
		judgeID, ok := judges[token]

		if token == "" || !ok {
			logging.Log.Warnf("JUDGE: Unauthorized access attempt to %s", c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		c.Set(judgeIDKey, judgeID)
		c.Next()
	}
}

// JudgeID returns the identity set by JudgeAuthMiddleware.
func JudgeID(c *gin.Context) string {
	return c.GetString(judgeIDKey)
}
