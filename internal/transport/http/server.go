package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/georally/georally-server/internal/auth"
	"github.com/georally/georally-server/internal/config"
	"github.com/georally/georally-server/internal/core"
)

// NewServer builds the HTTP server: the credential issuance API and the
// WebSocket endpoint the coordinator listens behind. The WS handler is
// mounted on the parent mux rather than inside gin because the upgrade
// hijacks the connection and needs the raw ResponseWriter.
func NewServer(coord *core.Coordinator, authService *auth.Service, cfg *config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(LoggerMiddleware(logger), gin.Recovery())

	api := NewAPIHandlers(authService, logger)
	users := router.Group("/api/users")
	users.POST("/register", api.Register)
	users.POST("/login", api.Login)

	router.GET("/healthz", healthHandler)

	mux := stdhttp.NewServeMux()
	mux.Handle("/ws", NewWSHandler(coord, authService, logger))
	mux.Handle("/", router)

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

func healthHandler(c *gin.Context) {
	c.String(stdhttp.StatusOK, "ok")
}
