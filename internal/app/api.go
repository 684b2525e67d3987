package app

import (
	"go-payroll/internal/bootstrap"
	"go-payroll/internal/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RunAPI serves HTTP until SIGINT or SIGTERM.
func RunAPI(cfg config.Config, logger *zap.Logger) error {
	in, err := connect(cfg, logger, true)
	if err != nil {
		return err
	}
	defer in.Close()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	emitter, err := buildAPI(router, in)
	if err != nil {
		return err
	}

	bootstrap.StartHTTPServer(router, bootstrap.ServerConfig{
		Port:         cfg.HTTP.Port,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}, emitter, logger)
	return nil
}
