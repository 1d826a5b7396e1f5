package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/julianstephens/tend/internal/config"
	"github.com/julianstephens/tend/internal/logger"
	"github.com/julianstephens/tend/internal/server"
)

type ServeCmd struct {
	Addr string `help:"Address to listen on. Overrides TEND_ADDR." placeholder:"HOST:PORT"`
}

func (c *ServeCmd) Run(ctx *Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if c.Addr != "" {
		cfg.ListenAddr = c.Addr
	}

	if err := logger.Init(logger.Config{Debug: cfg.Debug, LogDir: cfg.LogDir}); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load storage (run 'tend init' first): %w", err)
	}
	defer ctx.Store.Close()

	app := server.New(cfg, ctx.Store).App()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-quit
		logger.Info("shutting down")
		if err := app.Shutdown(); err != nil {
			logger.Error("shutdown failed", "error", err)
		}
	}()

	logger.Info("listening", "addr", cfg.ListenAddr, "storage", ctx.Store.GetConfigPath())
	return app.Listen(cfg.ListenAddr)
}
