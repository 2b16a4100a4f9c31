package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/youruser/eidbanner/internal/api"
	"github.com/youruser/eidbanner/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Start the HTTP server answering POST /api/banner with PNG or GIF banners.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, gen, err := setup()
		if err != nil {
			return err
		}
		log := logger.WithNamespace("server")

		gin.SetMode(gin.ReleaseMode)
		router := api.NewRouter(api.NewHandler(gen, cfg.Banner.CacheMaxAge), cfg.CORS)
		srv := &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:      router,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		}

		errc := make(chan error, 1)
		go func() {
			log.Infof("starting server on http://localhost:%d", cfg.Server.Port)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errc <- err
			}
			close(errc)
		}()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		select {
		case err := <-errc:
			return err
		case <-ctx.Done():
		}

		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)
}
