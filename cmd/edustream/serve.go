// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/edustream/internal/app"
	"github.com/pdiddy/edustream/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the course browser JSON API",
	Long: `Serve starts the HTTP API used by the course browser front end: catalog
listing, search with on-demand generation, enrollment, navigation, and the
course tutor. It runs until interrupted and then drains open requests.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default localhost:8080)")
	serveCmd.Flags().StringSlice("allowed-origins", nil, "CORS origins (default: all)")

	_ = viper.BindPFlag("server.address", serveCmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("server.allowed_origins", serveCmd.Flags().Lookup("allowed-origins"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	d, err := newDeps()
	if err != nil {
		return err
	}
	defer d.log.Sync()

	if d.cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	a := app.New(d.store, d.gen, d.client, d.log)
	router := server.NewRouter(server.RouterConfig{
		App:            a,
		Log:            d.log,
		AllowedOrigins: d.cfg.Server.AllowedOrigins,
	})
	srv := server.New(d.cfg.Server, router)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv.Start()
	d.log.Info("listening", "addr", srv.Addr(), "model", d.client.Model())

	select {
	case <-ctx.Done():
		d.log.Info("shutting down")
	case err := <-srv.Notify():
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	}

	if err := srv.Shutdown(); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return <-srv.Notify()
}
