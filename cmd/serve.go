package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/YongERong/wth-caifan-lovers/api"
	"github.com/YongERong/wth-caifan-lovers/api/handlers"
	"github.com/YongERong/wth-caifan-lovers/database"
	"github.com/YongERong/wth-caifan-lovers/pkg/utils"
)

const shutdownTimeout = 10 * time.Second

var serveCommand = &cli.Command{
	Name:  "serve",
	Usage: "run the HTTP API",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "port", Usage: "overrides server.port"},
		&cli.BoolFlag{Name: "release", Usage: "run gin in release mode"},
	},
	Action: serve,
}

func serve(c *cli.Context) error {
	if c.Bool("release") {
		gin.SetMode(gin.ReleaseMode)
	}
	port := cfg.Server.Port
	if p := c.String("port"); p != "" {
		port = p
	}

	utils.InitJWT(cfg)

	if err := database.Initialize(cfg.Database, log); err != nil {
		return err
	}
	defer database.Close(log)

	store, err := newSwipeStore(cfg)
	if err != nil {
		return err
	}
	ids, err := newIDMap()
	if err != nil {
		return err
	}
	pipeline, err := newPipeline(cfg)
	if err != nil {
		return err
	}
	processor := newProcessor(cfg, pipeline)

	router := api.NewRouter(log, cfg.Server.CORSOrigins)
	api.SetupRouter(router, api.Handlers{
		Activities: handlers.NewActivityHandler(),
		Swipes:     handlers.NewSwipeHandler(store, ids, log),
		Voice:      handlers.NewVoiceHandler(processor, pipeline, log),
		Friends:    handlers.NewFriendHandler(),
	})

	server := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", zap.String("port", port), zap.String("speech_url", cfg.Speech.URL))
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown server", zap.Error(err))
		}
		return nil
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
