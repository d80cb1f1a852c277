package main

import (
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/NaokiHung/BA.System-sub000/config"
	"github.com/NaokiHung/BA.System-sub000/internal/routes"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	config.Load()
	config.ConnectDatabases()
	config.ConnectRedis()

	r := gin.Default()
	routes.SetupRoutes(r)

	addr := config.ServerAddr()
	slog.Info("starting server", "addr", addr)
	if err := r.Run(addr); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
