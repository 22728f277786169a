package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"authms/internal/app"
	"authms/internal/app/consumers"
	"authms/internal/app/deps"
	"authms/internal/app/services"
	dl "authms/internal/core/domain/logging"

	"github.com/joho/godotenv"
)

func main() {
	godotenv.Load()

	deps, shutdownDeps := deps.InitDeps()
	services := services.InitServices(deps)
	shutdownConsumers := consumers.InitConsumers(deps, services)

	httpServer := app.InitHttpServer(deps, services)
	go start(httpServer, deps)

	stopCh, closeCh := createChannel()
	defer closeCh()

	<-stopCh
	shutdown(context.Background(), httpServer, deps, shutdownConsumers, shutdownDeps)
}

func createChannel() (chan os.Signal, func()) {
	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	return stopCh, func() {
		close(stopCh)
	}
}

func start(server *http.Server, deps *deps.Deps) {
	deps.Logger.Info(
		context.Background(),
		"HTTP server has started.",
		dl.Entry("address", server.Addr),
		dl.Entry("isTestMode", deps.Config.IsTestMode),
	)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		panic(err)
	} else {
		deps.Logger.Info(context.Background(), "HTTP service is stopping gracefully.")
	}
}

func shutdown(
	ctx context.Context,
	server *http.Server,
	deps *deps.Deps,
	shutdownConsumers func(),
	shutdownDeps func(),
) {
	ctx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		panic(err)
	}

	shutdownConsumers()
	shutdownDeps()
	deps.Logger.Info(ctx, "Server has shut down.")
}
