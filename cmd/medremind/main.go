package main

import (
	"context"
	"errors"
	"medremind/internal/app"
	"medremind/internal/app/deps"
	"medremind/internal/app/services"
	"medremind/internal/scheduler"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	dl "medremind/internal/core/domain/logging"
)

func main() {
	deps, shutdownDeps := deps.InitDeps()
	services := services.InitServices(deps)

	var reminderScheduler *scheduler.Scheduler
	if deps.Config.SchedulerEnabled {
		reminderScheduler = initScheduler(deps, services)
		reminderScheduler.Start()
	}

	httpServer := app.InitHttpServer(deps, services)
	go start(httpServer, deps)

	stopCh, closeCh := createChannel()
	defer closeCh()

	<-stopCh
	shutdown(context.Background(), httpServer, reminderScheduler, deps, shutdownDeps)
}

func initScheduler(deps *deps.Deps, services *services.Services) *scheduler.Scheduler {
	s, err := scheduler.New(
		deps.Logger,
		services.CheckDueReminders,
		deps.Config.Location(),
		deps.Config.SchedulerSpec,
	)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not init reminder scheduler.", dl.Entry("err", err))
		panic(err)
	}
	return s
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
		dl.Entry("authEnabled", deps.Config.AuthEnabled),
		dl.Entry("schedulerEnabled", deps.Config.SchedulerEnabled),
		dl.Entry("timeZone", deps.Config.TimeZone),
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
	reminderScheduler *scheduler.Scheduler,
	deps *deps.Deps,
	shutDownDeps func(),
) {
	ctx, cancel := context.WithTimeout(ctx, deps.Config.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		deps.Logger.Warning(ctx, "HTTP server did not shut down cleanly.", dl.Entry("err", err))
	}
	if reminderScheduler != nil {
		// Errors are logged by the scheduler.
		reminderScheduler.Stop(ctx)
	}

	shutDownDeps()
	deps.Logger.Info(ctx, "HTTP server has shutdowned.")
}
