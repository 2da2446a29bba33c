package main

import (
	"context"
	"medremind/internal/app/deps"
	"medremind/internal/app/services"
	"medremind/internal/core/domain/logging"
	"medremind/internal/scheduler"
	"os"
	"os/signal"
	"syscall"
)

// Runs only the reminder scheduler, for deployments that keep the HTTP API
// in a separate process with SCHEDULER_ENABLED=false.
func main() {
	deps, shutdownDeps := deps.InitDeps()
	log := deps.Logger
	defer shutdownDeps()

	services := services.InitServices(deps)

	reminderScheduler, err := scheduler.New(
		log,
		services.CheckDueReminders,
		deps.Config.Location(),
		deps.Config.SchedulerSpec,
	)
	if err != nil {
		log.Error(context.Background(), "Could not init reminder scheduler.", logging.Entry("err", err))
		panic(err)
	}

	stopCh, closeCh := createChannel()
	defer closeCh()

	log.Info(
		context.Background(),
		"Starting periodic reminder scheduler.",
		logging.Entry("spec", deps.Config.SchedulerSpec),
		logging.Entry("timeZone", deps.Config.TimeZone),
	)
	reminderScheduler.Start()

	<-stopCh
	ctx, cancel := context.WithTimeout(context.Background(), deps.Config.ShutdownTimeout)
	defer cancel()
	reminderScheduler.Stop(ctx)
}

func createChannel() (chan os.Signal, func()) {
	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	return stopCh, func() {
		close(stopCh)
	}
}
