package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/spendwise/api"
	"github.com/carson-networks/spendwise/internal/config"
	"github.com/carson-networks/spendwise/internal/logging"
	"github.com/carson-networks/spendwise/internal/notify"
	"github.com/carson-networks/spendwise/internal/operator"
	"github.com/carson-networks/spendwise/internal/service"
	"github.com/carson-networks/spendwise/internal/storage"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logrus.WithError(err).Warn("godotenv.Load")
	}

	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}

	logger := logging.SetupLogging(envConfig.Level())
	logger.WithFields(logrus.Fields{
		"backend":  envConfig.DataBackend,
		"workers":  envConfig.NumWorkers,
		"timezone": envConfig.Timezone,
	}).Info("spendwise starting")

	dbStorage, err := storage.NewStorage(envConfig)
	if err != nil {
		logger.WithError(err).Fatal("storage.NewStorage")
		return
	}
	defer dbStorage.Close()

	publisher, err := notify.NewPublisher(envConfig)
	if err != nil {
		logger.WithError(err).Fatal("notify.NewPublisher")
		return
	}
	defer publisher.Close()

	delegator := operator.NewOperatorDelegator(dbStorage, envConfig.NumWorkers)
	delegator.Start()
	defer delegator.Stop()

	loc := envConfig.Location()
	svc := service.NewService(dbStorage, delegator, publisher, loc)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	httpRest := api.Rest{
		Logger:   logger,
		Port:     envConfig.Port,
		Storage:  dbStorage,
		Service:  svc,
		Location: loc,
	}
	if err := httpRest.Serve(ctx); err != nil {
		logger.WithError(err).Error("api.Serve")
	}
	logger.Info("spendwise stopped")
}
