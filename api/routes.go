package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/spendwise/internal/handlers/v1/budget"
	"github.com/carson-networks/spendwise/internal/handlers/v1/dashboard"
	"github.com/carson-networks/spendwise/internal/handlers/v1/report"
	"github.com/carson-networks/spendwise/internal/handlers/v1/status"
	"github.com/carson-networks/spendwise/internal/handlers/v1/transaction"
	"github.com/carson-networks/spendwise/internal/logging"
	"github.com/carson-networks/spendwise/internal/service"
	"github.com/carson-networks/spendwise/internal/storage"
)

const shutdownTimeout = 30 * time.Second

type Rest struct {
	Logger   *logrus.Logger
	Port     string
	Storage  *storage.Storage
	Service  *service.Service
	Location *time.Location
}

// Handler builds the router: /status on plain net/http, everything under
// /v1 through huma.
func (r *Rest) Handler() http.Handler {
	mux := http.NewServeMux()

	statusHandler := status.NewHandler(r.Storage)
	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	api := humago.New(mux, huma.DefaultConfig("SpendWise", "1.0.0"))
	api.UseMiddleware(logging.HumaMiddleware(r.Logger))

	transaction.NewCreateTransactionHandler(r.Service.Transaction).Register(api)
	transaction.NewUpdateTransactionHandler(r.Service.Transaction).Register(api)
	transaction.NewDeleteTransactionHandler(r.Service.Transaction).Register(api)
	transaction.NewListTransactionsHandler(r.Service.Transaction, r.Location).Register(api)

	budget.NewWriteBudgetHandler(r.Service.Budget).Register(api)
	budget.NewReadBudgetHandler(r.Service.Budget).Register(api)

	dashboard.NewDashboardHandler(r.Service.Dashboard).Register(api)
	report.NewReportHandler(r.Service.Report).Register(api)

	return mux
}

// Serve blocks until ctx is cancelled, then drains in-flight requests.
func (r *Rest) Serve(ctx context.Context) error {
	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           r.Handler(),
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		r.Logger.WithField("port", r.Port).Info("HttpServer.Serve.listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
		return err
	case <-ctx.Done():
	}

	r.Logger.Info("HttpServer.Serve.shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		r.Logger.WithError(err).Error("HttpServer.Serve.shutdown error")
		return err
	}
	return nil
}
