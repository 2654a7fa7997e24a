package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/GregMSThompson/budget-backend/internal/bootstrap"
	"github.com/GregMSThompson/budget-backend/internal/categories"
	"github.com/GregMSThompson/budget-backend/internal/config"
	"github.com/GregMSThompson/budget-backend/internal/handlers"
	"github.com/GregMSThompson/budget-backend/internal/response"
	"github.com/GregMSThompson/budget-backend/internal/router"
	"github.com/GregMSThompson/budget-backend/internal/services"
	"github.com/GregMSThompson/budget-backend/internal/store"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	// bootstrap
	cfg := config.New()
	bs, err := bootstrap.Run(cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	styles := categories.Defaults()

	// stores
	pstore := store.NewSavingsPlanStore(bs.Firestore)
	tstore := store.NewTransactionStore(bs.Firestore)
	cstore := store.NewCategoryStore(bs.Firestore)

	// services
	pserv := services.NewSavingsPlanService(pstore, bs.Location)
	eserv := services.NewExpenseService(pstore, bs.Location)
	tserv := services.NewTransactionService(tstore, styles, bs.Location)
	gserv := services.NewGraphService(tstore, bs.Location)
	sserv := services.NewCategorySummaryService(tstore, styles, bs.Location)
	cserv := services.NewCategoryService(cstore)

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = response.New()
	deps.Firebase = bs.Firebase
	deps.SavingsPlanSvc = pserv
	deps.ExpenseSvc = eserv
	deps.TransactionSvc = tserv
	deps.GraphSvc = gserv
	deps.SummarySvc = sserv
	deps.CategorySvc = cserv

	// router
	r := router.NewRouter(deps)
	bs.Log.Info("server listening", "addr", cfg.Addr(), "timezone", bs.Location.String())
	err = http.ListenAndServe(cfg.Addr(), r)
	exitOnError("server start failed", err, bs.Log)
}
