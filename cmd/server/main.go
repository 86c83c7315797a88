package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/api-sage/finance-ledger/internal/adapter/http/controller"
	"github.com/api-sage/finance-ledger/internal/adapter/http/middleware"
	"github.com/api-sage/finance-ledger/internal/adapter/http/router"
	"github.com/api-sage/finance-ledger/internal/adapter/repository/postgres"
	"github.com/api-sage/finance-ledger/internal/config"
	"github.com/api-sage/finance-ledger/internal/events"
	"github.com/api-sage/finance-ledger/internal/events/kafka"
	"github.com/api-sage/finance-ledger/internal/usecase/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	migrateCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := postgres.RunMigrations(migrateCtx, cfg.DatabaseDSN, cfg.MigrationsDir); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	db, err := postgres.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	customerRepo := postgres.NewCustomerRepository(db)
	accountRepo := postgres.NewAccountRepository(db)
	ledgerRepo := postgres.NewLedgerRepository(db)
	transferRepo := postgres.NewTransferRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)
	transactionRepo := postgres.NewTransactionRepository(db)

	var publisher events.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher := kafka.NewPublisher(cfg.KafkaBrokers)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	}

	customerService := services.NewCustomerService(customerRepo)
	accountService := services.NewAccountService(accountRepo, customerRepo, ledgerRepo)
	transferService := services.NewTransferService(accountRepo, ledgerRepo, transferRepo)
	selector := services.NewFirstActiveAccountSelector(accountRepo)
	nationalService := services.NewNationalTransferService(customerRepo, accountRepo, ledgerRepo, selector, publisher, cfg.KafkaTopic)
	transactionService := services.NewTransactionService(transactionRepo, accountRepo, categoryRepo)

	authMiddleware := middleware.BasicAuth(cfg.ChannelID, cfg.ChannelKey)
	mux := router.New(
		controller.NewCustomerController(customerService),
		controller.NewAccountController(accountService),
		controller.NewTransferController(transferService, nationalService),
		controller.NewTransactionController(transactionService),
		authMiddleware,
	)

	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		log.Printf("server listening on %s", cfg.ServerAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
	log.Println("server stopped")
}
