package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/bricknote/ledger/internal/httpapi"
	"github.com/bricknote/ledger/internal/ledger"
	"github.com/bricknote/ledger/internal/persist"
	filestore "github.com/bricknote/ledger/internal/persist/file"
	pgstore "github.com/bricknote/ledger/internal/persist/postgres"
	"github.com/bricknote/ledger/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Logger (slog to stdout). Level via LOG_LEVEL; format via LOG_FORMAT (json|text, default json)
	logger := buildLoggerFromEnv()
	slog.SetDefault(logger)

	var kv persist.KV
	var closeFn func()

	switch {
	case strings.TrimSpace(os.Getenv("DATABASE_URL")) != "":
		pg, err := pgstore.Open(ctx, strings.TrimSpace(os.Getenv("DATABASE_URL")))
		if err != nil {
			logger.Error("failed to connect to postgres", "err", err)
			os.Exit(1)
		}
		closeFn = pg.Close
		kv = pg
		logger.Info("persistence backend: postgres")
	case strings.TrimSpace(os.Getenv("DATA_DIR")) != "":
		fs, err := filestore.Open(strings.TrimSpace(os.Getenv("DATA_DIR")))
		if err != nil {
			logger.Error("failed to open data dir", "err", err)
			os.Exit(1)
		}
		kv = fs
		logger.Info("persistence backend: file", "dir", os.Getenv("DATA_DIR"))
	default:
		kv = persist.NewMemory()
		logger.Info("persistence backend: memory")
	}

	st, err := store.Open(ctx, kv)
	if err != nil {
		logger.Error("failed to load ledger data", "err", err)
		os.Exit(1)
	}

	if dev := strings.ToLower(strings.TrimSpace(os.Getenv("DEV_SEED"))); dev == "1" || dev == "true" || dev == "yes" {
		seedDev(ctx, st, logger)
	}

	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":8080"
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           httpapi.New(st, logger).Handler(),
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("brick ledger listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctxShutdown); err != nil {
			logger.Error("server shutdown error", "err", err)
		}
	case err := <-errCh:
		logger.Error("server error", "err", err)
	}
	if closeFn != nil {
		closeFn()
	}
}

// seedDev inserts a demo customer with a couple of transactions for quick
// local poking, and prints the ids for copy/paste.
func seedDev(ctx context.Context, st *store.Store, l *slog.Logger) {
	cust, err := st.UpsertCustomer(ctx, "Demo Traders", "5550100")
	if err != nil {
		l.Error("dev seed failed", "err", err)
		return
	}
	jan := time.Date(time.Now().Year(), time.January, 10, 0, 0, 0, 0, time.UTC)
	feb := jan.AddDate(0, 1, 0)
	purchase, _ := st.UpsertTransaction(ctx, store.TransactionInput{
		CustomerID: cust.ID, Type: ledger.TxTypePurchase, Date: jan,
		Item: "Bricks", Qty: 100, Rate: 5, Discount: 20, Paid: 300,
	}, "")
	payment, _ := st.UpsertTransaction(ctx, store.TransactionInput{
		CustomerID: cust.ID, Type: ledger.TxTypeMoney, Date: feb, Paid: 150,
	}, "")
	l.Info("DEV seed", "customer_id", cust.ID, "purchase_id", purchase.ID, "payment_id", payment.ID)
	fmt.Println("==================== DEV SEED ====================")
	fmt.Printf("customer_id: %s\n", cust.ID)
	fmt.Printf("purchase_id: %s\n", purchase.ID)
	fmt.Printf("payment_id: %s\n", payment.ID)
	fmt.Println("==================================================")
}

// parseLogLevel maps env values to slog.Leveler
func parseLogLevel(s string) slog.Leveler {
	switch s {
	case "DEBUG", "debug":
		return slog.LevelDebug
	case "WARN", "WARNING", "warn", "warning":
		return slog.LevelWarn
	case "ERROR", "ERR", "error", "err":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func buildLoggerFromEnv() *slog.Logger {
	level := parseLogLevel(os.Getenv("LOG_LEVEL"))
	format := strings.ToLower(strings.TrimSpace(os.Getenv("LOG_FORMAT")))
	if format == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	}
	// default to JSON
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
