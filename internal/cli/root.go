// Package cli wires the ledger core into a cobra command tree. Every
// command takes the account identifier as an explicit argument; there
// is no ambient session state.
package cli

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/stockfolio/stockfolio/config"
	"github.com/stockfolio/stockfolio/engine"
	"github.com/stockfolio/stockfolio/ledger"
	"github.com/stockfolio/stockfolio/market"
	"github.com/stockfolio/stockfolio/portfolio"
)

type rootOptions struct {
	configPath string
	dbPath     string
	logLevel   string
}

func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "stockfolio",
		Short:         "Stockfolio — cash accounts and share trading over an append-only ledger",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global / persistent flags
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to config file (optional)")
	cmd.PersistentFlags().StringVar(&opts.dbPath, "db", "", "SQLite ledger database (overrides config)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug|info|warn|error (overrides config)")

	// Subcommands
	cmd.AddCommand(
		newRegisterCmd(opts),
		newQuoteCmd(opts),
		newBuyCmd(opts),
		newSellCmd(opts),
		newPortfolioCmd(opts),
		newHistoryCmd(opts),
	)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("stockfolio (dev)")
		},
	})

	return cmd
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// app holds the wired-up core for one command invocation.
type app struct {
	store  *ledger.SQLite
	quotes market.QuoteProvider
	engine *engine.Engine
	views  *portfolio.Builder
	log    *logrus.Logger
}

func (o *rootOptions) open() (*app, error) {
	cfg := config.Default()
	if o.configPath != "" {
		loaded, err := config.LoadFromFile(o.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if o.dbPath != "" {
		cfg.Ledger.DBPath = o.dbPath
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	log.SetLevel(level)

	store, err := ledger.NewSQLite(cfg.Ledger.DBPath)
	if err != nil {
		return nil, err
	}

	quotes, err := cfg.Quotes.Provider()
	if err != nil {
		store.Close()
		return nil, err
	}

	return &app{
		store:  store,
		quotes: quotes,
		engine: engine.New(store, quotes,
			engine.WithLogger(log),
			engine.WithSeedCash(cfg.Account.Seed()),
		),
		views: portfolio.NewBuilder(store, quotes),
		log:   log,
	}, nil
}

func (a *app) Close() error {
	return a.store.Close()
}
