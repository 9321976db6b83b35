package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"text/tabwriter"

	"multibagger-scanner/internal/scanner/config"
	"multibagger-scanner/internal/scanner/dto"
	"multibagger-scanner/internal/scanner/repository"
	"multibagger-scanner/internal/scanner/service"
	"multibagger-scanner/pkg/cache"
	"multibagger-scanner/pkg/logger"
	"multibagger-scanner/pkg/postgres"
	"multibagger-scanner/pkg/ratelimit"
	"multibagger-scanner/pkg/redis"

	"github.com/fatih/color"
	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const presetMultibagger = "multibagger"

var (
	configPath  string
	preset      string
	persist     bool
	matchesOnly bool
)

// thresholdFlags binds each criterion to its flag name. Only flags set on the command line are applied.
var thresholdFlags = []struct {
	name  string
	usage string
	field func(c *dto.ScanCriteria) **float64
}{
	{"min-volume", "minimum daily volume", func(c *dto.ScanCriteria) **float64 { return &c.MinVolume }},
	{"min-price-change", "minimum 7-day price change in percent", func(c *dto.ScanCriteria) **float64 { return &c.MinPriceChangePercent }},
	{"min-market-cap", "minimum market cap in USD (needs --max-market-cap)", func(c *dto.ScanCriteria) **float64 { return &c.MinMarketCap }},
	{"max-market-cap", "maximum market cap in USD (needs --min-market-cap)", func(c *dto.ScanCriteria) **float64 { return &c.MaxMarketCap }},
	{"min-roe", "minimum return on equity in percent", func(c *dto.ScanCriteria) **float64 { return &c.MinROE }},
	{"min-roce", "minimum return on capital employed in percent", func(c *dto.ScanCriteria) **float64 { return &c.MinROCE }},
	{"max-debt-equity", "maximum debt to equity ratio", func(c *dto.ScanCriteria) **float64 { return &c.MaxDebtToEquity }},
	{"min-revenue-growth", "minimum year over year revenue growth in percent", func(c *dto.ScanCriteria) **float64 { return &c.MinRevenueGrowth }},
	{"max-forward-pe", "maximum price to earnings ratio", func(c *dto.ScanCriteria) **float64 { return &c.MaxForwardPE }},
}

var rootCmd = &cobra.Command{
	Use:   "scan SYMBOL [SYMBOL...]",
	Short: "Runs a one-off multibagger scan and prints the results",
	Long: `Fetches price history, quotes and fundamentals for each symbol, evaluates them
against the given thresholds and prints a table. Symbols without usable data are omitted.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScan,
}

func buildCriteria(flags *pflag.FlagSet) (dto.ScanCriteria, error) {
	var criteria dto.ScanCriteria
	switch preset {
	case "":
	case presetMultibagger:
		criteria = service.DefaultMultibaggerCriteria()
	default:
		return criteria, fmt.Errorf("unknown preset %q", preset)
	}
	for _, tf := range thresholdFlags {
		if !flags.Changed(tf.name) {
			continue
		}
		v, err := flags.GetFloat64(tf.name)
		if err != nil {
			return criteria, err
		}
		*tf.field(&criteria) = &v
	}
	return criteria, nil
}

func runScan(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	criteria, err := buildCriteria(cmd.Flags())
	if err != nil {
		return err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	appLogger, err := logger.New(cfg.Logger.Level, "console")
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	var rc *goredis.Client
	if cfg.Cache.Driver == cache.DriverRedis {
		client, err := redis.NewClient(redis.Config{
			Host:        cfg.Redis.Host,
			Port:        cfg.Redis.Port,
			Password:    cfg.Redis.Password,
			DB:          cfg.Redis.DB,
			PoolSize:    cfg.Redis.PoolSize,
			DialTimeout: cfg.Redis.DialTimeoutDuration(),
		})
		if err != nil {
			appLogger.Warn("Redis unavailable, continuing without cache", logger.ErrorField(err))
		} else {
			defer client.Close()
			rc = client.Client
		}
	}
	store := cache.New(cfg.Cache.Driver, rc, cfg.Cache.CleanupInterval, appLogger)

	var results repository.ScanResultRepository
	if persist {
		db, err := postgres.NewDB(postgres.Config{
			Host:            cfg.Database.Host,
			Port:            cfg.Database.Port,
			User:            cfg.Database.User,
			Password:        cfg.Database.Password,
			DBName:          cfg.Database.DBName,
			SSLMode:         cfg.Database.SSLMode,
			TimeZone:        cfg.Database.TimeZone,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
			LogLevel:        cfg.Database.LogLevel,
		})
		if err != nil {
			return fmt.Errorf("--persist needs a database: %w", err)
		}
		if sqlDB, err := db.DB.DB(); err == nil {
			defer sqlDB.Close()
		}
		results = repository.NewScanResultRepository(db.DB)
	}

	// The CLI waits for persistence so the process does not exit mid-write.
	cfg.Scanner.AsyncPersist = false

	limiter := ratelimit.NewSlidingWindow(cfg.Finnhub.MaxRequestPerMinute, cfg.Finnhub.Window)
	scanner := service.NewScannerService(
		cfg,
		appLogger,
		repository.NewYahooFinanceRepository(cfg, appLogger, nil),
		repository.NewFinnhubRepository(cfg, appLogger, limiter, store, nil),
		results,
		nil,
	)

	resp, err := scanner.Scan(ctx, &dto.ScanRequest{Symbols: args, ScanCriteria: criteria})
	if err != nil {
		return err
	}
	printResults(os.Stdout, resp, matchesOnly)
	return nil
}

func printResults(out io.Writer, resp *dto.ScanResponse, onlyMatches bool) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SYMBOL\tPRICE\tVOLUME\t7D %\t30D %\tMKT CAP\tROE\tROCE\tD/E\tREV GR\tP/E\tMATCH")
	for _, r := range resp.Results {
		if onlyMatches && !r.MeetsCriteria {
			continue
		}
		match := "no"
		if r.MeetsCriteria {
			match = color.GreenString("yes")
		}
		fmt.Fprintf(w, "%s\t%.2f\t%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Symbol, r.Price, r.Volume,
			formatOptional(r.PriceChange7d, 2),
			formatOptional(r.PriceChange30d, 2),
			formatOptional(r.MarketCap, 0),
			formatOptional(r.ROE, 2),
			formatOptional(r.ROCE, 2),
			formatOptional(r.DebtEquity, 3),
			formatOptional(r.RevenueGrowth, 2),
			formatOptional(r.ForwardPE, 2),
			match,
		)
	}
	_ = w.Flush()
	fmt.Fprintf(out, "\n%d scanned, %d matched\n", resp.TotalScanned, resp.Matches)
}

func formatOptional(v *float64, places int) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', places, 64)
}

func main() {
	flags := rootCmd.Flags()
	flags.StringVarP(&configPath, "config", "c", "configs/config-scanner.yaml", "Path to the configuration file")
	flags.StringVar(&preset, "preset", "", "Start from a named criteria preset (multibagger)")
	flags.BoolVar(&persist, "persist", false, "Store the scan in the database")
	flags.BoolVar(&matchesOnly, "matches-only", false, "Only print symbols meeting every threshold")
	for _, tf := range thresholdFlags {
		flags.Float64(tf.name, 0, tf.usage)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing scan CLI: %s\n", err)
		os.Exit(1)
	}
}
