package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"price-ticker/internal/app"
	"price-ticker/internal/cache"
	"price-ticker/internal/config"
	"price-ticker/internal/provider"
	"price-ticker/internal/ticker"
	"price-ticker/pkg/logger"
	"price-ticker/pkg/tracing"

	"github.com/joho/godotenv"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var version = "dev"

var (
	loadEnvFunc    = godotenv.Load
	loadConfigFunc = config.Load
	initLoggerFunc = logger.Init
	initTracerFunc = tracing.InitTracer
	initRedisFunc  = cache.InitRedis
	newFetcherFunc = func(tracer trace.Tracer, cfg *config.Config) ticker.Fetcher {
		return provider.NewCoinDeskProvider(tracer, cfg.BaseURL, cfg.Endpoint, cfg.RequestTimeout())
	}
	notifyContextFunc           = signal.NotifyContext
	stdout            io.Writer = os.Stdout
	stderr            io.Writer = os.Stderr
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// A missing .env file is fine; the environment may already be set.
	_ = loadEnvFunc()

	cfg, err := loadConfigFunc()
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 1
	}
	cli, err := parseFlags(args, cfg, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "flags: %v\n", err)
		return 2
	}

	if err := initLoggerFunc(cfg.LogLevel); err != nil {
		fmt.Fprintf(stderr, "logger: %v\n", err)
		return 1
	}
	defer logger.Sync()

	ctx, stop := notifyContextFunc(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tp, tracer, err := initTracerFunc(ctx, tracing.Options{
		Enabled:  cfg.TracingEnabled,
		Endpoint: cfg.OTelEndpoint,
		Version:  version,
	})
	if err != nil {
		fmt.Fprintf(stderr, "failed to initialize tracer: %v\n", err)
		return 1
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			logger.Log.Warn("error shutting down tracer provider", zap.Error(err))
		}
	}()

	tickerOpts := []ticker.Option{ticker.WithTracer(tracer)}
	if cfg.Colorize {
		tickerOpts = append(tickerOpts, ticker.WithColorizer(ticker.NewLipglossColorizer(stdout)))
	}

	// The quote cache is optional; polling continues without it.
	client, err := initRedisFunc(ctx, cfg.RedisURL)
	if err != nil {
		logger.Log.Warn("quote cache disabled", zap.Error(err))
	}
	if client != nil {
		defer client.Close()
		tickerOpts = append(tickerOpts, ticker.WithPublisher(cache.NewQuoteCache(client, cfg.QuoteTTL())))
	}

	factory := ticker.NewFactory(newFetcherFunc(tracer, cfg), tickerOpts...)
	a, err := app.New(app.Options{
		Mode:       cfg.Mode,
		Currency:   cfg.Currency,
		Currencies: cfg.Currencies,
		Params:     cli.params,
		Interval:   cfg.PollInterval(),
		Factory:    factory,
		Out:        stdout,
		Tracer:     tracer,
	})
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	if err := a.Run(ctx); err != nil {
		logger.Log.Error("ticker stopped", zap.Error(err))
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}
