package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"price-ticker/internal/config"
	"price-ticker/internal/ticker"
)

// cliOptions holds what the command line adds on top of config.
type cliOptions struct {
	params ticker.Params
}

// parseFlags applies command-line overrides to cfg. Unset flags keep the
// value loaded from the environment.
func parseFlags(args []string, cfg *config.Config, errOut io.Writer) (*cliOptions, error) {
	fs := flag.NewFlagSet("ticker", flag.ContinueOnError)
	fs.SetOutput(errOut)

	mode := fs.String("mode", cfg.Mode, "ticker mode: multi or factory")
	currency := fs.String("currency", cfg.Currency, "currency for factory mode, e.g. bitcoin or BTC")
	currencies := fs.String("currencies", strings.Join(cfg.Currencies, ","), "comma-separated currencies for multi mode (default all)")
	params := fs.String("params", "", `request parameters as a JSON object, e.g. {"market":"cadli","instruments":"BTC-USD"}`)
	baseURL := fs.String("base-url", cfg.BaseURL, "price API base URL")
	interval := fs.Duration("interval", cfg.PollInterval(), "time between checks")
	noColor := fs.Bool("no-color", !cfg.Colorize, "disable colorized output")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	if *interval < time.Second {
		return nil, fmt.Errorf("interval must be at least 1s, got %s", *interval)
	}

	cfg.Mode = strings.ToLower(strings.TrimSpace(*mode))
	cfg.Currency = strings.TrimSpace(*currency)
	cfg.Currencies = splitList(*currencies)
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(*baseURL), "/")
	cfg.PollSecs = int(*interval / time.Second)
	cfg.Colorize = !*noColor

	opts := &cliOptions{}
	if strings.TrimSpace(*params) != "" {
		var raw any
		if err := json.Unmarshal([]byte(*params), &raw); err != nil {
			return nil, fmt.Errorf("decode -params: %w", err)
		}
		p, err := ticker.ParamsFromValue(raw)
		if err != nil {
			return nil, err
		}
		opts.params = p
	}
	return opts, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
