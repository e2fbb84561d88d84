package main

import (
	"flag"

	"go.uber.org/zap"

	"github.com/driftwoodco/reshape/pkg/adapter"
	"github.com/driftwoodco/reshape/pkg/logger"
	"github.com/driftwoodco/reshape/relay"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "Path to TOML config file")
	listenAddr := flag.String("listen", "", "Address to listen on (overrides config)")
	provider := flag.String("provider", "", "Upstream provider: openai, anthropic or ollama (overrides config)")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	// Set up logger
	logger := logger.NewLogger(*debug)
	defer logger.Sync()

	config := relay.DefaultConfig()
	if *configPath != "" {
		var err error
		config, err = relay.LoadConfig(*configPath)
		if err != nil {
			logger.Fatal("failed to load config", zap.Error(err), zap.String("path", *configPath))
		}
	}

	// Flags win over the config file
	if *listenAddr != "" {
		config.ListenAddr = *listenAddr
	}
	if *provider != "" {
		config.Provider = adapter.Provider(*provider)
	}

	logger.Info("reshape relay starting",
		zap.String("listen", config.ListenAddr),
		zap.String("provider", string(config.Provider)),
		zap.Bool("debug", *debug),
	)

	r, err := relay.New(config, logger)
	if err != nil {
		logger.Fatal("failed to create relay", zap.Error(err))
	}
	defer r.Close()

	if err := r.Run(); err != nil {
		logger.Fatal("relay server failed", zap.Error(err))
	}
}
