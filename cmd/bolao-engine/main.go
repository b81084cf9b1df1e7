package main

import (
	"fmt"
	"os"

	"github.com/ExudusTech/bolao-engine/config"
	"github.com/ExudusTech/bolao-engine/db/redis"
	"github.com/ExudusTech/bolao-engine/events/kafka"
	"github.com/ExudusTech/bolao-engine/httpclient"
	"github.com/ExudusTech/bolao-engine/logging"
	"github.com/ExudusTech/bolao-engine/lottery"
	"github.com/ExudusTech/bolao-engine/provider"
	"github.com/ExudusTech/bolao-engine/server"
	"github.com/spf13/cobra"
)

var configFile string

func main() {
	rootCmd := &cobra.Command{
		Use:   "bolao-engine",
		Short: "Bolão suggestion engine service",
		Long: `Bolão suggestion engine service.

Analyzes the bets of a lottery pool and generates game suggestions that
spend the pool's collected budget: automatic two-phase generation,
caller-directed selections and ad hoc single games. Also checks pools
against official draw results.`,
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE:  runServe,
	}
	serveCmd.Flags().StringVarP(&configFile, "config", "c", "", "Config file path (default: configs/config-<env>.yaml)")

	rootCmd.AddCommand(serveCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	// 1. Load config & logger
	var cfg *config.Config
	var err error
	if configFile != "" {
		cfg, err = config.Load(configFile)
	} else {
		cfg, err = config.LoadByEnv("configs")
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger := logging.New(cfg.Logging)

	// 2. Load the lottery catalog
	catalog, err := lottery.LoadCatalog(cfg.Lottery.CatalogPath)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.Lottery.CatalogPath).Msg("Failed to load lottery catalog")
	}
	logger.Info().Strs("lotteries", catalog.Codes()).Msg("Lottery catalog loaded")

	opts := server.Options{
		Config:  cfg,
		Logger:  logger,
		Catalog: catalog,
	}

	// 3. Initialize dependencies. Redis and Kafka are optional: without
	// Redis every draw lookup hits the API, without Kafka no events are
	// published.
	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient, err = redis.New(cfg.Redis)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
	}

	if cfg.ResultsAPI.BaseURL != "" {
		resultsClient := httpclient.New(httpclient.Config{
			BaseURL: cfg.ResultsAPI.BaseURL,
			Timeout: cfg.ResultsAPI.Timeout,
			Logger:  logger,
		})
		opts.ResultProvider = provider.NewResultProvider(resultsClient, redisClient, logger)
	}

	var kafkaProducer *kafka.Producer
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaProducer, err = kafka.NewProducerWithConfig(kafka.ProducerConfig{
			Brokers: cfg.Kafka.Brokers,
			Logger:  logger,
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to create Kafka producer")
		}
		opts.Publisher = kafkaProducer
	}

	// 4. Create app & register routes
	app := server.New(opts)
	app.UseCommonMiddlewares()
	app.RegisterHealthCheck()
	app.RegisterPoolRoutes()

	// 5. Cleanup & run
	app.OnShutdown(func() {
		if kafkaProducer != nil {
			_ = kafkaProducer.Close()
		}
		if redisClient != nil {
			_ = redisClient.Close()
		}
	})

	logger.Info().Int("port", cfg.Server.Port).Msg("Starting bolao-engine service")
	return app.Run()
}
