// main.go
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ndelgado/flight-delay-api/config"
	"github.com/ndelgado/flight-delay-api/database"
	"github.com/ndelgado/flight-delay-api/handlers"
	"github.com/ndelgado/flight-delay-api/services"
)

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:   "flight-delay-api",
		Short: "Flight delay prediction service",
		Long:  "Predicts whether a scheduled flight will depart more than 15 minutes late.",
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config/config.yaml", "path to the YAML config file")
	rootCmd.AddCommand(serveCmd(), trainCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP prediction API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := setup(); err != nil {
				return err
			}
			defer database.CloseDB()

			model := newModel()
			h := handlers.NewHandler(model, config.AppConfig.Model.TrainingCSV)

			addr := ":" + config.AppConfig.Server.Port
			zlog.Info().Str("addr", addr).Bool("model_loaded", model.Loaded()).Msg("server starting")
			return h.Router().Run(addr)
		},
	}
}

func trainCmd() *cobra.Command {
	var dataPath string
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train the model from a historical flight CSV and persist it",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := setup(); err != nil {
				return err
			}
			defer database.CloseDB()

			if dataPath == "" {
				dataPath = config.AppConfig.Model.TrainingCSV
			}
			if dataPath == "" {
				return fmt.Errorf("no training CSV given; set --data or model.training_csv")
			}

			// A fresh model: training does not need any previously persisted state.
			model := services.NewDelayModel(config.AppConfig.Model.LocalPath, config.AppConfig.Training)
			result, err := services.TrainFromCSV(dataPath, model)
			if err != nil {
				return err
			}
			zlog.Info().
				Str("run_id", result.RunID).
				Int("rows", result.Rows).
				Msg("training finished; model persisted")
			return nil
		},
	}
	cmd.Flags().StringVar(&dataPath, "data", "", "path to the training CSV (overrides config)")
	return cmd
}

// setup loads configuration, configures logging and connects the optional
// database, in that order.
func setup() error {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		// Run without a file; env vars and defaults still apply.
		configPath = ""
	}
	if err := config.LoadConfig(configPath); err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}

	setupLogging(config.AppConfig.Logging.Level)

	if config.AppConfig.Database.Enabled() {
		if err := database.InitDB(config.AppConfig.Database); err != nil {
			// The database is a fallback collaborator, not a hard dependency.
			zlog.Warn().Err(err).Msg("database unavailable; continuing without it")
		}
	}
	return nil
}

func setupLogging(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	zlog.Logger = zlog.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}

// newModel constructs the delay model with the ordered load chain: local file
// first, then the read-only database artifact, then nothing.
func newModel() *services.DelayModel {
	sources := []services.ModelSource{
		services.NewFileSource(config.AppConfig.Model.LocalPath),
	}
	if database.DB != nil {
		sources = append(sources,
			services.NewDatabaseSource(config.AppConfig.Model.ArtifactName, database.GetModelArtifact))
	}
	return services.NewDelayModel(config.AppConfig.Model.LocalPath, config.AppConfig.Training, sources...)
}
