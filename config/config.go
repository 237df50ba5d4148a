// config/config.go
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	Port string `yaml:"port"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
}

// Enabled reports whether a database was configured at all. The database is an
// optional collaborator: the model artifact fallback source and training-run
// audit rows need it, local serving does not.
func (c DatabaseConfig) Enabled() bool {
	return c.Host != ""
}

type ModelConfig struct {
	// LocalPath is where a trained model is persisted and the first place a
	// model is loaded from on startup.
	LocalPath string `yaml:"local_path"`
	// ArtifactName keys the read-only fallback artifact in the database store.
	ArtifactName string `yaml:"artifact_name"`
	// TrainingCSV is the historical flight data used by `train` and the admin
	// retrain endpoint.
	TrainingCSV string `yaml:"training_csv"`
}

// TrainingConfig carries the fixed hyperparameters. Defaults are frozen for
// reproducibility; changing them changes the model, so they live in config
// rather than code.
type TrainingConfig struct {
	Seed            int64   `yaml:"seed"`
	LearningRate    float64 `yaml:"learning_rate"`
	NumRounds       int     `yaml:"num_rounds"`
	MaxDepth        int     `yaml:"max_depth"`
	HoldoutFraction float64 `yaml:"holdout_fraction"`
	SplitSeed       int64   `yaml:"split_seed"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Model    ModelConfig    `yaml:"model"`
	Training TrainingConfig `yaml:"training"`
	Logging  LoggingConfig  `yaml:"logging"`
}

var AppConfig Config

// LoadConfig reads configuration from the YAML file at configPath, then lets
// environment variables (optionally sourced from a .env file) override the
// deployment-specific values.
func LoadConfig(configPath string) error {
	// A missing .env is fine; plain environment variables still apply.
	_ = godotenv.Load()

	if configPath != "" {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(file, &AppConfig); err != nil {
			return fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	applyEnvOverrides(&AppConfig)
	applyDefaults(&AppConfig)

	return validate(&AppConfig)
}

func applyEnvOverrides(cfg *Config) {
	overrideString(&cfg.Server.Port, "PORT")
	overrideString(&cfg.Database.Host, "DB_HOST")
	overrideString(&cfg.Database.Port, "DB_PORT")
	overrideString(&cfg.Database.User, "DB_USER")
	overrideString(&cfg.Database.Password, "DB_PASSWORD")
	overrideString(&cfg.Database.DBName, "DB_NAME")
	overrideString(&cfg.Model.LocalPath, "MODEL_PATH")
	overrideString(&cfg.Model.ArtifactName, "MODEL_ARTIFACT_NAME")
	overrideString(&cfg.Model.TrainingCSV, "TRAINING_CSV")
	overrideString(&cfg.Logging.Level, "LOG_LEVEL")
}

func overrideString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.Model.LocalPath == "" {
		cfg.Model.LocalPath = "models/model.gob"
	}
	if cfg.Model.ArtifactName == "" {
		cfg.Model.ArtifactName = "model.gob"
	}
	if cfg.Database.Port == "" {
		cfg.Database.Port = "3306"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Training.Seed == 0 {
		cfg.Training.Seed = 1
	}
	if cfg.Training.LearningRate == 0 {
		cfg.Training.LearningRate = 0.01
	}
	if cfg.Training.NumRounds == 0 {
		cfg.Training.NumRounds = 100
	}
	if cfg.Training.MaxDepth == 0 {
		cfg.Training.MaxDepth = 4
	}
	if cfg.Training.HoldoutFraction == 0 {
		cfg.Training.HoldoutFraction = 0.33
	}
	if cfg.Training.SplitSeed == 0 {
		cfg.Training.SplitSeed = 42
	}
}

func validate(cfg *Config) error {
	if cfg.Training.HoldoutFraction < 0 || cfg.Training.HoldoutFraction >= 1 {
		return fmt.Errorf("training.holdout_fraction must be in [0, 1), got %v", cfg.Training.HoldoutFraction)
	}
	if cfg.Training.LearningRate <= 0 {
		return fmt.Errorf("training.learning_rate must be positive, got %v", cfg.Training.LearningRate)
	}
	return nil
}
