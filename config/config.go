// Package config loads solver tunables from environment variables and an
// optional .env file, following the same viper-based convention as the
// rest of the pack's services.
package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds every tunable the solver reads at startup.
type Config struct {
	Solver SolverConfig
	LNS    LNSConfig
}

// SolverConfig holds the ILS shell and multi-start settings.
type SolverConfig struct {
	Seed               int64         `mapstructure:"SOLVER_SEED"`
	TimeBudget         time.Duration `mapstructure:"SOLVER_TIME_BUDGET"`
	MaxIterations      int           `mapstructure:"SOLVER_MAX_ITERATIONS"`
	NoImprovementLimit int           `mapstructure:"SOLVER_NO_IMPROVEMENT_LIMIT"`
	PerturbIntensity   int           `mapstructure:"SOLVER_PERTURB_INTENSITY"`
	Trials             int           `mapstructure:"SOLVER_TRIALS"`
}

// LNSConfig holds the destroy-repair engine settings.
type LNSConfig struct {
	KMin             int     `mapstructure:"LNS_K_MIN"`
	KMax             int     `mapstructure:"LNS_K_MAX"`
	LAHCLength       int     `mapstructure:"LNS_LAHC_LENGTH"`
	SAAlpha          float64 `mapstructure:"LNS_SA_ALPHA"`
	Adaptive         bool    `mapstructure:"LNS_ADAPTIVE"`
	LocalSearchEvery int     `mapstructure:"LNS_LOCAL_SEARCH_EVERY"`
}

// Load reads configuration from environment variables and an optional
// .env file in the current directory, falling back to the defaults below
// when a key is unset.
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	viper.SetDefault("SOLVER_SEED", 1)
	viper.SetDefault("SOLVER_TIME_BUDGET", "30s")
	viper.SetDefault("SOLVER_MAX_ITERATIONS", 500)
	viper.SetDefault("SOLVER_NO_IMPROVEMENT_LIMIT", 100)
	viper.SetDefault("SOLVER_PERTURB_INTENSITY", 2)
	viper.SetDefault("SOLVER_TRIALS", 1)

	viper.SetDefault("LNS_K_MIN", 10)
	viper.SetDefault("LNS_K_MAX", 60)
	viper.SetDefault("LNS_LAHC_LENGTH", 1000)
	viper.SetDefault("LNS_SA_ALPHA", 0.01)
	viper.SetDefault("LNS_ADAPTIVE", false)
	viper.SetDefault("LNS_LOCAL_SEARCH_EVERY", 25)

	// Missing .env is fine: process env vars or the defaults above apply.
	_ = viper.ReadInConfig()

	cfg := &Config{
		Solver: SolverConfig{
			Seed:               viper.GetInt64("SOLVER_SEED"),
			TimeBudget:         viper.GetDuration("SOLVER_TIME_BUDGET"),
			MaxIterations:      viper.GetInt("SOLVER_MAX_ITERATIONS"),
			NoImprovementLimit: viper.GetInt("SOLVER_NO_IMPROVEMENT_LIMIT"),
			PerturbIntensity:   viper.GetInt("SOLVER_PERTURB_INTENSITY"),
			Trials:             viper.GetInt("SOLVER_TRIALS"),
		},
		LNS: LNSConfig{
			KMin:             viper.GetInt("LNS_K_MIN"),
			KMax:             viper.GetInt("LNS_K_MAX"),
			LAHCLength:       viper.GetInt("LNS_LAHC_LENGTH"),
			SAAlpha:          viper.GetFloat64("LNS_SA_ALPHA"),
			Adaptive:         viper.GetBool("LNS_ADAPTIVE"),
			LocalSearchEvery: viper.GetInt("LNS_LOCAL_SEARCH_EVERY"),
		},
	}

	return cfg, nil
}
