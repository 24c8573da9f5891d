package main

import (
	"log"

	"github.com/caarlos0/env"
)

// envConfig holds defaults for command line flags. Flags given on command line always win.
type envConfig struct {
	Device       string `env:"CANDECODE_DEVICE" envDefault:"-"`
	Baud         int    `env:"CANDECODE_BAUD" envDefault:"115200"`
	InputFormat  string `env:"CANDECODE_INPUT_FORMAT" envDefault:"candump"`
	OutputFormat string `env:"CANDECODE_OUTPUT_FORMAT" envDefault:"text"`
	NoColor      bool   `env:"CANDECODE_NO_COLOR" envDefault:"false"`
}

func loadEnvConfig() envConfig {
	cfg := envConfig{}
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("# invalid environment configuration: %v\n", err)
	}
	return cfg
}
