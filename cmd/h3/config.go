package main

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

var validate = validator.New()

// Config is the resolved command line.
type Config struct {
	Call        string `validate:"required_without_all=List Schema Interactive"`
	Args        string `validate:"omitempty,json"`
	Schema      string
	EnvFile     string `validate:"omitempty,file"`
	Format      string `validate:"oneof=json text geojson wkt"`
	LogLevel    string `validate:"oneof=debug info warn error"`
	List        bool
	Interactive bool
	Metrics     bool
}

const (
	envFormat   = "H3_FORMAT"
	envLogLevel = "H3_LOG_LEVEL"

	defaultFormat   = "json"
	defaultLogLevel = "warn"
)

// resolve fills unset fields from the environment, loading EnvFile first,
// and validates the result.
func (c *Config) resolve() error {
	if c.EnvFile != "" {
		if err := godotenv.Load(c.EnvFile); err != nil {
			return fmt.Errorf("load env file: %w", err)
		}
	}
	c.Format = pick(c.Format, os.Getenv(envFormat), defaultFormat)
	c.LogLevel = pick(c.LogLevel, os.Getenv(envLogLevel), defaultLogLevel)

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	return nil
}

func pick(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
