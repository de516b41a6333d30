/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/suparena/apibind/logging"
)

// Environment variable names.
const (
	EnvAccessKey   = "AWS_ACCESS_KEY"
	EnvSecretKey   = "AWS_SECRET_KEY"
	EnvRegion      = "AWS_REGION"
	EnvTable       = "AWS_DDB_TABLE"
	EnvEndpoint    = "AWS_DDB_ENDPOINT"
	EnvLogLevel    = "APIBIND_LOG_LEVEL"
	EnvLogFormat   = "APIBIND_LOG_FORMAT"
	DefaultEnvFile = ".env"
)

// Config holds settings for the DynamoDB datastore and the logger.
type Config struct {
	AWSAccessKey string
	AWSSecretKey string
	AWSRegion    string
	TableName    string
	// Endpoint overrides the DynamoDB endpoint (e.g. DynamoDB Local).
	Endpoint string

	LogLevel  string
	LogFormat string
}

// Load reads the given .env files (".env" when none are given) into the
// process environment and builds a Config from it. Missing files are
// ignored; variables already set in the environment take precedence.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{DefaultEnvFile}
	}

	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return Config{}, fmt.Errorf("failed to load env file %s: %w", f, err)
		}
	}

	return FromEnv(), nil
}

// FromEnv builds a Config from the current process environment.
func FromEnv() Config {
	return Config{
		AWSAccessKey: os.Getenv(EnvAccessKey),
		AWSSecretKey: os.Getenv(EnvSecretKey),
		AWSRegion:    os.Getenv(EnvRegion),
		TableName:    os.Getenv(EnvTable),
		Endpoint:     os.Getenv(EnvEndpoint),
		LogLevel:     os.Getenv(EnvLogLevel),
		LogFormat:    os.Getenv(EnvLogFormat),
	}
}

// Validate reports the first missing setting required by the DynamoDB datastore.
func (c Config) Validate() error {
	switch {
	case c.AWSRegion == "":
		return fmt.Errorf("config: %s is not set", EnvRegion)
	case c.TableName == "":
		return fmt.Errorf("config: %s is not set", EnvTable)
	}
	return nil
}

// Logging converts the log settings into a logging.Config.
func (c Config) Logging() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = logging.ParseLevel(c.LogLevel)
	cfg.Format = logging.ParseFormat(c.LogFormat)
	return cfg
}
