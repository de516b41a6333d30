/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suparena/apibind/logging"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvAccessKey, EnvSecretKey, EnvRegion, EnvTable, EnvEndpoint, EnvLogLevel, EnvLogFormat} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "test.env")
	content := "AWS_REGION=us-east-1\nAWS_DDB_TABLE=ratings\nAPIBIND_LOG_LEVEL=debug\nAPIBIND_LOG_FORMAT=json\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "us-east-1", cfg.AWSRegion)
	assert.Equal(t, "ratings", cfg.TableName)
	assert.NoError(t, cfg.Validate())

	lc := cfg.Logging()
	assert.Equal(t, logging.LevelDebug, lc.Level)
	assert.Equal(t, logging.FormatJSON, lc.Format)
}

func TestLoadEnvironmentWins(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvTable, "from-env")

	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("AWS_DDB_TABLE=from-file\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.TableName)
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvRegion, "eu-west-1")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
	assert.Equal(t, "eu-west-1", cfg.AWSRegion)
}

func TestValidate(t *testing.T) {
	assert.ErrorContains(t, Config{}.Validate(), EnvRegion)
	assert.ErrorContains(t, Config{AWSRegion: "us-east-1"}.Validate(), EnvTable)
	assert.NoError(t, Config{AWSRegion: "us-east-1", TableName: "t"}.Validate())
}
