package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Equal(t, ":8000", cfg.EndpointAddrHTTP)
	assert.NotEmpty(t, cfg.DatabaseDSN)
	assert.NotEmpty(t, cfg.SecretKey)
	assert.Equal(t, 30*time.Minute, cfg.AccessTokenValidityDuration)
	assert.NotEmpty(t, cfg.AllowedOrigins)
	assert.NotEmpty(t, cfg.S3Bucket)
}

func TestLoadConfig_FlagsOverrideDefaults(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"server", "-a", ":9090", "-s", "override", "-t", "5"}

	cfg := LoadConfig()

	assert.Equal(t, ":9090", cfg.EndpointAddrHTTP)
	assert.Equal(t, "override", cfg.SecretKey)
	assert.Equal(t, 5*time.Minute, cfg.AccessTokenValidityDuration)
}

func TestLoadConfig_JsonOverlay(t *testing.T) {
	jc := JsonConfig{
		EndpointAddrHTTP: ":7070",
		DatabaseDSN:      "postgres://u:p@h:5432/db",
		SecretKey:        "fromjson",
		AllowedOrigins:   []string{"https://tracker.example.com"},
		S3Bucket:         "bucket-json",
		S3Region:         "eu-west-1",
	}
	b, err := json.Marshal(jc)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "conf.json")
	require.NoError(t, os.WriteFile(path, b, 0o600))

	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"server", "-c", path, "-t", "10"}

	cfg := LoadConfig()

	assert.Equal(t, ":7070", cfg.EndpointAddrHTTP)
	assert.Equal(t, "postgres://u:p@h:5432/db", cfg.DatabaseDSN)
	assert.Equal(t, "fromjson", cfg.SecretKey)
	assert.Equal(t, []string{"https://tracker.example.com"}, cfg.AllowedOrigins)
	assert.Equal(t, "bucket-json", cfg.S3Bucket)
	// flags still win over the JSON overlay
	assert.Equal(t, 10*time.Minute, cfg.AccessTokenValidityDuration)
}
