package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MaelVB/Drawsyn-sub000/internal/services/identity"
)

func envMap(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestConfigFromEnvDefaults(t *testing.T) {
	cfg := configFromEnv(envMap(nil))

	assert.Equal(t, defaultServerURL, cfg.ServerURL)
	assert.Empty(t, cfg.Token)
	assert.Equal(t, "text", cfg.Output)
	assert.Equal(t, "token", filepath.Base(cfg.TokenFile))
}

func TestConfigFromEnvOverrides(t *testing.T) {
	cfg := configFromEnv(envMap(map[string]string{
		envServer:    "https://draw.example/",
		envToken:     " abc \n",
		envTokenFile: "/tmp/tok",
		envJWTSecret: "s3cret",
	}))

	assert.Equal(t, "https://draw.example", cfg.ServerURL)
	assert.Equal(t, "abc", cfg.Token)
	assert.Equal(t, "/tmp/tok", cfg.TokenFile)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
}

func TestIdentityUsesDevSecretByDefault(t *testing.T) {
	cfg := configFromEnv(envMap(nil))

	idCfg := cfg.Identity("drawsyn", time.Hour)

	assert.Equal(t, identity.DefaultConfig().Secret, idCfg.Secret)
	assert.Equal(t, "drawsyn", idCfg.Issuer)
	assert.Equal(t, time.Hour, idCfg.TokenTTL)
}

func TestIdentityUsesConfiguredSecret(t *testing.T) {
	cfg := configFromEnv(envMap(map[string]string{envJWTSecret: "s3cret"}))

	assert.Equal(t, []byte("s3cret"), cfg.Identity("", time.Minute).Secret)
}

func TestSaveAndLoadToken(t *testing.T) {
	cfg := &Config{TokenFile: filepath.Join(t.TempDir(), "nested", "token")}
	require.NoError(t, cfg.SaveToken("tok-1"))

	info, err := os.Stat(cfg.TokenFile)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded := &Config{TokenFile: cfg.TokenFile}
	require.NoError(t, loaded.LoadToken())
	assert.Equal(t, "tok-1", loaded.Token)
}

func TestLoadTokenMissingFile(t *testing.T) {
	cfg := &Config{TokenFile: filepath.Join(t.TempDir(), "absent")}

	require.NoError(t, cfg.LoadToken())
	assert.Empty(t, cfg.Token)
}
