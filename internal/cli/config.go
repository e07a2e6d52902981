package cli

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/MaelVB/Drawsyn-sub000/internal/services/identity"
)

// Environment variables read by the CLI
const (
	envServer    = "DRAWSYN_SERVER"
	envToken     = "DRAWSYN_TOKEN"
	envTokenFile = "DRAWSYN_TOKEN_FILE"
	envJWTSecret = "DRAWSYN_JWT_SECRET"
)

const defaultServerURL = "http://localhost:8080"

// Config holds CLI configuration. Flags override the environment.
type Config struct {
	ServerURL string
	Token     string
	TokenFile string
	// JWTSecret signs tokens minted locally; empty means the server's development secret
	JWTSecret string
	Output    string
	Verbose   bool
}

// DefaultConfig returns the configuration taken from the process environment
func DefaultConfig() *Config {
	return configFromEnv(os.Getenv)
}

func configFromEnv(getenv func(string) string) *Config {
	cfg := &Config{
		ServerURL: defaultServerURL,
		Token:     strings.TrimSpace(getenv(envToken)),
		TokenFile: defaultTokenFile(),
		JWTSecret: getenv(envJWTSecret),
		Output:    "text",
	}
	if v := getenv(envServer); v != "" {
		cfg.ServerURL = strings.TrimRight(v, "/")
	}
	if v := getenv(envTokenFile); v != "" {
		cfg.TokenFile = v
	}
	return cfg
}

// Identity returns the signing settings for a token with the given issuer and lifetime
func (c *Config) Identity(issuer string, ttl time.Duration) identity.Config {
	idCfg := identity.DefaultConfig()
	if c.JWTSecret != "" {
		idCfg.Secret = []byte(c.JWTSecret)
	}
	idCfg.Issuer = issuer
	idCfg.TokenTTL = ttl
	return idCfg
}

// LoadToken reads the token file unless a token was given on the command line or in the environment
func (c *Config) LoadToken() error {
	if c.Token != "" {
		return nil
	}

	data, err := os.ReadFile(c.TokenFile)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	c.Token = strings.TrimSpace(string(data))
	return nil
}

// SaveToken stores the token for later commands, readable by the owner only
func (c *Config) SaveToken(token string) error {
	c.Token = token

	if err := os.MkdirAll(filepath.Dir(c.TokenFile), 0700); err != nil {
		return err
	}
	return os.WriteFile(c.TokenFile, []byte(token), 0600)
}

func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".drawsyn", "token")
	}
	return filepath.Join(home, ".drawsyn", "token")
}
