// Package config handles runtime configuration for an embedding application,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for a homevault instance.
//
// Fields:
//   - DatabasePath: location of the SQLite database file.
//   - Passphrase: when non-empty, values are encrypted at rest with a key
//     derived from it. Do not hardcode real passphrases.
//   - LocalOnly: keep document files in BlobDir instead of object storage.
//   - BlobDir: directory for document files in local-only mode.
//   - S3RootUser / S3RootPassword: credentials for the S3-compatible backend.
//   - S3Bucket / S3Region / S3BaseEndpoint: object storage settings.
//   - PresignExpiry: lifetime of presigned document URLs.
type Config struct {
	DatabasePath   string
	Passphrase     string
	LocalOnly      bool
	BlobDir        string
	S3RootUser     string
	S3RootPassword string
	S3Bucket       string
	S3Region       string
	S3BaseEndpoint string
	PresignExpiry  time.Duration
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "homevault.db"
	c.Passphrase = ""
	c.LocalOnly = true
	c.BlobDir = "homevault-files"
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = "vault"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
	c.PresignExpiry = 15 * time.Minute
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
