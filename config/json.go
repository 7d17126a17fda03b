package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/mihailsb/homevault/internal/flagx"
	"github.com/mihailsb/homevault/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON
// unmarshalling. It uses timex.Duration for interval fields, which allows
// parsing both string values such as "15m" and integer nanoseconds.
//
// This struct is an intermediate DTO used only for reading JSON configuration
// files. All fields are pointers so that a partial file overlays only the
// settings it actually contains; absent fields keep their defaults.
type JsonConfig struct {
	DatabasePath   *string         `json:"database_path"`
	Passphrase     *string         `json:"passphrase"`
	LocalOnly      *bool           `json:"local_only"`
	BlobDir        *string         `json:"blob_dir"`
	S3RootUser     *string         `json:"s3_root_user"`
	S3RootPassword *string         `json:"s3_root_password"`
	S3Bucket       *string         `json:"s3_bucket"`
	S3Region       *string         `json:"s3_region"`
	S3BaseEndpoint *string         `json:"s3_base_endpoint"`
	PresignExpiry  *timex.Duration `json:"presign_expiry"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance.
//
// The file path comes from the -c or -config command-line flags; when
// neither is set, no JSON file is loaded. If the file cannot be read or
// contains invalid JSON, the function panics. Only keys present in the file
// override the existing Config values.
func parseJson(config *Config) {

	// try flags
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	if c.DatabasePath != nil {
		config.DatabasePath = *c.DatabasePath
	}
	if c.Passphrase != nil {
		config.Passphrase = *c.Passphrase
	}
	if c.LocalOnly != nil {
		config.LocalOnly = *c.LocalOnly
	}
	if c.BlobDir != nil {
		config.BlobDir = *c.BlobDir
	}
	if c.S3RootUser != nil {
		config.S3RootUser = *c.S3RootUser
	}
	if c.S3RootPassword != nil {
		config.S3RootPassword = *c.S3RootPassword
	}
	if c.S3Bucket != nil {
		config.S3Bucket = *c.S3Bucket
	}
	if c.S3Region != nil {
		config.S3Region = *c.S3Region
	}
	if c.S3BaseEndpoint != nil {
		config.S3BaseEndpoint = *c.S3BaseEndpoint
	}
	if c.PresignExpiry != nil {
		config.PresignExpiry = time.Duration(c.PresignExpiry.Duration)
	}
}
