package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/voicememo/internal/flagx"
	"github.com/dmitrijs2005/voicememo/internal/timex"
)

// JsonConfig is the shape of the JSON configuration file. Durations accept
// both strings such as "15m" and integer nanoseconds.
type JsonConfig struct {
	EndpointAddrGRPC            string         `json:"endpoint_addr_grpc"`
	EndpointAddrHTTP            string         `json:"endpoint_addr_http"`
	DatabaseDSN                 string         `json:"database_dsn"`
	SecretKey                   string         `json:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	S3RootUser                  string         `json:"s3_root_user"`
	S3RootPassword              string         `json:"s3_root_password"`
	S3Bucket                    string         `json:"s3_bucket"`
	S3Region                    string         `json:"s3_region"`
	S3BaseEndpoint              string         `json:"s3_base_endpoint"`
	RedisURL                    string         `json:"redis_url"`
	TranscriptCacheTTL          timex.Duration `json:"transcript_cache_ttl"`
	OpenAIAPIKey                string         `json:"openai_api_key"`
	OpenAIBaseURL               string         `json:"openai_base_url"`
	TranscriptionModel          string         `json:"transcription_model"`
	DefaultLanguage             string         `json:"default_language"`
	CORSAllowedOrigins          []string       `json:"cors_allowed_origins"`
}

// parseJson loads the file named by -c/-config, if any, into config. Fields
// absent from the file keep their current values. An unreadable or invalid
// file panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()

	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	overlay(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	overlay(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	overlay(&config.DatabaseDSN, c.DatabaseDSN)
	overlay(&config.SecretKey, c.SecretKey)
	overlay(&config.AccessTokenValidityDuration, c.AccessTokenValidityDuration.Duration)
	overlay(&config.S3RootUser, c.S3RootUser)
	overlay(&config.S3RootPassword, c.S3RootPassword)
	overlay(&config.S3Bucket, c.S3Bucket)
	overlay(&config.S3Region, c.S3Region)
	overlay(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	overlay(&config.RedisURL, c.RedisURL)
	overlay(&config.TranscriptCacheTTL, c.TranscriptCacheTTL.Duration)
	overlay(&config.OpenAIAPIKey, c.OpenAIAPIKey)
	overlay(&config.OpenAIBaseURL, c.OpenAIBaseURL)
	overlay(&config.TranscriptionModel, c.TranscriptionModel)
	overlay(&config.DefaultLanguage, c.DefaultLanguage)
	if len(c.CORSAllowedOrigins) > 0 {
		config.CORSAllowedOrigins = c.CORSAllowedOrigins
	}
}

func overlay[T comparable](dst *T, v T) {
	var zero T
	if v != zero {
		*dst = v
	}
}
