// Package config loads runtime configuration for the VoiceMemo CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   address:port of the backend gRPC endpoint
//	-i int      online status check interval (seconds)
//	-f string   local SQLite database file
//	-t int      transcription timeout (seconds)
//	-l string   default transcription language
//
// # JSON schema
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "online_check_interval": "3s",
//	  "database_path": "voicememo.db",
//	  "transcription_timeout": "2m",
//	  "default_language": "fr"
//	}
//
// Durations accept strings like "3s" or integer nanoseconds (timex.Duration).
package config
