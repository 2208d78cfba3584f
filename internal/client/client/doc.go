// Package client talks to the VoiceMemo server and bootstraps the local
// database.
//
// The Client interface is the transport-agnostic contract used by the
// services; GRPCClient implements it over gRPC, injecting the access token
// into every call and mapping status codes to ErrUnavailable and
// ErrUnauthorized. InitDatabase opens the local SQLite file and applies the
// embedded goose migrations.
package client
