// Package cli provides the interactive VoiceMemo command-line client.
//
// It wires configuration, the local snapshot database, the stores and the
// API client behind a REPL that works online and offline. Library commands
// (recordings, markers, folders, settings) run against local state only;
// sharing, comments and transcription need a signed-in user.
//
// Key features:
//   - Register / Login / Logout (online with offline fallback)
//   - Add, filter, edit and delete recordings and their markers
//   - Folder tree with recording membership
//   - Sharing with collaborators and timestamped comments
//   - Server-side transcription and its history
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
