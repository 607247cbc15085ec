// Package config loads logdeck's own TOML configuration.
//
// # Configuration Discovery
//
// Load follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/logdeck/config.toml
//  3. If the file doesn't exist, fall back to built-in defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// Environment variables (LOGDECK_*) and command-line flags are layered on
// top by the logdeck command, not here.
//
// # Default Values
//
//   - api_url: http://127.0.0.1:8000
//   - log_file: ~/.local/state/logdeck/logdeck.log
//   - log_limit: 500
//   - request_timeout: unset (no client deadline)
//
// # TOML Format
//
//	api_url = "http://127.0.0.1:8000"
//	log_file = "~/.local/state/logdeck/logdeck.log"
//	log_limit = 500
//	request_timeout = "30s"
//
// All fields are optional. Tilde expansion is performed on log_file.
//
// # Error Handling
//
// Load returns errors for path expansion failures, read errors other than
// os.ErrNotExist, TOML parse errors, and values rejected by Validate.
package config
