// Package config loads garenne's configuration file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/garenne/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//  5. GARENNE_* environment variables, when set, replace file values
//
// # Environment
//
//	GARENNE_API_URL          api_url
//	GARENNE_SESSION_PATH     session_path
//	GARENNE_LOG_PATH         log_path
//	GARENNE_LOG_LEVEL        log_level
//	GARENNE_REQUEST_TIMEOUT  request timeout as a Go duration ("5s")
//
// # Default Values
//
//   - API base URL: http://localhost:5001
//   - Photo prefix: /photos/
//   - Placeholder photo: default-rabbit.jpg
//   - Session file: ~/.config/garenne/session.toml
//   - Log file: ~/.local/state/garenne/garenne.log
//   - Log level: info
//   - Request timeout: 10 seconds
//
// # TOML Format
//
//	api_url = "http://localhost:5001"
//	photo_prefix = "/photos/"
//	placeholder_photo = "default-rabbit.jpg"
//	session_path = "~/.config/garenne/session.toml"
//	log_path = "~/.local/state/garenne/garenne.log"
//	log_level = "info"
//	request_timeout_seconds = 10
//
// Every field is optional. Tilde expansion is performed for path fields.
//
// # Error Handling
//
// Load returns errors for path expansion failures, read errors other than
// os.ErrNotExist, TOML parse errors and malformed environment values. A missing config file is not an error.
package config
