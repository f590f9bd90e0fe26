// Package config loads runtime configuration for the Wekip client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file, comments allowed, selected with -c or --config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a, --api-url string            base URL of the Wekip API
//	-d, --db string                 local database file
//	    --timeout duration          API request timeout
//	    --resend-cooldown duration  wait between code resends
//	    --share-code-ttl duration   share code lifetime
//	    --recent int                receipts on the dashboard
//	-l, --log-level string          debug, info, warn or error
//
// # File format
//
// Durations use timex.Duration, so they are strings like "30s" or integer
// nanoseconds:
//
//	{
//	  // local mock API
//	  "api_base_url": "http://127.0.0.1:8080",
//	  "resend_cooldown": "30s",
//	  "share_code_ttl": "15m"
//	}
package config
