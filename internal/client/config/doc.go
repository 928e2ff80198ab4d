// Package config loads runtime configuration for the Zatyshok client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables ZATYSHOK_*, seeded from a dotenv file
//     (-e/-env, or ./.env if present) via joho/godotenv.
//  3. Optional JSON file selected with -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// # JSON schema
//
//	{
//	  "api_url": "http://192.168.1.98:3000",
//	  "app_token": "static-app-credential",
//	  "session_db_path": "zatyshok.db",
//	  "online_check_interval": "5s",
//	  "request_timeout": "10s",
//	  "log_level": "info",
//	  "log_format": "text",
//	  "timezone": "Europe/Paris",
//	  "serialize_writes": false
//	}
//
// The app token is deliberately not settable from flags so it does not end
// up in shell history.
package config
