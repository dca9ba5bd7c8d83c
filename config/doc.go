// Package config loads server configuration from defaults, an optional
// YAML file and the environment, in that order of precedence (later
// layers win).
//
// Environment variables use the KAGGLE_MCP_ prefix with double
// underscores for nesting, so KAGGLE_MCP_CACHE__MAX_TTL sets
// cache.max_ttl. String values in the YAML file may reference the
// environment with ${VAR} placeholders; a missing variable is a load
// error rather than a silent empty string.
package config
