// Package config loads, normalizes, and validates pacerename configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// JELLYFIN_API_KEY and PLEX_TOKEN. The Config type centralizes every knob the
// CLI and organizer need, so source/target directories, reference tables, and
// library integrations are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical modes, and clear validation errors.
package config
