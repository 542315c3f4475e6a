// Package config loads user defaults for wg from a TOML file and WG_*
// environment variables.
package config
