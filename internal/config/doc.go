// Package config loads the toyrobot configuration from YAML/JSON files, .env files and TOYROBOT_* variables.
package config
