// Package config loads runtime settings for apibind's storage adapters and
// logger from .env files and the process environment.
package config
