// Package config loads application settings with viper from defaults, an
// optional YAML file and TODAKU_* environment variables, then validates them
// with go-playground/validator.
package config
