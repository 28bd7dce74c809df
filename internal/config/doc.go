// Package config loads, validates, and generates the YAML configuration of the mirror.
// Raw values are read with viper; derived fields (durations, byte limits, log level)
// are filled in by ValidateConfig so that components never parse strings themselves.
package config
