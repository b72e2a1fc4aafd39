// Package config provides configuration management for exoradio.
//
// # Configuration Sources
//
// Configuration is resolved from the following sources, later sources
// overriding earlier ones:
//
//	1. Built-in defaults (Default), which reproduce the fixed report
//	   parameters: thresholds of 1, console logging, no history database
//	2. A YAML file (explicit path, or config.yaml / configs/config.yaml)
//	3. Environment variables
//	4. Command-line flags, applied by the caller after Load
//
// # Environment Variables
//
// All environment variables use the EXORADIO_ prefix followed by the
// section and key:
//
//	EXORADIO_INPUT_PATH=data/asu.fit
//	EXORADIO_OUTPUT_DIR=out
//	EXORADIO_FILTER_FC_THRESHOLD=1
//	EXORADIO_LOGGING_LEVEL=debug
//	EXORADIO_HISTORY_DB_PATH=runs.db
//
// # Validation
//
// Load validates the merged result with go-playground/validator struct
// tags; an invalid configuration is returned as a CONFIG AppError.
//
// # Paths
//
// Paths resolves the input file and output directory against the working
// directory and builds the per-mode output file names.
package config
