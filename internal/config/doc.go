// Package config handles configuration loading, parsing, and validation
// from environment variables prefixed with EMPLOYEE_ and an optional
// config.yaml. It provides type-safe access to application settings needed by
// different components while keeping configuration details separate from
// business logic.
package config
