// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml and validated using struct tags.
// The package supports multiple named datasets (for example one per month of
// trips) and allows dataset selection by name.
package config
