// Package utils provides internal utility functions for the bikeflow service.
// This package is not intended to be imported by external code.
//
// It contains time formatting and configuration conversion helpers.
package utils
