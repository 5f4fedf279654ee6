// Package config provides configuration loading, merging, and validation
// facilities for the server.
//
// Configuration is assembled from multiple sources in the following priority
// order (earlier sources win for non-zero fields):
//  1. .env file (loaded into the process environment)
//  2. Environment variables
//  3. Command-line flags
//  4. JSON config file
//  5. Built-in defaults
//
// The main entry point is [GetStructuredConfig].
package config
