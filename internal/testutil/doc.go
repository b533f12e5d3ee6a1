// Package testutil provides shared fixtures for tests: configuration
// builders and deterministic run id generators.
package testutil
