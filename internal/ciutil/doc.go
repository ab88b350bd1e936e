// Package ciutil detects CI environments and resolves settings that may be
// supplied under more than one environment variable name.
package ciutil
