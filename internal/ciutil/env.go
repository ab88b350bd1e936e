package ciutil

import (
	"log/slog"
	"os"

	"github.com/phrazzld/booklist-api/internal/redact"
)

// Environment variables consulted by the test helpers.
const (
	EnvCI            = "CI"
	EnvGitHubActions = "GITHUB_ACTIONS"
	EnvGitLabCI      = "GITLAB_CI"
	EnvJenkinsURL    = "JENKINS_URL"
	EnvCircleCI      = "CIRCLECI"

	EnvDatabaseURL       = "DATABASE_URL"
	EnvBooklistTestDBURL = "BOOKLIST_TEST_DB_URL"
	EnvBooklistDBURL     = "BOOKLIST_DATABASE_URL"
)

// IsCI returns true if the current environment is a CI environment.
func IsCI() bool {
	for _, name := range []string{EnvCI, EnvGitHubActions, EnvGitLabCI, EnvJenkinsURL, EnvCircleCI} {
		if os.Getenv(name) != "" {
			return true
		}
	}
	return false
}

// GetEnvWithFallbacks returns the value of the first non-empty environment
// variable in envVars, or defaultValue when none is set. Using anything but
// the first name is logged so old names can be retired.
func GetEnvWithFallbacks(envVars []string, defaultValue string, logger *slog.Logger) string {
	for i, envVar := range envVars {
		val := os.Getenv(envVar)
		if val == "" {
			continue
		}
		if i > 0 && logger != nil {
			logger.Warn("Using fallback environment variable",
				"used_var", envVar,
				"preferred_var", envVars[0],
				"value", redact.String(val),
			)
		}
		return val
	}
	return defaultValue
}

// TestDatabaseURL returns the connection string for integration tests.
func TestDatabaseURL(logger *slog.Logger) string {
	return GetEnvWithFallbacks(
		[]string{EnvDatabaseURL, EnvBooklistTestDBURL, EnvBooklistDBURL}, "", logger)
}
