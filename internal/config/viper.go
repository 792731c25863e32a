// Package config resolves repository settings from Viper configuration and
// the environment.
package config

import (
	"os"

	"github.com/spf13/viper"

	"github.com/egodevrjm/songstore/pkg/constants"
	"github.com/egodevrjm/songstore/pkg/errors"
	"github.com/egodevrjm/songstore/pkg/github"
)

// Environment variable names recognized alongside Viper configuration keys.
const (
	EnvToken       = "GITHUB_TOKEN"
	EnvOwner       = "SONGSTORE_OWNER"
	EnvRepo        = "SONGSTORE_REPO"
	EnvBranch      = "SONGSTORE_BRANCH"
	EnvContentBase = "SONGSTORE_CONTENT_BASE"
)

// GetString is a helper to get string values from Viper.
// It checks both OS environment variables and Viper configuration.
func GetString(key string) string {
	osValue := os.Getenv(key)
	viperValue := viper.GetString(key)

	// If Viper doesn't have it but OS does, return OS value
	if viperValue == "" && osValue != "" {
		return osValue
	}
	return viperValue
}

// GitHub builds the content repository configuration from Viper and the
// environment. The token may legitimately be absent for read-only use;
// callers that need the write path check HasToken first.
func GitHub() github.Config {
	branch := GetString(EnvBranch)
	if branch == "" {
		branch = constants.DefaultBranch
	}
	return github.Config{
		Token:  GetString(EnvToken),
		Owner:  GetString(EnvOwner),
		Repo:   GetString(EnvRepo),
		Branch: branch,
	}
}

// ContentBase returns the static content host base URL, if configured.
func ContentBase() string {
	return GetString(EnvContentBase)
}

// HasToken reports whether a write-capable token is configured.
func HasToken() bool {
	return GetString(EnvToken) != ""
}

// RequireToken returns the configured token or ErrTokenRequired.
func RequireToken() (string, error) {
	token := GetString(EnvToken)
	if token == "" {
		return "", errors.ErrTokenRequired
	}
	return token, nil
}
