package credentials

import (
	"os"
)

// EnvTokenVar is the environment variable the API token is read from
const EnvTokenVar = "TEAMPULSE_API_TOKEN"

// GetEnvToken retrieves the API token from the environment
func GetEnvToken() string {
	return os.Getenv(EnvTokenVar)
}

// HasEnvToken checks if a token is set in the environment
func HasEnvToken() bool {
	return GetEnvToken() != ""
}
