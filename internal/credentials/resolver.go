package credentials

import (
	"fmt"
)

// Source indicates where the API token was found
type Source string

const (
	SourceKeyring Source = "keyring"
	SourceEnv     Source = "env"
	SourceConfig  Source = "config"
	SourceNone    Source = "none"
)

// Token represents a resolved API token
type Token struct {
	Value  string
	Source Source
}

// Resolver handles token resolution from multiple sources with priority order
type Resolver struct {
	// Priority order: Keyring > Environment Variable > Config File
}

// NewResolver creates a new token resolver
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve attempts to find the API token using the priority order:
// 1. OS keyring
// 2. TEAMPULSE_API_TOKEN environment variable
// 3. api_token from the config file
//
// configToken may be empty. Returns the token with Source indicating
// where it was found, or an error when no source has one.
func (r *Resolver) Resolve(configToken string) (*Token, error) {
	// Priority 1: Try keyring
	if IsAvailable() {
		if value, err := GetToken(); err == nil && value != "" {
			return &Token{Value: value, Source: SourceKeyring}, nil
		}
		// If the keyring errored for another reason, fall through to
		// the next source rather than failing the command.
	}

	// Priority 2: Try environment variable
	if value := GetEnvToken(); value != "" {
		return &Token{Value: value, Source: SourceEnv}, nil
	}

	// Priority 3: Fall back to the config file
	if configToken != "" {
		return &Token{Value: configToken, Source: SourceConfig}, nil
	}

	return nil, fmt.Errorf("no API token found (tried: keyring, %s, config file)", EnvTokenVar)
}
