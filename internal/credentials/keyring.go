package credentials

import (
	"fmt"

	"github.com/zalando/go-keyring"
)

const (
	// KeyringService is the service name for all teampulse keyring entries
	KeyringService = "teampulse"

	// KeyringTokenUser is the account name the API token is stored under
	KeyringTokenUser = "api-token"
)

// SetToken stores the API token in the OS keyring
func SetToken(token string) error {
	if token == "" {
		return fmt.Errorf("token cannot be empty")
	}

	err := keyring.Set(KeyringService, KeyringTokenUser, token)
	if err != nil {
		return fmt.Errorf("failed to store token in keyring: %w", err)
	}

	return nil
}

// GetToken retrieves the API token from the OS keyring
func GetToken() (string, error) {
	token, err := keyring.Get(KeyringService, KeyringTokenUser)
	if err != nil {
		if err == keyring.ErrNotFound {
			return "", fmt.Errorf("no API token found in keyring")
		}
		return "", fmt.Errorf("failed to retrieve token from keyring: %w", err)
	}

	return token, nil
}

// DeleteToken removes the API token from the OS keyring
func DeleteToken() error {
	err := keyring.Delete(KeyringService, KeyringTokenUser)
	if err != nil {
		if err == keyring.ErrNotFound {
			return fmt.Errorf("no API token found in keyring")
		}
		return fmt.Errorf("failed to delete token from keyring: %w", err)
	}

	return nil
}

// IsAvailable checks if the keyring is accessible
// This is useful for providing helpful error messages when keyring is not available
func IsAvailable() bool {
	// Try to get a non-existent item. If the keyring works we get
	// ErrNotFound; any other error means the keyring is unusable.
	_, err := keyring.Get("teampulse-keyring-test", "test")
	return err == nil || err == keyring.ErrNotFound
}
