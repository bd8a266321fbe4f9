package cli

import (
	"os"
	"strings"
)

// loadToken reads the session token saved by a previous login.
func (a *App) loadToken() (string, error) {
	b, err := os.ReadFile(a.config.TokenFile)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

// saveToken persists the session token for later runs. The file is readable
// only by the owner.
func (a *App) saveToken(token string) error {
	return os.WriteFile(a.config.TokenFile, []byte(token), 0o600)
}
