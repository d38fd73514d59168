package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// The session token is cached in a plain file so consecutive CLI
// invocations stay signed in until `auth logout`.

func loadToken(path string) (string, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading session file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func saveToken(path, token string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating session dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("writing session file: %w", err)
	}
	return nil
}

func clearToken(path string) error {
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing session file: %w", err)
	}
	return nil
}
