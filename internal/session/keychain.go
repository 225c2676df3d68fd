package session

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Keychain persists the bearer token between runs. It is the only on-device
// state this client keeps: one file, owner-readable only.
type Keychain struct {
	path string
}

func NewKeychain(path string) *Keychain {
	return &Keychain{path: path}
}

// Token returns the stored token, or "" when none is stored.
func (k *Keychain) Token() (string, error) {
	data, err := os.ReadFile(k.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func (k *Keychain) SetToken(token string) error {
	if err := os.MkdirAll(filepath.Dir(k.path), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	if err := os.WriteFile(k.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	return nil
}

func (k *Keychain) Clear() error {
	err := os.Remove(k.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}
