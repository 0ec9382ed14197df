package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// SecretSize is the number of random bytes behind every generated secret.
const SecretSize = 32

var (
	pepperMu   sync.Mutex
	pepper     string
	pepperFile = "pepper"
)

// SetPepperPath points password hashing at a pepper file. The pepper is
// (re)loaded lazily on the next hash or verify.
func SetPepperPath(file string) {
	pepperMu.Lock()
	defer pepperMu.Unlock()

	pepperFile = file
	pepper = ""
}

// GetPepper returns the process pepper, loading or creating the pepper file
// on first use. A pepper that cannot be read is fatal: hashing without it
// would silently lock every user out later.
func GetPepper() string {
	pepperMu.Lock()
	defer pepperMu.Unlock()

	if pepper != "" {
		return pepper
	}

	raw, err := LoadOrCreateSecret(pepperFile)
	if err != nil {
		slog.Error("failed to load or generate pepper", slog.Any("err", err))
		os.Exit(1)
	}
	pepper = base64.RawURLEncoding.EncodeToString(raw)
	return pepper
}

// LoadOrCreateSecret reads a base64url secret from path, generating and
// writing a fresh SecretSize secret (mode 0600) when the file is missing.
// The pepper and the session signing key both live in files like this.
func LoadOrCreateSecret(path string) ([]byte, error) {
	path = filepath.Clean(path)

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		secret, decErr := base64.RawURLEncoding.DecodeString(strings.TrimSpace(string(data)))
		if decErr != nil {
			return nil, fmt.Errorf("decode secret %s: %w", path, decErr)
		}
		if len(secret) < 16 {
			return nil, fmt.Errorf("secret %s is too short (%d bytes)", path, len(secret))
		}
		return secret, nil
	case !errors.Is(err, os.ErrNotExist):
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, err
	}

	secret := make([]byte, SecretSize)
	if _, err := rand.Read(secret); err != nil {
		return nil, err
	}
	encoded := base64.RawURLEncoding.EncodeToString(secret)
	if err := os.WriteFile(path, []byte(encoded), 0o600); err != nil {
		return nil, err
	}
	return secret, nil
}
