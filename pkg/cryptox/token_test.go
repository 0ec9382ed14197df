package cryptox

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	for _, size := range []int{TokenSize128, TokenSize256, 24} {
		a, err := GenerateToken(size)
		require.NoError(t, err)
		b, err := GenerateToken(size)
		require.NoError(t, err)
		require.NotEqual(t, a, b)
	}

	for _, size := range []int{0, -1} {
		token, err := GenerateToken(size)
		require.Error(t, err)
		require.Empty(t, token)
	}
}

func TestFingerprintToken(t *testing.T) {
	require.Equal(t, FingerprintToken("abc"), FingerprintToken("abc"))
	require.NotEqual(t, FingerprintToken("abc"), FingerprintToken("abd"))
	require.Len(t, FingerprintToken("abc"), 43)
}

func TestRandomInt(t *testing.T) {
	for range 1000 {
		n, err := RandomInt(100000, 999999)
		require.NoError(t, err)
		require.GreaterOrEqual(t, n, int64(100000))
		require.LessOrEqual(t, n, int64(999999))
	}

	n, err := RandomInt(7, 7)
	require.NoError(t, err)
	require.Equal(t, int64(7), n)

	_, err = RandomInt(2, 1)
	require.Error(t, err)
}

func TestLoadOrCreateSecret(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.key")

	first, err := LoadOrCreateSecret(path)
	require.NoError(t, err)
	require.Len(t, first, SecretSize)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	second, err := LoadOrCreateSecret(path)
	require.NoError(t, err)
	require.Equal(t, first, second)

	require.NoError(t, os.WriteFile(path, []byte("c2hvcnQ"), 0o600))
	_, err = LoadOrCreateSecret(path)
	require.Error(t, err)
}
