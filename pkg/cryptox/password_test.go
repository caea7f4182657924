package cryptox

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	// Set up a temporary pepper file for testing
	tmpDir := os.TempDir()
	pepperPath := filepath.Join(tmpDir, "identity-test-pepper")
	SetPepperPath(pepperPath)

	// Clean up pepper file before and after tests
	os.Remove(pepperPath)
	defer os.Remove(pepperPath)

	os.Exit(m.Run())
}

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{"simple password", "Passw0rd"},
		{"complex password", "P@ssw0rd!#$%^&*()"},
		{"long password", strings.Repeat("Aa", 50)},
		{"unicode password", "Пароль密码"},
		{"whitespace password", "  Spaces  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPassword(tt.password)
			require.NoError(t, err)
			require.NotEmpty(t, hash)

			// Verify PHC format
			require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"),
				"hash should be in PHC format")

			parts := strings.Split(hash, "$")
			require.Len(t, parts, 6, "PHC hash should have 6 parts")
			require.NotEmpty(t, parts[4], "salt should not be empty")
			require.NotEmpty(t, parts[5], "hash should not be empty")
		})
	}
}

func TestHashPasswordUniqueSalts(t *testing.T) {
	a, err := HashPassword("Passw0rd")
	require.NoError(t, err)
	b, err := HashPassword("Passw0rd")
	require.NoError(t, err)

	require.NotEqual(t, a, b, "two hashes of the same password should use different salts")
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("Passw0rd")
	require.NoError(t, err)

	t.Run("correct password verifies", func(t *testing.T) {
		require.NoError(t, VerifyPassword("Passw0rd", hash))
	})

	t.Run("wrong password fails", func(t *testing.T) {
		err := VerifyPassword("wrong", hash)
		require.ErrorIs(t, err, ErrPasswordMismatch)
	})

	t.Run("malformed hash fails", func(t *testing.T) {
		require.Error(t, VerifyPassword("Passw0rd", "not-a-hash"))
		require.Error(t, VerifyPassword("Passw0rd", "$bcrypt$v=19$m=1,t=1,p=1$aaaa$bbbb"))
	})
}

func TestValidatePassword(t *testing.T) {
	t.Run("valid password has no violations", func(t *testing.T) {
		require.Empty(t, ValidatePassword("Passw0rd"))
	})

	t.Run("empty password reports every rule", func(t *testing.T) {
		violations := ValidatePassword("")
		require.Equal(t, []string{
			ViolationEmpty,
			ViolationTooShort,
			ViolationNoUppercase,
			ViolationNoLowercase,
		}, violations)
	})

	t.Run("short lowercase password reports length and uppercase", func(t *testing.T) {
		violations := ValidatePassword("abc")
		require.Equal(t, []string{ViolationTooShort, ViolationNoUppercase}, violations)
	})

	t.Run("no short-circuit between rules", func(t *testing.T) {
		violations := ValidatePassword("ABCDEF")
		require.Equal(t, []string{ViolationNoLowercase}, violations)
	})

	t.Run("length counts runes not bytes", func(t *testing.T) {
		// Six runes, more than six bytes.
		require.NotContains(t, ValidatePassword("Aбвгдe"), ViolationTooShort)
	})
}
