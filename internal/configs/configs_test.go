package configs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredStoreEnv(t *testing.T) {
	t.Helper()
	t.Setenv("S3_BUCKET_NAME", "drive")
	t.Setenv("S3_ENDPOINT", "https://account.r2.example.com")
	t.Setenv("S3_ACCESS_KEY_ID", "AKID")
	t.Setenv("S3_SECRET_ACCESS_KEY", "secret")
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequiredStoreEnv(t)
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("PORT", "")
	t.Setenv("AUTH_SECRET_KEY", "")
	t.Setenv("KEY_SUFFIX_MODE", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, KeySuffixNone, cfg.KeySuffixMode)
	assert.Empty(t, cfg.AuthSecretKey)
}

func TestLoadConfigMissingStoreSettings(t *testing.T) {
	tests := []struct {
		name  string
		unset string
	}{
		{"missing bucket", "S3_BUCKET_NAME"},
		{"missing endpoint", "S3_ENDPOINT"},
		{"missing access key", "S3_ACCESS_KEY_ID"},
		{"missing secret key", "S3_SECRET_ACCESS_KEY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredStoreEnv(t)
			t.Setenv(tt.unset, "")

			_, err := LoadConfig()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.unset)
		})
	}
}

func TestLoadConfigInvalidPort(t *testing.T) {
	setRequiredStoreEnv(t)

	t.Setenv("PORT", "not-a-number")
	_, err := LoadConfig()
	assert.Error(t, err)

	t.Setenv("PORT", "80")
	_, err = LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfigKeySuffixMode(t *testing.T) {
	setRequiredStoreEnv(t)

	t.Setenv("KEY_SUFFIX_MODE", KeySuffixRandom)
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, KeySuffixRandom, cfg.KeySuffixMode)

	t.Setenv("KEY_SUFFIX_MODE", "hash")
	_, err = LoadConfig()
	assert.Error(t, err)
}
