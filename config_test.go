package lndk

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestCleanAndExpandPath asserts tilde and environment expansion.
func TestCleanAndExpandPath(t *testing.T) {
	t.Setenv("LNDK_TEST_DIR", "/tmp/lndk-test")

	require.Equal(t, "", CleanAndExpandPath(""))
	require.Equal(t, filepath.Join("/tmp/lndk-test", "sub"),
		CleanAndExpandPath("$LNDK_TEST_DIR/sub"))

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, "x"), CleanAndExpandPath("~/x"))
}

// TestParseAndSetDebugLevels exercises both the single level and the
// per-subsystem forms.
func TestParseAndSetDebugLevels(t *testing.T) {
	tests := []struct {
		name  string
		level string
		valid bool
	}{
		{
			name:  "single level",
			level: "debug",
			valid: true,
		},
		{
			name:  "invalid level",
			level: "loud",
			valid: false,
		},
		{
			name:  "subsystem pair",
			level: "LNDK=trace,RPCS=warn",
			valid: true,
		},
		{
			name:  "unknown subsystem",
			level: "NOPE=debug",
			valid: false,
		},
		{
			name:  "malformed pair",
			level: "LNDK=debug,RPCS",
			valid: false,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			err := parseAndSetDebugLevels(test.level)
			if test.valid {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
		})
	}

	// Restore the default so other tests keep quiet logs.
	require.NoError(t, parseAndSetDebugLevels(defaultLogLevel))
}

// TestValidateConfigDefaults asserts that a default config in a scratch
// directory validates and normalizes its paths under that directory.
func TestValidateConfigDefaults(t *testing.T) {
	lndkDir := t.TempDir()

	cfg := DefaultConfig()
	cfg.LndkDir = lndkDir

	cleaned, err := ValidateConfig(cfg, "usage")
	require.NoError(t, err)

	require.Equal(t, lndkDir, cleaned.LndkDir)
	require.Equal(t, filepath.Dir(cleaned.TLSCertPath), lndkDir)
	require.Equal(t, filepath.Dir(cleaned.TLSKeyPath), lndkDir)
	require.Equal(t, filepath.Dir(cleaned.LogDir), lndkDir)
}

// TestValidateConfigBadListen asserts malformed listen addresses are
// rejected.
func TestValidateConfigBadListen(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LndkDir = t.TempDir()
	cfg.Listen = "no-port"

	_, err := ValidateConfig(cfg, "usage")
	require.Error(t, err)
}
