package cmd

import (
	"bytes"
	"testing"
)

func TestGenerateCommandRequiresAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	storage := t.TempDir()

	rootCmd.SetArgs([]string{"--storage", storage, "generate", "--prompt", "test"})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})

	if err := rootCmd.Execute(); err == nil {
		t.Errorf("generate without an API key should fail")
	}
}

func TestGenerateCommandFlagParsing(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{
			name: "region flag",
			args: []string{"generate", "--region", "10,10,200,150"},
		},
		{
			name: "output flag",
			args: []string{"generate", "-o", "/tmp/out.png"},
		},
		{
			name: "timeout flag",
			args: []string{"generate", "--timeout", "30s"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GEMINI_API_KEY", "")
			storage := t.TempDir()

			rootCmd.SetArgs(append([]string{"--storage", storage}, tt.args...))
			rootCmd.SetOut(&bytes.Buffer{})
			rootCmd.SetErr(&bytes.Buffer{})

			// Execution fails on the missing API key, after flag parsing.
			_ = rootCmd.Execute()
		})
	}
}
