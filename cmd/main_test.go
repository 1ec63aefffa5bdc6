package main

import (
	"errors"
	"os"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/require"
)

const crashEnv = "CHAT_RELAY_RUN_MAIN"

func TestMain_ExitsWithoutAPIKey(t *testing.T) {
	if os.Getenv(crashEnv) == "1" {
		main()
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestMain_ExitsWithoutAPIKey$")
	cmd.Dir = t.TempDir()
	cmd.Env = append(os.Environ(),
		crashEnv+"=1",
		"GEMINI_API_KEY=",
		"GOOGLE_API_KEY=",
	)
	out, err := cmd.CombinedOutput()

	var exitErr *exec.ExitError
	require.True(t, errors.As(err, &exitErr), "expected non-zero exit, got err=%v output=%s", err, out)
	require.NotZero(t, exitErr.ExitCode())
	require.Contains(t, string(out), "GEMINI_API_KEY")
	require.NotContains(t, string(out), "HTTP server started")
}
