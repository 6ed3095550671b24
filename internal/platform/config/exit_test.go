package config_test

import (
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/Shrey1306/noma/internal/platform/config"
)

// os.Exit cannot be intercepted in-process, so the test re-runs itself.
func TestExitf_ExitsWithCode1(t *testing.T) {
	if os.Getenv("NOMA_TEST_EXITF_SUBPROCESS") == "1" {
		config.Exitf("fatal: %s", "asset root missing")
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestExitf_ExitsWithCode1$")
	cmd.Env = append(os.Environ(), "NOMA_TEST_EXITF_SUBPROCESS=1")

	out, err := cmd.CombinedOutput()

	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		t.Fatalf("expected *exec.ExitError, got %T: %v", err, err)
	}
	if exitErr.ExitCode() != 1 {
		t.Fatalf("expected exit code 1, got %d", exitErr.ExitCode())
	}
	if !strings.Contains(string(out), "fatal: asset root missing") {
		t.Fatalf("expected stderr to contain message, got %q", string(out))
	}
}
