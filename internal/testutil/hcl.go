package testutil

import (
	"testing"

	"github.com/ivargr/snakehelp/internal/app"
)

// RunHCL runs a single command against one HCL declaration document.
func RunHCL(t *testing.T, src string, command string, args ...string) *HarnessResult {
	t.Helper()
	return Run(t, map[string]string{"schemas/main.hcl": src}, app.Config{Command: command, Args: args})
}
