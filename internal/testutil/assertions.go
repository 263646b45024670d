package testutil

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// AssertOutputLines checks that a run succeeded and printed exactly the
// given lines.
func AssertOutputLines(t *testing.T, result *HarnessResult, want ...string) {
	t.Helper()

	require.NoError(t, result.Err, "logs:\n%s", result.LogOutput)
	got := strings.Split(strings.TrimRight(result.Output, "\n"), "\n")
	if result.Output == "" {
		got = nil
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

// AssertLogged checks that the log output contains substr.
func AssertLogged(t *testing.T, result *HarnessResult, substr string) {
	t.Helper()
	require.True(t, strings.Contains(result.LogOutput, substr), "expected %q in logs:\n%s", substr, result.LogOutput)
}
