package logs

import (
	"bytes"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		env  string
		on   bool
		want bool
	}{
		{"", false, false},
		{"0", false, false},
		{"false", false, false},
		{"1", false, true},
		{"yes", false, true},
		{"", true, true},
	}
	for _, tc := range tests {
		t.Setenv(EnvVar, tc.env)
		var buf bytes.Buffer
		New(&buf, "rtreplay", tc.on).Debug("hello", "n", 1)
		got := strings.Contains(buf.String(), "msg=hello")
		if got != tc.want {
			t.Errorf("env %q on %v: logged = %v, want %v (output %q)", tc.env, tc.on, got, tc.want, buf.String())
		}
		if got && !strings.Contains(buf.String(), "prog=rtreplay") {
			t.Errorf("output %q lacks prog", buf.String())
		}
	}
}
