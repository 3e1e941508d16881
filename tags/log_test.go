package tags

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
)

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(hclog.New(&hclog.LoggerOptions{
		Name:   "test",
		Level:  hclog.Debug,
		Output: &buf,
	}))
	t.Cleanup(func() { SetLogger(nil) })

	path := createTestWAV(t, t.TempDir(), nil)
	if _, err := Read(path); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	if !strings.Contains(out, "no ID3 chunk") {
		t.Errorf("log output %q does not mention the missing chunk", out)
	}
	if !strings.Contains(out, "test.tags") {
		t.Errorf("log output %q is not emitted by the named logger", out)
	}
}

func TestSetLogger_NilSilences(t *testing.T) {
	SetLogger(nil)
	if logger().IsDebug() {
		t.Error("default logger should not log")
	}
}
