package cmds

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestUsage(t *testing.T) {
	executor := NewExecutor()
	executor.Define("foo", Sub(map[string]*Command{
		"bar": Func(func() {
		}).Desc("BAR"),
		"baz": Sub(map[string]*Command{
			"qux": Func(func(time.Duration) {}).Desc("QUX"),
		}).Desc("BAZ"),
	}).Desc("FOO"))

	buf := new(bytes.Buffer)
	executor.WriteUsage(buf)
	out := buf.String()
	for _, expected := range []string{
		"-h (help, -help, --help)\tprint this usage\n",
		"foo\tFOO\n",
		"  bar\tBAR\n",
		"  baz\tBAZ\n",
		"    qux <time.Duration>\tQUX\n",
	} {
		if !strings.Contains(out, expected) {
			t.Fatalf("missing %q in\n%s", expected, out)
		}
	}
	if strings.Contains(out, "\nhelp") {
		t.Fatalf("alias listed as command:\n%s", out)
	}
}
