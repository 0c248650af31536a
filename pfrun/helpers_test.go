package pfrun

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/reusee/dscope"
	"github.com/reusee/pf/modes"
	"github.com/reusee/pf/pfconfigs"
	"github.com/reusee/pf/pfvm"
)

type nopSource struct {
	*strings.Reader
}

func (nopSource) Close() error {
	return nil
}

func testScope(t *testing.T, defs ...any) dscope.Scope {
	return dscope.New(
		new(Module),
		modes.ForTest(t),
	).Fork(
		func() pfconfigs.ConfigFiles {
			return nil
		},
		func() pfconfigs.Environ {
			return pfconfigs.Environ{}
		},
		func() pfconfigs.Idle {
			return 0
		},
	).Fork(defs...)
}

func newTestRunner(t *testing.T, scope dscope.Scope, program string) (*Runner, *bytes.Buffer) {
	stdout := new(bytes.Buffer)
	var runner *Runner
	scope.Call(func(
		newRunner NewRunner,
	) {
		var err error
		runner, err = newRunner(nopSource{strings.NewReader(program)}, &pfvm.Options{
			Stdin:  strings.NewReader(""),
			Stdout: stdout,
		})
		if err != nil {
			t.Fatal(err)
		}
	})
	return runner, stdout
}

func stepLimit(n int) func() pfconfigs.StepLimit {
	return func() pfconfigs.StepLimit {
		return pfconfigs.StepLimit(n)
	}
}

func idle(d time.Duration) func() pfconfigs.Idle {
	return func() pfconfigs.Idle {
		return pfconfigs.Idle(d)
	}
}

func privileged() pfvm.Config {
	config := pfvm.DefaultConfig()
	config.Privileged = true
	return config
}
