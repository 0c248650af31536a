package modes

import (
	"testing"

	"github.com/reusee/dscope"
)

func TestModules(t *testing.T) {
	dscope.New(ForProduction()).Call(func(
		tt *testing.T,
		mode Mode,
	) {
		if tt != nil {
			t.Fatal()
		}
		if mode != ModeProduction {
			t.Fatalf("got %v", mode)
		}
	})

	dscope.New(ForTest(t)).Call(func(
		tt *testing.T,
		mode Mode,
	) {
		if tt != t {
			t.Fatal()
		}
		if mode != ModeDevelopment {
			t.Fatalf("got %v", mode)
		}
	})
}
