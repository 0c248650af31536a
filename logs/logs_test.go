package logs

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/pf/modes"
)

func TestLogger(t *testing.T) {
	dscope.New(new(Module), modes.ForTest(t)).Call(func(
		logger Logger,
	) {
		logger.Info("test", "hello", "world!")
		logger.With("routine", 0).Warn("with attrs")
	})
}

func TestNewSpan(t *testing.T) {
	SetLevel(slog.LevelDebug)
	defer SetLevel(slog.LevelInfo)

	buf := new(bytes.Buffer)
	dscope.New(new(Module), modes.ForTest(t)).Fork(
		func() Writer {
			return buf
		},
	).Call(func(
		newSpan NewSpan,
		logger Logger,
	) {
		ctx := context.Background()
		ctx1, span1 := newSpan(ctx, "run")
		ctx2, span2 := newSpan(ctx1, "step")
		logger.InfoContext(ctx2, "inside")

		lines := strings.Split(buf.String(), "\n")
		if !strings.Contains(lines[0], "logs.span="+string(span1)) ||
			!strings.Contains(lines[0], "what=run") {
			t.Fatalf("got %v", lines[0])
		}
		if !strings.Contains(lines[1], "logs.span="+string(span2)) ||
			!strings.Contains(lines[1], "parent="+string(span1)) {
			t.Fatalf("got %v", lines[1])
		}
		if !strings.Contains(lines[2], "logs.span="+string(span2)) {
			t.Fatalf("got %v", lines[2])
		}

		err := WrapSpan(ctx2, errors.New("foo"))
		if !strings.Contains(err.Error(), string(span2)) {
			t.Fatalf("got %v", err)
		}
		if WrapSpan(ctx, nil) != nil {
			t.Fatal()
		}
	})
}

func TestToJournalKey(t *testing.T) {
	if got := toJournalKey("logs.span"); got != "PF_LOGS_SPAN" {
		t.Fatalf("got %v", got)
	}
}
