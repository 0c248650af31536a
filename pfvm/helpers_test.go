package pfvm

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"testing"
)

type testSource struct {
	*bytes.Reader
	closed int
}

func (s *testSource) Close() error {
	s.closed++
	return nil
}

func newSource(program string) *testSource {
	return &testSource{
		Reader: bytes.NewReader([]byte(program)),
	}
}

var errBroken = errors.New("broken")

// brokenSource serves program bytes but fails seeks to the end, or reads reaching failReadAt
type brokenSource struct {
	*testSource
	failSeekEnd bool
	failReadAt  int64
}

func (b *brokenSource) Seek(offset int64, whence int) (int64, error) {
	if whence == io.SeekEnd && b.failSeekEnd {
		return 0, errBroken
	}
	return b.testSource.Seek(offset, whence)
}

func (b *brokenSource) Read(p []byte) (int, error) {
	pos, _ := b.testSource.Seek(0, io.SeekCurrent)
	if b.failReadAt >= 0 && pos >= b.failReadAt {
		return 0, errBroken
	}
	// stop at failReadAt so a window read fails partway
	if b.failReadAt >= 0 && pos+int64(len(p)) > b.failReadAt {
		p = p[:b.failReadAt-pos]
	}
	return b.testSource.Read(p)
}

func testLogger(t *testing.T) *slog.Logger {
	return slog.New(slog.NewTextHandler(t.Output(), &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

type testVM struct {
	*VM
	stdout *bytes.Buffer
}

func newTestVM(t *testing.T, config Config, stdin io.Reader) testVM {
	stdout := new(bytes.Buffer)
	vm, err := New(config, &Options{
		Stdin:  stdin,
		Stdout: stdout,
		Logger: testLogger(t),
	})
	if err != nil {
		t.Fatal(err)
	}
	return testVM{
		VM:     vm,
		stdout: stdout,
	}
}

func (v testVM) mustCreate(t *testing.T, program string) int {
	index, err := v.Create(newSource(program))
	if err != nil {
		t.Fatal(err)
	}
	return index
}

func (v testVM) userCell(index int, i int) byte {
	return v.Routine(index).Tape()[v.config.SpecialMemory+i]
}

func (v testVM) setUserCell(index int, i int, value byte) {
	v.Routine(index).Tape()[v.config.SpecialMemory+i] = value
}

func (v testVM) mailbox(index int) []byte {
	return v.Routine(index).Tape()[:v.config.SpecialMemory]
}

func privilegedConfig() Config {
	config := DefaultConfig()
	config.Privileged = true
	return config
}
