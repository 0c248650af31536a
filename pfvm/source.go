package pfvm

import (
	"io"
)

// Source is a routine program. Length is derived by seeking to the end.
type Source = io.ReadSeekCloser

type nopCloser struct {
	io.ReadSeeker
}

func (nopCloser) Close() error {
	return nil
}

// NopCloser turns a ReadSeeker into a Source that ignores Close
func NopCloser(rs io.ReadSeeker) Source {
	return nopCloser{rs}
}

// sharedSource is a source referenced by an origin routine and its forks.
// The underlying handle is closed when the last reference is released.
type sharedSource struct {
	src  Source
	refs int
}

func newSharedSource(src Source) *sharedSource {
	return &sharedSource{
		src:  src,
		refs: 1,
	}
}

func (s *sharedSource) acquire() *sharedSource {
	s.refs++
	return s
}

// release drops one reference and reports whether the handle was closed
func (s *sharedSource) release() (closed bool, err error) {
	s.refs--
	if s.refs > 0 {
		return false, nil
	}
	return true, s.src.Close()
}

func sourceLength(src Source) (int64, error) {
	return src.Seek(0, io.SeekEnd)
}
