package pfvm

import (
	"errors"
	"fmt"
	"io"
)

// readWindow fills buf with the window-th CacheSize-aligned slice of src.
// A short read near the end of src zeroes the tail of buf, or leaves it untouched with LegacyStaleWindow.
func (v *VM) readWindow(src Source, window int64, buf []byte) error {
	offset := window * int64(len(buf))
	pos, err := src.Seek(offset, io.SeekStart)
	if err != nil {
		return fmt.Errorf("seek to %d: %w", offset, err)
	}
	if pos != offset {
		return fmt.Errorf("seek to %d: unexpected position %d", offset, pos)
	}
	n, err := io.ReadFull(src, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("read window %d: %w", window, err)
	}
	if n < len(buf) && !v.config.LegacyStaleWindow {
		clear(buf[n:])
	}
	return nil
}

// fetch returns the source byte at position, refreshing the cache window if needed.
// Load failures are logged and yield 0, which the interpreter treats as end of program.
func (v *VM) fetch(r *Routine, position int32) byte {
	size := v.config.CacheSize
	window := int64(position) / int64(size)
	if window != r.window {
		// a failed read must not leave part of the new window under the old window number
		if len(r.spare) != size {
			r.spare = make([]byte, size)
		}
		copy(r.spare, r.cache)
		if err := v.readWindow(r.source.src, window, r.spare); err != nil {
			v.logger.Error("load cache window",
				"window", window,
				"position", position,
				"error", err,
			)
			return 0
		}
		r.cache, r.spare = r.spare, r.cache
		r.window = window
	}
	return r.cache[int(position)%size]
}
