// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package utils provides bounded-buffer byte stream primitives for image composition.
package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// CopyBufferSize is the size of the intermediate buffer used by all copy
// operations, keeping memory usage constant regardless of transfer size.
const CopyBufferSize = 1 << 20

// Copy transfers bytes from r to w until EOF, returning the number of bytes copied.
func Copy(w io.Writer, r io.Reader) (int64, error) {
	return io.CopyBuffer(w, struct{ io.Reader }{r}, make([]byte, CopyBufferSize))
}

// CopyN transfers exactly size bytes from r to w.
//
// An input exhausted before size bytes is an error: the caller has pinned the
// transfer size and a shorter stream indicates corrupted input.
func CopyN(w io.Writer, r io.Reader, size int64) (int64, error) {
	n, err := io.CopyBuffer(w, io.LimitReader(r, size), make([]byte, CopyBufferSize))
	if err != nil {
		return n, err
	}

	if n != size {
		return n, fmt.Errorf("short read: copied %d bytes, expected %d", n, size)
	}

	return n, nil
}

// ZeroFill writes size zero bytes to w.
func ZeroFill(w io.Writer, size int64) (int64, error) {
	buf := make([]byte, min(size, CopyBufferSize))

	var written int64

	for written < size {
		chunk := buf[:min(size-written, CopyBufferSize)]

		n, err := w.Write(chunk)

		written += int64(n)

		if err != nil {
			return written, err
		}

		if n != len(chunk) {
			return written, fmt.Errorf("short write: wrote %d bytes, expected %d", n, len(chunk))
		}
	}

	return written, nil
}

// CopyReaderInstruction describes a reader copy operation.
type CopyReaderInstruction struct {
	Reader io.Reader
	Dest   string
}

// ReaderDestination returns a CopyReaderInstruction that copies reader to dest.
func ReaderDestination(reader io.Reader, dest string) CopyReaderInstruction {
	return CopyReaderInstruction{Reader: reader, Dest: dest}
}

// CopyReader copies readers according to the given instructions.
func CopyReader(printf func(string, ...any), instructions ...CopyReaderInstruction) error {
	for _, instruction := range instructions {
		if err := func(instruction CopyReaderInstruction) error {
			dest := instruction.Dest

			if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
				return err
			}

			printf("copying from io reader to %s", dest)

			to, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o666)
			if err != nil {
				return err
			}
			//nolint:errcheck
			defer to.Close()

			_, err = Copy(to, instruction.Reader)

			return err
		}(instruction); err != nil {
			return fmt.Errorf("error copying reader -> %s: %w", instruction.Dest, err)
		}
	}

	return nil
}
