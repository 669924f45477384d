/*******************************************************************************
*
* Copyright 2016 Stefan Majewsky <majewsky@gmx.net>
*
* This file is part of Holo.
*
* Holo is free software: you can redistribute it and/or modify it under the
* terms of the GNU General Public License as published by the Free Software
* Foundation, either version 3 of the License, or (at your option) any later
* version.
*
* Holo is distributed in the hope that it will be useful, but WITHOUT ANY
* WARRANTY; without even the implied warranty of MERCHANTABILITY or FITNESS FOR
* A PARTICULAR PURPOSE. See the GNU General Public License for more details.
*
* You should have received a copy of the GNU General Public License along with
* Holo. If not, see <http://www.gnu.org/licenses/>.
*
*******************************************************************************/

package rpm

import (
	"bytes"
	"encoding/binary"
)

// byteReader wraps a []byte with a cursor, used for decoding the fixed
// header sections (lead, index table, store) where random access by offset
// is needed in addition to sequential reads.
type byteReader struct {
	buf []byte
	pos int
}

func newByteReader(buf []byte) *byteReader {
	return &byteReader{buf: buf}
}

func (r *byteReader) remaining() int {
	return len(r.buf) - r.pos
}

// readN reads exactly n bytes, or fails with MalformedInput if the buffer is
// exhausted first.
func (r *byteReader) readN(n int, what string) ([]byte, error) {
	if r.remaining() < n {
		return nil, newError(KindMalformedInput, "truncated input while reading %s (need %d bytes, have %d)", what, n, r.remaining())
	}
	out := r.buf[r.pos : r.pos+n]
	r.pos += n
	return out, nil
}

func (r *byteReader) readUint8(what string) (uint8, error) {
	b, err := r.readN(1, what)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *byteReader) readUint16BE(what string) (uint16, error) {
	b, err := r.readN(2, what)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (r *byteReader) readUint32BE(what string) (uint32, error) {
	b, err := r.readN(4, what)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (r *byteReader) readInt32BE(what string) (int32, error) {
	v, err := r.readUint32BE(what)
	return int32(v), err
}

// readNulTerminatedAt reads a NUL-terminated string starting at the given
// absolute offset into buf, without disturbing the reader's own cursor.
// Returns the decoded string and the offset of the byte right after the
// terminator, so callers decoding string arrays can chain calls.
func readNulTerminatedAt(buf []byte, offset int) (string, int, error) {
	if offset < 0 || offset > len(buf) {
		return "", 0, newError(KindMalformedInput, "string offset %d out of range (store is %d bytes)", offset, len(buf))
	}
	idx := bytes.IndexByte(buf[offset:], 0x00)
	if idx < 0 {
		return "", 0, newError(KindMalformedInput, "unterminated string at store offset %d", offset)
	}
	return string(buf[offset : offset+idx]), offset + idx + 1, nil
}

// writeUint32BE appends the big-endian encoding of v to buf.
func writeUint32BE(buf []byte, v uint32) []byte {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], v)
	return append(buf, tmp[:]...)
}

func writeInt32BE(buf []byte, v int32) []byte {
	return writeUint32BE(buf, uint32(v))
}

func writeUint16BE(buf []byte, v uint16) []byte {
	var tmp [2]byte
	binary.BigEndian.PutUint16(tmp[:], v)
	return append(buf, tmp[:]...)
}

// padTo appends zero bytes to buf until its length is a multiple of align.
// align must be 1, 2, 4 or 8.
func padTo(buf []byte, align int) []byte {
	for len(buf)%align != 0 {
		buf = append(buf, 0x00)
	}
	return buf
}
