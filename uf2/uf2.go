// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: Copyright 2026 Sam Blenny

package uf2

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// UF2 block flags.
const (
	FlagNotMainFlash    = 0x00000001
	FlagFileContainer   = 0x00001000
	FlagFamilyIDPresent = 0x00002000
	FlagMD5Present      = 0x00004000
	FlagExtensionTags   = 0x00008000
)

const (
	// FamilyBao1x is the UF2 family id the Bao1x boot loader accepts.
	FamilyBao1x = 0xa7d76373

	// PayloadLen is the data carried by each 512-byte block.
	PayloadLen = 256

	// BlockLen is the size of an encoded block.
	BlockLen = 512
)

type block struct {
	Magic0 uint32
	Magic1 uint32
	Flags  uint32
	Addr   uint32
	Len    uint32
	Seq    uint32
	Total  uint32
	Family uint32
	Data   [PayloadLen]byte
	_      [476 - PayloadLen]byte
	Magic2 uint32
}

// Writer streams bytes into UF2 blocks. The total block count must be
// known up front (every block carries it), so the final image size is
// given to NewWriter and the caller must Flush after the last Write.
type Writer struct {
	w io.Writer
	b block
}

// NewWriter returns a Writer placing size bytes at addr.
func NewWriter(w io.Writer, addr, flags, family uint32, size int) *Writer {
	u := new(Writer)
	u.w = w
	u.b.Magic0 = 0x0a324655
	u.b.Magic1 = 0x9e5d5157
	u.b.Flags = flags
	u.b.Addr = addr
	u.b.Total = uint32((size + PayloadLen - 1) / PayloadLen)
	u.b.Family = family
	u.b.Magic2 = 0x0ab16f30
	return u
}

func (u *Writer) Write(p []byte) (n int, err error) {
	b := &u.b
	for len(p) != 0 {
		m := copy(b.Data[b.Len:], p)
		n += m
		p = p[m:]
		b.Len += uint32(m)
		if int(b.Len) == len(b.Data) {
			err = binary.Write(u.w, binary.LittleEndian, b)
			if err != nil {
				return
			}
			b.Addr += b.Len
			b.Seq++
			b.Len = 0
		}
	}
	return
}

// Flush zero-pads and emits the final partial block, if any.
func (u *Writer) Flush() (err error) {
	b := &u.b
	if b.Len == 0 {
		return
	}
	clear(b.Data[b.Len:])
	b.Len = uint32(len(b.Data))
	err = binary.Write(u.w, binary.LittleEndian, b)
	b.Addr += b.Len
	b.Seq++
	b.Len = 0
	return
}

// NumBlocks returns the number of blocks needed for size payload
// bytes.
func NumBlocks(size int) int {
	return (size + PayloadLen - 1) / PayloadLen
}

// Range is a half-open [Start, End) span of storage addresses.
type Range struct {
	Start uint32
	End   uint32
}

// Overlaps reports whether the two spans share any address.
func (r Range) Overlaps(o Range) bool {
	return r.Start < o.End && o.Start < r.End
}

// Params configures a Pack run.
type Params struct {
	// Base is the storage address the first payload byte targets.
	Base uint32

	// Family is the UF2 family id; zero omits the family flag.
	Family uint32

	// Reserved is a boot-loader-owned storage span the image must not
	// touch. The zero Range disables the check.
	Reserved Range
}

// Pack splits data into UF2 blocks targeting p.Base onward. The full
// address range is validated against p.Reserved before any block is
// encoded.
func Pack(data []byte, p Params) ([]byte, error) {
	if len(data) == 0 {
		return nil, errors.New("no image data to pack")
	}
	img := Range{Start: p.Base, End: p.Base + uint32(len(data))}
	if p.Reserved != (Range{}) && img.Overlaps(p.Reserved) {
		return nil, &RangeError{Image: img, Reserved: p.Reserved}
	}
	var flags uint32
	if p.Family != 0 {
		flags = FlagFamilyIDPresent
	}
	buf := bytes.NewBuffer(make([]byte, 0, NumBlocks(len(data))*BlockLen))
	w := NewWriter(buf, p.Base, flags, p.Family, len(data))
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
