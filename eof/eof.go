// Copyright 2025 The eofkit Authors
// This file is part of the eofkit library.
//
// The eofkit library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The eofkit library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the eofkit library. If not, see <http://www.gnu.org/licenses/>.

// Package eof implements parsing and validation of EVM Object Format
// containers, the structured wrapper around EVM bytecode introduced by
// EIP-3540 and refined by EIP-3670, EIP-4200, EIP-4750 and EIP-5450.
//
// The validator is a pure function from a revision and a byte string to
// either a parsed Header or a ValidationError; it performs no I/O and keeps
// no state between calls.
package eof

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/evmtools/eofkit/params"
)

const (
	offsetVersion = 2
	offsetHeader  = 3

	kindTerminator = 0
	kindType       = 1
	kindCode       = 2
	kindData       = 3
	kindContainer  = 4

	eofFormatByte = 0xef
	eof1Version   = 1
)

var eofMagic = []byte{0xef, 0x00}

// HasEOFByte returns true if code starts with the 0xEF format byte.
func HasEOFByte(code []byte) bool {
	return len(code) != 0 && code[0] == eofFormatByte
}

// IsEOF returns true if code starts with the magic defined by EIP-3540. It
// does not inspect the container any further.
func IsEOF(code []byte) bool {
	return len(eofMagic) <= len(code) && bytes.Equal(eofMagic, code[:len(eofMagic)])
}

// Version returns the version byte of an EOF container, or 0 (legacy code)
// if the prefix is missing or invalid.
func Version(code []byte) byte {
	if len(code) <= offsetVersion || !IsEOF(code) {
		return 0
	}
	return code[offsetVersion]
}

// FunctionType is the signature of a single code section: the stack items it
// consumes, the items it leaves behind, and the maximum stack height its body
// may reach relative to an empty frame.
type FunctionType struct {
	Inputs         uint8  `json:"inputs"`
	Outputs        uint8  `json:"outputs"`
	MaxStackHeight uint16 `json:"maxStackHeight"`
}

// Header is the decoded section table of an EOF container. All offsets are
// absolute positions within the container the header was read from. A Header
// is produced once by Validate or ReadValidHeader and never mutated.
type Header struct {
	CodeSizes        []int          `json:"codeSizes"`
	CodeOffsets      []int          `json:"codeOffsets"`
	DataSize         int            `json:"dataSize"`
	ContainerSizes   []int          `json:"containerSizes,omitempty"`
	ContainerOffsets []int          `json:"containerOffsets,omitempty"`
	Types            []FunctionType `json:"types"`
}

// HeaderSize returns the size of the encoded section table, which is also
// the absolute offset of the type section body.
func (h *Header) HeaderSize() int {
	size := offsetHeader + 3 + 3 + 2*len(h.CodeSizes) + 3 + 1
	if len(h.ContainerSizes) != 0 {
		size += 3 + 2*len(h.ContainerSizes)
	}
	return size
}

// CodeSection returns the body of code section i.
func (h *Header) CodeSection(container []byte, i int) []byte {
	return container[h.CodeOffsets[i] : h.CodeOffsets[i]+h.CodeSizes[i]]
}

// SubContainer returns the body of embedded container i.
func (h *Header) SubContainer(container []byte, i int) []byte {
	return container[h.ContainerOffsets[i] : h.ContainerOffsets[i]+h.ContainerSizes[i]]
}

func (h *Header) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Header\n")
	fmt.Fprintf(&b, "  - EOFMagic: %02x\n", eofMagic)
	fmt.Fprintf(&b, "  - EOFVersion: %02x\n", eof1Version)
	fmt.Fprintf(&b, "  - TypesSize: %04x\n", 4*len(h.Types))
	fmt.Fprintf(&b, "  - DataSize: %04x\n", h.DataSize)
	fmt.Fprintf(&b, "  - Number of code sections: %d\n", len(h.CodeSizes))
	for i, size := range h.CodeSizes {
		fmt.Fprintf(&b, "    - Code section %d: size %04x offset %04x\n", i, size, h.CodeOffsets[i])
	}
	fmt.Fprintf(&b, "  - Number of subcontainers: %d\n", len(h.ContainerSizes))
	for i, size := range h.ContainerSizes {
		fmt.Fprintf(&b, "    - Subcontainer %d: size %04x offset %04x\n", i, size, h.ContainerOffsets[i])
	}
	for i, t := range h.Types {
		fmt.Fprintf(&b, "  - Type %d: %x\n", i,
			[]byte{t.Inputs, t.Outputs, byte(t.MaxStackHeight >> 8), byte(t.MaxStackHeight)})
	}
	return b.String()
}

// ReadValidHeader decodes the section table of a container that has already
// been accepted by Validate. It skips every error check and must not be
// called on unvalidated input.
func ReadValidHeader(container []byte) *Header {
	var (
		h        = new(Header)
		typeSize int
		pos      = offsetHeader
	)
	for container[pos] != kindTerminator {
		kind := container[pos]
		pos++
		switch kind {
		case kindType:
			typeSize = readUint16(container[pos:])
			pos += 2
		case kindData:
			h.DataSize = readUint16(container[pos:])
			pos += 2
		case kindCode, kindContainer:
			num := readUint16(container[pos:])
			pos += 2
			for i := 0; i < num; i++ {
				size := readUint16(container[pos:])
				pos += 2
				if kind == kindCode {
					h.CodeSizes = append(h.CodeSizes, size)
				} else {
					h.ContainerSizes = append(h.ContainerSizes, size)
				}
			}
		}
	}
	pos++ // terminator, pos is now the header size

	for off := pos; off < pos+typeSize; off += 4 {
		h.Types = append(h.Types, FunctionType{
			Inputs:         container[off],
			Outputs:        container[off+1],
			MaxStackHeight: binary.BigEndian.Uint16(container[off+2:]),
		})
	}
	offset := pos + typeSize
	for _, size := range h.CodeSizes {
		h.CodeOffsets = append(h.CodeOffsets, offset)
		offset += size
	}
	offset += h.DataSize
	for _, size := range h.ContainerSizes {
		h.ContainerOffsets = append(h.ContainerOffsets, offset)
		offset += size
	}
	return h
}

// AppendData inserts aux into the data section of an already validated
// container and patches the declared data size in place. The insertion point
// is just before the first embedded container, or the container end if there
// are none. It reports failure only when the resulting data size would not
// fit the 16-bit size field; the input is returned unchanged in that case.
//
// The result is not re-validated; growing the data section of a valid
// container cannot invalidate it.
func AppendData(container, aux []byte) ([]byte, bool) {
	header := ReadValidHeader(container)
	newSize := header.DataSize + len(aux)
	if newSize > params.MaxDataSize {
		return container, false
	}
	insertPos := len(container)
	if len(header.ContainerOffsets) != 0 {
		insertPos = header.ContainerOffsets[0]
	}
	out := make([]byte, 0, len(container)+len(aux))
	out = append(out, container[:insertPos]...)
	out = append(out, aux...)
	out = append(out, container[insertPos:]...)

	dataSizePos := offsetHeader + 3 + 3 + 2*len(header.CodeSizes) + 1
	binary.BigEndian.PutUint16(out[dataSizePos:], uint16(newSize))
	return out, true
}

// readUint16 reads a 16-bit big-endian unsigned integer.
func readUint16(b []byte) int {
	return int(binary.BigEndian.Uint16(b))
}

// parseInt16 reads a 16-bit big-endian signed integer.
func parseInt16(b []byte) int {
	return int(int16(b[1]) | int16(b[0])<<8)
}

func sum(list []int) (s int) {
	for _, n := range list {
		s += n
	}
	return
}
