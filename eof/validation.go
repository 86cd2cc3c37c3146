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

package eof

import (
	"encoding/binary"

	"github.com/evmtools/eofkit/params"
	"github.com/evmtools/eofkit/params/forks"
)

// Validate checks container against the full EOF v1 rule set of the given
// revision and returns the parsed header of the outermost container.
// Embedded containers are validated with the same rules; the first error
// found anywhere aborts the run.
func Validate(fork forks.Fork, container []byte) (*Header, error) {
	if len(container) < offsetHeader || !IsEOF(container) {
		return nil, ErrInvalidPrefix
	}
	if fork < forks.Cancun {
		return nil, ErrVersionUnknown
	}
	jt := NewInstructionSet(fork)

	// Embedded containers re-enter the pipeline through a queue rather than
	// recursion, so nesting depth cannot grow the call stack.
	var (
		top   *Header
		queue = [][]byte{container}
	)
	for len(queue) > 0 {
		b := queue[0]
		queue = queue[1:]

		header, err := validateContainer(&jt, b)
		if err != nil {
			return nil, err
		}
		if top == nil {
			top = header
		}
		for i := range header.ContainerSizes {
			queue = append(queue, header.SubContainer(b, i))
		}
	}
	return top, nil
}

// validateContainer runs the single-level pipeline: prefix and version,
// section headers, type section, and the three per-section code passes.
func validateContainer(jt *InstructionSet, container []byte) (*Header, error) {
	if len(container) < offsetHeader || !IsEOF(container) {
		return nil, ErrInvalidPrefix
	}
	if container[offsetVersion] != eof1Version {
		return nil, ErrVersionUnknown
	}
	sections, err := validateSectionHeaders(container)
	if err != nil {
		return nil, err
	}
	types, err := validateTypes(container, sections.headerSize, sections.typeSizes[0])
	if err != nil {
		return nil, err
	}
	header := &Header{
		CodeSizes:      sections.codeSizes,
		ContainerSizes: sections.containerSizes,
		Types:          types,
	}
	if len(sections.dataSizes) != 0 {
		header.DataSize = sections.dataSizes[0]
	}
	offset := sections.headerSize + sections.typeSizes[0]
	for _, size := range header.CodeSizes {
		header.CodeOffsets = append(header.CodeOffsets, offset)
		offset += size
	}
	offset += header.DataSize
	for _, size := range header.ContainerSizes {
		header.ContainerOffsets = append(header.ContainerOffsets, offset)
		offset += size
	}

	for i := range header.CodeSizes {
		code := header.CodeSection(container, i)
		if err := validateInstructions(jt, code); err != nil {
			return nil, err
		}
		if err := validateJumpDestinations(jt, code); err != nil {
			return nil, err
		}
		maxHeight, err := validateMaxStackHeight(jt, code, i, types)
		if err != nil {
			return nil, err
		}
		if maxHeight != int(types[i].MaxStackHeight) {
			return nil, ErrInvalidMaxStackHeight
		}
	}
	return header, nil
}

// sectionHeaders is the raw result of the header state machine: the declared
// size list per section kind, plus the total encoded header size.
type sectionHeaders struct {
	typeSizes      []int
	codeSizes      []int
	dataSizes      []int
	containerSizes []int
	headerSize     int
}

// validateSectionHeaders parses the section-header table with a byte-level
// state machine, enforcing kind ordering, uniqueness and counts, and checks
// the declared sizes against the actual body length.
func validateSectionHeaders(container []byte) (*sectionHeaders, error) {
	const (
		stateSectionID = iota
		stateSectionSize
		stateTerminated
	)
	var (
		state    = stateSectionID
		kind     byte
		num      int
		pos      = offsetHeader
		sections sectionHeaders
	)
	for pos < len(container) && state != stateTerminated {
		switch state {
		case stateSectionID:
			kind = container[pos]
			pos++
			switch kind {
			case kindTerminator:
				if len(sections.typeSizes) == 0 {
					return nil, ErrTypeSectionMissing
				}
				if len(sections.codeSizes) == 0 {
					return nil, ErrCodeSectionMissing
				}
				if len(sections.dataSizes) == 0 {
					return nil, ErrDataSectionMissing
				}
				state = stateTerminated
			case kindType:
				if len(sections.typeSizes) != 0 {
					return nil, ErrMultipleTypeSections
				}
				if len(sections.codeSizes) != 0 {
					return nil, ErrCodeBeforeTypeSection
				}
				state = stateSectionSize
			case kindCode:
				if len(sections.typeSizes) == 0 {
					return nil, ErrCodeBeforeTypeSection
				}
				if len(sections.dataSizes) != 0 {
					return nil, ErrDataBeforeCodeSection
				}
				if len(sections.codeSizes) != 0 {
					return nil, ErrMultipleCodeHeaders
				}
				var err error
				if num, pos, err = readSectionCount(container, pos); err != nil {
					return nil, err
				}
				state = stateSectionSize
			case kindData:
				if len(sections.typeSizes) == 0 {
					return nil, ErrDataBeforeTypeSection
				}
				if len(sections.codeSizes) == 0 {
					return nil, ErrDataBeforeCodeSection
				}
				if len(sections.dataSizes) != 0 {
					return nil, ErrMultipleDataSections
				}
				state = stateSectionSize
			case kindContainer:
				if len(sections.typeSizes) == 0 {
					return nil, ErrContainerBeforeTypeSection
				}
				if len(sections.codeSizes) == 0 {
					return nil, ErrContainerBeforeCodeSection
				}
				if len(sections.containerSizes) != 0 {
					return nil, ErrMultipleContainerHeaders
				}
				var err error
				if num, pos, err = readSectionCount(container, pos); err != nil {
					return nil, err
				}
				state = stateSectionSize
			default:
				return nil, ErrUnknownSectionID
			}
		case stateSectionSize:
			switch kind {
			case kindCode, kindContainer:
				for i := 0; i < num; i++ {
					if pos+1 >= len(container) {
						return nil, ErrIncompleteSectionSize
					}
					size := readUint16(container[pos:])
					pos += 2
					if size == 0 {
						return nil, ErrZeroSectionSize
					}
					if kind == kindCode {
						if len(sections.codeSizes) == params.MaxCodeSections {
							return nil, ErrTooManyCodeSections
						}
						sections.codeSizes = append(sections.codeSizes, size)
					} else {
						sections.containerSizes = append(sections.containerSizes, size)
					}
				}
			default: // kindType or kindData
				if pos+1 >= len(container) {
					return nil, ErrIncompleteSectionSize
				}
				size := readUint16(container[pos:])
				pos += 2
				if size == 0 && kind != kindData {
					return nil, ErrZeroSectionSize
				}
				if kind == kindType {
					sections.typeSizes = append(sections.typeSizes, size)
				} else {
					sections.dataSizes = append(sections.dataSizes, size)
				}
			}
			state = stateSectionID
		default:
			return nil, ErrImpossible
		}
	}
	if state != stateTerminated {
		return nil, ErrHeadersNotTerminated
	}
	sections.headerSize = pos

	bodySize := sum(sections.typeSizes) + sum(sections.codeSizes) +
		sum(sections.dataSizes) + sum(sections.containerSizes)
	if bodySize != len(container)-pos {
		return nil, ErrInvalidSectionBodiesSize
	}
	if sections.typeSizes[0] != 4*len(sections.codeSizes) {
		return nil, ErrInvalidTypeSectionSize
	}
	return &sections, nil
}

// readSectionCount reads the 16-bit size count of a code or container
// section group.
func readSectionCount(container []byte, pos int) (int, int, error) {
	if pos+1 >= len(container) {
		return 0, 0, ErrIncompleteSectionNumber
	}
	num := readUint16(container[pos:])
	if num == 0 {
		return 0, 0, ErrZeroSectionSize
	}
	return num, pos + 2, nil
}

// validateTypes decodes the type section and checks the first-function
// contract and the per-function limits.
func validateTypes(container []byte, headerSize, typeSize int) ([]FunctionType, error) {
	types := make([]FunctionType, 0, typeSize/4)
	for off := headerSize; off < headerSize+typeSize; off += 4 {
		types = append(types, FunctionType{
			Inputs:         container[off],
			Outputs:        container[off+1],
			MaxStackHeight: binary.BigEndian.Uint16(container[off+2:]),
		})
	}
	if types[0].Inputs != 0 || types[0].Outputs != 0 {
		return nil, ErrInvalidFirstSectionType
	}
	for _, t := range types {
		if t.MaxStackHeight > params.MaxStackHeight {
			return nil, ErrMaxStackHeightAboveLimit
		}
		if t.Inputs > params.MaxFunctionInputs || t.Outputs > params.MaxFunctionOutputs {
			return nil, ErrInputsOutputsAboveLimit
		}
	}
	return types, nil
}

// validateInstructions linearly scans one code section, checking that every
// opcode is defined at the active revision, that every immediate operand is
// complete, and that the section ends on a terminating opcode.
func validateInstructions(jt *InstructionSet, code []byte) error {
	for i := 0; ; {
		op := OpCode(code[i])
		instr := jt[op]
		if instr == nil {
			return ErrUndefinedInstruction
		}
		size := instr.immediate
		if op == RJUMPV {
			if i+1 >= len(code) {
				return ErrTruncatedInstruction
			}
			count := int(code[i+1])
			if count < 1 {
				return ErrInvalidRjumpvCount
			}
			size = 1 + 2*count
		}
		next := i + 1 + size
		if next >= len(code) {
			// The last instruction: its operand must fit and it must not
			// fall through the section end.
			if next > len(code) || !instr.terminal {
				return ErrNoTerminatingInstruction
			}
			return nil
		}
		i = next
	}
}
