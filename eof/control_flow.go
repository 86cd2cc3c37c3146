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

// Per-offset cells of the dataflow. Offsets holding an opcode carry its
// entry stack height once visited; immediate operand bytes are excluded from
// both the reachability and the max-height checks.
const (
	heightUnset     = -1
	heightImmediate = -2
)

// validateMaxStackHeight runs a forward fixed-point over one code section,
// computing the stack height at every instruction from the function's
// declared inputs. It rejects underflows, merge points reached with
// differing heights, returns at the wrong height, fall-through past the
// section end and unreachable instructions, and returns the observed maximum
// height for the caller to compare against the declared one.
//
// The pass runs after the instruction scan and the jump destination check,
// so immediates are complete and every jump target is an opcode within the
// section.
func validateMaxStackHeight(jt *InstructionSet, code []byte, section int, types []FunctionType) (int, error) {
	heights := make([]int, len(code))
	for i := range heights {
		heights[i] = heightUnset
	}
	heights[0] = int(types[section].Inputs)

	var (
		worklist   = []int{0}
		successors []int
	)
	for len(worklist) > 0 {
		i := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		op := OpCode(code[i])
		instr := jt[op]
		if instr == nil {
			return 0, ErrImpossible
		}
		required := instr.stackIn
		change := instr.stackOut - instr.stackIn
		if op == CALLF {
			fid := readUint16(code[i+1:])
			if fid >= len(types) {
				return 0, ErrInvalidCodeSectionIndex
			}
			required = int(types[fid].Inputs)
			change = int(types[fid].Outputs) - required
		}
		height := heights[i]
		if height < required {
			return 0, ErrStackUnderflow
		}

		successors = successors[:0]
		if op == RJUMPV {
			count := int(code[i+1])
			for j := i + 1; j <= i+1+2*count; j++ {
				heights[j] = heightImmediate
			}
			next := i + 2 + 2*count
			if next >= len(code) {
				return 0, ErrNoTerminatingInstruction
			}
			successors = append(successors, next)
			for k := 0; k < count; k++ {
				successors = append(successors, i+2+2*count+parseInt16(code[i+2+2*k:]))
			}
		} else {
			for j := i + 1; j <= i+instr.immediate; j++ {
				heights[j] = heightImmediate
			}
			if op != RJUMP && !instr.terminal {
				next := i + 1 + instr.immediate
				if next >= len(code) {
					return 0, ErrNoTerminatingInstruction
				}
				successors = append(successors, next)
			}
			if op == RJUMP || op == RJUMPI {
				successors = append(successors, i+3+parseInt16(code[i+1:]))
			}
		}

		height += change
		for _, s := range successors {
			switch heights[s] {
			case heightUnset:
				heights[s] = height
				worklist = append(worklist, s)
			case height:
				// Merge point reached again with a consistent height.
			default:
				return 0, ErrStackHeightMismatch
			}
		}
		if op == RETF && height != int(types[section].Outputs) {
			return 0, ErrNonEmptyStackOnTerminatingInstruction
		}
	}

	maxHeight := 0
	for _, h := range heights {
		if h == heightUnset {
			return 0, ErrUnreachableInstructions
		}
		if h > maxHeight {
			maxHeight = h
		}
	}
	return maxHeight, nil
}
