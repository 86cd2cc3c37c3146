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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/evmtools/eofkit/params/forks"
)

func TestStackHeightUnderflow(t *testing.T) {
	tests := []string{
		// POP on an empty stack.
		"EF0001 010004 0200010002 030000 00 00000000 5000",
		// ADD with a single item.
		"EF0001 010004 0200010004 030000 00 00000001 60000100",
		// CALLF into a function requiring two inputs with an empty stack.
		"EF0001 010008 02000200040002 030000 00 00000000 02010002 B0000100 50B1",
	}
	for i, s := range tests {
		_, err := Validate(forks.Cancun, hex2Bytes(s))
		require.Equal(t, ErrStackUnderflow, err, "test %d: %s", i, s)
	}
}

func TestStackHeightMismatch(t *testing.T) {
	// The RJUMPI branch reaches the final STOP with an empty stack, the
	// fall-through path pushes one more item first.
	container := "EF0001 010004 0200010007 030000 00 00000001 60005D00015F00"
	_, err := Validate(forks.Cancun, hex2Bytes(container))
	require.Equal(t, ErrStackHeightMismatch, err)
}

func TestStackHeightUnreachable(t *testing.T) {
	tests := []string{
		// Dead second STOP.
		"EF0001 010004 0200010002 030000 00 00000000 0000",
		// RJUMP over a run of instructions nothing jumps back to.
		"EF0001 010004 0200010007 030000 00 00000000 5C000300000000",
		// Backward RJUMP preceded by a halt: the jump itself is dead.
		"EF0001 010004 0200010005 030000 00 00000000 005CFFFC00",
	}
	for i, s := range tests {
		_, err := Validate(forks.Cancun, hex2Bytes(s))
		require.Equal(t, ErrUnreachableInstructions, err, "test %d: %s", i, s)
	}
}

func TestStackHeightRETF(t *testing.T) {
	// RETF with a height unequal to the declared outputs.
	container := "EF0001 010008 02000200010001 030000 00 00000000 00010000 FE B1"
	_, err := Validate(forks.Cancun, hex2Bytes(container))
	require.Equal(t, ErrNonEmptyStackOnTerminatingInstruction, err)

	// RETF returning exactly the declared outputs.
	container = "EF0001 010008 02000200010001 030000 00 00000000 01010001 FE B1"
	_, err = Validate(forks.Cancun, hex2Bytes(container))
	require.NoError(t, err)
}

func TestStackHeightCALLF(t *testing.T) {
	// CALLF with an out-of-range function index.
	container := "EF0001 010004 0200010004 030000 00 00000000 B0000100"
	_, err := Validate(forks.Cancun, hex2Bytes(container))
	require.Equal(t, ErrInvalidCodeSectionIndex, err)

	// Two arguments pushed, function (2 in, 1 out) called, result popped.
	container = "EF0001 010008 02000200090002 030000 00 00000002 02010002 60016001B00001 5000 50B1"
	header, err := Validate(forks.Cancun, hex2Bytes(container))
	require.NoError(t, err)
	require.Equal(t, []FunctionType{{0, 0, 2}, {2, 1, 2}}, header.Types)
}

func TestStackHeightDeclaredMax(t *testing.T) {
	// Observed max is zero, declared is one.
	container := "EF0001 010004 0200010001 030000 00 00000001 FE"
	_, err := Validate(forks.Cancun, hex2Bytes(container))
	require.Equal(t, ErrInvalidMaxStackHeight, err)

	// Observed max is two, declared is one.
	container = "EF0001 010004 0200010005 030000 00 00000001 6000600000"
	_, err = Validate(forks.Cancun, hex2Bytes(container))
	require.Equal(t, ErrInvalidMaxStackHeight, err)

	// A declared limit of exactly 1024 is acceptable when reached.
	_, err = Validate(forks.Cancun, maxStackContainer(1024))
	require.NoError(t, err)
	_, err = Validate(forks.Cancun, maxStackContainer(1023))
	require.Equal(t, ErrInvalidMaxStackHeight, err)
}

// maxStackContainer builds a single-function container pushing 1024 items,
// with the given declared max stack height.
func maxStackContainer(declared int) []byte {
	code := make([]byte, 0, 1025)
	for i := 0; i < 1024; i++ {
		code = append(code, byte(PUSH0))
	}
	code = append(code, byte(STOP))

	container := []byte{0xef, 0x00, 0x01}
	container = append(container, 0x01, 0x00, 0x04)
	container = append(container, 0x02, 0x00, 0x01, byte(len(code)>>8), byte(len(code)))
	container = append(container, 0x03, 0x00, 0x00)
	container = append(container, 0x00)
	container = append(container, 0x00, 0x00, byte(declared>>8), byte(declared))
	container = append(container, code...)
	return container
}
