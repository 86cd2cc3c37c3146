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

// Package params holds the protocol constants the container validator
// enforces.
package params

const (
	// MaxCodeSections bounds the number of code sections a single container
	// may declare.
	MaxCodeSections = 1024

	// MaxStackHeight bounds the stack height a function may declare and
	// reach. It shares its value with MaxCodeSections by coincidence only.
	MaxStackHeight = 1024

	// MaxFunctionInputs and MaxFunctionOutputs bound the input and output
	// item counts of a single function type.
	MaxFunctionInputs  = 127
	MaxFunctionOutputs = 127

	// MaxDataSize is the largest declarable data section, the full range of
	// the 16-bit size field.
	MaxDataSize = 65535
)
