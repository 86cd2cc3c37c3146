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
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  ValidationError
		want string
	}{
		{Success, "success"},
		{ErrInvalidPrefix, "invalid_prefix"},
		{ErrVersionUnknown, "eof_version_unknown"},
		{ErrZeroSectionSize, "zero_section_size"},
		{ErrDataBeforeTypeSection, "data_section_before_types_section"},
		{ErrNoTerminatingInstruction, "no_terminating_instruction"},
		{ErrNonEmptyStackOnTerminatingInstruction, "non_empty_stack_on_terminating_instruction"},
		{ErrImpossible, "impossible"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, ErrorMessage(tt.err))
		require.Equal(t, tt.want, tt.err.Error())
	}
}

func TestErrorMessageTotal(t *testing.T) {
	// Every defined variant has a stable lowercase snake-case token.
	for e := Success; e <= ErrImpossible; e++ {
		msg := ErrorMessage(e)
		require.NotEqual(t, "<unknown>", msg, "variant %d", e)
		require.NotEmpty(t, msg, "variant %d", e)
		require.Equal(t, strings.ToLower(msg), msg, "variant %d", e)
		require.NotContains(t, msg, " ", "variant %d", e)
	}
	// Out-of-domain values never panic and map to the unknown token.
	for _, e := range []ValidationError{-1, -100, ErrImpossible + 1, 1 << 20} {
		require.Equal(t, "<unknown>", ErrorMessage(e))
	}
}
