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

// ValidationError identifies the reason a container was rejected. The set is
// closed: validation returns the first error encountered and never wraps or
// combines them.
type ValidationError int

const (
	Success ValidationError = iota
	ErrInvalidPrefix
	ErrVersionUnknown
	ErrIncompleteSectionSize
	ErrIncompleteSectionNumber
	ErrCodeSectionMissing
	ErrTypeSectionMissing
	ErrDataSectionMissing
	ErrMultipleDataSections
	ErrUnknownSectionID
	ErrZeroSectionSize
	ErrHeadersNotTerminated
	ErrInvalidSectionBodiesSize
	ErrUndefinedInstruction
	ErrTruncatedInstruction
	ErrInvalidRjumpvCount
	ErrInvalidRjumpDestination
	ErrCodeBeforeTypeSection
	ErrMultipleTypeSections
	ErrMultipleCodeHeaders
	ErrTooManyCodeSections
	ErrDataBeforeCodeSection
	ErrDataBeforeTypeSection
	ErrInvalidTypeSectionSize
	ErrInvalidFirstSectionType
	ErrInvalidMaxStackHeight
	ErrNoTerminatingInstruction
	ErrStackHeightMismatch
	ErrNonEmptyStackOnTerminatingInstruction
	ErrMaxStackHeightAboveLimit
	ErrInputsOutputsAboveLimit
	ErrUnreachableInstructions
	ErrStackUnderflow
	ErrInvalidCodeSectionIndex
	ErrMultipleContainerHeaders
	ErrContainerBeforeTypeSection
	ErrContainerBeforeCodeSection

	// ErrImpossible marks state-machine branches that cannot be reached.
	// Observing it is a bug in the validator, never a property of the input.
	ErrImpossible
)

var errorMessages = [...]string{
	Success:                                  "success",
	ErrInvalidPrefix:                         "invalid_prefix",
	ErrVersionUnknown:                        "eof_version_unknown",
	ErrIncompleteSectionSize:                 "incomplete_section_size",
	ErrIncompleteSectionNumber:               "incomplete_section_number",
	ErrCodeSectionMissing:                    "code_section_missing",
	ErrTypeSectionMissing:                    "type_section_missing",
	ErrDataSectionMissing:                    "data_section_missing",
	ErrMultipleDataSections:                  "multiple_data_sections",
	ErrUnknownSectionID:                      "unknown_section_id",
	ErrZeroSectionSize:                       "zero_section_size",
	ErrHeadersNotTerminated:                  "section_headers_not_terminated",
	ErrInvalidSectionBodiesSize:              "invalid_section_bodies_size",
	ErrUndefinedInstruction:                  "undefined_instruction",
	ErrTruncatedInstruction:                  "truncated_instruction",
	ErrInvalidRjumpvCount:                    "invalid_rjumpv_count",
	ErrInvalidRjumpDestination:               "invalid_rjump_destination",
	ErrCodeBeforeTypeSection:                 "code_section_before_type_section",
	ErrMultipleTypeSections:                  "multiple_type_sections",
	ErrMultipleCodeHeaders:                   "multiple_code_sections_headers",
	ErrTooManyCodeSections:                   "too_many_code_sections",
	ErrDataBeforeCodeSection:                 "data_section_before_code_section",
	ErrDataBeforeTypeSection:                 "data_section_before_types_section",
	ErrInvalidTypeSectionSize:                "invalid_type_section_size",
	ErrInvalidFirstSectionType:               "invalid_first_section_type",
	ErrInvalidMaxStackHeight:                 "invalid_max_stack_height",
	ErrNoTerminatingInstruction:              "no_terminating_instruction",
	ErrStackHeightMismatch:                   "stack_height_mismatch",
	ErrNonEmptyStackOnTerminatingInstruction: "non_empty_stack_on_terminating_instruction",
	ErrMaxStackHeightAboveLimit:              "max_stack_height_above_limit",
	ErrInputsOutputsAboveLimit:               "inputs_outputs_num_above_limit",
	ErrUnreachableInstructions:               "unreachable_instructions",
	ErrStackUnderflow:                        "stack_underflow",
	ErrInvalidCodeSectionIndex:               "invalid_code_section_index",
	ErrMultipleContainerHeaders:              "multiple_container_sections_headers",
	ErrContainerBeforeTypeSection:            "container_section_before_type_section",
	ErrContainerBeforeCodeSection:            "container_section_before_code_section",
	ErrImpossible:                            "impossible",
}

// ErrorMessage returns the stable token of a validation error. It is total:
// values outside the defined set map to "<unknown>".
func ErrorMessage(err ValidationError) string {
	if err < Success || int(err) >= len(errorMessages) {
		return "<unknown>"
	}
	return errorMessages[err]
}

func (e ValidationError) Error() string {
	return ErrorMessage(e)
}
