// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package mapping

import (
	"fmt"
	"strings"
)

// 🗣️ Reportable is implemented by errors that carry a user-facing diagnostic
type Reportable interface {
	error
	Diagnostic() string
}

// FormatDiagnostic is printed when a row does not hold exactly two columns
const FormatDiagnostic = "Incorrect format detected. The .tsv file must only be two columns: original name and new name"

// ❌ FormatError reports a row that does not split into exactly two tab-separated fields
type FormatError struct {
	Line   int    // 1-based line number
	Fields int    // Number of fields found
	Text   string // Raw line content
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("line %d: expected 2 tab-separated fields, found %d", e.Line, e.Fields)
}

// Diagnostic returns the message shown to the user
func (e *FormatError) Diagnostic() string {
	return FormatDiagnostic
}

// ❌ DuplicateError reports names that appear more than once in a column
type DuplicateError struct {
	Old []string // Sorted duplicate names from the existing name column
	New []string // Sorted duplicate names from the new name column
}

func (e *DuplicateError) Error() string {
	var parts []string
	if len(e.Old) > 0 {
		parts = append(parts, "existing names ["+JoinNames(e.Old)+"]")
	}
	if len(e.New) > 0 {
		parts = append(parts, "new names ["+JoinNames(e.New)+"]")
	}
	return "duplicate " + strings.Join(parts, " and ")
}

// Diagnostic returns one line per offending column followed by a fix hint
func (e *DuplicateError) Diagnostic() string {
	var lines []string
	if len(e.Old) > 0 {
		lines = append(lines, fmt.Sprintf("%s in the existing name column: %s",
			Plural(len(e.Old), "Duplicate entry found", "Duplicate entries found"), JoinNames(e.Old)))
	}
	if len(e.New) > 0 {
		lines = append(lines, fmt.Sprintf("%s in the new name column: %s",
			Plural(len(e.New), "Duplicate entry found", "Duplicate entries found"), JoinNames(e.New)))
	}
	lines = append(lines, "Please fix your input sheet")
	return strings.Join(lines, "\n")
}
