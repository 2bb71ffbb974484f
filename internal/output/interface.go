// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package output

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Supported output formats.
const (
	FormatNDJSON = "ndjson"
	FormatJSON   = "json"
)

// RecordWriter writes eligibility records in one output format.
type RecordWriter interface {
	// Write writes a single record to the output.
	Write(record interface{}) error

	// Close finishes the output and closes the underlying file, if any.
	// It must be called even when no record was written.
	Close() error

	// Count returns the number of records written.
	Count() int
}

// ValidateFormat reports whether format is one New accepts.
func ValidateFormat(format string) error {
	switch strings.ToLower(format) {
	case FormatNDJSON, FormatJSON, "":
		return nil
	default:
		return fmt.Errorf("unsupported output format %q (want %s or %s)", format, FormatNDJSON, FormatJSON)
	}
}

// New returns a RecordWriter for format writing to w.
func New(format string, w io.Writer) (RecordWriter, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}
	if strings.EqualFold(format, FormatJSON) {
		return NewArrayWriter(w), nil
	}
	return NewWriter(w), nil
}

// NewFile creates filename and returns a RecordWriter for format writing to
// it. Closing the writer closes the file. An unsupported format is rejected
// before the file is touched.
func NewFile(format, filename string) (RecordWriter, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}

	file, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	w, err := New(format, file)
	if err != nil {
		_ = file.Close()
		return nil, err
	}

	switch typed := w.(type) {
	case *Writer:
		typed.closeFunc = file.Close
	case *ArrayWriter:
		typed.closeFunc = file.Close
	}
	return w, nil
}
