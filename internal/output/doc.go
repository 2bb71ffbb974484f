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

// Package output writes eligibility records for the CLI, either as NDJSON
// (one JSON object per line, the default) or as a single JSON array.
//
// Both writers are safe for concurrent use and stream records as they are
// written rather than accumulating them in memory.
//
// Example usage:
//
//	w, err := output.New(output.FormatNDJSON, os.Stdout)
//	if err != nil {
//	    return err
//	}
//	defer w.Close()
//
//	for _, record := range records {
//	    if err := w.Write(record); err != nil {
//	        return err
//	    }
//	}
package output
