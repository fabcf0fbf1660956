// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package output provides machine-readable output for the sizegate CLI.
//
// It is used when --json is passed so that CI jobs can archive or diff the
// size report:
//
//	if err := output.JSONTo(os.Stdout, rep.JSON(top)); err != nil {
//	    return errors.Print(os.Stderr, err, true)
//	}
package output

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONTo writes data as pretty-printed JSON (2-space indent) to w.
//
// Returns an error if JSON encoding fails (e.g., for unencodable types
// like channels or functions) or the writer fails.
func JSONTo(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("JSON encoding failed: %w", err)
	}
	return nil
}
