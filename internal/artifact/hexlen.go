// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package artifact

import "strings"

// emptyHex is the marker compilers emit for contracts without code.
const emptyHex = "0x"

// HexLen returns the number of bytes a hex-encoded payload represents.
//
// Empty input and the bare "0x" marker are zero bytes. An optional 0x/0X
// prefix is stripped and the remaining length halved; an odd trailing
// nibble is dropped rather than reported. The payload is not validated.
func HexLen(s string) int {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, emptyHex) {
		return 0
	}
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	return len(s) / 2
}
