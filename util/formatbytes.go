// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"fmt"
	"strings"
)

// FormatBytes - dump a byte slice as a Go variable declaration
// suitable for embedding in test code
func FormatBytes(name string, data []byte) string {
	s := strings.Builder{}
	s.WriteString(name)
	s.WriteString(" := []byte{")
	for i, b := range data {
		if 0 == i%8 {
			s.WriteString("\n\t")
		}
		s.WriteString(fmt.Sprintf("0x%02x, ", b))
	}
	s.WriteString("\n}")
	return s.String()
}
