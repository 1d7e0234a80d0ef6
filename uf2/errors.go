// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: Copyright 2026 Sam Blenny

package uf2

import "fmt"

// RangeError reports an image whose target address range would overlap
// a boot-loader-owned storage region.
type RangeError struct {
	Image    Range
	Reserved Range
}

func (e *RangeError) Error() string {
	return fmt.Sprintf(
		"image range [%#x, %#x) overlaps reserved range [%#x, %#x)",
		e.Image.Start, e.Image.End, e.Reserved.Start, e.Reserved.End,
	)
}
