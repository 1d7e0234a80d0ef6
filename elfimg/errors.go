// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: Copyright 2026 Sam Blenny

package elfimg

import "fmt"

// LayoutError reports a section address or length inconsistent with the
// boot loader's jump convention or with the linker-exported layout
// symbols.
type LayoutError struct {
	What string
	Want uint64
	Got  uint64
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("layout: %s: expected %#x, got %#x", e.What, e.Want, e.Got)
}

// AlignmentError reports a gap between the end of the read-only region
// and the writable-section template. The startup copy routine computes
// its source pointer from _data_lma, so any extra padding the linker
// sneaks in between the two regions desynchronizes the copy.
type AlignmentError struct {
	ROEnd   uint64 // aligned end of the read-only region in storage
	DataLMA uint64 // where the linker placed the .data template
}

func (e *AlignmentError) Error() string {
	return fmt.Sprintf(
		"alignment: .data template at %#x, expected %#x (aligned end of read-only region)",
		e.DataLMA, e.ROEnd,
	)
}
