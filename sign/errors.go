// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: Copyright 2026 Sam Blenny

package sign

import "fmt"

// KeyError reports signing key material of the wrong size, encoding or
// curve.
type KeyError struct {
	Reason string
}

func (e *KeyError) Error() string {
	return "signing key: " + e.Reason
}

// SizeError reports a payload that cannot be signed: either empty, or
// producing a signed image that exceeds the storage slot budget.
type SizeError struct {
	Len int // length the signed image would have
	Max int // budget, 0 when the payload itself is the problem
}

func (e *SizeError) Error() string {
	if e.Max == 0 {
		return fmt.Sprintf("firmware payload is %d bytes, nothing to sign", e.Len)
	}
	return fmt.Sprintf("signed image is %d bytes, storage budget is %d", e.Len, e.Max)
}
