// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: Copyright 2026 Sam Blenny

package sign

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	"github.com/coreos/go-semver/semver"
)

// SemVer is the boot loader's 16-byte version encoding: four uint16
// fields, an optional commit hash, and a commit-present flag, all
// little endian. The boot loader compares a candidate image's minimum
// version field against its own version before accepting it.
type SemVer struct {
	Major, Minor, Patch, Extra uint16
	Commit                     uint32
	HasCommit                  bool
}

const semVerLen = 16

func (v SemVer) encode() [semVerLen]byte {
	var b [semVerLen]byte
	binary.LittleEndian.PutUint16(b[0:], v.Major)
	binary.LittleEndian.PutUint16(b[2:], v.Minor)
	binary.LittleEndian.PutUint16(b[4:], v.Patch)
	binary.LittleEndian.PutUint16(b[6:], v.Extra)
	binary.LittleEndian.PutUint32(b[8:], v.Commit)
	if v.HasCommit {
		binary.LittleEndian.PutUint32(b[12:], 1)
	}
	return b
}

func (v SemVer) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Extra != 0 {
		s += fmt.Sprintf("-%d", v.Extra)
	}
	if v.HasCommit {
		s += fmt.Sprintf("+g%08x", v.Commit)
	}
	return s
}

// ParseSemVer parses "MAJOR.MINOR.PATCH[-EXTRA][+gCOMMIT]" into the
// boot loader encoding. EXTRA is a decimal build counter and COMMIT a
// hexadecimal short hash, matching the version strings the SDK's build
// tooling emits.
func ParseSemVer(s string) (SemVer, error) {
	if s == "" {
		return SemVer{}, nil
	}
	sv, err := semver.NewVersion(s)
	if err != nil {
		return SemVer{}, fmt.Errorf("version %q: %w", s, err)
	}
	var v SemVer
	for _, f := range []struct {
		dst  *uint16
		name string
		val  int64
	}{
		{&v.Major, "major", sv.Major},
		{&v.Minor, "minor", sv.Minor},
		{&v.Patch, "patch", sv.Patch},
	} {
		if f.val < 0 || f.val > 0xffff {
			return SemVer{}, fmt.Errorf("version %q: %s exceeds 16 bits", s, f.name)
		}
		*f.dst = uint16(f.val)
	}
	if pr := string(sv.PreRelease); pr != "" {
		extra, err := strconv.ParseUint(pr, 10, 16)
		if err != nil {
			return SemVer{}, fmt.Errorf("version %q: extra %q is not a 16-bit decimal", s, pr)
		}
		v.Extra = uint16(extra)
	}
	if m := sv.Metadata; m != "" {
		m = strings.TrimPrefix(m, "g")
		commit, err := strconv.ParseUint(m, 16, 32)
		if err != nil {
			return SemVer{}, fmt.Errorf("version %q: commit %q is not a 32-bit hex hash", s, sv.Metadata)
		}
		v.Commit = uint32(commit)
		v.HasCommit = true
	}
	return v, nil
}
