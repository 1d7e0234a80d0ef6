// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: Copyright 2026 Sam Blenny

package sign

import (
	"bytes"
	"crypto"
	"crypto/ed25519"
	"crypto/sha512"
	"encoding/binary"
	"fmt"
)

// Info is the decoded preamble of a signed image.
type Info struct {
	FormatVersion uint32
	SignedLen     uint32
	FunctionCode  uint32
	MinVersion    []byte // raw 16-byte encoding
	Version       []byte // raw 16-byte encoding
	Pubkeys       [4]Pubkey
	Slot          int // key slot the signature verified against, -1 before Verify
}

// Verify checks a signed image the way the boot loader's verifier
// does: parse the preamble, hash the signed range with SHA-512, and
// check the ed25519ph signature against each non-empty embedded key
// slot. It returns the decoded preamble with Slot set to the slot that
// verified.
func Verify(img []byte) (*Info, error) {
	if len(img) <= SigBlockLen {
		return nil, fmt.Errorf("image is %d bytes, shorter than the %d-byte signature block", len(img), SigBlockLen)
	}
	if binary.LittleEndian.Uint32(img) != jalX0 {
		return nil, fmt.Errorf("bad jump word %#x at offset 0", binary.LittleEndian.Uint32(img))
	}
	sig := img[4 : 4+ed25519.SignatureSize]
	sealed := img[BlobHeaderLen:]

	info := &Info{Slot: -1}
	info.FormatVersion = binary.LittleEndian.Uint32(sealed)
	if !bytes.Equal(sealed[4:12], sealedMagic[:]) {
		return nil, fmt.Errorf("bad magic %q at offset %#x", sealed[4:12], BlobHeaderLen+4)
	}
	info.SignedLen = binary.LittleEndian.Uint32(sealed[12:])
	if int(info.SignedLen) != len(sealed) {
		return nil, fmt.Errorf("declared signed length %d, actual %d", info.SignedLen, len(sealed))
	}
	info.FunctionCode = binary.LittleEndian.Uint32(sealed[16:])
	info.MinVersion = append([]byte(nil), sealed[0x18:0x28]...)
	info.Version = append([]byte(nil), sealed[0x28:0x38]...)
	for i := range info.Pubkeys {
		off := 0x38 + i*36
		copy(info.Pubkeys[i].Key[:], sealed[off:])
		copy(info.Pubkeys[i].Tag[:], sealed[off+32:])
	}

	digest := sha512.Sum512(sealed)
	opts := &ed25519.Options{Hash: crypto.SHA512}
	var empty [ed25519.PublicKeySize]byte
	for i := range info.Pubkeys {
		if info.Pubkeys[i].Key == empty {
			continue
		}
		pub := ed25519.PublicKey(info.Pubkeys[i].Key[:])
		if ed25519.VerifyWithOptions(pub, digest[:], sig, opts) == nil {
			info.Slot = i
			return info, nil
		}
	}
	return nil, fmt.Errorf("signature does not verify against any embedded key slot")
}
