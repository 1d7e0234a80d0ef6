// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: Copyright 2026 Sam Blenny

package sign

import (
	"crypto/ed25519"
	"crypto/x509"
	"encoding/hex"
	"encoding/pem"
	"fmt"
)

// Pubkey is one boot loader key slot: a raw Ed25519 public key plus a
// 4-byte tag naming the slot. The boot loader keeps per-slot
// revocation state, so the whole table is always embedded and the
// device alone decides which slots it still trusts.
type Pubkey struct {
	Key [ed25519.PublicKeySize]byte
	Tag [4]byte
}

// DefaultPubkeys is the key slot table baked into the Bao1x boot
// loader: an empty slot, the production key, the beta key and the
// publicly disclosed development key.
var DefaultPubkeys = [4]Pubkey{
	{},
	{Key: mustKey("79135dc667aff4f7d352b90328788ebf92c786782138b377370b15194e312888"),
		Tag: [4]byte{'b', 'a', 'o', '2'}},
	{Key: mustKey("80979929edd04e40124b52cae9ae54b24bdff72a7b8a004c41065bd1402078a7"),
		Tag: [4]byte{'b', 'e', 't', 'a'}},
	// Note the space-padded (not null-padded) tag.
	{Key: mustKey("1c9beae32aeac87507c18094387eff1c74614282affd8152d871352edf3f58bb"),
		Tag: [4]byte{'d', 'e', 'v', ' '}},
}

func mustKey(s string) (k [ed25519.PublicKeySize]byte) {
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != len(k) {
		panic("bad key slot constant")
	}
	copy(k[:], b)
	return
}

// LoadKey decodes private key material into an Ed25519 signing key.
// Accepted forms: a PKCS#8 PEM block, raw PKCS#8 DER, a raw 32-byte
// seed, or a raw 64-byte expanded private key. Anything else is
// rejected: signing with a misread key produces an image the device
// refuses with no diagnostic, so a corrupt key file must fail here.
func LoadKey(data []byte) (ed25519.PrivateKey, error) {
	der := data
	if block, _ := pem.Decode(data); block != nil {
		der = block.Bytes
	}
	switch len(der) {
	case ed25519.SeedSize:
		return ed25519.NewKeyFromSeed(der), nil
	case ed25519.PrivateKeySize:
		key := ed25519.PrivateKey(append([]byte(nil), der...))
		// Reject a 64-byte blob whose public half does not match.
		want := ed25519.NewKeyFromSeed(der[:ed25519.SeedSize])
		if !key.Equal(want) {
			return nil, &KeyError{Reason: "64-byte key has mismatched public half"}
		}
		return key, nil
	}
	k, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		return nil, &KeyError{
			Reason: fmt.Sprintf("not PKCS#8 and not a raw 32- or 64-byte key (%d bytes)", len(der)),
		}
	}
	ed, ok := k.(ed25519.PrivateKey)
	if !ok {
		return nil, &KeyError{Reason: fmt.Sprintf("not an Ed25519 key: %T", k)}
	}
	return ed, nil
}

// SlotIndex returns the index of the key slot holding pub, or -1 when
// the table does not contain it.
func SlotIndex(pubkeys [4]Pubkey, pub ed25519.PublicKey) int {
	for i := range pubkeys {
		if string(pubkeys[i].Key[:]) == string(pub) {
			return i
		}
	}
	return -1
}
