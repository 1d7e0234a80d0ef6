// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: Copyright 2026 Sam Blenny

// Package sign wraps a flat firmware image in the Bao1x boot loader's
// 768-byte signature block.
//
// # Signed image layout
//
// The signature block is two fixed-size headers, all fields little
// endian:
//
// SignedBlob header (132 bytes):
//
//	0x00  u32     jal x0, +768 (0x3000006f), jumps over the block
//	0x04  [64]u8  ed25519ph signature over SealedData
//	0x44  u32     AAD length (unused, 0)
//	0x48  [60]u8  AAD (unused, zero)
//
// SealedData (636-byte header + payload; this is the signed range):
//
//	0x00  u32      format version (0x0100)
//	0x04  [8]u8    magic, wire bytes "ymuy3oaB"
//	0x0c  u32      signed length (636 + payload length)
//	0x10  u32      function code (bare-metal application = 6)
//	0x14  u32      reserved (0)
//	0x18  [16]u8   minimum-compatible boot loader version
//	0x28  [16]u8   image version
//	0x38  [144]u8  4 key slots, 32-byte public key + 4-byte tag each
//	0xc8  [436]u8  zero pad to 636
//
// The boot loader hashes SealedData (header and payload) with SHA-512
// and verifies the ed25519ph signature against one of the embedded key
// slots, subject to its own on-device revocation state for that slot.
// Every field the verifier reads lives inside the signed range, so
// there is no forgeable gap.
//
// Signing is deterministic: the pad bytes are zero and Ed25519 itself
// is deterministic, so signing the same payload with the same key
// yields byte-identical output.
package sign
