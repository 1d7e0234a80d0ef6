// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: Copyright 2026 Sam Blenny

// Package uf2 packs a signed firmware image into UF2 container blocks
// for the boot loader's mass-storage flashing interface.
//
// Each block is 512 bytes: an 8-word header (two start magics, flags,
// target address, payload length, block sequence number, total block
// count, family id), a 256-byte payload, 220 pad bytes and an end
// magic. The flashing layer writes each block's payload to its
// declared target address and nothing else, so addresses must advance
// by exactly the payload size and every block repeats the total count
// in case blocks arrive out of order.
package uf2
