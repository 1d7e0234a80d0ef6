// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: Copyright 2026 Sam Blenny

// Package elfimg extracts a flat storage image from a linked bare-metal
// ELF binary.
//
// The boot loader jumps to a fixed address in ReRAM, so the linked
// program must be laid out as one contiguous run of bytes starting
// there: code and read-only data first, then the initial values of the
// writable .data section (its load copy, not its RAM copy). The .bss
// region contributes no bytes; the program's startup code zeroes it in
// SRAM using lengths the linker exports as symbols.
//
// BuildImage cross-checks the section layout against those same linker
// symbols (_data_lma, _data_vma, _bss_vma, _data_size, _bss_size)
// before producing any bytes. The startup copy routine assumes the
// .data template sits immediately after the read-only region with no
// hidden gap; an image that silently violates that assumption boots
// into garbage, so the checks here fail loudly instead.
package elfimg
