// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: Copyright 2026 Sam Blenny

// Baotool prepares Bao1x firmware images for flashing: it extracts a
// flat binary from a linked ELF, signs it for the boot loader, and
// packs the signed image into a UF2 file for the drag-and-drop
// flashing interface.
package main

import "github.com/samblenny/dabao-zephyr-cp-poc/cmd/baotool/cmd"

func main() {
	cmd.Execute()
}
