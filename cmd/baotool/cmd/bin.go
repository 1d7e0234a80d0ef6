// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: Copyright 2026 Sam Blenny

package cmd

import (
	"github.com/spf13/cobra"
)

var binCmd = &cobra.Command{
	Use:   "bin ELF [BIN]",
	Short: "Extract a flat pre-signature binary from a linked ELF",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(_ *cobra.Command, args []string) error {
		prof, err := boardProfile()
		if err != nil {
			return err
		}
		in, out := argPair(args)
		img, err := extract(prof, in)
		if err != nil {
			return err
		}
		return writeOut(outName(in, out, ".elf", ".bin"), img.Data)
	},
}

func init() {
	binCmd.Flags().StringVar(&includeBin, "inc", "",
		"raw binaries to merge in, FILE1:ADDR1[,FILE2:ADDR2[,...]]")
	rootCmd.AddCommand(binCmd)
}
