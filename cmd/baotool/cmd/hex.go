// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: Copyright 2026 Sam Blenny

package cmd

import (
	"bytes"
	"os"

	"github.com/marcinbor85/gohex"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var hexAddr uint32

var hexCmd = &cobra.Command{
	Use:   "hex IMG [HEX]",
	Short: "Dump a binary or signed image as Intel HEX for inspection",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(_ *cobra.Command, args []string) error {
		prof, err := boardProfile()
		if err != nil {
			return err
		}
		in, out := argPair(args)
		data, err := os.ReadFile(in)
		if err != nil {
			return errors.Wrap(err, "read image")
		}
		addr := hexAddr
		if addr == 0 {
			addr = prof.StorageBase
		}
		mem := gohex.NewMemory()
		if err := mem.AddBinary(addr, data); err != nil {
			return errors.Wrap(err, "addbinary")
		}
		var buf bytes.Buffer
		if err := mem.DumpIntelHex(&buf, 16); err != nil {
			return errors.Wrap(err, "dumpintelhex")
		}
		return writeOut(outName(in, out, ".img", ".hex"), buf.Bytes())
	},
}

func init() {
	hexCmd.Flags().Uint32Var(&hexAddr, "addr", 0,
		"storage address of the image (default: profile storage base)")
	rootCmd.AddCommand(hexCmd)
}
