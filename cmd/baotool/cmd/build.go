// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: Copyright 2026 Sam Blenny

package cmd

import (
	"github.com/spf13/cobra"
)

var (
	buildBinOut string
	buildImgOut string
)

var buildCmd = &cobra.Command{
	Use:   "build ELF [UF2]",
	Short: "Extract, sign and pack a linked ELF in one step",
	Long: `Build runs the whole pipeline: extract a flat binary from the linked
ELF, wrap it in the boot loader's signature block, and pack the signed
image into a UF2 file. All three artifacts are computed and validated
before anything is written, so a failed run leaves no partial files.`,
	Args: cobra.RangeArgs(1, 2),
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
		signer, err := newSigner(prof)
		if err != nil {
			return err
		}
		signed, err := signer.Sign(img.Data)
		if err != nil {
			return err
		}
		blocks, err := pack(prof, signed)
		if err != nil {
			return err
		}
		if buildBinOut != "" {
			if err := writeOut(buildBinOut, img.Data); err != nil {
				return err
			}
		}
		if buildImgOut != "" {
			if err := writeOut(buildImgOut, signed); err != nil {
				return err
			}
		}
		return writeOut(outName(in, out, ".elf", ".uf2"), blocks)
	},
}

func init() {
	addSignFlags(buildCmd)
	buildCmd.Flags().StringVar(&includeBin, "inc", "",
		"raw binaries to merge in, FILE1:ADDR1[,FILE2:ADDR2[,...]]")
	buildCmd.Flags().StringVar(&buildBinOut, "bin", "",
		"also write the flat pre-signature binary here (inspection artifact)")
	buildCmd.Flags().StringVar(&buildImgOut, "img", "",
		"also write the signed image here")
	rootCmd.AddCommand(buildCmd)
}
