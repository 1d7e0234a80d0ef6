// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: Copyright 2026 Sam Blenny

package cmd

import (
	_ "embed"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/samblenny/dabao-zephyr-cp-poc/elfimg"
	"github.com/samblenny/dabao-zephyr-cp-poc/internal/logger"
	"github.com/samblenny/dabao-zephyr-cp-poc/profile"
	"github.com/samblenny/dabao-zephyr-cp-poc/sign"
	"github.com/samblenny/dabao-zephyr-cp-poc/uf2"
)

// devKeyPEM is the publicly disclosed, non-production development
// signing key. Production keys must be supplied with --key.
//
//go:embed dev.key
var devKeyPEM []byte

var (
	keyPath    string
	funcCode   uint32
	imgVersion string
	minVersion string
	includeBin string
)

// addSignFlags registers the signing flags shared by the sign and
// build commands.
func addSignFlags(c *cobra.Command) {
	c.Flags().StringVarP(&keyPath, "key", "k", "",
		"signing key file (PKCS#8 PEM or raw seed; default: embedded dev key)")
	c.Flags().Uint32Var(&funcCode, "function", 0,
		"image function code (default: profile value)")
	c.Flags().StringVar(&imgVersion, "semver", "",
		"image version MAJOR.MINOR.PATCH[-EXTRA][+gCOMMIT]")
	c.Flags().StringVar(&minVersion, "min-semver", "",
		"minimum-compatible boot loader version (default: profile value)")
}

// extract reads the linked ELF and builds the flat storage image.
func extract(prof *profile.Profile, elfPath string) (*elfimg.FlatImage, error) {
	ss, sym, err := elfimg.ReadELF(elfPath)
	if err != nil {
		return nil, errors.Wrap(err, elfPath)
	}
	if includeBin != "" {
		isec, err := elfimg.ReadBins(includeBin)
		if err != nil {
			return nil, err
		}
		ss = append(ss, isec...)
	}
	img, err := elfimg.BuildImage(ss, sym, prof.Layout())
	if err != nil {
		return nil, err
	}
	logger.Debugf("flat image: %d bytes at %#x, .data template %d bytes, .bss %d bytes at %#x",
		len(img.Data), img.Base, img.DataSize, img.BSSSize, img.BSSStart)
	return img, nil
}

// newSigner builds a signer from the profile and the signing flags.
func newSigner(prof *profile.Profile) (*sign.Signer, error) {
	keyData := devKeyPEM
	if keyPath != "" {
		var err error
		keyData, err = os.ReadFile(keyPath)
		if err != nil {
			return nil, errors.Wrap(err, "read signing key")
		}
	} else {
		logger.Warnf("no --key given, signing with the public dev key")
	}
	key, err := sign.LoadKey(keyData)
	if err != nil {
		return nil, err
	}
	code := prof.FunctionCode
	if funcCode != 0 {
		code = funcCode
	}
	minStr := prof.MinBootVersion
	if minVersion != "" {
		minStr = minVersion
	}
	minVer, err := sign.ParseSemVer(minStr)
	if err != nil {
		return nil, err
	}
	imgVer, err := sign.ParseSemVer(imgVersion)
	if err != nil {
		return nil, err
	}
	return sign.New(key,
		sign.WithFunctionCode(code),
		sign.WithMinVersion(minVer),
		sign.WithVersion(imgVer),
		sign.WithMaxImageLen(int(prof.ImageBudget)),
	)
}

// pack encodes the signed image as UF2 blocks.
func pack(prof *profile.Profile, signed []byte) ([]byte, error) {
	return uf2.Pack(signed, uf2.Params{
		Base:     prof.StorageBase,
		Family:   prof.Family,
		Reserved: prof.Reserved(),
	})
}

// writeOut writes a fully computed artifact. Nothing is written until
// every pipeline stage has succeeded.
func writeOut(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(err, "write output")
	}
	logger.Infof("wrote %s (%d bytes)", path, len(data))
	return nil
}
