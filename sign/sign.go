// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: Copyright 2026 Sam Blenny

package sign

import (
	"bytes"
	"crypto"
	"crypto/ed25519"
	"crypto/sha512"
	"encoding/binary"
)

const (
	// SigBlockLen is the size of the whole signature block preamble:
	// SignedBlob header plus SealedData header.
	SigBlockLen = 768

	// BlobHeaderLen is the size of the SignedBlob header (jump word,
	// signature, AAD). Everything after it is the signed range.
	BlobHeaderLen = 132

	// SealedHeaderLen is the size of the SealedData header preceding
	// the payload inside the signed range.
	SealedHeaderLen = SigBlockLen - BlobHeaderLen

	// FunctionBaremetal is the function code the boot loader expects
	// for a bare-metal application image.
	FunctionBaremetal = 6

	formatVersion = 0x0100

	// jalX0 is the RISC-V instruction "jal x0, +768": the boot loader
	// jumps to the start of the image, and this word carries execution
	// over the signature block into the payload regardless of how the
	// block's interior evolves.
	jalX0 = 0x3000006f

	aadLen = 60
)

// sealedMagic is the wire form of the SealedData magic, found at
// offset 0x88 of a signed image.
var sealedMagic = [8]byte{'y', 'm', 'u', 'y', '3', 'o', 'a', 'B'}

// Config collects the preamble fields and limits a Signer applies.
// The zero value is completed by New; use the With* options to adjust
// it.
type Config struct {
	// FunctionCode distinguishes image roles (boot stage, loader,
	// bare-metal application) to the boot loader.
	FunctionCode uint32

	// MinVersion is the minimum-compatible boot loader version.
	MinVersion SemVer

	// Version identifies this image.
	Version SemVer

	// Pubkeys is the embedded key slot table.
	Pubkeys [4]Pubkey

	// MaxImageLen caps the signed image size to the destination
	// storage slot budget. Zero disables the check.
	MaxImageLen int
}

// Option adjusts the Signer configuration.
type Option func(*Config)

// WithFunctionCode sets the image role code.
func WithFunctionCode(code uint32) Option {
	return func(c *Config) { c.FunctionCode = code }
}

// WithVersion sets the image version field.
func WithVersion(v SemVer) Option {
	return func(c *Config) { c.Version = v }
}

// WithMinVersion sets the minimum-compatible boot loader version.
func WithMinVersion(v SemVer) Option {
	return func(c *Config) { c.MinVersion = v }
}

// WithPubkeys replaces the embedded key slot table. Only useful for
// devices provisioned with a custom table.
func WithPubkeys(pubkeys [4]Pubkey) Option {
	return func(c *Config) { c.Pubkeys = pubkeys }
}

// WithMaxImageLen caps the signed image size.
func WithMaxImageLen(n int) Option {
	return func(c *Config) { c.MaxImageLen = n }
}

// Signer produces signed images for one key and one set of preamble
// fields. It is immutable after New and safe for concurrent use.
type Signer struct {
	key ed25519.PrivateKey
	cfg Config
}

// New returns a Signer for the given Ed25519 private key.
func New(key ed25519.PrivateKey, opts ...Option) (*Signer, error) {
	if len(key) != ed25519.PrivateKeySize {
		return nil, &KeyError{
			Reason: "expected a 64-byte Ed25519 private key",
		}
	}
	cfg := Config{
		FunctionCode: FunctionBaremetal,
		Pubkeys:      DefaultPubkeys,
	}
	for _, o := range opts {
		o(&cfg)
	}
	return &Signer{key: key, cfg: cfg}, nil
}

// Public returns the signing key's public half.
func (s *Signer) Public() ed25519.PublicKey {
	return s.key.Public().(ed25519.PublicKey)
}

// HasSigBlock reports whether data already starts with a signature
// block (jump word at 0, magic at 0x88), i.e. is the output of a
// previous signing run.
func HasSigBlock(data []byte) bool {
	if len(data) < SigBlockLen {
		return false
	}
	if binary.LittleEndian.Uint32(data) != jalX0 {
		return false
	}
	return bytes.Equal(data[BlobHeaderLen+4:BlobHeaderLen+12], sealedMagic[:])
}

// Sign wraps payload in a signature block and returns the signed
// image. A payload that already carries a signature block is stripped
// and re-signed from scratch. The result is fully built in memory and
// deterministic for a given payload, key and configuration.
func (s *Signer) Sign(payload []byte) ([]byte, error) {
	if HasSigBlock(payload) {
		payload = payload[SigBlockLen:]
	}
	if len(payload) == 0 {
		return nil, &SizeError{Len: 0}
	}
	total := SigBlockLen + len(payload)
	if s.cfg.MaxImageLen != 0 && total > s.cfg.MaxImageLen {
		return nil, &SizeError{Len: total, Max: s.cfg.MaxImageLen}
	}

	sealed := s.sealedData(payload)
	digest := sha512.Sum512(sealed)
	sig, err := s.key.Sign(nil, digest[:], &ed25519.Options{Hash: crypto.SHA512})
	if err != nil {
		return nil, err
	}

	buf := bytes.NewBuffer(make([]byte, 0, total))
	binary.Write(buf, binary.LittleEndian, uint32(jalX0))
	buf.Write(sig)
	binary.Write(buf, binary.LittleEndian, uint32(0)) // AAD length
	buf.Write(make([]byte, aadLen))
	buf.Write(sealed)
	return buf.Bytes(), nil
}

// sealedData serializes the signed range: the SealedData header
// followed by the payload. Field order and widths are part of the wire
// contract for format version 0x0100.
func (s *Signer) sealedData(payload []byte) []byte {
	buf := bytes.NewBuffer(make([]byte, 0, SealedHeaderLen+len(payload)))
	binary.Write(buf, binary.LittleEndian, uint32(formatVersion))
	buf.Write(sealedMagic[:])
	binary.Write(buf, binary.LittleEndian, uint32(SealedHeaderLen+len(payload)))
	binary.Write(buf, binary.LittleEndian, s.cfg.FunctionCode)
	binary.Write(buf, binary.LittleEndian, uint32(0)) // reserved
	minv := s.cfg.MinVersion.encode()
	buf.Write(minv[:])
	v := s.cfg.Version.encode()
	buf.Write(v[:])
	for i := range s.cfg.Pubkeys {
		buf.Write(s.cfg.Pubkeys[i].Key[:])
		buf.Write(s.cfg.Pubkeys[i].Tag[:])
	}
	// Deterministic zero pad up to the fixed header size.
	buf.Write(make([]byte, SealedHeaderLen-buf.Len()))
	buf.Write(payload)
	return buf.Bytes()
}
