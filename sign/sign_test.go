// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: Copyright 2026 Sam Blenny

package sign

import (
	"crypto"
	"crypto/ed25519"
	"crypto/sha512"
	"encoding/binary"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

// TestEd25519phVector checks the prehashed signing primitive against
// the RFC 8032 section 7.3 test vector.
func TestEd25519phVector(t *testing.T) {
	t.Parallel()

	seed := mustHex(t,
		"833fe62409237b9d62ec77587520911e9a759cec1d19755b7da901b96dca3d42")
	pub := mustHex(t,
		"ec172b93ad5e563bf4932c70e1245034c35467ef2efd4d64ebf819683467e2bf")
	wantSig := mustHex(t,
		"98a70222f0b8121aa9d30f813d683f809e462b469c7ff87639499bb94e6dae41"+
			"31f85042463c2a355a2003d062adf5aaa10b8c61e636062aaad11c2a26083406")

	key := ed25519.NewKeyFromSeed(seed)
	require.Equal(t, ed25519.PublicKey(pub), key.Public())

	digest := sha512.Sum512([]byte("abc"))
	sig, err := key.Sign(nil, digest[:], &ed25519.Options{Hash: crypto.SHA512})
	require.NoError(t, err)
	require.Equal(t, wantSig, sig)
}

func testSigner(t *testing.T, opts ...Option) *Signer {
	t.Helper()
	key, err := LoadKey([]byte(devKeyPEM))
	require.NoError(t, err)
	s, err := New(key, opts...)
	require.NoError(t, err)
	return s
}

func testPayload(n int) []byte {
	p := make([]byte, n)
	for i := range p {
		p[i] = byte(i * 7)
	}
	return p
}

func TestSignLayout(t *testing.T) {
	t.Parallel()

	s := testSigner(t,
		WithVersion(SemVer{Minor: 9, Patch: 16, Extra: 2556, Commit: 0x47f529f2, HasCommit: true}),
		WithMinVersion(SemVer{Minor: 9, Patch: 8, Extra: 791}),
	)
	payload := testPayload(656)
	img, err := s.Sign(payload)
	require.NoError(t, err)

	// A 656-byte flat image becomes 656 + 768 signed bytes.
	require.Len(t, img, 656+SigBlockLen)

	le := binary.LittleEndian
	require.Equal(t, uint32(0x3000006f), le.Uint32(img)) // jal x0, +768
	require.Equal(t, uint32(0), le.Uint32(img[0x44:]))   // AAD length
	require.Equal(t, make([]byte, 60), img[0x48:0x84])   // AAD

	sealed := img[BlobHeaderLen:]
	require.Equal(t, uint32(0x0100), le.Uint32(sealed))           // format version
	require.Equal(t, []byte("ymuy3oaB"), img[0x88:0x90])          // magic
	require.Equal(t, uint32(636+656), le.Uint32(sealed[12:]))     // signed length
	require.Equal(t, uint32(FunctionBaremetal), le.Uint32(sealed[16:]))
	require.Equal(t, uint32(0), le.Uint32(sealed[20:])) // reserved
	require.Equal(t,
		mustHex(t, "00000900080017030000000000000000"),
		sealed[0x18:0x28]) // min version 0.9.8-791
	require.Equal(t,
		mustHex(t, "000009001000fc09f229f54701000000"),
		sealed[0x28:0x38]) // version 0.9.16-2556+g47f529f2

	// Key slot table: 4 slots of pubkey + tag.
	for i, pk := range DefaultPubkeys {
		off := 0x38 + i*36
		require.Equal(t, pk.Key[:], sealed[off:off+32], "slot %d key", i)
		require.Equal(t, pk.Tag[:], sealed[off+32:off+36], "slot %d tag", i)
	}
	require.Equal(t, make([]byte, 436), sealed[200:SealedHeaderLen]) // pad
	require.Equal(t, payload, sealed[SealedHeaderLen:])

	// The signature covers the entire sealed range and verifies
	// against the dev slot.
	info, err := Verify(img)
	require.NoError(t, err)
	require.Equal(t, 3, info.Slot)
	require.Equal(t, uint32(FunctionBaremetal), info.FunctionCode)
}

func TestSignDeterministic(t *testing.T) {
	t.Parallel()

	s := testSigner(t)
	payload := testPayload(1000)
	a, err := s.Sign(payload)
	require.NoError(t, err)
	b, err := s.Sign(payload)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestSignFlippedByteFailsVerify(t *testing.T) {
	t.Parallel()

	s := testSigner(t)
	img, err := s.Sign(testPayload(300))
	require.NoError(t, err)

	for _, off := range []int{
		BlobHeaderLen,      // format version
		BlobHeaderLen + 16, // function code
		BlobHeaderLen + 40, // version field
		len(img) - 1,       // last payload byte
	} {
		bad := append([]byte(nil), img...)
		bad[off] ^= 0x01
		_, err := Verify(bad)
		require.Error(t, err, "flipped byte at offset %#x", off)
	}
}

func TestSignResign(t *testing.T) {
	t.Parallel()

	s := testSigner(t)
	payload := testPayload(500)
	img, err := s.Sign(payload)
	require.NoError(t, err)
	require.True(t, HasSigBlock(img))
	require.False(t, HasSigBlock(payload))

	// Signing an already signed image strips the old block first.
	again, err := s.Sign(img)
	require.NoError(t, err)
	require.Equal(t, img, again)
}

func TestSignEmptyPayload(t *testing.T) {
	t.Parallel()

	s := testSigner(t)
	_, err := s.Sign(nil)
	var serr *SizeError
	require.ErrorAs(t, err, &serr)
	require.Equal(t, 0, serr.Len)

	// A bare signature block with no payload is equally unsignable.
	img, err := s.Sign(testPayload(4))
	require.NoError(t, err)
	_, err = s.Sign(img[:SigBlockLen])
	require.Error(t, err)
}

func TestSignBudget(t *testing.T) {
	t.Parallel()

	s := testSigner(t, WithMaxImageLen(1024))
	_, err := s.Sign(testPayload(1024))
	var serr *SizeError
	require.ErrorAs(t, err, &serr)
	require.Equal(t, 1024+SigBlockLen, serr.Len)
	require.Equal(t, 1024, serr.Max)

	_, err = s.Sign(testPayload(1024 - SigBlockLen))
	require.NoError(t, err)
}

func TestVerifyRejectsDamage(t *testing.T) {
	t.Parallel()

	s := testSigner(t)
	img, err := s.Sign(testPayload(256))
	require.NoError(t, err)

	_, err = Verify(img[:SigBlockLen])
	require.ErrorContains(t, err, "shorter")

	bad := append([]byte(nil), img...)
	binary.LittleEndian.PutUint32(bad, 0)
	_, err = Verify(bad)
	require.ErrorContains(t, err, "jump word")

	bad = append([]byte(nil), img...)
	bad[0x88] = 'x'
	_, err = Verify(bad)
	require.ErrorContains(t, err, "magic")

	// Truncated payload no longer matches the declared signed length.
	_, err = Verify(img[:len(img)-8])
	require.ErrorContains(t, err, "signed length")
}
