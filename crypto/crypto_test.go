package crypto

import (
	"crypto/ecdsa"
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eth-classic/lightchain/common"
)

func newTestKey(t *testing.T) *ecdsa.PrivateKey {
	key, err := ecdsa.GenerateKey(secp256k1.S256(), rand.Reader)
	require.NoError(t, err)
	return key
}

func marshalPub(pub *ecdsa.PublicKey) []byte {
	byteLen := (secp256k1.S256().Params().BitSize + 7) / 8
	out := make([]byte, 1+2*byteLen)
	out[0] = 4
	pub.X.FillBytes(out[1 : 1+byteLen])
	pub.Y.FillBytes(out[1+byteLen:])
	return out
}

func hexEncode(b []byte) string {
	const hexdigits = "0123456789abcdef"
	out := make([]byte, len(b)*2)
	for i, c := range b {
		out[i*2] = hexdigits[c>>4]
		out[i*2+1] = hexdigits[c&0xf]
	}
	return string(out)
}

func TestKeccak256KnownVector(t *testing.T) {
	// Keccak256("abc") — the legacy (pre-NIST) variant, not SHA3-256.
	got := Keccak256([]byte("abc"))
	want := "4e03657aea45a94fc7d47ba826c8d667c0d1e6e33a64a036ec44f58fa12d6c45"
	assert.Equal(t, want, hexEncode(got))
}

func TestKeccak256HashMatchesKeccak256(t *testing.T) {
	data := []byte("lightchain")
	assert.Equal(t, Keccak256(data), Keccak256Hash(data).Bytes())
}

func TestSignAndEcrecoverRoundTrip(t *testing.T) {
	key := newTestKey(t)
	digest := Keccak256([]byte("hello"))

	sig, err := Sign(digest, key)
	require.NoError(t, err)
	require.Len(t, sig, 65)

	pub, err := Ecrecover(digest, sig)
	require.NoError(t, err)
	assert.Equal(t, marshalPub(&key.PublicKey), pub)
}

func TestSigToPubMatchesEcrecover(t *testing.T) {
	key := newTestKey(t)
	digest := Keccak256([]byte("hello"))

	sig, err := Sign(digest, key)
	require.NoError(t, err)

	pub, err := SigToPub(digest, sig)
	require.NoError(t, err)

	assert.Equal(t, marshalPub(&key.PublicKey), marshalPub(pub))
}

func TestSignRejectsShortDigest(t *testing.T) {
	key := newTestKey(t)
	_, err := Sign([]byte{1, 2, 3}, key)
	assert.Error(t, err)
}

func TestPubkeyToAddressIsDeterministic(t *testing.T) {
	key := newTestKey(t)
	pub := marshalPub(&key.PublicKey)

	a1 := PubkeyToAddress(pub)
	a2 := PubkeyToAddress(pub)
	assert.Equal(t, a1, a2)
	assert.False(t, a1.IsZero())
}

func TestCreateAddressVariesByNonce(t *testing.T) {
	key := newTestKey(t)
	from := PubkeyToAddress(marshalPub(&key.PublicKey))

	a0 := CreateAddress(from, 0, fakeRLP)
	a1 := CreateAddress(from, 1, fakeRLP)
	assert.NotEqual(t, a0, a1)
}

func TestCreateAddressIsDeterministicForSameInputs(t *testing.T) {
	from := common.HexToAddress("0x00000000000000000000000000000000000001")
	a0 := CreateAddress(from, 7, fakeRLP)
	a1 := CreateAddress(from, 7, fakeRLP)
	assert.Equal(t, a0, a1)
}

func fakeRLP(from common.Address, nonce uint64) []byte {
	b := make([]byte, 0, 28)
	b = append(b, from.Bytes()...)
	n := new(big.Int).SetUint64(nonce)
	return append(b, n.Bytes()...)
}
