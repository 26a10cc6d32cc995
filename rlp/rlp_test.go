package rlp

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeEmptyString(t *testing.T) {
	b, err := EncodeToBytes([]byte{})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x80}, b)
}

func TestEncodeSingleByteBelow0x80IsItself(t *testing.T) {
	b, err := EncodeToBytes([]byte{0x61}) // 'a'
	require.NoError(t, err)
	assert.Equal(t, []byte{0x61}, b)
}

func TestEncodeShortString(t *testing.T) {
	b, err := EncodeToBytes([]byte("dog"))
	require.NoError(t, err)
	assert.Equal(t, []byte{0x83, 'd', 'o', 'g'}, b)
}

func TestEncodeEmptyList(t *testing.T) {
	b, err := EncodeToBytes([][]byte{})
	require.NoError(t, err)
	assert.Equal(t, []byte{0xc0}, b)
}

func TestEncodeListOfStrings(t *testing.T) {
	b, err := EncodeToBytes([][]byte{[]byte("cat"), []byte("dog")})
	require.NoError(t, err)
	assert.Equal(t, []byte{0xc8, 0x83, 'c', 'a', 't', 0x83, 'd', 'o', 'g'}, b)
}

func TestEncodeZeroUint(t *testing.T) {
	b, err := EncodeToBytes(uint64(0))
	require.NoError(t, err)
	assert.Equal(t, []byte{0x80}, b)
}

func TestEncodeSmallUint(t *testing.T) {
	b, err := EncodeToBytes(uint64(15))
	require.NoError(t, err)
	assert.Equal(t, []byte{0x0f}, b)
}

func TestEncodeBigIntZeroIsEmptyString(t *testing.T) {
	b, err := EncodeToBytes(big.NewInt(0))
	require.NoError(t, err)
	assert.Equal(t, []byte{0x80}, b)
}

func TestEncodeBigIntRejectsNegative(t *testing.T) {
	_, err := EncodeToBytes(big.NewInt(-1))
	assert.Error(t, err)
}

func TestEncodeLongStringUsesLengthOfLengthHeader(t *testing.T) {
	data := make([]byte, 60)
	for i := range data {
		data[i] = byte('x')
	}
	b, err := EncodeToBytes(data)
	require.NoError(t, err)
	assert.Equal(t, byte(0xb8), b[0])
	assert.Equal(t, byte(60), b[1])
	assert.Equal(t, data, b[2:])
}

type simpleStruct struct {
	A uint64
	B []byte
}

func TestStructRoundTrip(t *testing.T) {
	in := simpleStruct{A: 9, B: []byte("hi")}
	b, err := EncodeToBytes(in)
	require.NoError(t, err)

	var out simpleStruct
	require.NoError(t, DecodeBytes(b, &out))
	assert.Equal(t, in, out)
}

func TestSliceRoundTrip(t *testing.T) {
	in := []uint64{1, 2, 3, 500}
	b, err := EncodeToBytes(in)
	require.NoError(t, err)

	var out []uint64
	require.NoError(t, DecodeBytes(b, &out))
	assert.Equal(t, in, out)
}

func TestBigIntRoundTrip(t *testing.T) {
	in := big.NewInt(123456789)
	b, err := EncodeToBytes(in)
	require.NoError(t, err)

	out := new(big.Int)
	require.NoError(t, DecodeBytes(b, out))
	assert.Equal(t, 0, in.Cmp(out))
}

func TestBoolRoundTrip(t *testing.T) {
	b, err := EncodeToBytes(true)
	require.NoError(t, err)

	var out bool
	require.NoError(t, DecodeBytes(b, &out))
	assert.True(t, out)
}

func TestStreamBytesRejectsList(t *testing.T) {
	b, err := EncodeToBytes([][]byte{[]byte("x")})
	require.NoError(t, err)

	s := NewStream(b)
	_, err = s.Bytes()
	assert.Equal(t, ErrExpectedList, err)
}

func TestDecodeRequiresNonNilPointer(t *testing.T) {
	s := NewStream([]byte{0x80})
	var notAPointer int
	assert.Error(t, s.Decode(notAPointer))
}
