package state

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eth-classic/lightchain/common"
	"github.com/eth-classic/lightchain/rlp"
)

func TestEncodeAccountOmitsZeroStorageSlots(t *testing.T) {
	o := newStateObject(common.Address{1})
	o.nonce = 2
	o.balance = big.NewInt(99)
	o.storage[common.BytesToHash([]byte("set"))] = common.BytesToHash([]byte("value"))
	o.storage[common.BytesToHash([]byte("cleared"))] = common.Hash{}

	blob := encodeAccount(o)

	var decoded account
	require.NoError(t, rlp.DecodeBytes(blob, &decoded))
	assert.EqualValues(t, 2, decoded.Nonce)
	assert.Equal(t, big.NewInt(99), decoded.Balance)
	assert.Len(t, decoded.Storage, 1)
}

func TestHashCodeOfEmptyCodeIsZeroHash(t *testing.T) {
	assert.Equal(t, common.Hash{}, hashCode(nil))
}

func TestHashCodeIsDeterministic(t *testing.T) {
	code := []byte{0x60, 0x00, 0x60, 0x00}
	assert.Equal(t, hashCode(code), hashCode(code))
	assert.NotEqual(t, common.Hash{}, hashCode(code))
}

func TestStateObjectEmpty(t *testing.T) {
	o := newStateObject(common.Address{2})
	assert.True(t, o.empty())

	o.nonce = 1
	assert.False(t, o.empty())
}
