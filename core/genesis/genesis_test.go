package genesis

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eth-classic/lightchain/common"
	"github.com/eth-classic/lightchain/core/dag"
	"github.com/eth-classic/lightchain/core/state"
	"github.com/eth-classic/lightchain/core/types"
)

func TestBuildCreditsEveryAllocationEntry(t *testing.T) {
	db := state.NewDatabase()
	alloc := Allocation{
		{Address: common.Address{0x1}, Balance: big.NewInt(100)},
		{Address: common.Address{0x2}, Balance: big.NewInt(200)},
	}

	block, err := Build(db, alloc)
	require.NoError(t, err)

	s, err := state.Load(db, block.Header.Root)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(100), s.GetBalance(common.Address{0x1}))
	assert.Equal(t, big.NewInt(200), s.GetBalance(common.Address{0x2}))
}

func TestBuildHeaderFixedFields(t *testing.T) {
	db := state.NewDatabase()
	block, err := Build(db, nil)
	require.NoError(t, err)

	h := block.Header
	assert.Equal(t, common.Hash{}, h.ParentHash)
	assert.Equal(t, types.EmptyUncleHash, h.UncleHash)
	assert.Equal(t, Difficulty, h.Difficulty)
	assert.Equal(t, GasLimit, h.GasLimit)
	assert.Equal(t, uint64(0), h.Number.Uint64())
	assert.Equal(t, uint64(0x42), h.Nonce.Uint64())
}

func TestBuildMixDigestSatisfiesHashimoto(t *testing.T) {
	db := state.NewDatabase()
	block, err := Build(db, DefaultAllocation)
	require.NoError(t, err)

	h := block.Header
	recomputed, err := dag.NewLightDAG(0)
	require.NoError(t, err)
	mix, _ := recomputed.Hashimoto(h.HashNoNonce(), h.Nonce.Uint64())
	assert.Equal(t, h.MixDigest, mix)
}
