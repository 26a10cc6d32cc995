package dag

import (
	"math/big"
	"testing"

	"github.com/eth-classic/lightchain/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEpochBoundaries(t *testing.T) {
	assert.Equal(t, uint64(0), epoch(0))
	assert.Equal(t, uint64(0), epoch(29999))
	assert.Equal(t, uint64(1), epoch(30000))
	assert.Equal(t, uint64(1), epoch(59999))
	assert.Equal(t, uint64(2), epoch(60000))
}

func TestCacheSizeIsPrimeMultipleOfHashBytes(t *testing.T) {
	size := cacheSize(0)
	assert.Zero(t, size%hashBytes)
	assert.True(t, isPrime(size/hashBytes))
}

func TestSeedHashChainsPerEpoch(t *testing.T) {
	s0 := seedHash(0)
	s1 := seedHash(1)
	s2 := seedHash(2)
	assert.Equal(t, make([]byte, 32), s0)
	assert.NotEqual(t, s0, s1)
	assert.NotEqual(t, s1, s2)
	assert.Equal(t, keccak256(s1), s2)
}

func TestLightDAGIsValidForEpochOnly(t *testing.T) {
	d, err := NewLightDAG(0)
	require.NoError(t, err)
	assert.True(t, d.IsValidFor(0))
	assert.True(t, d.IsValidFor(29999))
	assert.False(t, d.IsValidFor(30000))
}

func TestHashimotoIsDeterministic(t *testing.T) {
	d, err := NewLightDAG(0)
	require.NoError(t, err)

	hash := common.BytesToHash([]byte("a block header partial hash"))
	mix1, res1 := d.Hashimoto(hash, 42)
	mix2, res2 := d.Hashimoto(hash, 42)
	assert.Equal(t, mix1, mix2)
	assert.Equal(t, res1, res2)

	mix3, res3 := d.Hashimoto(hash, 43)
	assert.NotEqual(t, mix1, mix3)
	assert.NotEqual(t, res1, res3)
}

func TestCheckPoWRejectsMixMismatch(t *testing.T) {
	d, err := NewLightDAG(0)
	require.NoError(t, err)

	hash := common.BytesToHash([]byte("header"))
	_, result := d.Hashimoto(hash, 1)
	wrongMix := common.BytesToHash([]byte("wrong"))

	err = d.CheckPoW(hash, 1, wrongMix, big.NewInt(1))
	assert.Error(t, err)
	_ = result
}

func TestCheckPoWAcceptsSelfConsistentLowDifficulty(t *testing.T) {
	d, err := NewLightDAG(0)
	require.NoError(t, err)

	hash := common.BytesToHash([]byte("header"))
	mix, _ := d.Hashimoto(hash, 7)

	err = d.CheckPoW(hash, 7, mix, big.NewInt(1))
	assert.NoError(t, err)
}

func TestCacheGetReusesSameEpochSlot(t *testing.T) {
	c := NewCache(1)
	d1, err := c.Get(100)
	require.NoError(t, err)
	d2, err := c.Get(200)
	require.NoError(t, err)
	assert.Same(t, d1, d2)

	d3, err := c.Get(30500)
	require.NoError(t, err)
	assert.NotSame(t, d1, d3)
}
