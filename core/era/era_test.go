package era

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrontierDifficultyRetargetVectors(t *testing.T) {
	d1 := frontierDifficulty(1438269988, 0, big.NewInt(1), big.NewInt(17179869184))
	assert.Equal(t, big.NewInt(17171480576), d1)

	d2 := frontierDifficulty(1438270017, 1438269988, big.NewInt(2), big.NewInt(17171480576))
	assert.Equal(t, big.NewInt(17163096064), d2)
}

func TestFrontierDifficultyBoundary(t *testing.T) {
	parent := big.NewInt(1000000)
	// exactly at the 13-second boundary: treated as "slow", difficulty falls.
	atBoundary := frontierDifficulty(13, 0, big.NewInt(1), parent)
	justOver := frontierDifficulty(23, 0, big.NewInt(1), parent)
	justUnder := frontierDifficulty(12, 0, big.NewInt(1), parent)
	assert.True(t, atBoundary.Cmp(parent) < 0) // t1>=t0+13 so it decreases
	assert.True(t, justOver.Cmp(parent) < 0)
	assert.True(t, justUnder.Cmp(parent) > 0) // under the limit, difficulty still climbs
}

func TestHomesteadDifficultyClamp(t *testing.T) {
	parent := big.NewInt(100_000_000)
	for _, k := range []int64{0, 1, 2, 100, 101} {
		t0 := uint64(0)
		t1 := uint64(k * 10)
		got := homesteadDifficulty(t1, t0, big.NewInt(2_000_000), parent)
		assert.True(t, got.Sign() > 0, "k=%d", k)
	}
}

func TestDifficultyBombBoundaries(t *testing.T) {
	for _, n := range []int64{199_999, 200_000, 200_001} {
		b := bombFrontier(big.NewInt(n))
		assert.True(t, b.Sign() >= 0, "n=%d", n)
	}
}

func TestDelayedBombFreezeAndContinue(t *testing.T) {
	atPause := bombDelayed(big.NewInt(2_999_999))
	justAfterPause := bombDelayed(big.NewInt(3_000_000))
	justBeforeContinue := bombDelayed(big.NewInt(4_999_999))
	atContinue := bombDelayed(big.NewInt(5_000_000))

	assert.True(t, justAfterPause.Cmp(atPause) >= 0)
	assert.Equal(t, justAfterPause, justBeforeContinue, "bomb frozen across the pause window")
	assert.Equal(t, justBeforeContinue, atContinue, "bomb continues seamlessly from the freeze value")
}

func TestGasLimitBoundaryAtFloor(t *testing.T) {
	assert.True(t, ValidateGasLimit(big.NewInt(5000), big.NewInt(5000)))
	assert.False(t, ValidateGasLimit(big.NewInt(5000), big.NewInt(4999)))
}

func TestOmmerCounts(t *testing.T) {
	number := big.NewInt(10)
	base, ommerFn := frontierReward(number)
	assert.Equal(t, MaximumBlockReward, base)

	for _, u := range []int64{0, 1, 2} {
		bonus := new(big.Int).Mul(base, big.NewInt(u))
		bonus.Div(bonus, big32)
		main := new(big.Int).Add(base, bonus)
		assert.True(t, main.Cmp(base) >= 0)
	}
	r := ommerFn(big.NewInt(9))
	assert.Equal(t, new(big.Int).Div(new(big.Int).Mul(MaximumBlockReward, big.NewInt(7)), big8), r)
}

func TestEraReducedReward(t *testing.T) {
	for _, e := range []int64{0, 1, 2} {
		n := new(big.Int).Mul(ECIP1017Block, big.NewInt(e+1))
		n.Sub(n, big1) // one block before the last block of era e
		got := BlockEra(n, ECIP1017Block)
		assert.Equal(t, big.NewInt(e), got)
	}

	base, _ := eraReward(new(big.Int).Sub(ECIP1017Block, big1)) // era 0
	assert.Equal(t, MaximumBlockReward, base)

	eraOneReward, _ := eraReward(new(big.Int).Add(ECIP1017Block, big1)) // first block of era 1
	want := new(big.Int).Mul(MaximumBlockReward, big.NewInt(4))
	want.Div(want, big.NewInt(5))
	assert.Equal(t, want, eraOneReward)
}

func TestSelectEraBoundaries(t *testing.T) {
	assert.Equal(t, Frontier, Select(big.NewInt(0)).Name)
	assert.Equal(t, Frontier, Select(big.NewInt(1_149_999)).Name)
	assert.Equal(t, Homestead, Select(big.NewInt(1_150_000)).Name)
	assert.Equal(t, EIP150, Select(big.NewInt(2_500_000)).Name)
	assert.Equal(t, EIP160, Select(big.NewInt(3_000_000)).Name)
}

func TestRewardBeforeECIP1017UsesFlatRateEvenUnderEIP160Ruleset(t *testing.T) {
	number := big.NewInt(4_000_000) // EIP160 ruleset, but below ECIP1017Block
	p := Select(number)
	assert.Equal(t, EIP160, p.Name)
	assert.True(t, p.IsEIP158(number))

	base, ommer := p.Reward(number)
	assert.Equal(t, MaximumBlockReward, base, "flat-rate reward still applies in [EIP160Block, ECIP1017Block)")

	ommerNumber := big.NewInt(3_999_999)
	got := ommer(ommerNumber)
	want := new(big.Int).Add(ommerNumber, big8)
	want.Sub(want, number)
	want.Mul(want, MaximumBlockReward)
	want.Div(want, big8)
	assert.Equal(t, want, got, "ommer reward uses the distance-based formula, not the flat R/32 era formula")
}

func TestRewardAtAndAfterECIP1017UsesEraReducedRate(t *testing.T) {
	// ECIP1017Block itself is the last block of era 0; era 1 starts one block later.
	firstOfEraOne := new(big.Int).Add(ECIP1017Block, big1)
	at := Select(firstOfEraOne)
	base, _ := at.Reward(firstOfEraOne)
	want := new(big.Int).Mul(MaximumBlockReward, big.NewInt(4))
	want.Div(want, big.NewInt(5))
	assert.Equal(t, want, base)

	justBefore := Select(new(big.Int).Sub(ECIP1017Block, big1))
	beforeBase, _ := justBefore.Reward(new(big.Int).Sub(ECIP1017Block, big1))
	assert.Equal(t, MaximumBlockReward, beforeBase, "the block just before ECIP1017Block still uses the flat rate")
}
