package validator

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eth-classic/lightchain/common"
	"github.com/eth-classic/lightchain/core/dag"
	"github.com/eth-classic/lightchain/core/era"
	"github.com/eth-classic/lightchain/core/state"
	"github.com/eth-classic/lightchain/core/types"
	"github.com/eth-classic/lightchain/trie"
)

func newHeader() *types.Header {
	return &types.Header{
		ParentHash: common.Hash{},
		UncleHash:  types.EmptyUncleHash,
		Root:       trie.EmptyRoot,
		TxHash:     trie.EmptyRoot,
		ReceiptHash: trie.EmptyRoot,
		Difficulty: big.NewInt(125000),
		Number:     big.NewInt(0),
		GasLimit:   big.NewInt(5000),
		GasUsed:    big.NewInt(0),
		Time:       big.NewInt(1000),
	}
}

func TestBasicCheckParentHashMismatch(t *testing.T) {
	parent := newHeader()
	child := newHeader()
	child.Number = big.NewInt(1)
	child.ParentHash = common.Hash{0x1} // wrong

	v := &Validator{patch: era.Select(big.NewInt(1)), block: &types.Block{Header: child}, parent: parent}
	err := v.basicCheck()
	require.Error(t, err)
	var structural *StructuralError
	assert.True(t, errors.As(err, &structural))
}

func TestBasicCheckNumberMismatch(t *testing.T) {
	parent := newHeader()
	child := newHeader()
	child.ParentHash = parent.Hash()
	child.Number = big.NewInt(5) // should be 1

	v := &Validator{patch: era.Select(big.NewInt(1)), block: &types.Block{Header: child}, parent: parent}
	err := v.basicCheck()
	assert.Error(t, err)
}

func TestBasicCheckAcceptsWellFormedEmptyBlock(t *testing.T) {
	parent := newHeader()
	child := newHeader()
	child.Number = big.NewInt(1)
	child.ParentHash = parent.Hash()

	v := &Validator{patch: era.Select(big.NewInt(1)), block: &types.Block{Header: child}, parent: parent}
	assert.NoError(t, v.basicCheck())
}

func TestTimestampCheckRejectsNonIncreasing(t *testing.T) {
	parent := newHeader()
	child := newHeader()
	child.Time = new(big.Int).Set(parent.Time) // not strictly after

	v := &Validator{patch: era.Select(big.NewInt(1)), block: &types.Block{Header: child}, parent: parent}
	assert.Error(t, v.timestampAndDifficultyCheck())
}

func TestDifficultyCheckRejectsWrongValue(t *testing.T) {
	parent := newHeader()
	child := newHeader()
	child.Time = big.NewInt(1100)
	child.Difficulty = big.NewInt(999999999) // arbitrary, won't match calc

	v := &Validator{patch: era.Select(big.NewInt(1)), block: &types.Block{Header: child}, parent: parent}
	assert.Error(t, v.timestampAndDifficultyCheck())
}

func TestDifficultyCheckAcceptsComputedValue(t *testing.T) {
	patch := era.Select(big.NewInt(1))
	parent := newHeader()
	child := newHeader()
	child.Time = big.NewInt(1100)
	child.Number = big.NewInt(1)
	child.Difficulty = patch.CalcDifficulty(child.Time.Uint64(), parent.Time.Uint64(), child.Number, parent.Difficulty)

	v := &Validator{patch: patch, block: &types.Block{Header: child}, parent: parent}
	assert.NoError(t, v.timestampAndDifficultyCheck())
}

func TestGasLimitCheckDelegatesToEra(t *testing.T) {
	parent := newHeader()
	child := newHeader()
	child.GasLimit = big.NewInt(4999) // below floor

	v := &Validator{patch: era.Select(big.NewInt(1)), block: &types.Block{Header: child}, parent: parent}
	assert.Error(t, v.gasLimitCheck())
}

func TestPowCheckRejectsMixMismatch(t *testing.T) {
	d, err := dag.NewLightDAG(0)
	require.NoError(t, err)

	h := newHeader()
	h.MixDigest = common.Hash{0xde, 0xad}

	v := &Validator{
		patch: era.Select(big.NewInt(1)),
		block: &types.Block{Header: h},
		dag:   d,
	}
	err = v.powCheck()
	require.Error(t, err)
	var consensus *ConsensusError
	assert.True(t, errors.As(err, &consensus))
}

func TestStateCheckAppliesRewardOnlyForEmptyBlock(t *testing.T) {
	db := state.NewDatabase()
	parentRoot := state.New(db).IntermediateRoot()

	// Precompute the root the validator should independently arrive at:
	// opening the same snapshot and crediting the same reward.
	patch := era.Select(big.NewInt(1))
	pre, err := state.Load(db, parentRoot)
	require.NoError(t, err)
	coinbase := common.Address{0x77}
	era.ApplyRewards(patch, pre, coinbase, big.NewInt(1), nil, nil)
	wantRoot := pre.IntermediateRoot()

	parent := newHeader()
	parent.Root = parentRoot

	child := newHeader()
	child.Number = big.NewInt(1)
	child.ParentHash = parent.Hash()
	child.Coinbase = coinbase
	child.Root = wantRoot
	child.ReceiptHash = trie.EmptyRoot
	child.GasUsed = big.NewInt(0)

	v := &Validator{
		patch:  patch,
		block:  &types.Block{Header: child},
		parent: parent,
		db:     db,
	}
	assert.NoError(t, v.stateCheck())
}

func TestStateCheckRootMismatchIsExecutionMismatchError(t *testing.T) {
	db := state.NewDatabase()
	parentRoot := state.New(db).IntermediateRoot()

	parent := newHeader()
	parent.Root = parentRoot

	child := newHeader()
	child.Number = big.NewInt(1)
	child.ParentHash = parent.Hash()
	child.ReceiptHash = trie.EmptyRoot
	child.GasUsed = big.NewInt(0)
	child.Root = common.Hash{0xba, 0xd} // deliberately wrong

	v := &Validator{
		patch:  era.Select(big.NewInt(1)),
		block:  &types.Block{Header: child},
		parent: parent,
		db:     db,
	}
	err := v.stateCheck()
	require.Error(t, err)
	var mismatch *ExecutionMismatchError
	assert.True(t, errors.As(err, &mismatch))
}
