// Package validator implements the Block Validator: five independent
// checks a candidate block must pass, grounded on the teacher's
// core/block_validator.go (ValidateHeader/ValidateBlock/ValidateState).
package validator

import (
	"math/big"

	"github.com/eth-classic/lightchain/common"
	"github.com/eth-classic/lightchain/core/dag"
	"github.com/eth-classic/lightchain/core/era"
	"github.com/eth-classic/lightchain/core/executor"
	"github.com/eth-classic/lightchain/core/state"
	"github.com/eth-classic/lightchain/core/types"
	"github.com/eth-classic/lightchain/core/vm"
	"github.com/eth-classic/lightchain/trie"
)

const maxOmmers = 2

var big1 = big.NewInt(1)

// Validator runs the five checks against one candidate block.
type Validator struct {
	patch       era.Patch
	block       *types.Block
	parent      *types.Header
	db          *state.Database
	dag         *dag.LightDAG
	blockHashes []common.Hash
}

// New constructs a Validator for block against parent, under patch's era
// rules, reading/writing state through db and verifying proof of work
// against lightDAG. blockHashes is the up-to-256 ancestor vector execute
// exposes to BLOCKHASH.
func New(patch era.Patch, block *types.Block, parent *types.Header, db *state.Database, lightDAG *dag.LightDAG, blockHashes []common.Hash) *Validator {
	return &Validator{patch: patch, block: block, parent: parent, db: db, dag: lightDAG, blockHashes: blockHashes}
}

// Validate runs all five checks and reports the first failure, or nil if
// every one passes. Checks run independently: a basic-check failure never
// touches the state database, so side effects from state execution either
// fully complete or never begin.
func (v *Validator) Validate() error {
	if err := v.basicCheck(); err != nil {
		return err
	}
	if err := v.timestampAndDifficultyCheck(); err != nil {
		return err
	}
	if err := v.powCheck(); err != nil {
		return err
	}
	if err := v.gasLimitCheck(); err != nil {
		return err
	}
	if err := v.stateCheck(); err != nil {
		return err
	}
	return nil
}

func (v *Validator) header() *types.Header { return v.block.Header }

func (v *Validator) basicCheck() error {
	h := v.header()
	if h.ParentHash != v.parent.Hash() {
		return structuralFail("basic", "parent hash mismatch: header=%x parent=%x", h.ParentHash, v.parent.Hash())
	}
	wantNumber := new(big.Int).Add(v.parent.Number, big1)
	if h.Number.Cmp(wantNumber) != 0 {
		return structuralFail("basic", "number %v is not parent+1 (%v)", h.Number, wantNumber)
	}
	if txRoot := trie.DeriveSha(v.block.Transactions); txRoot != h.TxHash {
		return structuralFail("basic", "transactions root mismatch: header=%x computed=%x", h.TxHash, txRoot)
	}
	unclesHash := types.CalcUncleHash(v.block.Uncles)
	if unclesHash != h.UncleHash {
		return structuralFail("basic", "ommers hash mismatch: header=%x computed=%x", h.UncleHash, unclesHash)
	}
	if len(v.block.Uncles) > maxOmmers {
		return structuralFail("basic", "too many ommers: %d > %d", len(v.block.Uncles), maxOmmers)
	}
	homestead := v.patch.IsHomestead(h.Number)
	for i, tx := range v.block.Transactions {
		if tx.GasPrice().Sign() < 0 {
			return structuralFail("basic", "tx[%d] has negative gas price", i)
		}
		igas := executor.IntrinsicGas(tx.Data(), tx.CreatesContract(), homestead)
		if tx.Gas().Cmp(igas) < 0 {
			return structuralFail("basic", "tx[%d] gas below intrinsic floor", i)
		}
		if _, err := types.Sender(v.patch.Signer, tx); err != nil {
			return structuralFail("basic", "tx[%d] signature invalid: %v", i, err)
		}
	}
	return nil
}

func (v *Validator) timestampAndDifficultyCheck() error {
	h := v.header()
	if h.Time.Cmp(v.parent.Time) <= 0 {
		return consensusFail("timestamp", "timestamp %v not after parent %v", h.Time, v.parent.Time)
	}
	want := v.patch.CalcDifficulty(h.Time.Uint64(), v.parent.Time.Uint64(), h.Number, v.parent.Difficulty)
	if want.Cmp(h.Difficulty) != 0 {
		return consensusFail("difficulty", "difficulty %v != expected %v", h.Difficulty, want)
	}
	return nil
}

func (v *Validator) powCheck() error {
	h := v.header()
	if err := v.dag.CheckPoW(h.HashNoNonce(), h.Nonce.Uint64(), h.MixDigest, h.Difficulty); err != nil {
		return consensusFail("pow", "%v", err)
	}
	return nil
}

func (v *Validator) gasLimitCheck() error {
	h := v.header()
	if !era.ValidateGasLimit(v.parent.GasLimit, h.GasLimit) {
		return consensusFail("gas-limit", "gas limit %v invalid against parent %v", h.GasLimit, v.parent.GasLimit)
	}
	return nil
}

// stateCheck is the most expensive check: it replays the whole block's
// transactions through the executor and compares the resulting root,
// receipts root, bloom and used-gas against the header's claims.
func (v *Validator) stateCheck() error {
	h := v.header()
	session, err := executor.Open(v.db, v.parent.Root, h.GasLimit)
	if err != nil {
		return executionFail("state", "cannot open parent state: %v", err)
	}

	hp := executor.HeaderParams{
		Coinbase:   h.Coinbase,
		Number:     h.Number,
		Time:       h.Time,
		Difficulty: h.Difficulty,
		GasLimit:   h.GasLimit,
	}

	receipts := make(types.Receipts, 0, len(v.block.Transactions))
	var blockBloom common.Bloom
	blockUsedGas := new(big.Int)
	cumulative := new(big.Int)

	homestead := v.patch.IsHomestead(h.Number)
	for i, tx := range v.block.Transactions {
		vt, err := executor.ToValid(session, v.patch.Signer, tx, homestead)
		if err != nil {
			return executionFail("state", "tx[%d] invalid: %v", i, err)
		}
		res, err := executor.Execute(session, v.patch, vt, hp, v.blockHashes)
		if err != nil {
			return executionFail("state", "tx[%d] execution error: %v", i, err)
		}
		cumulative.Add(cumulative, res.UsedGas)
		blockUsedGas.Add(blockUsedGas, res.UsedGas)

		r := types.NewReceipt(res.NewRoot.Bytes(), cumulative)
		if res.Failed {
			r.Status = types.TxFailure
		} else {
			r.Status = types.TxSuccess
		}
		r.Logs = res.Logs
		r.Bloom = vm.CreateBloom(r.Logs)
		r.TxHash = tx.Hash()
		r.GasUsed = new(big.Int).Set(res.UsedGas)
		receipts = append(receipts, r)

		blockBloom = orBloom(blockBloom, r.Bloom)
	}

	ommerBeneficiaries := make([]common.Address, len(v.block.Uncles))
	ommerNumbers := make([]*big.Int, len(v.block.Uncles))
	for i, u := range v.block.Uncles {
		ommerBeneficiaries[i] = u.Coinbase
		ommerNumbers[i] = u.Number
	}
	era.ApplyRewards(v.patch, session.State(), h.Coinbase, h.Number, ommerBeneficiaries, ommerNumbers)

	root := session.State().IntermediateRoot()
	if root != h.Root {
		return executionFail("state", "state root mismatch: header=%x computed=%x", h.Root, root)
	}
	receiptsRoot := trie.DeriveSha(receipts)
	if receiptsRoot != h.ReceiptHash {
		return executionFail("state", "receipts root mismatch: header=%x computed=%x", h.ReceiptHash, receiptsRoot)
	}
	if blockBloom != h.Bloom {
		return executionFail("state", "bloom mismatch: header=%x computed=%x", h.Bloom, blockBloom)
	}
	if blockUsedGas.Cmp(h.GasUsed) != 0 {
		return executionFail("state", "gas used mismatch: header=%v computed=%v", h.GasUsed, blockUsedGas)
	}
	return nil
}

func orBloom(a, b common.Bloom) common.Bloom {
	for i := range a {
		a[i] |= b[i]
	}
	return a
}
