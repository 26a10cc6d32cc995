package chain

import (
	"fmt"
	"math/big"

	"github.com/eth-classic/lightchain/core/dag"
	"github.com/eth-classic/lightchain/core/era"
	"github.com/eth-classic/lightchain/core/state"
	"github.com/eth-classic/lightchain/core/types"
	"github.com/eth-classic/lightchain/core/validator"
)

// maxAncestorHashes is the longest BLOCKHASH lookback the executor can
// exercise, mirroring the EVM's 256-block window.
const maxAncestorHashes = 256

// Processor is the single entry point a Sync Driver feeds candidate
// blocks into. It owns the Chain, the state database and the light DAG
// cache, and is not safe for concurrent use: callers must serialize
// calls to Put the way the teacher's blockchain.go serializes InsertChain
// behind its own mutex, except here the contract pushes that
// responsibility to the caller instead of hiding a lock inside.
type Processor struct {
	chain *Chain
	db    *state.Database
	dags  *dag.Cache
}

func NewProcessor(db *state.Database, dagSlots int) *Processor {
	return &Processor{
		chain: New(),
		db:    db,
		dags:  dag.NewCache(dagSlots),
	}
}

// Chain exposes the underlying header chain for callers that need to
// inspect the current tip (e.g. to build a Status message).
func (p *Processor) Chain() *Chain { return p.chain }

// Put validates block against its parent and, if it passes every check,
// appends it to the chain and returns true. An unknown parent returns
// (false, nil), which is not a rejection; the Sync Driver logs such a
// block and drops it, keeping no backlog to retry it later. Any validation
// failure returns (false, err) without mutating the chain.
func (p *Processor) Put(block *types.Block) (bool, error) {
	h := block.Header

	parentTH := p.chain.Get(h.ParentHash)
	if parentTH == nil {
		return false, nil
	}
	parent := parentTH.Header

	lightDAG, err := p.dags.Get(h.Number.Uint64())
	if err != nil {
		return false, fmt.Errorf("chain: dag generation failed: %v", err)
	}

	ancestors := p.chain.AncestorHashes(h.ParentHash, maxAncestorHashes)

	patch := era.Select(h.Number)
	v := validator.New(patch, block, parent, p.db, lightDAG, ancestors)
	if err := v.Validate(); err != nil {
		return false, err
	}

	total := new(big.Int).Add(parentTH.TotalDifficulty, h.Difficulty)
	p.chain.append(h.Hash(), types.NewTotalHeader(h, total))
	return true, nil
}

// PutGenesis seeds the chain with a header that has no parent to
// resolve against — used once, at startup, to register the genesis
// block before any Put call can succeed.
func (p *Processor) PutGenesis(header *types.Header) {
	p.chain.append(header.Hash(), types.NewTotalHeader(header, header.Difficulty))
}
