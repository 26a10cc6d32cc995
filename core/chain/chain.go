// Package chain implements the append-only header chain and the
// Processor that feeds validated blocks into it, grounded on the
// teacher's core/blockchain.go (HasBlock/GetBlock/InsertChain shape,
// reduced to this validator's strict-linear, no-reorg model).
package chain

import (
	"github.com/eth-classic/lightchain/common"
	"github.com/eth-classic/lightchain/core/types"
)

// Chain is an append-only map of every header this validator has
// accepted, keyed by hash, plus a pointer to the last one appended. There
// is no pruning and no reorg support: once a header is in, it stays.
type Chain struct {
	headers map[common.Hash]*types.TotalHeader
	best    common.Hash
}

func New() *Chain {
	return &Chain{headers: make(map[common.Hash]*types.TotalHeader)}
}

// Get returns the TotalHeader stored under hash, or nil if absent.
func (c *Chain) Get(hash common.Hash) *types.TotalHeader {
	return c.headers[hash]
}

// Has reports whether hash is already known to the chain.
func (c *Chain) Has(hash common.Hash) bool {
	_, ok := c.headers[hash]
	return ok
}

// Best returns the header last appended — the chain's current tip under
// this validator's strict linear sync model.
func (c *Chain) Best() *types.TotalHeader {
	if c.best.IsZero() {
		return nil
	}
	return c.headers[c.best]
}

// append inserts th keyed by its header's hash and advances the tip.
func (c *Chain) append(hash common.Hash, th *types.TotalHeader) {
	c.headers[hash] = th
	c.best = hash
}

// AncestorHashes walks back from `from`, youngest first, collecting up to
// max hashes — the vector execute exposes to BLOCKHASH. Near genesis the
// result is shorter than max.
func (c *Chain) AncestorHashes(from common.Hash, max int) []common.Hash {
	hashes := make([]common.Hash, 0, max)
	cur := from
	for i := 0; i < max; i++ {
		th := c.headers[cur]
		if th == nil {
			break
		}
		hashes = append(hashes, cur)
		if th.Header.Number.Sign() == 0 {
			break
		}
		cur = th.Header.ParentHash
	}
	return hashes
}
