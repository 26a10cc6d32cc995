// Package genesis builds block zero: the fixed header plus the state
// produced by crediting a static allocation table, grounded on the
// teacher's core/genesis.go (GenesisBlockForTesting, WriteGenesisBlockForTesting).
package genesis

import (
	"math/big"

	"github.com/eth-classic/lightchain/common"
	"github.com/eth-classic/lightchain/core/dag"
	"github.com/eth-classic/lightchain/core/executor"
	"github.com/eth-classic/lightchain/core/state"
	"github.com/eth-classic/lightchain/core/types"
	"github.com/eth-classic/lightchain/trie"
)

// Fixed genesis header fields. Difficulty, gas limit and nonce are the
// well-known Frontier constants; timestamp and beneficiary are zero.
var (
	Difficulty = big.NewInt(0x400000000)
	GasLimit   = big.NewInt(0x1388)
	Nonce      = types.EncodeNonce(0x0000000000000042)
	ExtraData  = []byte("lightchain")
)

// Build opens an executor session at the empty root and credits every
// entry in alloc directly against it — one pseudo-transaction per
// allocation entry in spirit, but without ToValid's signature recovery,
// since no allocation address has a private key behind it to sign
// with. It then assembles the genesis header around the resulting
// state root and mines its mix digest against the epoch-0 light DAG so
// CheckPoW treats genesis the same as any other block — except genesis
// is never itself validated (it's the Processor's seed, per
// PutGenesis).
func Build(db *state.Database, alloc Allocation) (*types.Block, error) {
	session, err := executor.Open(db, trie.EmptyRoot, GasLimit)
	if err != nil {
		return nil, err
	}
	s := session.State()
	for _, a := range alloc {
		s.CreateAccount(a.Address)
		s.AddBalance(a.Address, a.Balance)
	}
	root := executor.Root(session)

	header := &types.Header{
		ParentHash:  common.Hash{},
		UncleHash:   types.EmptyUncleHash,
		Coinbase:    common.Address{},
		Root:        root,
		TxHash:      trie.EmptyRoot,
		ReceiptHash: trie.EmptyRoot,
		Difficulty:  new(big.Int).Set(Difficulty),
		Number:      big.NewInt(0),
		GasLimit:    new(big.Int).Set(GasLimit),
		GasUsed:     big.NewInt(0),
		Time:        big.NewInt(0),
		Extra:       ExtraData,
		Nonce:       Nonce,
	}

	d, err := dag.NewLightDAG(0)
	if err != nil {
		return nil, err
	}
	mixHash, _ := d.Hashimoto(header.HashNoNonce(), header.Nonce.Uint64())
	header.MixDigest = mixHash

	return types.NewBlock(header, nil, nil), nil
}
