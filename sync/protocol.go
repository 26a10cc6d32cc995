// Package sync implements the peer-facing message shapes and the driver
// that turns them into Processor.Put calls, grounded on the eth/63 wire
// messages the teacher's eth package consumes — that package itself was
// not part of the retrieval pack, so the shapes below are reconstructed
// from the message set alone, kept intentionally minimal: no framing,
// no encryption, no peer session.
package sync

import (
	"math/big"

	"github.com/eth-classic/lightchain/common"
	"github.com/eth-classic/lightchain/core/types"
)

// Message is the closed set of peer protocol messages the Driver can
// receive or send. Each concrete type below implements it.
type Message interface {
	messageType() string
}

// Status is a peer's handshake announcement: protocol version, network
// id, total difficulty and head hash/genesis hash for compatibility
// checking before any block traffic flows.
type Status struct {
	ProtocolVersion uint32
	NetworkID       uint64
	TotalDifficulty *big.Int
	CurrentBlock    common.Hash
	GenesisHash     common.Hash
}

func (Status) messageType() string { return "Status" }

// Transactions is an unsolicited broadcast of pending transactions. The
// Driver has nowhere to put these (no mempool, no re-broadcast), so it
// only drains and discards them.
type Transactions struct {
	List []*types.Transaction
}

func (Transactions) messageType() string { return "Transactions" }

// GetBlockHeadersByHash requests up to Max headers starting at Origin,
// skipping Skip headers between each, walking backwards if Reverse.
type GetBlockHeadersByHash struct {
	Origin  common.Hash
	Max     uint64
	Skip    uint64
	Reverse bool
}

func (GetBlockHeadersByHash) messageType() string { return "GetBlockHeadersByHash" }

// GetBlockHeadersByNumber is the number-keyed counterpart to
// GetBlockHeadersByHash; this is also the shape the DAO-fork check
// looks at.
type GetBlockHeadersByNumber struct {
	Origin  uint64
	Max     uint64
	Skip    uint64
	Reverse bool
}

func (GetBlockHeadersByNumber) messageType() string { return "GetBlockHeadersByNumber" }

// BlockHeaders is a response to either Get variant above.
type BlockHeaders struct {
	Headers []*types.Header
}

func (BlockHeaders) messageType() string { return "BlockHeaders" }

// GetBlockBodies requests the bodies matching hashes, in order.
type GetBlockBodies struct {
	Hashes []common.Hash
}

func (GetBlockBodies) messageType() string { return "GetBlockBodies" }

// Body is one block's transaction and ommer lists, joined with a header
// of matching index to form a types.Block.
type Body struct {
	Transactions []*types.Transaction
	Uncles       []*types.Header
}

// BlockBodies is a response to GetBlockBodies; we never serve a real
// one (Non-goals: we are not a data server), only an empty list.
type BlockBodies struct {
	Bodies []Body
}

func (BlockBodies) messageType() string { return "BlockBodies" }
