package sync

import (
	"context"
	"fmt"

	"github.com/eth-classic/lightchain/core/chain"
	"github.com/eth-classic/lightchain/core/types"
	"github.com/eth-classic/lightchain/logger"
	"github.com/eth-classic/lightchain/logger/glog"
)

// put is the subset of chain.Processor the Driver needs, narrowed so
// tests can substitute a fake without building a real Processor.
type put interface {
	Put(block *types.Block) (bool, error)
}

var _ put = (*chain.Processor)(nil)

// pending buffers headers awaiting their matching body, joined by
// arrival order the way the teacher's downloader pairs header and body
// fetch results.
type pending struct {
	headers []*types.Header
}

// Driver demultiplexes inbound peer messages into Processor.Put calls.
// It runs as a single task: Run must never be invoked concurrently with
// itself, since it holds no lock around its pending-header buffer or
// around Put.
type Driver struct {
	in        <-chan Message
	out       chan<- Message
	processor put

	queue pending
}

func NewDriver(in <-chan Message, out chan<- Message, processor put) *Driver {
	return &Driver{in: in, out: out, processor: processor}
}

// Run drains in until ctx is done or the channel closes, dispatching
// each message by type. BlockHeaders populates the pending queue;
// BlockBodies joins each body with the next queued header by index and
// feeds the result to Put. Unsolicited Transactions are discarded;
// Get* requests get the DAO-fork special case or an empty reply.
func (d *Driver) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-d.in:
			if !ok {
				return nil
			}
			if err := d.dispatch(msg); err != nil {
				return err
			}
		}
	}
}

func (d *Driver) dispatch(msg Message) error {
	switch m := msg.(type) {
	case BlockHeaders:
		d.queue.headers = append(d.queue.headers, m.Headers...)
	case BlockBodies:
		return d.joinBodies(m.Bodies)
	case Transactions:
		// No mempool to forward these into; drop them.
	case GetBlockHeadersByNumber:
		return d.replyDAOFork(m.Origin)
	case GetBlockHeadersByHash:
		d.reply(BlockHeaders{})
	case GetBlockBodies:
		d.reply(BlockBodies{})
	case Status:
		// Handshake acknowledged implicitly; nothing to act on without
		// a peer session to track.
	}
	return nil
}

func (d *Driver) joinBodies(bodies []Body) error {
	n := len(bodies)
	if n > len(d.queue.headers) {
		n = len(d.queue.headers)
	}
	for i := 0; i < n; i++ {
		h := d.queue.headers[i]
		b := bodies[i]
		block := &types.Block{Header: h, Transactions: b.Transactions, Uncles: b.Uncles}
		ok, err := d.processor.Put(block)
		if err != nil {
			return fmt.Errorf("sync: block %d rejected: %v", h.Number, err)
		}
		if !ok {
			// Unknown parent: this single-peer, strictly-ordered driver has
			// no reorg/backlog machinery to hold the block for a later
			// retry (see DESIGN.md), so it's dropped with a warning rather
			// than silently discarded.
			glog.V(logger.Warn).Warnf("sync: dropping block %d, parent %x not yet in chain", h.Number, h.ParentHash)
		}
	}
	d.queue.headers = d.queue.headers[n:]
	return nil
}

func (d *Driver) replyDAOFork(number uint64) error {
	if raw, ok := DAOForkResponse(number); ok {
		d.reply(rawHeaderReply{raw})
		return nil
	}
	d.reply(BlockHeaders{})
	return nil
}

// rawHeaderReply carries the DAO-fork marker's opaque bytes straight
// through without decoding them into a types.Header, since spec.md
// treats the constant as bytes to serve, never to interpret.
type rawHeaderReply struct {
	RLP []byte
}

func (rawHeaderReply) messageType() string { return "RawHeaderReply" }

func (d *Driver) reply(msg Message) {
	if d.out == nil {
		return
	}
	select {
	case d.out <- msg:
	default:
	}
}
