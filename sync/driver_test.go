package sync

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eth-classic/lightchain/core/types"
)

type fakeProcessor struct {
	puts []*types.Block
	ok   bool
	err  error
}

func (f *fakeProcessor) Put(block *types.Block) (bool, error) {
	f.puts = append(f.puts, block)
	return f.ok, f.err
}

func TestDriverJoinsHeaderAndBodyByIndex(t *testing.T) {
	fp := &fakeProcessor{ok: true}
	in := make(chan Message, 4)
	d := NewDriver(in, nil, fp)

	h := &types.Header{Number: big.NewInt(1)}
	in <- BlockHeaders{Headers: []*types.Header{h}}
	in <- BlockBodies{Bodies: []Body{{}}}
	close(in)

	err := d.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, fp.puts, 1)
	assert.Same(t, h, fp.puts[0].Header)
}

func TestDriverDropsExcessBodiesWithoutMatchingHeader(t *testing.T) {
	fp := &fakeProcessor{ok: true}
	in := make(chan Message, 4)
	d := NewDriver(in, nil, fp)

	in <- BlockBodies{Bodies: []Body{{}, {}}} // no headers queued
	close(in)

	require.NoError(t, d.Run(context.Background()))
	assert.Len(t, fp.puts, 0)
}

func TestDriverDropsBlockWithUnknownParentWithoutError(t *testing.T) {
	fp := &fakeProcessor{ok: false, err: nil} // Processor.Put's unknown-parent contract
	in := make(chan Message, 4)
	d := NewDriver(in, nil, fp)

	h := &types.Header{Number: big.NewInt(1)}
	in <- BlockHeaders{Headers: []*types.Header{h}}
	in <- BlockBodies{Bodies: []Body{{}}}
	close(in)

	require.NoError(t, d.Run(context.Background()))
	require.Len(t, fp.puts, 1)
}

func TestDriverRepliesToDAOForkQuery(t *testing.T) {
	fp := &fakeProcessor{}
	in := make(chan Message, 2)
	out := make(chan Message, 2)
	d := NewDriver(in, out, fp)

	in <- GetBlockHeadersByNumber{Origin: daoForkBlockNumber}
	close(in)

	require.NoError(t, d.Run(context.Background()))
	reply := <-out
	raw, ok := reply.(rawHeaderReply)
	require.True(t, ok)
	assert.Equal(t, daoForkHeaderRLP, raw.RLP)
}

func TestDriverRepliesEmptyToOrdinaryHeaderQuery(t *testing.T) {
	fp := &fakeProcessor{}
	in := make(chan Message, 2)
	out := make(chan Message, 2)
	d := NewDriver(in, out, fp)

	in <- GetBlockHeadersByNumber{Origin: 42}
	close(in)

	require.NoError(t, d.Run(context.Background()))
	reply := <-out
	_, ok := reply.(BlockHeaders)
	assert.True(t, ok)
}

func TestDriverDiscardsTransactionBroadcasts(t *testing.T) {
	fp := &fakeProcessor{}
	in := make(chan Message, 2)
	d := NewDriver(in, nil, fp)

	in <- Transactions{List: nil}
	close(in)

	assert.NoError(t, d.Run(context.Background()))
}
