package sync

import "github.com/eth-classic/lightchain/common"

// daoForkBlockNumber is the block at which ETC and ETH header histories
// diverge. Answering a header request for this number with the
// classic-side header is how ETC peers identify themselves to each
// other, per the teacher's core/blocks.go BadHashes bookkeeping for the
// same fork point.
const daoForkBlockNumber = 1920000

// daoForkHeaderRLP is the opaque, hard-coded classic-side header RLP for
// block 1,920,000. It is never derived, only served: spec.md explicitly
// treats it as a byte constant. The retrieval pack carries only the
// fork's bad-hash bookkeeping (core/blocks.go in the teacher), not the
// canonical header bytes themselves, so this placeholder is a
// representative stand-in rather than the byte-exact mainnet header —
// see DESIGN.md.
var daoForkHeaderRLP = common.FromHex(
	"f90213a0a218e2c611f21232d857e3c8cecdcdf1f65f25a4477f98f6f47e4063807f2308" +
		"a01dcc4de8dec75d7aab85b567b6ccd41ad312451b948a7413f0a142fd40d493479",
)

// DAOForkResponse reports whether number is the DAO-fork marker and, if
// so, the raw header bytes to serve instead of performing a real lookup.
func DAOForkResponse(number uint64) ([]byte, bool) {
	if number != daoForkBlockNumber {
		return nil, false
	}
	return daoForkHeaderRLP, true
}
