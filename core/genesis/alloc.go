package genesis

import (
	"math/big"

	"github.com/eth-classic/lightchain/common"
)

// Account is one genesis allocation entry: an address credited with a
// starting balance before block 1 can be validated against it.
type Account struct {
	Address common.Address
	Balance *big.Int
}

// Allocation is the full genesis credit list, applied in order.
type Allocation []Account

// DefaultAllocation is a representative seed set grounded in the
// teacher's own test genesis builders (GenesisBlockForTesting,
// WriteGenesisBlockForTesting in core/genesis.go), not the full mainnet
// allocation — see DESIGN.md for why the ~8,893-entry table isn't
// embedded here.
var DefaultAllocation = Allocation{
	{
		Address: common.HexToAddress("0000000000000000000000000000000000000001"),
		Balance: big.NewInt(0),
	},
	{
		Address: common.HexToAddress("000d836201318ec6899a67540690382780743280"),
		Balance: weiFromEther(200000000),
	},
	{
		Address: common.HexToAddress("b9c015918bdaba24b4ff057a92a3873d6eb201be"),
		Balance: weiFromEther(200000000),
	},
	{
		Address: common.HexToAddress("2ef47100e0787b915105fd5e3f4ff6752079d5cb"),
		Balance: weiFromEther(300000000),
	},
}

func weiFromEther(ether int64) *big.Int {
	v := big.NewInt(ether)
	return v.Mul(v, new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil))
}
