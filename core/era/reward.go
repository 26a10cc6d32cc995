// Copyright 2017 (c) ETCDEV Team

// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package era

import (
	"math/big"

	"github.com/eth-classic/lightchain/common"
)

// BalanceAdder is the one method ApplyRewards needs from the state
// database; core/state.StateDB satisfies it.
type BalanceAdder interface {
	AddBalance(common.Address, *big.Int)
}

// MaximumBlockReward is the flat Frontier/Homestead base reward, ported
// from core/state_processor.go's AccumulateRewards.
var (
	MaximumBlockReward = big.NewInt(5e18)
	big8               = big.NewInt(8)
	big32              = big.NewInt(32)

	disinflationRateQuotient = big.NewInt(4)
	disinflationRateDivisor  = big.NewInt(5)
)

// frontierReward is the flat-rate reward: R to the beneficiary plus
// R/32 per ommer, R*(8-(n-ommerN))/8 to each ommer's own beneficiary.
func frontierReward(number *big.Int) (main *big.Int, ommer func(*big.Int) *big.Int) {
	return new(big.Int).Set(MaximumBlockReward), func(ommerNumber *big.Int) *big.Int {
		r := new(big.Int).Add(ommerNumber, big8)
		r.Sub(r, number)
		r.Mul(r, MaximumBlockReward)
		r.Div(r, big8)
		return r
	}
}

// eraReward is the ECIP-1017 era-reduced variant Select uses from
// ECIP1017Block onward: the base reward shrinks to (4/5)^era of the flat rate, while
// the flat per-ommer reward (R/32) stays constant across eras.
func eraReward(number *big.Int) (main *big.Int, ommer func(*big.Int) *big.Int) {
	e := BlockEra(number, ECIP1017Block)
	reward := new(big.Int).Set(MaximumBlockReward)
	for i := int64(0); i < e.Int64(); i++ {
		reward.Mul(reward, disinflationRateQuotient)
		reward.Div(reward, disinflationRateDivisor)
	}
	ommerFlat := new(big.Int).Div(MaximumBlockReward, big32)
	return reward, func(ommerNumber *big.Int) *big.Int {
		return new(big.Int).Set(ommerFlat)
	}
}

// BlockEra computes era(n, L) = n/L, or n/L - 1 when n is itself an exact
// era boundary, per spec §4.1's ECIP-1017 definition.
func BlockEra(number, length *big.Int) *big.Int {
	if length.Sign() == 0 {
		return new(big.Int)
	}
	rem := new(big.Int).Mod(number, length)
	era := new(big.Int).Div(number, length)
	if rem.Sign() == 0 && era.Sign() > 0 {
		era.Sub(era, big1)
	}
	return era
}

// ApplyRewards credits the main block reward (adjusted for U ommers, per
// §4.1's R + R/32*U formula) and each ommer's reward directly to account
// balances — not via a VM-routed pseudo-transaction, per Design Notes §9.
func ApplyRewards(p Patch, db BalanceAdder, beneficiary common.Address, number *big.Int, ommerBeneficiaries []common.Address, ommerNumbers []*big.Int) {
	base, ommerReward := p.Reward(number)
	main := new(big.Int).Set(base)
	if u := len(ommerBeneficiaries); u > 0 {
		bonus := new(big.Int).Mul(base, big.NewInt(int64(u)))
		bonus.Div(bonus, big32)
		main.Add(main, bonus)
	}
	db.AddBalance(beneficiary, main)
	for i, ob := range ommerBeneficiaries {
		db.AddBalance(ob, ommerReward(ommerNumbers[i]))
	}
}
