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

// Package era selects the era-specific consensus behaviors — VM ruleset,
// signature scheme, difficulty/bomb formula and reward formula — as a pure
// function of block number, and guarantees they never mix across eras
// within a block. It has no per-era PoW variant: every era is checked by
// the same ethash verifier in core/dag.
package era

import (
	"math/big"

	"github.com/eth-classic/lightchain/core/types"
)

// Name tags the VM ruleset a Patch selects; it also doubles as the
// reduced instruction set's RuleSet predicate source.
type Name string

const (
	Frontier Name = "frontier"
	Homestead Name = "homestead"
	EIP150   Name = "eip150"
	EIP160   Name = "eip160"
)

var (
	HomesteadBlock = big.NewInt(1150000)
	EIP150Block    = big.NewInt(2500000)
	EIP160Block    = big.NewInt(3000000)
	ECIP1017Block  = big.NewInt(5000000)
)

// Patch bundles one era's attributes: ruleset name and flags, signer,
// difficulty formula (bomb included) and reward formula. It has no
// PoW-variant field and no separate transaction-validation predicate.
type Patch struct {
	Name       Name
	Signer     types.Signer
	Difficulty func(t1, t0 uint64, number *big.Int, parentDiff *big.Int) *big.Int
	Reward     func(number *big.Int) (main *big.Int, ommer func(ommerNumber *big.Int) *big.Int)

	isHomestead bool
	isEIP150    bool
	isEIP160    bool
}

func (p Patch) IsHomestead(num *big.Int) bool { return p.isHomestead }
func (p Patch) IsEIP150(num *big.Int) bool    { return p.isEIP150 }
func (p Patch) IsEIP158(num *big.Int) bool    { return p.isEIP160 }

// classicSigner is the EIP-155-style replay-protected scheme adopted at
// EIP160Block with chain id 61 (Ethereum Classic mainnet).
var classicSigner = types.NewChainIdSigner(big.NewInt(61))
var basicSigner = types.BasicSigner{}

// Select resolves the era Patch governing block `number`, per the table
// in spec.md §4.1: which VM ruleset, signer, difficulty/bomb formula and
// reward formula apply.
func Select(number *big.Int) Patch {
	switch {
	case number.Cmp(HomesteadBlock) < 0:
		return Patch{
			Name:       Frontier,
			Signer:     basicSigner,
			Difficulty: frontierDifficulty,
			Reward:     frontierReward,
		}
	case number.Cmp(EIP150Block) < 0:
		return Patch{
			Name:        Homestead,
			Signer:      basicSigner,
			Difficulty:  homesteadDifficulty,
			Reward:      frontierReward,
			isHomestead: true,
		}
	case number.Cmp(EIP160Block) < 0:
		return Patch{
			Name:        EIP150,
			Signer:      basicSigner,
			Difficulty:  homesteadDifficulty,
			Reward:      frontierReward,
			isHomestead: true,
			isEIP150:    true,
		}
	case number.Cmp(ECIP1017Block) < 0:
		return Patch{
			Name:        EIP160,
			Signer:      classicSigner,
			Difficulty:  delayedDifficulty,
			Reward:      frontierReward,
			isHomestead: true,
			isEIP150:    true,
			isEIP160:    true,
		}
	default:
		return Patch{
			Name:        EIP160,
			Signer:      classicSigner,
			Difficulty:  delayedDifficulty,
			Reward:      eraReward,
			isHomestead: true,
			isEIP150:    true,
			isEIP160:    true,
		}
	}
}

// CalcDifficulty computes header.difficulty = calculate_difficulty(...)
// per §4.1: the era's retarget formula, plus its bomb formula, re-clamped
// to the protocol minimum.
func (p Patch) CalcDifficulty(t1, t0 uint64, number, parentDiff *big.Int) *big.Int {
	return p.Difficulty(t1, t0, number, parentDiff)
}

func frontierDifficulty(t1, t0 uint64, number, parentDiff *big.Int) *big.Int {
	d := calcDifficultyFrontier(t1, t0, parentDiff)
	d.Add(d, bombFrontier(number))
	return clampMinimum(d)
}

func homesteadDifficulty(t1, t0 uint64, number, parentDiff *big.Int) *big.Int {
	d := calcDifficultyHomestead(t1, t0, parentDiff)
	d.Add(d, bombFrontier(number))
	return clampMinimum(d)
}

func delayedDifficulty(t1, t0 uint64, number, parentDiff *big.Int) *big.Int {
	d := calcDifficultyHomestead(t1, t0, parentDiff)
	d.Add(d, bombDelayed(number))
	return clampMinimum(d)
}

// ValidateGasLimit implements the §4.1 gas-limit rule: the child must sit
// within parent/1024 of the parent and never fall below the 5000 floor
// (the yellow paper value — see DESIGN.md's Open Question resolution).
func ValidateGasLimit(parentLimit, childLimit *big.Int) bool {
	diff := new(big.Int).Sub(parentLimit, childLimit)
	diff.Abs(diff)
	bound := new(big.Int).Div(parentLimit, GasLimitBoundDivisor)
	if diff.Cmp(bound) >= 0 {
		return false
	}
	return childLimit.Cmp(MinGasLimit) >= 0
}
