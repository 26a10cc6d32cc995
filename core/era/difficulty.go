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

import "math/big"

// Difficulty retargeting and bomb constants, ported from
// core/block_validator.go's CalcDifficulty family. MinimumDifficulty here
// is the value this system's own testable properties specify (125000),
// which intentionally differs from the real chain's 131072 floor.
var (
	DurationLimit          = big.NewInt(13)
	ExpDiffPeriod          = big.NewInt(100000)
	MinimumDifficulty      = big.NewInt(125000)
	DifficultyBoundDivisor = big.NewInt(2048)
	GasLimitBoundDivisor   = big.NewInt(1024)
	MinGasLimit            = big.NewInt(5000)

	diehardPause    = big.NewInt(3000000)
	diehardContinue = big.NewInt(5000000)

	big1      = big.NewInt(1)
	big2      = big.NewInt(2)
	big10     = big.NewInt(10)
	bigMinus99 = big.NewInt(-99)
)

// calcDifficultyFrontier implements the pre-Homestead retarget: a flat
// +/- D/2048 step keyed only on whether the block landed within 13
// seconds of its parent.
func calcDifficultyFrontier(t1, t0 uint64, parentDiff *big.Int) *big.Int {
	adjust := new(big.Int).Div(parentDiff, DifficultyBoundDivisor)
	diff := new(big.Int).Set(parentDiff)
	if t1 >= t0+DurationLimit.Uint64() {
		diff.Sub(diff, adjust)
	} else {
		diff.Add(diff, adjust)
	}
	return diff
}

// calcDifficultyHomestead implements EIP-2's retarget: a graded step
// proportional to how many multiples of 10 seconds the block missed (or
// beat) its parent by, clamped to [-99, 1].
func calcDifficultyHomestead(t1, t0 uint64, parentDiff *big.Int) *big.Int {
	bigTime := new(big.Int).SetUint64(t1)
	bigParentTime := new(big.Int).SetUint64(t0)

	x := new(big.Int).Sub(bigTime, bigParentTime)
	x.Div(x, big10)
	x.Sub(big1, x)
	if x.Cmp(bigMinus99) < 0 {
		x.Set(bigMinus99)
	}

	y := new(big.Int).Div(parentDiff, DifficultyBoundDivisor)
	x.Mul(y, x)
	x.Add(parentDiff, x)
	return x
}

// bombFrontier is the original, never-delayed difficulty bomb: a
// doubling-every-100,000-blocks addend with no special-casing.
func bombFrontier(number *big.Int) *big.Int {
	period := new(big.Int).Div(number, ExpDiffPeriod)
	if period.Cmp(big1) <= 0 {
		return new(big.Int)
	}
	exp := new(big.Int).Sub(period, big2)
	return new(big.Int).Exp(big2, exp, nil)
}

// bombDelayed is ECIP-1010's "diehard"/"explosion" schedule: the bomb is
// frozen at its pause-block value until the continue block, then resumes
// counting from where it left off.
func bombDelayed(number *big.Int) *big.Int {
	switch {
	case number.Cmp(diehardPause) < 0:
		return bombFrontier(number)
	case number.Cmp(diehardContinue) < 0:
		fixed := new(big.Int).Div(diehardPause, ExpDiffPeriod)
		exp := new(big.Int).Sub(fixed, big2)
		return new(big.Int).Exp(big2, exp, nil)
	default:
		delayedCount := new(big.Int).Sub(number, diehardContinue)
		delayedCount.Add(delayedCount, diehardPause)
		delayedCount.Div(delayedCount, ExpDiffPeriod)
		if delayedCount.Cmp(big1) <= 0 {
			return new(big.Int)
		}
		exp := new(big.Int).Sub(delayedCount, big2)
		return new(big.Int).Exp(big2, exp, nil)
	}
}

func clampMinimum(d *big.Int) *big.Int {
	if d.Cmp(MinimumDifficulty) < 0 {
		return new(big.Int).Set(MinimumDifficulty)
	}
	return d
}
