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

package vm

import "math/big"

// Fixed per-opcode gas costs, grounded on the yellow paper's G_verylow/
// G_low/G_mid/G_high tiers and params.QuadCoeffDiv/params.MemoryGas.
const (
	GasQuickStep   = 2
	GasFastestStep = 3
	GasFastStep    = 5
	GasMidStep     = 8
	GasSlowStep    = 10
	GasExtStep     = 20

	GasSha3        = 30
	GasSha3Word    = 6
	GasSload       = 50
	GasSstoreSet   = 20000
	GasSstoreReset = 5000
	GasSstoreClear = 15000 // refunded, not charged
	GasLog         = 375
	GasLogTopic    = 375
	GasLogData     = 8
	GasCreate      = 32000
	GasCall        = 40
	GasCallValue   = 9000
	GasCallStipend = 2300
	GasMemory      = 3
	QuadCoeffDiv   = 512
)

func memoryGasCost(mem *Memory, newSize uint64) *big.Int {
	if newSize <= uint64(mem.Len()) {
		return big.NewInt(0)
	}
	words := toWordSize(newSize)
	linear := new(big.Int).Mul(big.NewInt(int64(words)), big.NewInt(GasMemory))
	quad := new(big.Int).Div(new(big.Int).Mul(big.NewInt(int64(words)), big.NewInt(int64(words))), big.NewInt(QuadCoeffDiv))
	oldWords := toWordSize(uint64(mem.Len()))
	oldLinear := new(big.Int).Mul(big.NewInt(int64(oldWords)), big.NewInt(GasMemory))
	oldQuad := new(big.Int).Div(new(big.Int).Mul(big.NewInt(int64(oldWords)), big.NewInt(int64(oldWords))), big.NewInt(QuadCoeffDiv))
	total := new(big.Int).Add(linear, quad)
	old := new(big.Int).Add(oldLinear, oldQuad)
	return new(big.Int).Sub(total, old)
}

func toWordSize(size uint64) uint64 {
	if size == 0 {
		return 0
	}
	return (size + 31) / 32
}
