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

import (
	"math/big"

	"github.com/eth-classic/lightchain/common"
)

// RuleSet reports which protocol-version gas/behaviour rules are active
// for the block currently executing; core/era.Patch implements it.
type RuleSet interface {
	IsHomestead(num *big.Int) bool
	IsEIP150(num *big.Int) bool
	IsEIP158(num *big.Int) bool
}

// Database is the account-state contract the VM runs against;
// core/state.StateDB implements it.
type Database interface {
	GetBalance(common.Address) *big.Int
	AddBalance(common.Address, *big.Int)
	SubBalance(common.Address, *big.Int)
	GetNonce(common.Address) uint64
	SetNonce(common.Address, uint64)
	GetCode(common.Address) []byte
	GetCodeHash(common.Address) common.Hash
	SetCode(common.Address, []byte)
	GetCodeSize(common.Address) int
	GetState(common.Address, common.Hash) common.Hash
	SetState(common.Address, common.Hash, common.Hash)
	Suicide(common.Address) bool
	HasSuicided(common.Address) bool
	Exist(common.Address) bool
	CreateAccount(common.Address)
	AddRefund(*big.Int)
	GetRefund() *big.Int
	AddLog(*Log)
	GetLogs() Logs
	Snapshot() int
	RevertToSnapshot(int)
}

// Context carries the per-block environment values every opcode that
// queries the block (COINBASE, TIMESTAMP, NUMBER, DIFFICULTY, GASLIMIT,
// BLOCKHASH) needs.
type Context struct {
	Origin      common.Address
	Coinbase    common.Address
	BlockNumber *big.Int
	Time        *big.Int
	Difficulty  *big.Int
	GasLimit    *big.Int
	GetHash     func(n uint64) common.Hash
}

// GasTable lists the protocol-version-dependent cost of a handful of
// opcodes whose price changed at EIP-150 (the "tangerine whistle" gas
// repricing). core/executor builds one per block with gasTableFor.
type GasTable struct {
	ExtcodeSize *big.Int
	ExtcodeCopy *big.Int
	Balance     *big.Int
	SLoad       *big.Int
	Calls       *big.Int
	Suicide     *big.Int
	ExpByte     *big.Int
}
