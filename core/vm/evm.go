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
	"errors"
	"math/big"

	"github.com/eth-classic/lightchain/common"
)

var (
	ErrOutOfGas        = errors.New("out of gas")
	ErrStackUnderflow  = errors.New("stack underflow")
	ErrInvalidJump     = errors.New("invalid jump destination")
	ErrInvalidOpcode   = errors.New("invalid opcode")
	ErrInsufficientBal = errors.New("insufficient balance for transfer")

	errJumped = errors.New("pc overridden by jump") // internal control-flow signal
)

// EVM ties one execution together: the account state it mutates, the
// per-block Context values opcodes read, the active RuleSet/GasTable and
// the running gas price.
type EVM struct {
	StateDB  Database
	Context  Context
	Rules    RuleSet
	Gas      GasTable
	GasPrice *big.Int

	depth int
}

func New(db Database, ctx Context, rules RuleSet, gasTable GasTable, gasPrice *big.Int) *EVM {
	return &EVM{StateDB: db, Context: ctx, Rules: rules, Gas: gasTable, GasPrice: gasPrice}
}

const maxCallDepth = 1024

// Run executes contract's code until it halts (STOP/RETURN/SELFDESTRUCT),
// runs out of gas, or hits an invalid instruction, returning the data
// RETURN supplied (if any) and the leftover gas.
func (evm *EVM) Run(c *Contract) (ret []byte, leftOverGas uint64, err error) {
	if evm.depth > maxCallDepth {
		return nil, c.Gas, errors.New("max call depth exceeded")
	}
	for {
		op := c.GetOp(c.pc)
		entry, ok := table[op]
		if !ok {
			return nil, c.Gas, ErrInvalidOpcode
		}
		if c.Stack.Len() < entry.minimum {
			return nil, c.Gas, ErrStackUnderflow
		}

		cost := entry.gas
		if op == SSTORE {
			cost = evm.sstoreCost(c)
		}
		if mcost := evm.memoryCost(op, c); mcost > 0 {
			cost += mcost
		}
		if !c.useGas(cost) {
			return nil, 0, ErrOutOfGas
		}

		data, halted, opErr := entry.exec(evm, c)
		if opErr == errJumped {
			continue // pc already set by opJump/opJumpi
		}
		if opErr != nil {
			return nil, c.Gas, opErr
		}
		if halted {
			return data, c.Gas, nil
		}
		c.pc++
	}
}

// sstoreCost applies the yellow-paper-style SSTORE pricing: writing a
// zero slot to non-zero costs more than clearing or rewriting one.
func (evm *EVM) sstoreCost(c *Contract) uint64 {
	loc := common.BigToHash(c.Stack.Back(0))
	newVal := c.Stack.Back(1)
	current := evm.StateDB.GetState(c.Self, loc)
	if current.IsZero() && newVal.Sign() != 0 {
		return GasSstoreSet
	}
	if !current.IsZero() && newVal.Sign() == 0 {
		evm.StateDB.AddRefund(big.NewInt(GasSstoreClear))
	}
	return GasSstoreReset
}

// memoryCost charges the quadratic memory-expansion fee ahead of opcodes
// that grow memory, so running out of gas mid-expansion is caught before
// any bytes are written.
func (evm *EVM) memoryCost(op OpCode, c *Contract) uint64 {
	var newSize uint64
	switch op {
	case MLOAD, MSTORE:
		if c.Stack.Len() < 1 {
			return 0
		}
		newSize = c.Stack.Peek().Uint64() + 32
	case MSTORE8:
		if c.Stack.Len() < 1 {
			return 0
		}
		newSize = c.Stack.Peek().Uint64() + 1
	case CALLDATACOPY, CODECOPY:
		if c.Stack.Len() < 3 {
			return 0
		}
		newSize = c.Stack.Back(0).Uint64() + c.Stack.Back(2).Uint64()
	case SHA3, RETURN, LOG0, LOG1, LOG2, LOG3, LOG4:
		if c.Stack.Len() < 2 {
			return 0
		}
		newSize = c.Stack.Peek().Uint64() + c.Stack.Back(1).Uint64()
	case CREATE:
		if c.Stack.Len() < 3 {
			return 0
		}
		newSize = c.Stack.Back(1).Uint64() + c.Stack.Back(2).Uint64()
	case CALL, CALLCODE:
		if c.Stack.Len() < 7 {
			return 0
		}
		in := c.Stack.Back(3).Uint64() + c.Stack.Back(4).Uint64()
		out := c.Stack.Back(5).Uint64() + c.Stack.Back(6).Uint64()
		newSize = in
		if out > newSize {
			newSize = out
		}
	default:
		return 0
	}
	return memoryGasCost(c.Memory, newSize).Uint64()
}

// call runs codeAddr's code as a child frame writing into selfAddr's
// storage, optionally transferring value from callerAddr first. It
// snapshots the state ahead of the transfer so a failed child frame can be
// unwound without disturbing the calling frame, per the depth limit shared
// with Run.
func (evm *EVM) call(callerAddr, codeAddr, selfAddr common.Address, input []byte, gas uint64, value *big.Int, transfer bool) (ret []byte, leftOverGas uint64, success bool) {
	if evm.depth >= maxCallDepth {
		return nil, gas, false
	}
	if transfer && evm.StateDB.GetBalance(callerAddr).Cmp(value) < 0 {
		return nil, gas, false
	}

	snapshot := evm.StateDB.Snapshot()
	if !evm.StateDB.Exist(selfAddr) {
		evm.StateDB.CreateAccount(selfAddr)
	}
	if transfer && value.Sign() != 0 {
		evm.StateDB.SubBalance(callerAddr, value)
		evm.StateDB.AddBalance(selfAddr, value)
	}

	code := evm.StateDB.GetCode(codeAddr)
	if len(code) == 0 {
		return nil, gas, true
	}

	child := NewContract(callerAddr, selfAddr, value, gas, code, input)
	evm.depth++
	ret, leftOverGas, err := evm.Run(child)
	evm.depth--
	if err != nil {
		evm.StateDB.RevertToSnapshot(snapshot)
		return ret, 0, false
	}
	return ret, leftOverGas, true
}
