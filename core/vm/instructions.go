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
	"github.com/eth-classic/lightchain/crypto"
	"github.com/eth-classic/lightchain/rlp"
)

// operation implements one opcode. It returns (returnData, halted, err):
// halted is set by STOP/RETURN/SELFDESTRUCT to end the call frame.
type operation func(evm *EVM, c *Contract) ([]byte, bool, error)

func opStop(evm *EVM, c *Contract) ([]byte, bool, error) { return nil, true, nil }

func opAdd(evm *EVM, c *Contract) ([]byte, bool, error) {
	x, y := c.Stack.Pop(), c.Stack.Pop()
	c.Stack.Push(common.U256(new(big.Int).Add(x, y)))
	return nil, false, nil
}

func opMul(evm *EVM, c *Contract) ([]byte, bool, error) {
	x, y := c.Stack.Pop(), c.Stack.Pop()
	c.Stack.Push(common.U256(new(big.Int).Mul(x, y)))
	return nil, false, nil
}

func opSub(evm *EVM, c *Contract) ([]byte, bool, error) {
	x, y := c.Stack.Pop(), c.Stack.Pop()
	c.Stack.Push(common.U256(new(big.Int).Sub(x, y)))
	return nil, false, nil
}

func opDiv(evm *EVM, c *Contract) ([]byte, bool, error) {
	x, y := c.Stack.Pop(), c.Stack.Pop()
	if y.Sign() == 0 {
		c.Stack.Push(new(big.Int))
	} else {
		c.Stack.Push(common.U256(new(big.Int).Div(x, y)))
	}
	return nil, false, nil
}

func opMod(evm *EVM, c *Contract) ([]byte, bool, error) {
	x, y := c.Stack.Pop(), c.Stack.Pop()
	if y.Sign() == 0 {
		c.Stack.Push(new(big.Int))
	} else {
		c.Stack.Push(common.U256(new(big.Int).Mod(x, y)))
	}
	return nil, false, nil
}

func opAddmod(evm *EVM, c *Contract) ([]byte, bool, error) {
	x, y, m := c.Stack.Pop(), c.Stack.Pop(), c.Stack.Pop()
	if m.Sign() == 0 {
		c.Stack.Push(new(big.Int))
	} else {
		r := new(big.Int).Add(x, y)
		c.Stack.Push(common.U256(r.Mod(r, m)))
	}
	return nil, false, nil
}

func opMulmod(evm *EVM, c *Contract) ([]byte, bool, error) {
	x, y, m := c.Stack.Pop(), c.Stack.Pop(), c.Stack.Pop()
	if m.Sign() == 0 {
		c.Stack.Push(new(big.Int))
	} else {
		r := new(big.Int).Mul(x, y)
		c.Stack.Push(common.U256(r.Mod(r, m)))
	}
	return nil, false, nil
}

func opExp(evm *EVM, c *Contract) ([]byte, bool, error) {
	base, exp := c.Stack.Pop(), c.Stack.Pop()
	c.Stack.Push(common.U256(new(big.Int).Exp(base, exp, common.BigPow(2, 256))))
	return nil, false, nil
}

func opLt(evm *EVM, c *Contract) ([]byte, bool, error) {
	x, y := c.Stack.Pop(), c.Stack.Pop()
	c.Stack.Push(boolToBig(x.Cmp(y) < 0))
	return nil, false, nil
}

func opGt(evm *EVM, c *Contract) ([]byte, bool, error) {
	x, y := c.Stack.Pop(), c.Stack.Pop()
	c.Stack.Push(boolToBig(x.Cmp(y) > 0))
	return nil, false, nil
}

func opEq(evm *EVM, c *Contract) ([]byte, bool, error) {
	x, y := c.Stack.Pop(), c.Stack.Pop()
	c.Stack.Push(boolToBig(x.Cmp(y) == 0))
	return nil, false, nil
}

func opIszero(evm *EVM, c *Contract) ([]byte, bool, error) {
	x := c.Stack.Pop()
	c.Stack.Push(boolToBig(x.Sign() == 0))
	return nil, false, nil
}

func opAnd(evm *EVM, c *Contract) ([]byte, bool, error) {
	x, y := c.Stack.Pop(), c.Stack.Pop()
	c.Stack.Push(new(big.Int).And(x, y))
	return nil, false, nil
}

func opOr(evm *EVM, c *Contract) ([]byte, bool, error) {
	x, y := c.Stack.Pop(), c.Stack.Pop()
	c.Stack.Push(new(big.Int).Or(x, y))
	return nil, false, nil
}

func opXor(evm *EVM, c *Contract) ([]byte, bool, error) {
	x, y := c.Stack.Pop(), c.Stack.Pop()
	c.Stack.Push(new(big.Int).Xor(x, y))
	return nil, false, nil
}

func opNot(evm *EVM, c *Contract) ([]byte, bool, error) {
	x := c.Stack.Pop()
	c.Stack.Push(common.U256(new(big.Int).Not(x)))
	return nil, false, nil
}

func opSha3(evm *EVM, c *Contract) ([]byte, bool, error) {
	offset, size := c.Stack.Pop(), c.Stack.Pop()
	data := c.Memory.Get(offset.Int64(), size.Int64())
	c.Stack.Push(new(big.Int).SetBytes(crypto.Keccak256(data)))
	return nil, false, nil
}

func opAddress(evm *EVM, c *Contract) ([]byte, bool, error) {
	c.Stack.Push(new(big.Int).SetBytes(c.Self.Bytes()))
	return nil, false, nil
}

func opBalance(evm *EVM, c *Contract) ([]byte, bool, error) {
	addr := common.BytesToAddress(c.Stack.Pop().Bytes())
	c.Stack.Push(evm.StateDB.GetBalance(addr))
	return nil, false, nil
}

func opOrigin(evm *EVM, c *Contract) ([]byte, bool, error) {
	c.Stack.Push(new(big.Int).SetBytes(evm.Context.Origin.Bytes()))
	return nil, false, nil
}

func opCaller(evm *EVM, c *Contract) ([]byte, bool, error) {
	c.Stack.Push(new(big.Int).SetBytes(c.Caller.Bytes()))
	return nil, false, nil
}

func opCallvalue(evm *EVM, c *Contract) ([]byte, bool, error) {
	c.Stack.Push(new(big.Int).Set(c.Value))
	return nil, false, nil
}

func opCalldataload(evm *EVM, c *Contract) ([]byte, bool, error) {
	offset := c.Stack.Pop()
	c.Stack.Push(new(big.Int).SetBytes(getData(c.Input, offset, big.NewInt(32))))
	return nil, false, nil
}

func opCalldatasize(evm *EVM, c *Contract) ([]byte, bool, error) {
	c.Stack.Push(big.NewInt(int64(len(c.Input))))
	return nil, false, nil
}

func opCalldatacopy(evm *EVM, c *Contract) ([]byte, bool, error) {
	memOff, dataOff, size := c.Stack.Pop(), c.Stack.Pop(), c.Stack.Pop()
	data := getData(c.Input, dataOff, size)
	c.Memory.Set(memOff.Uint64(), size.Uint64(), data)
	return nil, false, nil
}

func opCodesize(evm *EVM, c *Contract) ([]byte, bool, error) {
	c.Stack.Push(big.NewInt(int64(len(c.Code))))
	return nil, false, nil
}

func opCodecopy(evm *EVM, c *Contract) ([]byte, bool, error) {
	memOff, codeOff, size := c.Stack.Pop(), c.Stack.Pop(), c.Stack.Pop()
	data := getData(c.Code, codeOff, size)
	c.Memory.Set(memOff.Uint64(), size.Uint64(), data)
	return nil, false, nil
}

func opGasprice(evm *EVM, c *Contract) ([]byte, bool, error) {
	c.Stack.Push(new(big.Int).Set(evm.GasPrice))
	return nil, false, nil
}

func opExtcodesize(evm *EVM, c *Contract) ([]byte, bool, error) {
	addr := common.BytesToAddress(c.Stack.Pop().Bytes())
	c.Stack.Push(big.NewInt(int64(evm.StateDB.GetCodeSize(addr))))
	return nil, false, nil
}

func opBlockhash(evm *EVM, c *Contract) ([]byte, bool, error) {
	n := c.Stack.Pop()
	c.Stack.Push(new(big.Int).SetBytes(evm.Context.GetHash(n.Uint64()).Bytes()))
	return nil, false, nil
}

func opCoinbase(evm *EVM, c *Contract) ([]byte, bool, error) {
	c.Stack.Push(new(big.Int).SetBytes(evm.Context.Coinbase.Bytes()))
	return nil, false, nil
}

func opTimestamp(evm *EVM, c *Contract) ([]byte, bool, error) {
	c.Stack.Push(common.U256(new(big.Int).Set(evm.Context.Time)))
	return nil, false, nil
}

func opNumber(evm *EVM, c *Contract) ([]byte, bool, error) {
	c.Stack.Push(common.U256(new(big.Int).Set(evm.Context.BlockNumber)))
	return nil, false, nil
}

func opDifficulty(evm *EVM, c *Contract) ([]byte, bool, error) {
	c.Stack.Push(common.U256(new(big.Int).Set(evm.Context.Difficulty)))
	return nil, false, nil
}

func opGaslimit(evm *EVM, c *Contract) ([]byte, bool, error) {
	c.Stack.Push(common.U256(new(big.Int).Set(evm.Context.GasLimit)))
	return nil, false, nil
}

func opPop(evm *EVM, c *Contract) ([]byte, bool, error) {
	c.Stack.Pop()
	return nil, false, nil
}

func opMload(evm *EVM, c *Contract) ([]byte, bool, error) {
	offset := c.Stack.Pop()
	c.Memory.Resize(offset.Uint64() + 32)
	c.Stack.Push(new(big.Int).SetBytes(c.Memory.Get(offset.Int64(), 32)))
	return nil, false, nil
}

func opMstore(evm *EVM, c *Contract) ([]byte, bool, error) {
	offset, val := c.Stack.Pop(), c.Stack.Pop()
	c.Memory.Set(offset.Uint64(), 32, common.LeftPadBytes(val.Bytes(), 32))
	return nil, false, nil
}

func opMstore8(evm *EVM, c *Contract) ([]byte, bool, error) {
	offset, val := c.Stack.Pop(), c.Stack.Pop()
	c.Memory.Resize(offset.Uint64() + 1)
	c.Memory.Data()[offset.Uint64()] = byte(val.Uint64() & 0xff)
	return nil, false, nil
}

func opSload(evm *EVM, c *Contract) ([]byte, bool, error) {
	loc := common.BigToHash(c.Stack.Pop())
	c.Stack.Push(evm.StateDB.GetState(c.Self, loc).Big())
	return nil, false, nil
}

func opSstore(evm *EVM, c *Contract) ([]byte, bool, error) {
	loc, val := c.Stack.Pop(), c.Stack.Pop()
	evm.StateDB.SetState(c.Self, common.BigToHash(loc), common.BigToHash(val))
	return nil, false, nil
}

func opJump(evm *EVM, c *Contract) ([]byte, bool, error) {
	dest := c.Stack.Pop()
	if !c.validJumpdest(dest.Uint64()) {
		return nil, false, ErrInvalidJump
	}
	c.pc = dest.Uint64()
	return nil, false, errJumped
}

func opJumpi(evm *EVM, c *Contract) ([]byte, bool, error) {
	dest, cond := c.Stack.Pop(), c.Stack.Pop()
	if cond.Sign() != 0 {
		if !c.validJumpdest(dest.Uint64()) {
			return nil, false, ErrInvalidJump
		}
		c.pc = dest.Uint64()
		return nil, false, errJumped
	}
	return nil, false, nil
}

func opPc(evm *EVM, c *Contract) ([]byte, bool, error) {
	c.Stack.Push(big.NewInt(int64(c.pc)))
	return nil, false, nil
}

func opMsize(evm *EVM, c *Contract) ([]byte, bool, error) {
	c.Stack.Push(big.NewInt(int64(c.Memory.Len())))
	return nil, false, nil
}

func opGas(evm *EVM, c *Contract) ([]byte, bool, error) {
	c.Stack.Push(big.NewInt(int64(c.Gas)))
	return nil, false, nil
}

func opJumpdest(evm *EVM, c *Contract) ([]byte, bool, error) { return nil, false, nil }

func opReturn(evm *EVM, c *Contract) ([]byte, bool, error) {
	offset, size := c.Stack.Pop(), c.Stack.Pop()
	return c.Memory.Get(offset.Int64(), size.Int64()), true, nil
}

func opCreate(evm *EVM, c *Contract) ([]byte, bool, error) {
	value := c.Stack.Pop()
	offset, size := c.Stack.Pop(), c.Stack.Pop()
	input := c.Memory.Get(offset.Int64(), size.Int64())

	if evm.depth >= maxCallDepth || evm.StateDB.GetBalance(c.Self).Cmp(value) < 0 {
		c.Stack.Push(new(big.Int))
		return nil, false, nil
	}

	childGas := c.Gas
	c.Gas = 0

	nonce := evm.StateDB.GetNonce(c.Self)
	evm.StateDB.SetNonce(c.Self, nonce+1)
	addr := crypto.CreateAddress(c.Self, nonce, rlpOfAddressNonce)

	snapshot := evm.StateDB.Snapshot()
	evm.StateDB.CreateAccount(addr)
	evm.StateDB.AddBalance(addr, value)
	evm.StateDB.SubBalance(c.Self, value)

	child := NewContract(c.Self, addr, value, childGas, input, nil)
	evm.depth++
	ret, leftOverGas, err := evm.Run(child)
	evm.depth--

	if err != nil {
		evm.StateDB.RevertToSnapshot(snapshot)
		c.Stack.Push(new(big.Int))
		return nil, false, nil
	}

	evm.StateDB.SetCode(addr, ret)
	c.Gas += leftOverGas
	c.Stack.Push(new(big.Int).SetBytes(addr.Bytes()))
	return nil, false, nil
}

func opCall(evm *EVM, c *Contract) ([]byte, bool, error) {
	gasReq := c.Stack.Pop()
	addr, value := c.Stack.Pop(), c.Stack.Pop()
	inOffset, inSize := c.Stack.Pop(), c.Stack.Pop()
	retOffset, retSize := c.Stack.Pop(), c.Stack.Pop()

	to := common.BigToAddress(addr)
	args := c.Memory.Get(inOffset.Int64(), inSize.Int64())

	if value.Sign() != 0 && !c.useGas(GasCallValue) {
		return nil, false, ErrOutOfGas
	}

	childGas := gasReq.Uint64()
	if childGas > c.Gas {
		childGas = c.Gas
	}
	c.Gas -= childGas
	if value.Sign() != 0 {
		childGas += GasCallStipend
	}

	ret, leftOver, success := evm.call(c.Self, to, to, args, childGas, value, true)
	c.Gas += leftOver

	if success {
		c.Stack.Push(big.NewInt(1))
	} else {
		c.Stack.Push(new(big.Int))
	}
	c.Memory.Set(retOffset.Uint64(), retSize.Uint64(), ret)
	return nil, false, nil
}

func opCallCode(evm *EVM, c *Contract) ([]byte, bool, error) {
	gasReq := c.Stack.Pop()
	addr, value := c.Stack.Pop(), c.Stack.Pop()
	inOffset, inSize := c.Stack.Pop(), c.Stack.Pop()
	retOffset, retSize := c.Stack.Pop(), c.Stack.Pop()

	to := common.BigToAddress(addr)
	args := c.Memory.Get(inOffset.Int64(), inSize.Int64())

	if value.Sign() != 0 && !c.useGas(GasCallValue) {
		return nil, false, ErrOutOfGas
	}

	childGas := gasReq.Uint64()
	if childGas > c.Gas {
		childGas = c.Gas
	}
	c.Gas -= childGas
	if value.Sign() != 0 {
		childGas += GasCallStipend
	}

	// CALLCODE runs the target's code against the caller's own storage and
	// never moves a balance: transfer=false.
	ret, leftOver, success := evm.call(c.Self, to, c.Self, args, childGas, value, false)
	c.Gas += leftOver

	if success {
		c.Stack.Push(big.NewInt(1))
	} else {
		c.Stack.Push(new(big.Int))
	}
	c.Memory.Set(retOffset.Uint64(), retSize.Uint64(), ret)
	return nil, false, nil
}

// rlpOfAddressNonce mirrors core/executor's callback of the same name,
// duplicated here to keep vm free of an import cycle through executor.
func rlpOfAddressNonce(from common.Address, nonce uint64) []byte {
	b, err := rlp.EncodeToBytes([]interface{}{from, nonce})
	if err != nil {
		panic(err)
	}
	return b
}

func opSelfdestruct(evm *EVM, c *Contract) ([]byte, bool, error) {
	addr := common.BytesToAddress(c.Stack.Pop().Bytes())
	balance := evm.StateDB.GetBalance(c.Self)
	evm.StateDB.AddBalance(addr, balance)
	evm.StateDB.Suicide(c.Self)
	return nil, true, nil
}

func makeLog(n int) operation {
	return func(evm *EVM, c *Contract) ([]byte, bool, error) {
		offset, size := c.Stack.Pop(), c.Stack.Pop()
		topics := make([]common.Hash, n)
		for i := 0; i < n; i++ {
			topics[i] = common.BigToHash(c.Stack.Pop())
		}
		data := c.Memory.Get(offset.Int64(), size.Int64())
		evm.StateDB.AddLog(&Log{
			Address:     c.Self,
			Topics:      topics,
			Data:        data,
			BlockNumber: evm.Context.BlockNumber.Uint64(),
		})
		return nil, false, nil
	}
}

func makeDup(n int) operation {
	return func(evm *EVM, c *Contract) ([]byte, bool, error) {
		c.Stack.Dup(n)
		return nil, false, nil
	}
}

func makeSwap(n int) operation {
	return func(evm *EVM, c *Contract) ([]byte, bool, error) {
		c.Stack.Swap(n)
		return nil, false, nil
	}
}

func makePush(size int) operation {
	return func(evm *EVM, c *Contract) ([]byte, bool, error) {
		start := c.pc + 1
		end := start + uint64(size)
		if end > uint64(len(c.Code)) {
			end = uint64(len(c.Code))
		}
		var b []byte
		if start < uint64(len(c.Code)) {
			b = c.Code[start:end]
		}
		c.Stack.Push(new(big.Int).SetBytes(common.RightPadBytes(b, size)))
		c.pc += uint64(size)
		return nil, false, nil
	}
}

func boolToBig(b bool) *big.Int {
	if b {
		return big.NewInt(1)
	}
	return new(big.Int)
}

func getData(data []byte, start, size *big.Int) []byte {
	dlen := big.NewInt(int64(len(data)))
	s := common.BigMin(start, dlen)
	e := common.BigMin(new(big.Int).Add(s, size), dlen)
	return common.RightPadBytes(data[s.Uint64():e.Uint64()], int(size.Uint64()))
}

func (c *Contract) validJumpdest(dest uint64) bool {
	return dest < uint64(len(c.Code)) && OpCode(c.Code[dest]) == JUMPDEST
}
