package vm

import (
	"math/big"

	"github.com/eth-classic/lightchain/common"
)

// Contract is the execution context of one CALL/CREATE frame: its code,
// input, remaining gas and the stack/memory/program counter driving it.
type Contract struct {
	Caller common.Address
	Self    common.Address
	Code   []byte
	Input  []byte
	Value  *big.Int
	Gas    uint64

	Stack  *Stack
	Memory *Memory
	pc     uint64

	ReturnData []byte
}

func NewContract(caller, self common.Address, value *big.Int, gas uint64, code, input []byte) *Contract {
	return &Contract{
		Caller: caller,
		Self:   self,
		Code:   code,
		Input:  input,
		Value:  value,
		Gas:    gas,
		Stack:  NewStack(),
		Memory: NewMemory(),
	}
}

func (c *Contract) GetOp(n uint64) OpCode {
	if n < uint64(len(c.Code)) {
		return OpCode(c.Code[n])
	}
	return STOP
}

func (c *Contract) useGas(amount uint64) bool {
	if c.Gas < amount {
		return false
	}
	c.Gas -= amount
	return true
}
