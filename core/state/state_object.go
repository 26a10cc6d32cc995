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

package state

import (
	"math/big"

	"github.com/eth-classic/lightchain/common"
)

// stateObject is one account's mutable view: balance, nonce, code and
// storage, plus the bookkeeping a StateDB needs to know whether it was
// touched this execution.
type stateObject struct {
	address common.Address

	balance  *big.Int
	nonce    uint64
	code     []byte
	codeHash common.Hash
	storage  map[common.Hash]common.Hash

	suicided bool
	deleted  bool
}

func newStateObject(addr common.Address) *stateObject {
	return &stateObject{
		address: addr,
		balance: new(big.Int),
		storage: make(map[common.Hash]common.Hash),
	}
}

func (o *stateObject) empty() bool {
	return o.nonce == 0 && o.balance.Sign() == 0 && len(o.code) == 0
}
