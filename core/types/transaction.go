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

package types

import (
	"errors"
	"io"
	"math/big"
	"sync/atomic"

	"github.com/eth-classic/lightchain/common"
	"github.com/eth-classic/lightchain/crypto"
	"github.com/eth-classic/lightchain/rlp"
)

var ErrInvalidSig = errors.New("invalid transaction v, r, s values")

type txdata struct {
	AccountNonce uint64
	Price        *big.Int
	GasLimit     *big.Int
	Recipient    *common.Address // nil for contract creation
	Amount       *big.Int
	Payload      []byte

	V *big.Int
	R *big.Int
	S *big.Int
}

// Transaction is a signed account-model transaction: a value transfer or
// contract call/creation, executed exactly once by the Stateful Executor.
type Transaction struct {
	data txdata

	// from caches the signer that last recovered the sender, and the
	// recovered address, so repeated Sender() calls against the same
	// signer skip the ECDSA recovery.
	from atomic.Value
}

func NewTransaction(nonce uint64, to common.Address, amount, gasLimit, gasPrice *big.Int, data []byte) *Transaction {
	return newTransaction(nonce, &to, amount, gasLimit, gasPrice, data)
}

func NewContractCreation(nonce uint64, amount, gasLimit, gasPrice *big.Int, data []byte) *Transaction {
	return newTransaction(nonce, nil, amount, gasLimit, gasPrice, data)
}

func newTransaction(nonce uint64, to *common.Address, amount, gasLimit, gasPrice *big.Int, data []byte) *Transaction {
	d := txdata{
		AccountNonce: nonce,
		Recipient:    to,
		Payload:      data,
		Amount:       new(big.Int),
		GasLimit:     new(big.Int),
		Price:        new(big.Int),
		V:            new(big.Int),
		R:            new(big.Int),
		S:            new(big.Int),
	}
	if amount != nil {
		d.Amount.Set(amount)
	}
	if gasLimit != nil {
		d.GasLimit.Set(gasLimit)
	}
	if gasPrice != nil {
		d.Price.Set(gasPrice)
	}
	return &Transaction{data: d}
}

func (tx *Transaction) Nonce() uint64          { return tx.data.AccountNonce }
func (tx *Transaction) GasPrice() *big.Int     { return new(big.Int).Set(tx.data.Price) }
func (tx *Transaction) Gas() *big.Int          { return new(big.Int).Set(tx.data.GasLimit) }
func (tx *Transaction) Value() *big.Int        { return new(big.Int).Set(tx.data.Amount) }
func (tx *Transaction) Data() []byte           { return tx.data.Payload }
func (tx *Transaction) CreatesContract() bool  { return tx.data.Recipient == nil }

func (tx *Transaction) To() *common.Address {
	if tx.data.Recipient == nil {
		return nil
	}
	cpy := *tx.data.Recipient
	return &cpy
}

// ChainId returns the EIP-155 replay-protection chain id encoded in V, or
// nil if the transaction was signed with the unprotected Global scheme.
func (tx *Transaction) ChainId() *big.Int {
	return deriveChainId(tx.data.V)
}

// Protected reports whether the signature commits to a chain id (signed by
// a ChainIdSigner) rather than the bare Frontier/Homestead scheme.
func (tx *Transaction) Protected() bool {
	return isProtectedV(tx.data.V)
}

func (tx *Transaction) EncodeRLP(w io.Writer) error {
	b, err := rlp.EncodeToBytes([]interface{}{
		tx.data.AccountNonce, tx.data.Price, tx.data.GasLimit,
		recipientBytes(tx.data.Recipient), tx.data.Amount, tx.data.Payload,
		tx.data.V, tx.data.R, tx.data.S,
	})
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

func recipientBytes(a *common.Address) []byte {
	if a == nil {
		return nil
	}
	return a.Bytes()
}

// rlpHash returns Keccak256 of the canonical RLP encoding of val, the
// primitive every signature scheme's Hash() builds on.
func rlpHash(val interface{}) common.Hash {
	b, err := rlp.EncodeToBytes(val)
	if err != nil {
		panic(err)
	}
	return crypto.Keccak256Hash(b)
}

type Transactions []*Transaction

func (s Transactions) Len() int { return len(s) }
func (s Transactions) GetRlp(i int) []byte {
	b, err := rlp.EncodeToBytes(s[i])
	if err != nil {
		panic(err)
	}
	return b
}
