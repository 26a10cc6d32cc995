// Copyright 2014 The go-ethereum Authors
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
	"bytes"
	"fmt"
	"io"
	"math/big"

	"github.com/eth-classic/lightchain/common"
	"github.com/eth-classic/lightchain/core/vm"
	"github.com/eth-classic/lightchain/rlp"
)

var (
	receiptStatusFailedRLP     = []byte{}
	receiptStatusSuccessfulRLP = []byte{0x01}
)

type ReceiptStatus byte

const (
	TxFailure       ReceiptStatus = 0
	TxSuccess       ReceiptStatus = 1
	TxStatusUnknown ReceiptStatus = 0xFF
)

// Receipt is the outcome of executing one transaction: the post-state
// (legacy) or status byte, cumulative gas, the logs bloom and the logs
// themselves, plus bookkeeping fields not committed to the receipts root.
type Receipt struct {
	PostState         []byte
	CumulativeGasUsed *big.Int
	Bloom             common.Bloom
	Logs              vm.Logs

	TxHash          common.Hash
	ContractAddress common.Address
	GasUsed         *big.Int
	Status          ReceiptStatus
}

func NewReceipt(root []byte, cumulativeGasUsed *big.Int) *Receipt {
	rootCopy := make([]byte, len(root))
	copy(rootCopy, root)
	return &Receipt{PostState: rootCopy, CumulativeGasUsed: new(big.Int).Set(cumulativeGasUsed), Status: TxStatusUnknown}
}

// EncodeRLP flattens the consensus fields of a receipt — the ones that feed
// the receipts_root — into an RLP stream.
func (r *Receipt) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, []interface{}{r.statusEncoding(), r.CumulativeGasUsed, r.Bloom, r.Logs})
}

func (r *Receipt) DecodeRLP(s *rlp.Stream) error {
	var receipt struct {
		PostStateOrStatus []byte
		CumulativeGasUsed *big.Int
		Bloom             common.Bloom
		Logs              vm.Logs
	}
	if err := s.Decode(&receipt); err != nil {
		return err
	}
	if err := r.setStatus(receipt.PostStateOrStatus); err != nil {
		return err
	}
	r.CumulativeGasUsed, r.Bloom, r.Logs = receipt.CumulativeGasUsed, receipt.Bloom, receipt.Logs
	return nil
}

func (r *Receipt) statusEncoding() []byte {
	if len(r.PostState) == 0 {
		if r.Status == TxFailure {
			return receiptStatusFailedRLP
		}
		return receiptStatusSuccessfulRLP
	}
	return r.PostState
}

func (r *Receipt) setStatus(postStateOrStatus []byte) error {
	switch {
	case bytes.Equal(postStateOrStatus, receiptStatusSuccessfulRLP):
		r.Status = TxSuccess
	case bytes.Equal(postStateOrStatus, receiptStatusFailedRLP):
		r.Status = TxFailure
	case len(postStateOrStatus) == common.HashLength:
		r.PostState = postStateOrStatus
	default:
		return fmt.Errorf("invalid receipt status %x", postStateOrStatus)
	}
	return nil
}

func (r *Receipt) String() string {
	return fmt.Sprintf("receipt{med=%x cgas=%v bloom=%x logs=%v}", r.PostState, r.CumulativeGasUsed, r.Bloom, r.Logs)
}

// ReceiptForStorage flattens and parses every field of a Receipt, including
// the bookkeeping ones a bare Receipt's EncodeRLP omits.
type ReceiptForStorage Receipt

type storedReceiptRLP struct {
	PostStateOrStatus []byte
	CumulativeGasUsed *big.Int
	Bloom             common.Bloom
	TxHash            common.Hash
	ContractAddress   common.Address
	Logs              []*vm.LogForStorage
	GasUsed           *big.Int
}

func (r *ReceiptForStorage) EncodeRLP(w io.Writer) error {
	logs := make([]*vm.LogForStorage, len(r.Logs))
	for i, log := range r.Logs {
		logs[i] = (*vm.LogForStorage)(log)
	}
	return rlp.Encode(w, &storedReceiptRLP{
		PostStateOrStatus: (*Receipt)(r).statusEncoding(),
		CumulativeGasUsed: r.CumulativeGasUsed,
		Logs:              logs,
		Bloom:             r.Bloom,
		TxHash:            r.TxHash,
		ContractAddress:   r.ContractAddress,
		GasUsed:           r.GasUsed,
	})
}

func (r *ReceiptForStorage) DecodeRLP(s *rlp.Stream) error {
	var receipt storedReceiptRLP
	if err := s.Decode(&receipt); err != nil {
		return err
	}
	r.CumulativeGasUsed = receipt.CumulativeGasUsed
	r.Bloom = receipt.Bloom
	r.TxHash = receipt.TxHash
	r.ContractAddress = receipt.ContractAddress
	r.GasUsed = receipt.GasUsed
	r.Logs = make(vm.Logs, len(receipt.Logs))
	for i, log := range receipt.Logs {
		r.Logs[i] = (*vm.Log)(log)
	}
	return (*Receipt)(r).setStatus(receipt.PostStateOrStatus)
}

// Receipts implements trie.DerivableList so DeriveSha can build the
// receipts root.
type Receipts []*Receipt

func (r Receipts) Len() int { return len(r) }

func (r Receipts) GetRlp(i int) []byte {
	b, err := rlp.EncodeToBytes(r[i])
	if err != nil {
		panic(err)
	}
	return b
}
