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

// Package vm implements a reduced Ethereum Virtual Machine: the subset of
// opcodes this validator's Stateful Executor needs to re-execute a
// transaction and reproduce its gas usage, logs and post-state effects.
package vm

import (
	"github.com/eth-classic/lightchain/common"
)

// Log is one LOG0-LOG4 event emitted during execution; it feeds both the
// receipt's bloom filter and the block's overall logs bloom.
type Log struct {
	Address     common.Address
	Topics      []common.Hash
	Data        []byte
	BlockNumber uint64
	TxHash      common.Hash
	TxIndex     uint
	BlockHash   common.Hash
	Index       uint
}

type Logs []*Log

// LogForStorage is the Log type used by the storage receipt encoding; it
// has exactly the same fields as Log.
type LogForStorage Log

func (l *Log) bloomEntries() [][]byte {
	entries := [][]byte{l.Address.Bytes()}
	for _, t := range l.Topics {
		entries = append(entries, t.Bytes())
	}
	return entries
}

// CreateBloom ORs together the bloom contributions of every log in a
// receipt's set, the bloom a receipt and a header both carry.
func CreateBloom(logsSets ...Logs) common.Bloom {
	var bin common.Bloom
	for _, logs := range logsSets {
		for _, log := range logs {
			for _, b := range log.bloomEntries() {
				bin.Add(b)
			}
		}
	}
	return bin
}
