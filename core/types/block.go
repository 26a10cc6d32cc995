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

import "github.com/eth-classic/lightchain/common"

// Block pairs a header with the body a peer ships alongside it: the
// ordered transaction list and any ommer headers.
type Block struct {
	Header       *Header
	Transactions Transactions
	Uncles       []*Header
}

func NewBlock(header *Header, txs []*Transaction, uncles []*Header) *Block {
	return &Block{Header: CopyHeader(header), Transactions: txs, Uncles: uncles}
}

func (b *Block) Hash() common.Hash       { return b.Header.Hash() }
func (b *Block) NumberU64() uint64       { return b.Header.Number.Uint64() }
func (b *Block) ParentHash() common.Hash { return b.Header.ParentHash }
