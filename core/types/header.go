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
	"math/big"

	"github.com/eth-classic/lightchain/common"
	"github.com/eth-classic/lightchain/crypto"
	"github.com/eth-classic/lightchain/rlp"
)

// Header is a block header: everything a peer needs to verify a block's
// consensus validity without its body.
type Header struct {
	ParentHash  common.Hash
	UncleHash   common.Hash
	Coinbase    common.Address
	Root        common.Hash // state root after this block's transactions
	TxHash      common.Hash // transactions root
	ReceiptHash common.Hash // receipts root
	Bloom       common.Bloom
	Difficulty  *big.Int
	Number      *big.Int
	GasLimit    *big.Int
	GasUsed     *big.Int
	Time        *big.Int
	Extra       []byte
	MixDigest   common.Hash
	Nonce       BlockNonce
}

// BlockNonce is the 8-byte proof-of-work nonce.
type BlockNonce [8]byte

func EncodeNonce(i uint64) BlockNonce {
	var n BlockNonce
	for k := 0; k < 8; k++ {
		n[k] = byte(i >> uint(56-8*k))
	}
	return n
}

func (n BlockNonce) Uint64() uint64 {
	var i uint64
	for k := 0; k < 8; k++ {
		i = i<<8 | uint64(n[k])
	}
	return i
}

// Hash is Keccak256 of the header's canonical RLP encoding, the value used
// to identify the block. The PoW's partial-hash input is HashNoNonce.
func (h *Header) Hash() common.Hash {
	b, err := rlp.EncodeToBytes(h)
	if err != nil {
		panic(err)
	}
	return crypto.Keccak256Hash(b)
}

// HashNoNonce is the Hash with the nonce and mix digest stripped, the
// partial hash hashimoto mixes with the nonce during verification.
func (h *Header) HashNoNonce() common.Hash {
	stripped := *h
	stripped.Nonce = BlockNonce{}
	stripped.MixDigest = common.Hash{}
	b, err := rlp.EncodeToBytes([]interface{}{
		stripped.ParentHash, stripped.UncleHash, stripped.Coinbase, stripped.Root,
		stripped.TxHash, stripped.ReceiptHash, stripped.Bloom, stripped.Difficulty,
		stripped.Number, stripped.GasLimit, stripped.GasUsed, stripped.Time, stripped.Extra,
	})
	if err != nil {
		panic(err)
	}
	return crypto.Keccak256Hash(b)
}

func CopyHeader(h *Header) *Header {
	cpy := *h
	if cpy.Difficulty = new(big.Int); h.Difficulty != nil {
		cpy.Difficulty.Set(h.Difficulty)
	}
	if cpy.Number = new(big.Int); h.Number != nil {
		cpy.Number.Set(h.Number)
	}
	if cpy.GasLimit = new(big.Int); h.GasLimit != nil {
		cpy.GasLimit.Set(h.GasLimit)
	}
	if cpy.GasUsed = new(big.Int); h.GasUsed != nil {
		cpy.GasUsed.Set(h.GasUsed)
	}
	if cpy.Time = new(big.Int); h.Time != nil {
		cpy.Time.Set(h.Time)
	}
	if len(h.Extra) > 0 {
		cpy.Extra = make([]byte, len(h.Extra))
		copy(cpy.Extra, h.Extra)
	}
	return &cpy
}

// CalcUncleHash computes the ommers_hash field: Keccak256(RLP(uncles)),
// with Keccak256(RLP([])) for the empty-uncles case every block above
// genesis without ommers shares.
func CalcUncleHash(uncles []*Header) common.Hash {
	if len(uncles) == 0 {
		return EmptyUncleHash
	}
	b, err := rlp.EncodeToBytes(uncles)
	if err != nil {
		panic(err)
	}
	return crypto.Keccak256Hash(b)
}

var EmptyUncleHash = func() common.Hash {
	b, err := rlp.EncodeToBytes([]*Header{})
	if err != nil {
		panic(err)
	}
	return crypto.Keccak256Hash(b)
}()
