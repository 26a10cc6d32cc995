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

// Package common holds the fixed-size value types shared across the
// validation pipeline: addresses, hashes and bloom filters.
package common

import (
	"encoding/hex"
	"fmt"
	"math/big"
)

const (
	HashLength    = 32
	AddressLength = 20
	BloomLength   = 256
)

type Hash [HashLength]byte

func BytesToHash(b []byte) Hash {
	var h Hash
	h.SetBytes(b)
	return h
}

func HexToHash(s string) Hash { return BytesToHash(FromHex(s)) }

func BigToHash(b *big.Int) Hash { return BytesToHash(b.Bytes()) }

func (h *Hash) SetBytes(b []byte) {
	if len(b) > len(h) {
		b = b[len(b)-HashLength:]
	}
	copy(h[HashLength-len(b):], b)
}

func (h Hash) Bytes() []byte   { return h[:] }
func (h Hash) Big() *big.Int   { return new(big.Int).SetBytes(h[:]) }
func (h Hash) Hex() string     { return "0x" + hex.EncodeToString(h[:]) }
func (h Hash) String() string  { return h.Hex() }
func (h Hash) IsZero() bool    { return h == Hash{} }

type Address [AddressLength]byte

func BytesToAddress(b []byte) Address {
	var a Address
	a.SetBytes(b)
	return a
}

func HexToAddress(s string) Address { return BytesToAddress(FromHex(s)) }

func BigToAddress(b *big.Int) Address { return BytesToAddress(b.Bytes()) }

func (a *Address) SetBytes(b []byte) {
	if len(b) > len(a) {
		b = b[len(b)-AddressLength:]
	}
	copy(a[AddressLength-len(b):], b)
}

func (a Address) Bytes() []byte  { return a[:] }
func (a Address) Hex() string    { return "0x" + hex.EncodeToString(a[:]) }
func (a Address) String() string { return a.Hex() }
func (a Address) IsZero() bool   { return a == Address{} }

// Bloom is a 2048-bit bloom filter for the logs emitted by a block.
type Bloom [BloomLength]byte

func BytesToBloom(b []byte) Bloom {
	var bl Bloom
	bl.SetBytes(b)
	return bl
}

func (b *Bloom) SetBytes(d []byte) {
	if len(d) > len(b) {
		panic(fmt.Sprintf("bloom bytes too big: %d %d", len(d), len(b)))
	}
	copy(b[BloomLength-len(d):], d)
}

func (b *Bloom) Add(d []byte) {
	h := Keccak256Bytes(d)
	for i := 0; i < 6; i += 2 {
		bitIdx := 2048 - 1 - (uint(h[i+1])+uint(h[i])<<8)&2047
		b[bitIdx/8] |= 1 << (bitIdx % 8)
	}
}

func (b Bloom) Test(d []byte) bool {
	var o Bloom
	o.Add(d)
	for i := range b {
		if b[i]&o[i] != o[i] {
			return false
		}
	}
	return true
}

func (b Bloom) Bytes() []byte { return b[:] }

// Keccak256Bytes is assigned by the crypto package at init time, avoiding an
// import cycle between common and crypto (crypto depends on common for
// Address/Hash conversions).
var Keccak256Bytes = func(data []byte) []byte {
	panic("common.Keccak256Bytes not wired: import the crypto package")
}

func FromHex(s string) []byte {
	if len(s) >= 2 && (s[0:2] == "0x" || s[0:2] == "0X") {
		s = s[2:]
	}
	if len(s)%2 == 1 {
		s = "0" + s
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil
	}
	return b
}

func ToHex(b []byte) string { return "0x" + hex.EncodeToString(b) }

func LeftPadBytes(s []byte, l int) []byte {
	if l <= len(s) {
		return s
	}
	p := make([]byte, l)
	copy(p[l-len(s):], s)
	return p
}

func RightPadBytes(s []byte, l int) []byte {
	if l <= len(s) {
		return s
	}
	p := make([]byte, l)
	copy(p, s)
	return p
}

var (
	Big0  = big.NewInt(0)
	Big1  = big.NewInt(1)
	Big2  = big.NewInt(2)
	Big8  = big.NewInt(8)
	Big32 = big.NewInt(32)

	tt256    = BigPow(2, 256)
	tt256m1  = new(big.Int).Sub(tt256, Big1)
	tt255    = BigPow(2, 255)
)

func BigPow(a, b int64) *big.Int {
	r := big.NewInt(a)
	return r.Exp(r, big.NewInt(b), nil)
}

func BigMin(x, y *big.Int) *big.Int {
	if x.Cmp(y) > 0 {
		return y
	}
	return x
}

func BigMax(x, y *big.Int) *big.Int {
	if x.Cmp(y) < 0 {
		return y
	}
	return x
}

// U256 wraps v around the 256-bit unsigned boundary, the way EVM words do.
func U256(v *big.Int) *big.Int {
	return new(big.Int).And(v, tt256m1)
}

// S256 interprets v as a signed 256-bit two's-complement integer.
func S256(v *big.Int) *big.Int {
	if v.Cmp(tt255) < 0 {
		return v
	}
	return new(big.Int).Sub(v, tt256)
}
