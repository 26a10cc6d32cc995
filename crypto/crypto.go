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

package crypto

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	dcrecdsa "github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"golang.org/x/crypto/sha3"

	"github.com/eth-classic/lightchain/common"
)

func init() {
	common.Keccak256Bytes = Keccak256
}

// Keccak256 hashes the concatenation of data with legacy (pre-NIST) Keccak,
// the digest function used throughout the protocol for header hashes, trie
// node hashes and the DAG seed walk.
func Keccak256(data ...[]byte) []byte {
	d := sha3.NewLegacyKeccak256()
	for _, b := range data {
		d.Write(b)
	}
	return d.Sum(nil)
}

func Keccak256Hash(data ...[]byte) common.Hash {
	return common.BytesToHash(Keccak256(data...))
}

// Keccak512 backs the DAG's seed-expansion walk (§4.2), which by the ethash
// spec uses the 512-bit variant.
func Keccak512(data ...[]byte) []byte {
	d := sha3.NewLegacyKeccak512()
	for _, b := range data {
		d.Write(b)
	}
	return d.Sum(nil)
}

var secp256k1N = secp256k1.S256().N

// Sign produces a 65-byte [R || S || V] signature over a 32-byte digest
// using a secp256k1 private key, in the format consumed by the
// BasicSigner/ChainIdSigner schemes in core/types.
func Sign(digestHash []byte, prv *ecdsa.PrivateKey) ([]byte, error) {
	if len(digestHash) != 32 {
		return nil, fmt.Errorf("hash is required to be exactly 32 bytes (%d)", len(digestHash))
	}
	priv := secp256k1.PrivKeyFromBytes(prv.D.Bytes())
	sig, err := dcrecdsa.SignCompact(priv, digestHash, false)
	if err != nil {
		return nil, err
	}
	// SignCompact returns [recovery-byte || R || S]; the protocol wants
	// [R || S || recovery-byte].
	out := make([]byte, 65)
	copy(out[:64], sig[1:])
	out[64] = sig[0] - 27
	return out, nil
}

// Ecrecover recovers the uncompressed public key that produced sig over
// digestHash.
func Ecrecover(digestHash, sig []byte) ([]byte, error) {
	if len(sig) != 65 {
		return nil, errors.New("invalid signature length")
	}
	compact := make([]byte, 65)
	compact[0] = sig[64] + 27
	copy(compact[1:], sig[:64])
	pub, _, err := dcrecdsa.RecoverCompact(compact, digestHash)
	if err != nil {
		return nil, err
	}
	return pub.SerializeUncompressed(), nil
}

// SigToPub recovers the *ecdsa.PublicKey that produced sig over digestHash.
func SigToPub(digestHash, sig []byte) (*ecdsa.PublicKey, error) {
	b, err := Ecrecover(digestHash, sig)
	if err != nil {
		return nil, err
	}
	x, y := elliptic_Unmarshal(b)
	return &ecdsa.PublicKey{Curve: secp256k1.S256(), X: x, Y: y}, nil
}

func elliptic_Unmarshal(b []byte) (*big.Int, *big.Int) {
	byteLen := (secp256k1.S256().Params().BitSize + 7) / 8
	x := new(big.Int).SetBytes(b[1 : 1+byteLen])
	y := new(big.Int).SetBytes(b[1+byteLen:])
	return x, y
}

// PubkeyToAddress derives the 20-byte account address from an uncompressed
// public key: the low 20 bytes of Keccak256 of the 64-byte X||Y point.
func PubkeyToAddress(pub []byte) common.Address {
	if len(pub) == 65 {
		pub = pub[1:]
	}
	return common.BytesToAddress(Keccak256(pub)[12:])
}

// CreateAddress computes the deterministic address of a contract created by
// `from` at account nonce `nonce`: Keccak256(RLP([from, nonce]))[12:].
// rlpOf is supplied by callers (core/executor, core/vm) to avoid an import cycle with
// the rlp package, which in turn needs nothing from crypto.
func CreateAddress(from common.Address, nonce uint64, rlpOf func(common.Address, uint64) []byte) common.Address {
	return common.BytesToAddress(Keccak256(rlpOf(from, nonce))[12:])
}
