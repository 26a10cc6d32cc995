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
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"

	"github.com/eth-classic/lightchain/common"
	"github.com/eth-classic/lightchain/crypto"
)

var ErrInvalidChainId = errors.New("invalid chain id for signer")

func isProtectedV(v *big.Int) bool {
	if v.BitLen() <= 8 {
		u := v.Uint64()
		return u != 27 && u != 28
	}
	return true
}

// normaliseV returns the Ethereum version of the V parameter (27 or 28),
// stripping the chain id encoded into a ChainIdSigner's V.
func normaliseV(s Signer, v *big.Int) byte {
	if cs, ok := s.(ChainIdSigner); ok {
		stdV := v.BitLen() <= 8 && (v.Uint64() == 27 || v.Uint64() == 28)
		if cs.chainId.BitLen() > 0 && !stdV {
			return byte((new(big.Int).Sub(v, cs.chainIdMul).Uint64()) - 35 + 27)
		}
	}
	return byte(v.Uint64())
}

// deriveChainId recovers the EIP-155 chain id from a transaction's V value,
// or nil if V encodes no chain id (the unprotected Global scheme).
func deriveChainId(v *big.Int) *big.Int {
	if v.BitLen() <= 8 {
		u := v.Uint64()
		if u == 27 || u == 28 {
			return nil
		}
	}
	d := new(big.Int).Sub(v, big.NewInt(35))
	return d.Div(d, big.NewInt(2))
}

type sigCache struct {
	signer Signer
	from   common.Address
}

// Sender recovers the sending address from tx's signature, under the
// scheme signer describes. The result is cached on the transaction keyed
// by the signer, so repeated calls with the same signer skip recovery.
func Sender(signer Signer, tx *Transaction) (common.Address, error) {
	if sc := tx.from.Load(); sc != nil {
		cached := sc.(sigCache)
		if cached.signer.Equal(signer) {
			return cached.from, nil
		}
	}
	pubkey, err := signer.PublicKey(tx)
	if err != nil {
		return common.Address{}, err
	}
	addr := common.BytesToAddress(crypto.Keccak256(pubkey[1:])[12:])
	tx.from.Store(sigCache{signer: signer, from: addr})
	return addr, nil
}

func SignatureValues(signer Signer, tx *Transaction) (v byte, r, s *big.Int) {
	return normaliseV(signer, tx.data.V), new(big.Int).Set(tx.data.R), new(big.Int).Set(tx.data.S)
}

// Signer abstracts the two historical signature schemes so the validator
// and executor never need to branch on era directly; core/era.Patch picks
// one per block number.
type Signer interface {
	Hash(tx *Transaction) common.Hash
	PublicKey(tx *Transaction) ([]byte, error)
	SignECDSA(tx *Transaction, prv *ecdsa.PrivateKey) (*Transaction, error)
	WithSignature(tx *Transaction, sig []byte) (*Transaction, error)
	Equal(Signer) bool
}

// ChainIdSigner implements the "Classic" EIP-155-style replay-protected
// scheme: V encodes 35+2*chainId+recoveryBit instead of the bare 27/28.
type ChainIdSigner struct {
	BasicSigner
	chainId, chainIdMul *big.Int
}

func NewChainIdSigner(chainId *big.Int) ChainIdSigner {
	return ChainIdSigner{
		chainId:    chainId,
		chainIdMul: new(big.Int).Mul(chainId, big.NewInt(2)),
	}
}

func (s ChainIdSigner) Equal(o Signer) bool {
	other, ok := o.(ChainIdSigner)
	if !ok || other.chainId == nil || s.chainId == nil {
		return false
	}
	return other.chainId.Cmp(s.chainId) == 0
}

func (s ChainIdSigner) SignECDSA(tx *Transaction, prv *ecdsa.PrivateKey) (*Transaction, error) {
	h := s.Hash(tx)
	sig, err := crypto.Sign(h[:], prv)
	if err != nil {
		return nil, err
	}
	return s.WithSignature(tx, sig)
}

func (s ChainIdSigner) PublicKey(tx *Transaction) ([]byte, error) {
	if !tx.Protected() {
		return (BasicSigner{}).PublicKey(tx)
	}
	if tx.ChainId() == nil || s.chainId == nil || tx.ChainId().Cmp(s.chainId) != 0 {
		return nil, ErrInvalidChainId
	}
	V := normaliseV(s, tx.data.V)
	if !validateSignatureValues(V, tx.data.R, tx.data.S) {
		return nil, ErrInvalidSig
	}
	R, S := tx.data.R.Bytes(), tx.data.S.Bytes()
	sig := make([]byte, 65)
	copy(sig[32-len(R):32], R)
	copy(sig[64-len(S):64], S)
	sig[64] = V - 27

	hash := s.Hash(tx)
	pub, err := crypto.Ecrecover(hash[:], sig)
	if err != nil {
		return nil, err
	}
	if len(pub) == 0 || pub[0] != 4 {
		return nil, errors.New("invalid public key")
	}
	return pub, nil
}

func (s ChainIdSigner) WithSignature(tx *Transaction, sig []byte) (*Transaction, error) {
	if len(sig) != 65 {
		panic(fmt.Sprintf("wrong size for signature: got %d, want 65", len(sig)))
	}
	cpy := &Transaction{data: tx.data}
	cpy.data.R = new(big.Int).SetBytes(sig[:32])
	cpy.data.S = new(big.Int).SetBytes(sig[32:64])
	if s.chainId.BitLen() > 0 {
		v := big.NewInt(int64(sig[64]) + 35)
		v.Add(v, s.chainIdMul)
		cpy.data.V = v
	} else {
		cpy.data.V = new(big.Int).SetBytes([]byte{sig[64] + 27})
	}
	return cpy, nil
}

// Hash returns the digest the sender signs: the transaction body plus the
// chain id, padded with two empty RLP items as EIP-155 specifies.
func (s ChainIdSigner) Hash(tx *Transaction) common.Hash {
	return rlpHash([]interface{}{
		tx.data.AccountNonce, tx.data.Price, tx.data.GasLimit,
		recipientBytes(tx.data.Recipient), tx.data.Amount, tx.data.Payload,
		s.chainId, uint(0), uint(0),
	})
}

// BasicSigner implements the original, unprotected Frontier/Homestead
// scheme: V is always 27 or 28, with no chain-id commitment.
type BasicSigner struct{}

func (s BasicSigner) Equal(o Signer) bool {
	_, ok := o.(BasicSigner)
	return ok
}

func (s BasicSigner) WithSignature(tx *Transaction, sig []byte) (*Transaction, error) {
	if len(sig) != 65 {
		panic(fmt.Sprintf("wrong size for signature: got %d, want 65", len(sig)))
	}
	cpy := &Transaction{data: tx.data}
	cpy.data.R = new(big.Int).SetBytes(sig[:32])
	cpy.data.S = new(big.Int).SetBytes(sig[32:64])
	cpy.data.V = new(big.Int).SetBytes([]byte{sig[64] + 27})
	return cpy, nil
}

func (s BasicSigner) SignECDSA(tx *Transaction, prv *ecdsa.PrivateKey) (*Transaction, error) {
	h := s.Hash(tx)
	sig, err := crypto.Sign(h[:], prv)
	if err != nil {
		return nil, err
	}
	return s.WithSignature(tx, sig)
}

func (s BasicSigner) Hash(tx *Transaction) common.Hash {
	return rlpHash([]interface{}{
		tx.data.AccountNonce, tx.data.Price, tx.data.GasLimit,
		recipientBytes(tx.data.Recipient), tx.data.Amount, tx.data.Payload,
	})
}

func (s BasicSigner) PublicKey(tx *Transaction) ([]byte, error) {
	if tx.data.V.BitLen() > 8 {
		return nil, ErrInvalidSig
	}
	V := byte(tx.data.V.Uint64())
	if !validateSignatureValues(V, tx.data.R, tx.data.S) {
		return nil, ErrInvalidSig
	}
	r, sv := tx.data.R.Bytes(), tx.data.S.Bytes()
	sig := make([]byte, 65)
	copy(sig[32-len(r):32], r)
	copy(sig[64-len(sv):64], sv)
	sig[64] = V - 27

	hash := s.Hash(tx)
	pub, err := crypto.Ecrecover(hash[:], sig)
	if err != nil {
		return nil, err
	}
	if len(pub) == 0 || pub[0] != 4 {
		return nil, errors.New("invalid public key")
	}
	return pub, nil
}

var secp256k1HalfN = new(big.Int).Rsh(secp256k1N(), 1)

func secp256k1N() *big.Int {
	n, _ := new(big.Int).SetString("fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141", 16)
	return n
}

// validateSignatureValues rejects malleable signatures (S above half the
// curve order) and out-of-range V/R/S, as the yellow paper requires.
func validateSignatureValues(v byte, r, s *big.Int) bool {
	if r.Sign() <= 0 || s.Sign() <= 0 {
		return false
	}
	if r.Cmp(secp256k1N()) >= 0 || s.Cmp(secp256k1N()) >= 0 {
		return false
	}
	if s.Cmp(secp256k1HalfN) > 0 {
		return false
	}
	return v == 27 || v == 28
}
