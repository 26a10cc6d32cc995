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

// Package trie implements a Merkle-Patricia trie over an arbitrary
// key-value backing store, used for the account trie (core/state) and for
// deriving the transactions/receipts roots (DeriveSha below). Keys are
// hex-prefix-encoded nibble paths through branch (fullNode), extension and
// leaf (shortNode) nodes, the same node shapes and embed-or-hash child
// references the protocol itself uses, so roots computed here are the same
// roots a real client would compute over the same key/value set.
package trie

import (
	"github.com/eth-classic/lightchain/common"
	"github.com/eth-classic/lightchain/crypto"
	"github.com/eth-classic/lightchain/rlp"
)

// Database is the minimal key-value contract the trie needs from its
// backing store; core/state.Database satisfies it directly. This trie
// keeps its whole working set in memory and never resolves a node lazily
// from db — db is here so callers (and a future persistent backend) have
// somewhere to put nodes, not because Get/Put/Has drive traversal today.
type Database interface {
	Get(key []byte) ([]byte, error)
	Put(key, value []byte) error
	Has(key []byte) (bool, error)
}

// node is one of: nil (empty subtree), valueNode (a stored value),
// *shortNode (a leaf or extension, hex-prefix-compacted Key + Val) or
// *fullNode (a 16-way branch plus a value slot at index 16).
type node interface{}

type (
	valueNode []byte

	shortNode struct {
		Key []byte // nibbles; a leaf's Key ends with the 16 terminator (see hasTerm)
		Val node
	}

	fullNode struct {
		Children [17]node
	}
)

// Trie is keyed by raw, un-hashed bytes: DeriveSha below keys by the plain
// RLP encoding of an index, matching the transactions/receipts trie of the
// real protocol. core/state hashes account addresses itself before calling
// Update/Get/Delete (see statedb.go), the "secure trie" convention that
// keeps the account trie balanced regardless of how addresses are chosen.
type Trie struct {
	db   Database
	root node
}

func New(db Database) *Trie {
	return &Trie{db: db}
}

func (t *Trie) Update(key, value []byte) {
	k := keybytesToHex(key)
	_, n, err := t.insert(t.root, nil, k, valueNode(value))
	if err != nil {
		panic(err) // insert never fails against an in-memory node set
	}
	t.root = n
}

func (t *Trie) Get(key []byte) []byte {
	k := keybytesToHex(key)
	n := t.root
	for len(k) > 0 {
		switch cur := n.(type) {
		case nil:
			return nil
		case valueNode:
			return nil // value reached before the key was consumed: not found
		case *shortNode:
			if len(k) < len(cur.Key) || !hexEqual(cur.Key, k[:len(cur.Key)]) {
				return nil
			}
			k = k[len(cur.Key):]
			n = cur.Val
		case *fullNode:
			n = cur.Children[k[0]]
			k = k[1:]
		}
	}
	if v, ok := n.(valueNode); ok {
		return []byte(v)
	}
	return nil
}

func (t *Trie) Delete(key []byte) {
	k := keybytesToHex(key)
	_, n, err := t.delete(t.root, nil, k)
	if err != nil {
		panic(err)
	}
	t.root = n
}

// insert recursively places value at key under n, returning whether
// anything changed and the (possibly new) node to put in its place.
// Mirrors the teacher's trie.Trie.insert/delete shape referenced from
// trie/proof_test.go's shortNode/fullNode/get helper.
func (t *Trie) insert(n node, prefix, key []byte, value node) (bool, node, error) {
	if len(key) == 0 {
		if v, ok := n.(valueNode); ok {
			return !bytesEqual(v, value.(valueNode)), value, nil
		}
		return true, value, nil
	}

	switch n := n.(type) {
	case nil:
		return true, &shortNode{Key: append([]byte(nil), key...), Val: value}, nil

	case *shortNode:
		matchlen := prefixLen(key, n.Key)
		if matchlen == len(n.Key) {
			dirty, nn, err := t.insert(n.Val, append(prefix, key[:matchlen]...), key[matchlen:], value)
			if !dirty || err != nil {
				return false, n, err
			}
			return true, &shortNode{Key: n.Key, Val: nn}, nil
		}
		branch := &fullNode{}
		_, branch.Children[n.Key[matchlen]], _ = t.insert(nil, nil, n.Key[matchlen+1:], n.Val)
		_, branch.Children[key[matchlen]], _ = t.insert(nil, nil, key[matchlen+1:], value)
		if matchlen == 0 {
			return true, branch, nil
		}
		return true, &shortNode{Key: key[:matchlen], Val: branch}, nil

	case *fullNode:
		dirty, nn, err := t.insert(n.Children[key[0]], append(prefix, key[0]), key[1:], value)
		if !dirty || err != nil {
			return false, n, err
		}
		n.Children[key[0]] = nn
		return true, n, nil

	default:
		return true, &shortNode{Key: append([]byte(nil), key...), Val: value}, nil
	}
}

func (t *Trie) delete(n node, prefix, key []byte) (bool, node, error) {
	switch n := n.(type) {
	case nil:
		return false, nil, nil

	case valueNode:
		return true, nil, nil

	case *shortNode:
		matchlen := prefixLen(key, n.Key)
		if matchlen < len(n.Key) {
			return false, n, nil // key not present
		}
		if matchlen == len(key) {
			return true, nil, nil
		}
		dirty, child, err := t.delete(n.Val, append(prefix, key[:len(n.Key)]...), key[len(n.Key):])
		if !dirty || err != nil {
			return false, n, err
		}
		switch child := child.(type) {
		case nil:
			return true, nil, nil
		case *shortNode:
			// merge the two compacted paths into one
			return true, &shortNode{Key: append(append([]byte(nil), n.Key...), child.Key...), Val: child.Val}, nil
		default:
			return true, &shortNode{Key: n.Key, Val: child}, nil
		}

	case *fullNode:
		if len(key) == 0 {
			if n.Children[16] == nil {
				return false, n, nil
			}
			n.Children[16] = nil
		} else {
			dirty, nn, err := t.delete(n.Children[key[0]], append(prefix, key[0]), key[1:])
			if !dirty || err != nil {
				return false, n, err
			}
			n.Children[key[0]] = nn
		}

		pos, count := -1, 0
		for i, child := range n.Children {
			if child != nil {
				count++
				pos = i
			}
		}
		switch count {
		case 0:
			return true, nil, nil
		case 1:
			if pos != 16 {
				if short, ok := n.Children[pos].(*shortNode); ok {
					k := append([]byte{byte(pos)}, short.Key...)
					return true, &shortNode{Key: k, Val: short.Val}, nil
				}
				return true, &shortNode{Key: []byte{byte(pos)}, Val: n.Children[pos]}, nil
			}
			return true, &shortNode{Key: []byte{16}, Val: n.Children[16]}, nil
		}
		return true, n, nil

	default:
		panic("trie: delete against an unresolvable node")
	}
}

// Hash commits the trie to its 32-byte root the same way the protocol
// does: RLP-encode the root node (embedding any child whose own encoding
// is under 32 bytes, hashing the rest) and Keccak256 the result. An empty
// trie's root node encodes as the empty RLP string, giving EmptyRoot.
func (t *Trie) Hash() common.Hash {
	enc, err := encodeNode(t.root)
	if err != nil {
		panic(err)
	}
	return crypto.Keccak256Hash(enc)
}

// encodeNode returns n's own RLP encoding (a complete item: string or
// list), the form used both to hash n and, when under 32 bytes, to embed
// n directly inside its parent instead of referencing it by hash.
func encodeNode(n node) ([]byte, error) {
	switch n := n.(type) {
	case nil:
		return rlp.EncodeToBytes([]byte{})
	case valueNode:
		return rlp.EncodeToBytes([]byte(n))
	case *shortNode:
		return rlp.EncodeToBytes([]interface{}{
			hexToCompact(n.Key),
			shortValRef(n.Val),
		})
	case *fullNode:
		list := make([]interface{}, 17)
		for i := 0; i < 16; i++ {
			list[i] = childRef(n.Children[i])
		}
		if v, ok := n.Children[16].(valueNode); ok {
			list[16] = []byte(v)
		} else {
			list[16] = []byte{}
		}
		return rlp.EncodeToBytes(list)
	default:
		panic("trie: encode of unresolvable node")
	}
}

// childRef is how a *fullNode references one of its 16 branch slots: the
// child's raw encoding if that's under 32 bytes, else the encoding's hash.
func childRef(n node) interface{} {
	if n == nil {
		return []byte{}
	}
	enc, err := encodeNode(n)
	if err != nil {
		panic(err)
	}
	if len(enc) < 32 {
		return rlp.RawValue(enc)
	}
	return crypto.Keccak256(enc)
}

// shortValRef is the same embed-or-hash choice for a shortNode's Val,
// except a leaf's Val is a plain stored value, encoded as itself rather
// than run through the node embed/hash rule.
func shortValRef(val node) interface{} {
	if v, ok := val.(valueNode); ok {
		return []byte(v)
	}
	return childRef(val)
}

// EmptyRoot is the hash of a trie with no entries, Keccak256(RLP("")) —
// the well-known empty-trie-root constant, distinct from
// types.EmptyUncleHash (Keccak256(RLP([])), the empty-list hash).
var EmptyRoot = (&Trie{}).Hash()

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func hexEqual(a, b []byte) bool { return bytesEqual(a, b) }

// prefixLen returns the length of the common prefix of a and b.
func prefixLen(a, b []byte) int {
	i := 0
	for i < len(a) && i < len(b) && a[i] == b[i] {
		i++
	}
	return i
}
