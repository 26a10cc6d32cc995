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

// Package state implements the account database the Stateful Executor
// runs transactions against: a Merkle-Patricia account trie backed by an
// in-memory, append-only key-value store.
package state

import (
	"errors"
	"math/big"

	"github.com/syndtr/goleveldb/leveldb/memdb"

	"github.com/eth-classic/lightchain/common"
	"github.com/eth-classic/lightchain/core/vm"
	"github.com/eth-classic/lightchain/crypto"
	"github.com/eth-classic/lightchain/rlp"
	"github.com/eth-classic/lightchain/trie"
)

// Database is the append-only backing store for the account trie. It
// wraps goleveldb's in-memory skiplist table (memdb), the data structure
// the teacher uses on disk for the real node; here it stands in for
// persistence, which is out of scope for a validator that never restarts
// mid-chain.
type Database struct {
	db *memdb.DB
}

func NewDatabase() *Database { return &Database{db: memdb.New(nil, 0)} }

func (d *Database) Get(key []byte) ([]byte, error) {
	v, err := d.db.Get(key)
	if err == memdb.ErrNotFound {
		return nil, nil
	}
	return v, err
}

func (d *Database) Put(key, value []byte) error { return d.db.Put(key, value) }

func (d *Database) Has(key []byte) (bool, error) { return d.db.Contains(key), nil }

// StateDB is the account-model state view the VM and the rest of the
// Stateful Executor mutate. A StateDB is a throwaway, copy-on-write
// session: callers discard one on any execution failure simply by never
// committing it (§5 — no explicit rollback is needed).
type StateDB struct {
	db      *Database
	trie    *trie.Trie
	objects map[common.Address]*stateObject
	logs    []*vm.Log
	refund  *big.Int

	journal []journalEntry
}

// journalEntry is one Snapshot's worth of undo state: a clone of every live
// account plus the refund counter and log length at the time it was taken.
type journalEntry struct {
	objects map[common.Address]*stateObject
	refund  *big.Int
	logsLen int
}

func New(db *Database) *StateDB {
	return &StateDB{
		db:      db,
		trie:    trie.New(db),
		objects: make(map[common.Address]*stateObject),
		refund:  new(big.Int),
	}
}

// Copy returns an independent session sharing the same committed trie and
// backing Database, with its own clone of every live account; changes to
// the copy's accounts leave s untouched.
func (s *StateDB) Copy() *StateDB {
	return &StateDB{
		db:      s.db,
		trie:    s.trie,
		objects: cloneObjects(s.objects),
		refund:  new(big.Int),
	}
}

func cloneObjects(src map[common.Address]*stateObject) map[common.Address]*stateObject {
	dst := make(map[common.Address]*stateObject, len(src))
	for addr, obj := range src {
		o := *obj
		o.balance = new(big.Int).Set(obj.balance)
		o.storage = make(map[common.Hash]common.Hash, len(obj.storage))
		for k, v := range obj.storage {
			o.storage[k] = v
		}
		dst[addr] = &o
	}
	return dst
}

// Snapshot records the live account set, refund counter and log length so a
// later CALL/CREATE frame that fails can be unwound without disturbing the
// caller's state. Returns an id for RevertToSnapshot.
func (s *StateDB) Snapshot() int {
	s.journal = append(s.journal, journalEntry{
		objects: cloneObjects(s.objects),
		refund:  new(big.Int).Set(s.refund),
		logsLen: len(s.logs),
	})
	return len(s.journal) - 1
}

// RevertToSnapshot restores the account set, refund counter and log slice to
// what they were when Snapshot returned id, discarding id and every entry
// taken after it.
func (s *StateDB) RevertToSnapshot(id int) {
	e := s.journal[id]
	s.objects = cloneObjects(e.objects)
	s.refund = new(big.Int).Set(e.refund)
	s.logs = s.logs[:e.logsLen]
	s.journal = s.journal[:id]
}

func (s *StateDB) getObject(addr common.Address) *stateObject {
	if obj, ok := s.objects[addr]; ok {
		if obj.deleted {
			return nil
		}
		return obj
	}
	obj := newStateObject(addr)
	s.objects[addr] = obj
	return obj
}

func (s *StateDB) CreateAccount(addr common.Address) {
	s.objects[addr] = newStateObject(addr)
}

func (s *StateDB) Exist(addr common.Address) bool {
	obj, ok := s.objects[addr]
	return ok && !obj.deleted
}

func (s *StateDB) GetBalance(addr common.Address) *big.Int {
	if obj := s.getObject(addr); obj != nil {
		return new(big.Int).Set(obj.balance)
	}
	return new(big.Int)
}

func (s *StateDB) AddBalance(addr common.Address, amount *big.Int) {
	if amount.Sign() == 0 {
		s.getObject(addr) // still touches the account, matching the teacher's AddBalance(0) semantics
		return
	}
	obj := s.getObject(addr)
	obj.balance.Add(obj.balance, amount)
}

func (s *StateDB) SubBalance(addr common.Address, amount *big.Int) {
	if amount.Sign() == 0 {
		return
	}
	obj := s.getObject(addr)
	obj.balance.Sub(obj.balance, amount)
}

func (s *StateDB) GetNonce(addr common.Address) uint64 {
	if obj := s.getObject(addr); obj != nil {
		return obj.nonce
	}
	return 0
}

func (s *StateDB) SetNonce(addr common.Address, nonce uint64) {
	s.getObject(addr).nonce = nonce
}

func (s *StateDB) GetCode(addr common.Address) []byte {
	if obj := s.getObject(addr); obj != nil {
		return obj.code
	}
	return nil
}

func (s *StateDB) GetCodeHash(addr common.Address) common.Hash {
	if obj := s.getObject(addr); obj != nil {
		return obj.codeHash
	}
	return common.Hash{}
}

func (s *StateDB) GetCodeSize(addr common.Address) int {
	return len(s.GetCode(addr))
}

func (s *StateDB) SetCode(addr common.Address, code []byte) {
	obj := s.getObject(addr)
	obj.code = code
	obj.codeHash = hashCode(code)
}

func (s *StateDB) GetState(addr common.Address, key common.Hash) common.Hash {
	if obj := s.getObject(addr); obj != nil {
		return obj.storage[key]
	}
	return common.Hash{}
}

func (s *StateDB) SetState(addr common.Address, key, value common.Hash) {
	s.getObject(addr).storage[key] = value
}

func (s *StateDB) Suicide(addr common.Address) bool {
	obj, ok := s.objects[addr]
	if !ok || obj.deleted {
		return false
	}
	obj.suicided = true
	obj.deleted = true
	obj.balance = new(big.Int)
	return true
}

func (s *StateDB) HasSuicided(addr common.Address) bool {
	obj, ok := s.objects[addr]
	return ok && obj.suicided
}

func (s *StateDB) AddRefund(amount *big.Int) { s.refund.Add(s.refund, amount) }
func (s *StateDB) GetRefund() *big.Int       { return new(big.Int).Set(s.refund) }

func (s *StateDB) AddLog(log *vm.Log) { s.logs = append(s.logs, log) }
func (s *StateDB) GetLogs() vm.Logs   { return vm.Logs(s.logs) }

// IntermediateRoot commits every live account into the trie and returns
// the resulting state root, the value that lands in a header's Root field
// and in each receipt's legacy PostState. It also snapshots the live
// account set and any new contract code into the backing Database, keyed
// by the resulting root, so a later Open/Load for the same root can
// reconstruct this exact view without ever having kept it resident.
func (s *StateDB) IntermediateRoot() common.Hash {
	var entries []accountEntry
	for addr, obj := range s.objects {
		secureKey := crypto.Keccak256(addr.Bytes())
		if obj.deleted {
			s.trie.Delete(secureKey)
			continue
		}
		b := encodeAccount(obj)
		s.trie.Update(secureKey, b)
		entries = append(entries, accountEntry{Address: addr, Data: b})
		if len(obj.code) > 0 {
			s.db.Put(obj.codeHash.Bytes(), obj.code)
		}
	}
	root := s.trie.Hash()
	if blob, err := rlp.EncodeToBytes(entries); err == nil {
		s.db.Put(root.Bytes(), blob)
	}
	return root
}

// accountEntry is the unit Load replays to rebuild a StateDB's object set
// from a persisted root snapshot.
type accountEntry struct {
	Address common.Address
	Data    []byte
}

// Load reconstructs the StateDB committed under root: an empty session for
// trie.EmptyRoot, or the account set and code this database snapshotted
// the last time IntermediateRoot produced this exact root.
func Load(db *Database, root common.Hash) (*StateDB, error) {
	if root == trie.EmptyRoot || root.IsZero() {
		return New(db), nil
	}
	blob, err := db.Get(root.Bytes())
	if err != nil {
		return nil, err
	}
	if blob == nil {
		return nil, errors.New("state: unknown root")
	}
	var entries []accountEntry
	if err := rlp.DecodeBytes(blob, &entries); err != nil {
		return nil, err
	}

	s := New(db)
	for _, e := range entries {
		var a account
		if err := rlp.DecodeBytes(e.Data, &a); err != nil {
			return nil, err
		}
		obj := newStateObject(e.Address)
		obj.nonce = a.Nonce
		obj.balance = a.Balance
		obj.codeHash = a.CodeHash
		for _, kv := range a.Storage {
			obj.storage[kv[0]] = kv[1]
		}
		if !(a.CodeHash == common.Hash{}) {
			if code, err := db.Get(a.CodeHash.Bytes()); err == nil {
				obj.code = code
			}
		}
		s.objects[e.Address] = obj
		s.trie.Update(crypto.Keccak256(e.Address.Bytes()), e.Data)
	}
	return s, nil
}
