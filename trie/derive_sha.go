package trie

import (
	"github.com/eth-classic/lightchain/common"
	"github.com/eth-classic/lightchain/rlp"
)

// DerivableList is satisfied by core/types.Transactions and
// core/types.Receipts: an indexed collection whose i-th RLP encoding is
// used as the trie value keyed by the RLP encoding of i.
type DerivableList interface {
	Len() int
	GetRlp(i int) []byte
}

// DeriveSha builds a throwaway trie keyed by RLP(index) -> RLP(item) and
// returns its root, the transactions_root/receipts_root algorithm used by
// every block header.
func DeriveSha(list DerivableList) common.Hash {
	t := New(NewMemDatabase())
	for i := 0; i < list.Len(); i++ {
		key, _ := rlp.EncodeToBytes(uint64(i))
		t.Update(key, list.GetRlp(i))
	}
	return t.Hash()
}

// MemDatabase is a trivial in-memory Database, used for the throwaway
// tries DeriveSha builds and in tests.
type MemDatabase struct {
	m map[string][]byte
}

func NewMemDatabase() *MemDatabase { return &MemDatabase{m: map[string][]byte{}} }

func (m *MemDatabase) Get(key []byte) ([]byte, error) { return m.m[string(key)], nil }
func (m *MemDatabase) Put(key, value []byte) error {
	m.m[string(key)] = value
	return nil
}
func (m *MemDatabase) Has(key []byte) (bool, error) {
	_, ok := m.m[string(key)]
	return ok, nil
}
