package state

import (
	"math/big"
	"sort"

	"github.com/eth-classic/lightchain/common"
	"github.com/eth-classic/lightchain/crypto"
	"github.com/eth-classic/lightchain/rlp"
)

// account is the trie-committed shape of a stateObject: balance, nonce,
// code hash and the storage entries touched this session.
type account struct {
	Nonce    uint64
	Balance  *big.Int
	CodeHash common.Hash
	Storage  [][2]common.Hash
}

func encodeAccount(o *stateObject) []byte {
	keys := make([]common.Hash, 0, len(o.storage))
	for k := range o.storage {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return string(keys[i].Bytes()) < string(keys[j].Bytes())
	})
	storage := make([][2]common.Hash, 0, len(keys))
	for _, k := range keys {
		if o.storage[k].IsZero() {
			continue
		}
		storage = append(storage, [2]common.Hash{k, o.storage[k]})
	}
	a := account{Nonce: o.nonce, Balance: o.balance, CodeHash: o.codeHash, Storage: storage}
	b, err := rlp.EncodeToBytes(a)
	if err != nil {
		panic(err)
	}
	return b
}

func hashCode(code []byte) common.Hash {
	if len(code) == 0 {
		return common.Hash{}
	}
	return crypto.Keccak256Hash(code)
}
