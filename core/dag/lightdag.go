// Package dag implements the ethash light-cache verification path: cache
// generation from an epoch seed and the hashimoto-light mixing function,
// without ever materializing the full dataset.
package dag

import (
	"errors"
	"math/big"

	lru "github.com/hashicorp/golang-lru"

	"github.com/eth-classic/lightchain/common"
	"github.com/eth-classic/lightchain/crypto"
)

func keccak256(b []byte) []byte { return crypto.Keccak256(b) }
func keccak512(b []byte) []byte { return crypto.Keccak512(b) }

// LightDAG holds one epoch's light cache plus the full dataset size that
// epoch's hashimoto mixing must walk, per the epoch seed chain.
type LightDAG struct {
	epochNum uint64
	cache    [][]byte
	fullSize uint64
}

// NewLightDAG generates the light cache governing the epoch containing
// block `number`. Cache generation is the expensive part (keccak512
// chained cacheSize/64 times, mixed over cacheRounds passes) — this is
// the cost the light client pays instead of storing the full dataset.
func NewLightDAG(number uint64) (*LightDAG, error) {
	epochNum := epoch(number)
	seed := seedHash(epochNum)
	size := cacheSize(epochNum)
	n := size / hashBytes

	cache := make([][]byte, n)
	cache[0] = keccak512(seed)
	for i := uint64(1); i < n; i++ {
		cache[i] = keccak512(cache[i-1])
	}

	temp := make([]byte, hashBytes)
	for round := 0; round < cacheRounds; round++ {
		for i := uint64(0); i < n; i++ {
			v := binaryWord(cache[i]) % uint32(n)
			xorBytes(temp, cache[(i-1+n)%n], cache[v])
			cache[i] = keccak512(temp)
		}
	}

	return &LightDAG{
		epochNum: epochNum,
		cache:    cache,
		fullSize: datasetSize(epochNum),
	}, nil
}

// IsValidFor reports whether this cache still governs block `number`'s
// epoch — the Processor's single-slot cache regenerates when it doesn't.
func (d *LightDAG) IsValidFor(number uint64) bool {
	return epoch(number) == d.epochNum
}

// Hashimoto evaluates the PoW mixing function for a candidate (header
// hash, nonce) pair against this epoch's light cache.
func (d *LightDAG) Hashimoto(partialHash common.Hash, nonce uint64) (mixHash, result common.Hash) {
	mix, res := hashimotoLight(d.fullSize, d.cache, partialHash.Bytes(), nonce)
	return common.BytesToHash(mix), common.BytesToHash(res)
}

func binaryWord(b []byte) uint32 {
	return bytesToWords(b[:4])[0]
}

func xorBytes(dst, a, b []byte) {
	for i := range dst {
		dst[i] = a[i] ^ b[i]
	}
}

// seedHash chains keccak256 once per epoch boundary from a 32-byte zero
// seed, per the ethash algorithm description's get_seedhash.
func seedHash(epochNum uint64) []byte {
	seed := make([]byte, 32)
	for i := uint64(0); i < epochNum; i++ {
		seed = keccak256(seed)
	}
	return seed
}

// ErrBelowTarget is returned by CheckPoW when result > 2^256/difficulty.
var ErrBelowTarget = errors.New("dag: pow result above target")

// CheckPoW re-derives the hashimoto result for (partialHash, nonce) and
// verifies it satisfies both the claimed mixDigest and the difficulty
// target, per spec.md's PoW Check.
func (d *LightDAG) CheckPoW(partialHash common.Hash, nonce uint64, mixDigest common.Hash, difficulty *big.Int) error {
	mix, result := d.Hashimoto(partialHash, nonce)
	if mix != mixDigest {
		return errors.New("dag: mix digest mismatch")
	}
	target := new(big.Int).Div(maxUint256, difficulty)
	if new(big.Int).SetBytes(result.Bytes()).Cmp(target) > 0 {
		return ErrBelowTarget
	}
	return nil
}

var maxUint256 = new(big.Int).Lsh(big.NewInt(1), 256)

// Cache is a single-slot (by default) LRU of *LightDAG keyed by epoch
// number, matching the Processor's "regenerate on epoch rollover" policy
// from spec.md §5. golang-lru's internal locking makes this safe even if
// callers validate blocks near an epoch boundary from multiple goroutines,
// though the Processor itself is meant to call Get from one at a time.
type Cache struct {
	epochs *lru.Cache
}

// NewCache builds a Cache holding at most `slots` epochs of LightDAG
// simultaneously. slots=1 is the default single-slot policy; callers
// wanting to avoid cache thrash across an epoch boundary can widen it.
func NewCache(slots int) *Cache {
	if slots < 1 {
		slots = 1
	}
	c, err := lru.New(slots)
	if err != nil {
		// Only returns an error for size <= 0, excluded above.
		panic(err)
	}
	return &Cache{epochs: c}
}

// Get returns the LightDAG governing block `number`, generating and
// inserting it if no resident slot already covers that epoch.
func (c *Cache) Get(number uint64) (*LightDAG, error) {
	epochNum := epoch(number)
	if v, ok := c.epochs.Get(epochNum); ok {
		return v.(*LightDAG), nil
	}

	d, err := NewLightDAG(number)
	if err != nil {
		return nil, err
	}
	c.epochs.Add(epochNum, d)
	return d, nil
}
