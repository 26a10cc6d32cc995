package dag

import "math/big"

// Ethash sizing constants, published in the ethash algorithm description.
const (
	epochLength       = 30000
	cacheInitBytes    = 1 << 24 // 16 MiB
	cacheGrowthBytes  = 1 << 17 // 128 KiB per epoch
	datasetInitBytes  = 1 << 30 // 1 GiB
	datasetGrowthBytes = 1 << 23 // 8 MiB per epoch
	hashBytes         = 64
	mixBytes          = 128
	cacheRounds       = 3
	datasetParents    = 256
	accesses          = 64
)

var (
	epochLengthBig = big.NewInt(epochLength)
)

// epoch returns the ethash epoch a given block number belongs to.
func epoch(blockNumber uint64) uint64 {
	return blockNumber / epochLength
}

// cacheSize returns the cache size in bytes for the given epoch, the
// largest prime below the linear-growth target per the ethash spec.
func cacheSize(epochNum uint64) uint64 {
	size := cacheInitBytes + cacheGrowthBytes*epochNum
	size -= hashBytes
	for !isPrime(size / hashBytes) {
		size -= 2 * hashBytes
	}
	return size
}

// datasetSize mirrors cacheSize for the full dataset; the light client
// never materializes it, but hashimoto-light needs it to compute the
// virtual index space the cache samples from.
func datasetSize(epochNum uint64) uint64 {
	size := datasetInitBytes + datasetGrowthBytes*epochNum
	size -= mixBytes
	for !isPrime(size / mixBytes) {
		size -= 2 * mixBytes
	}
	return size
}

func isPrime(n uint64) bool {
	if n < 2 {
		return false
	}
	if n%2 == 0 {
		return n == 2
	}
	for i := uint64(3); i*i <= n; i += 2 {
		if n%i == 0 {
			return false
		}
	}
	return true
}
