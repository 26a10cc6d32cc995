package dag

import "encoding/binary"

const fnvPrime = 0x01000193

func fnv(a, b uint32) uint32 {
	return (a * fnvPrime) ^ b
}

func fnvHash(mix, data []uint32) {
	for i := range mix {
		mix[i] = fnv(mix[i], data[i])
	}
}

func bytesToWords(b []byte) []uint32 {
	w := make([]uint32, len(b)/4)
	for i := range w {
		w[i] = binary.LittleEndian.Uint32(b[i*4:])
	}
	return w
}

func wordsToBytes(w []uint32) []byte {
	b := make([]byte, len(w)*4)
	for i, x := range w {
		binary.LittleEndian.PutUint32(b[i*4:], x)
	}
	return b
}

// calcDatasetItem derives the i'th 64-byte dataset item from the cache,
// per the ethash algorithm description's calc_dataset_item.
func calcDatasetItem(cache [][]byte, i uint32) []byte {
	n := uint32(len(cache))
	const r = hashBytes / 4 // words per mix, 16

	mix := make([]byte, hashBytes)
	copy(mix, cache[i%n])
	mixWords := bytesToWords(mix)
	mixWords[0] ^= i
	mix = wordsToBytes(mixWords)
	mix = keccak512(mix)
	mixWords = bytesToWords(mix)

	for j := uint32(0); j < datasetParents; j++ {
		cacheIndex := fnv(i^j, mixWords[j%r])
		parent := cache[cacheIndex%n]
		fnvHash(mixWords, bytesToWords(parent))
	}
	return keccak512(wordsToBytes(mixWords))
}

// hashimotoLight evaluates the hashimoto mixing function against the
// light cache instead of the full dataset, looking each dataset item up
// on demand via calcDatasetItem.
func hashimotoLight(fullSize uint64, cache [][]byte, hash []byte, nonce uint64) (mixDigest, result []byte) {
	const mixBytesWords = mixBytes / 4 // 32
	const hashWords = hashBytes / 4    // 16
	mixHashes := mixBytes / hashBytes  // 2

	nonceBytes := make([]byte, 8)
	binary.LittleEndian.PutUint64(nonceBytes, nonce)
	seed := keccak512(append(append([]byte{}, hash...), nonceBytes...))
	seedHead := binary.LittleEndian.Uint32(seed)

	mix := make([]uint32, mixBytesWords)
	for i := 0; i < mixHashes; i++ {
		copy(mix[i*hashWords:], bytesToWords(seed))
	}

	rows := uint32(fullSize / mixBytes)
	temp := make([]uint32, mixBytesWords)
	for i := uint32(0); i < accesses; i++ {
		p := fnv(i^seedHead, mix[i%uint32(mixBytesWords)]) % rows * uint32(mixHashes)
		for j := 0; j < mixHashes; j++ {
			item := calcDatasetItem(cache, p+uint32(j))
			copy(temp[j*hashWords:], bytesToWords(item))
		}
		fnvHash(mix, temp)
	}

	cmix := make([]uint32, mixBytesWords/4)
	for i := range cmix {
		cmix[i] = fnv(fnv(fnv(mix[i*4], mix[i*4+1]), mix[i*4+2]), mix[i*4+3])
	}
	mixDigest = wordsToBytes(cmix)
	result = keccak256(append(append([]byte{}, seed...), mixDigest...))
	return mixDigest, result
}
