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

package trie

// Hex-prefix nibble encoding: every trie path is walked one nibble (half
// byte) at a time rather than one byte at a time, which is what lets a
// shortNode compact a long run of single-child branches into one Key.
//
// keybytesToHex turns raw key bytes into that nibble form, with a 16
// terminator nibble appended marking "this path ends in a value", the
// same sentinel trie/proof_test.go's get() checks for via hasTerm.
func keybytesToHex(key []byte) []byte {
	n := make([]byte, len(key)*2+1)
	for i, b := range key {
		n[i*2] = b / 16
		n[i*2+1] = b % 16
	}
	n[len(n)-1] = 16
	return n
}

func hasTerm(s []byte) bool {
	return len(s) > 0 && s[len(s)-1] == 16
}

// hexToCompact packs a nibble path (as stored in a shortNode.Key) back
// into the compact hex-prefix byte form RLP-encoded on the wire: a flag
// nibble (odd-length and terminator bits) followed by the path's bytes,
// two nibbles to a byte.
func hexToCompact(hex []byte) []byte {
	var term byte
	if hasTerm(hex) {
		term = 1
		hex = hex[:len(hex)-1]
	}
	buf := make([]byte, len(hex)/2+1)
	buf[0] = term << 5
	if len(hex)&1 == 1 {
		buf[0] |= 1 << 4
		buf[0] |= hex[0]
		hex = hex[1:]
	}
	for i := 0; i < len(hex); i += 2 {
		buf[i/2+1] = hex[i]<<4 | hex[i+1]
	}
	return buf
}
