package types

import "math/big"

// TotalHeader pairs a header with its cumulative chain work, the quantity
// the Processor uses to track "best" without re-walking ancestry.
type TotalHeader struct {
	Header           *Header
	TotalDifficulty *big.Int
}

func NewTotalHeader(header *Header, totalDifficulty *big.Int) *TotalHeader {
	return &TotalHeader{Header: header, TotalDifficulty: totalDifficulty}
}
