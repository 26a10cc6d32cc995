package sync

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDAOForkResponseMatchesOnlyTheMarkerBlock(t *testing.T) {
	raw, ok := DAOForkResponse(1920000)
	assert.True(t, ok)
	assert.Equal(t, daoForkHeaderRLP, raw)

	_, ok = DAOForkResponse(1920001)
	assert.False(t, ok)
}
