package state

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eth-classic/lightchain/common"
	"github.com/eth-classic/lightchain/core/vm"
	"github.com/eth-classic/lightchain/trie"
)

func TestAddBalanceAndSubBalance(t *testing.T) {
	s := New(NewDatabase())
	addr := common.Address{1}

	s.AddBalance(addr, big.NewInt(100))
	assert.Equal(t, big.NewInt(100), s.GetBalance(addr))

	s.SubBalance(addr, big.NewInt(40))
	assert.Equal(t, big.NewInt(60), s.GetBalance(addr))
}

func TestAddBalanceZeroStillTouchesAccount(t *testing.T) {
	s := New(NewDatabase())
	addr := common.Address{2}

	s.AddBalance(addr, new(big.Int))
	assert.True(t, s.Exist(addr))
}

func TestGetBalanceOfUnknownAccountIsZero(t *testing.T) {
	s := New(NewDatabase())
	assert.Equal(t, new(big.Int), s.GetBalance(common.Address{3}))
}

func TestSetAndGetCode(t *testing.T) {
	s := New(NewDatabase())
	addr := common.Address{4}
	code := []byte{0x60, 0x01}

	s.SetCode(addr, code)
	assert.Equal(t, code, s.GetCode(addr))
	assert.Equal(t, len(code), s.GetCodeSize(addr))
	assert.NotEqual(t, common.Hash{}, s.GetCodeHash(addr))
}

func TestSetAndGetState(t *testing.T) {
	s := New(NewDatabase())
	addr := common.Address{5}
	key := common.BytesToHash([]byte("slot"))
	val := common.BytesToHash([]byte("value"))

	s.SetState(addr, key, val)
	assert.Equal(t, val, s.GetState(addr, key))
}

func TestSuicideClearsBalanceAndMarksDeleted(t *testing.T) {
	s := New(NewDatabase())
	addr := common.Address{6}
	s.AddBalance(addr, big.NewInt(500))

	ok := s.Suicide(addr)
	assert.True(t, ok)
	assert.True(t, s.HasSuicided(addr))
	assert.False(t, s.Exist(addr))
	assert.Equal(t, new(big.Int), s.GetBalance(addr))
}

func TestSuicideOfUnknownAccountFails(t *testing.T) {
	s := New(NewDatabase())
	ok := s.Suicide(common.Address{7})
	assert.False(t, ok)
}

func TestAddRefundAccumulates(t *testing.T) {
	s := New(NewDatabase())
	s.AddRefund(big.NewInt(10))
	s.AddRefund(big.NewInt(15))
	assert.Equal(t, big.NewInt(25), s.GetRefund())
}

func TestAddLogAppendsToGetLogs(t *testing.T) {
	s := New(NewDatabase())
	s.AddLog(&vm.Log{Address: common.Address{8}})
	s.AddLog(&vm.Log{Address: common.Address{9}})
	assert.Len(t, s.GetLogs(), 2)
}

func TestCopyIsIndependentOfParent(t *testing.T) {
	s := New(NewDatabase())
	addr := common.Address{10}
	s.AddBalance(addr, big.NewInt(1000))

	cpy := s.Copy()
	cpy.AddBalance(addr, big.NewInt(500))

	assert.Equal(t, big.NewInt(1000), s.GetBalance(addr))
	assert.Equal(t, big.NewInt(1500), cpy.GetBalance(addr))
}

func TestIntermediateRootChangesWithState(t *testing.T) {
	db := NewDatabase()
	empty := New(db).IntermediateRoot()

	s := New(db)
	s.CreateAccount(common.Address{11})
	s.AddBalance(common.Address{11}, big.NewInt(42))
	withBalance := s.IntermediateRoot()

	assert.NotEqual(t, empty, withBalance)
}

func TestLoadRoundTripsAccountSet(t *testing.T) {
	db := NewDatabase()
	s := New(db)
	addr := common.Address{12}
	s.CreateAccount(addr)
	s.AddBalance(addr, big.NewInt(777))
	s.SetNonce(addr, 3)
	key := common.BytesToHash([]byte("k"))
	val := common.BytesToHash([]byte("v"))
	s.SetState(addr, key, val)
	root := s.IntermediateRoot()

	loaded, err := Load(db, root)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(777), loaded.GetBalance(addr))
	assert.EqualValues(t, 3, loaded.GetNonce(addr))
	assert.Equal(t, val, loaded.GetState(addr, key))
}

func TestLoadEmptyRootGivesFreshSession(t *testing.T) {
	db := NewDatabase()
	s, err := Load(db, trie.EmptyRoot)
	require.NoError(t, err)
	assert.Equal(t, new(big.Int), s.GetBalance(common.Address{13}))
}

func TestLoadUnknownRootErrors(t *testing.T) {
	db := NewDatabase()
	_, err := Load(db, common.BytesToHash([]byte("nonexistent-root")))
	assert.Error(t, err)
}
