// Package executor implements the Stateful Executor: open a session at a
// known state root, validate and run transactions against it one at a
// time, and report the resulting root — grounded on the teacher's
// core/state_transition.go and core/state_processor.go.
package executor

import (
	"errors"
	"math/big"

	"github.com/eth-classic/lightchain/common"
	"github.com/eth-classic/lightchain/core/era"
	"github.com/eth-classic/lightchain/core/state"
	"github.com/eth-classic/lightchain/core/types"
	"github.com/eth-classic/lightchain/core/vm"
	"github.com/eth-classic/lightchain/crypto"
	"github.com/eth-classic/lightchain/rlp"
)

var (
	TxGas                 = big.NewInt(21000)
	TxGasContractCreation = big.NewInt(53000)
	TxDataZeroGas         = big.NewInt(4)
	TxDataNonZeroGas      = big.NewInt(68)

	ErrNonceTooLow            = errors.New("executor: nonce too low")
	ErrNonceTooHigh           = errors.New("executor: nonce too high")
	ErrInsufficientBalance    = errors.New("executor: insufficient balance for gas * price + value")
	ErrIntrinsicGas           = errors.New("executor: intrinsic gas exceeds gas limit")
	ErrGasLimitReached        = errors.New("executor: block gas limit reached")
)

// HeaderParams carries the subset of block-header fields transaction
// execution needs from the vm.Context: coinbase, number, time, difficulty
// and gas limit.
type HeaderParams struct {
	Coinbase    common.Address
	Number      *big.Int
	Time        *big.Int
	Difficulty  *big.Int
	GasLimit    *big.Int
}

// ValidTransaction is the output of to_valid: a transaction whose sender,
// nonce, intrinsic gas and signature have already been checked, ready for
// execute to run without revisiting those checks.
type ValidTransaction struct {
	tx     *types.Transaction
	sender common.Address
}

// Session is one open(root) view: a StateDB plus the running block gas
// counter transactions draw from. It mutates in place; discard it (let it
// be garbage collected) on any failure instead of rolling anything back.
type Session struct {
	state   *state.StateDB
	gasPool *big.Int
}

// Open reconstructs the state snapshotted under root and wraps it in a
// fresh session, ready to run a block's transactions against. The session
// is disposable: on any validation failure the caller simply drops it,
// leaving the database's other snapshots untouched.
func Open(db *state.Database, root common.Hash, gasLimit *big.Int) (*Session, error) {
	s, err := state.Load(db, root)
	if err != nil {
		return nil, err
	}
	return &Session{state: s, gasPool: new(big.Int).Set(gasLimit)}, nil
}

// ToValid recovers the sender, then checks nonce, intrinsic gas and
// balance — the checks that must pass before a transaction can be run at
// all, per spec.md's to_valid contract.
func ToValid(s *Session, signer types.Signer, tx *types.Transaction, homestead bool) (*ValidTransaction, error) {
	sender, err := types.Sender(signer, tx)
	if err != nil {
		return nil, err
	}

	if n := s.state.GetNonce(sender); n != tx.Nonce() {
		if n > tx.Nonce() {
			return nil, ErrNonceTooLow
		}
		return nil, ErrNonceTooHigh
	}

	igas := IntrinsicGas(tx.Data(), tx.CreatesContract(), homestead)
	if tx.Gas().Cmp(igas) < 0 {
		return nil, ErrIntrinsicGas
	}

	cost := new(big.Int).Mul(tx.Gas(), tx.GasPrice())
	cost.Add(cost, tx.Value())
	if s.state.GetBalance(sender).Cmp(cost) < 0 {
		return nil, ErrInsufficientBalance
	}

	return &ValidTransaction{tx: tx, sender: sender}, nil
}

// IntrinsicGas computes the flat per-transaction gas charge: the base fee
// (higher for contract creation post-Homestead) plus a per-byte charge on
// the payload, zero and non-zero bytes priced differently.
func IntrinsicGas(data []byte, contractCreation, homestead bool) *big.Int {
	igas := new(big.Int)
	if contractCreation && homestead {
		igas.Set(TxGasContractCreation)
	} else {
		igas.Set(TxGas)
	}
	if len(data) == 0 {
		return igas
	}
	var nz int64
	for _, b := range data {
		if b != 0 {
			nz++
		}
	}
	m := big.NewInt(nz)
	m.Mul(m, TxDataNonZeroGas)
	igas.Add(igas, m)
	m = big.NewInt(int64(len(data)) - nz)
	m.Mul(m, TxDataZeroGas)
	igas.Add(igas, m)
	return igas
}

// Result is what execute reports for one transaction: its receipt-facing
// logs and used gas, plus the session's root after the transaction.
type Result struct {
	Logs     vm.Logs
	UsedGas  *big.Int
	Failed   bool
	NewRoot  common.Hash
}

// Execute runs vt's code through the VM — a plain transfer if the
// recipient carries no code, a CALL frame if it does, or a CREATE-style
// init-code run for contract creation — against s's state, charging gas
// from s.gasPool. It mutates s.state and returns the per-transaction
// outcome execute's contract promises.
func Execute(s *Session, p era.Patch, vt *ValidTransaction, hp HeaderParams, blockHashes []common.Hash) (*Result, error) {
	tx := vt.tx
	sender := vt.sender

	if s.gasPool.Cmp(tx.Gas()) < 0 {
		return nil, ErrGasLimitReached
	}
	logsBefore := len(s.state.GetLogs())

	gasPrice := tx.GasPrice()
	prepay := new(big.Int).Mul(tx.Gas(), gasPrice)
	s.state.SubBalance(sender, prepay)
	s.gasPool.Sub(s.gasPool, tx.Gas())

	remaining := tx.Gas().Uint64()
	homestead := p.IsHomestead(hp.Number)
	igas := IntrinsicGas(tx.Data(), tx.CreatesContract(), homestead).Uint64()
	remaining -= igas

	getHash := func(n uint64) common.Hash {
		idx := hp.Number.Uint64() - 1 - n
		if idx >= uint64(len(blockHashes)) {
			return common.Hash{}
		}
		return blockHashes[idx]
	}

	evm := vm.New(s.state, vm.Context{
		Origin:      sender,
		Coinbase:    hp.Coinbase,
		BlockNumber: hp.Number,
		Time:        hp.Time,
		Difficulty:  hp.Difficulty,
		GasLimit:    hp.GasLimit,
		GetHash:     getHash,
	}, p, gasTableFor(p, hp.Number), gasPrice)

	var (
		vmerr error
		ret   []byte
	)
	if tx.CreatesContract() {
		contractAddr := crypto.CreateAddress(sender, s.state.GetNonce(sender), rlpOfAddressNonce)
		s.state.SetNonce(sender, s.state.GetNonce(sender)+1)
		s.state.CreateAccount(contractAddr)
		s.state.AddBalance(contractAddr, tx.Value())
		s.state.SubBalance(sender, tx.Value())

		c := vm.NewContract(sender, contractAddr, tx.Value(), remaining, tx.Data(), nil)
		ret, remaining, vmerr = runFrame(evm, c)
		if vmerr == nil {
			s.state.SetCode(contractAddr, ret)
		}
	} else {
		s.state.SetNonce(sender, s.state.GetNonce(sender)+1)
		to := *tx.To()
		if !s.state.Exist(to) {
			s.state.CreateAccount(to)
		}
		s.state.SubBalance(sender, tx.Value())
		s.state.AddBalance(to, tx.Value())

		code := s.state.GetCode(to)
		if len(code) > 0 {
			c := vm.NewContract(sender, to, tx.Value(), remaining, code, tx.Data())
			ret, remaining, vmerr = runFrame(evm, c)
		}
	}

	gasUsed := new(big.Int).SetUint64(tx.Gas().Uint64() - remaining)

	// Refund leftover gas, plus the refund counter capped at half the gas
	// used, at the original price, then return both to the block pool.
	leftover := new(big.Int).SetUint64(remaining)
	s.state.AddBalance(sender, new(big.Int).Mul(leftover, gasPrice))

	refund := common.BigMin(new(big.Int).Div(gasUsed, common.Big2), s.state.GetRefund())
	s.state.AddBalance(sender, new(big.Int).Mul(refund, gasPrice))
	gasUsed.Sub(gasUsed, refund)
	s.gasPool.Add(s.gasPool, new(big.Int).SetUint64(remaining))
	s.gasPool.Add(s.gasPool, refund)

	s.state.AddBalance(hp.Coinbase, new(big.Int).Mul(gasUsed, gasPrice))

	_ = ret
	return &Result{
		Logs:    s.state.GetLogs()[logsBefore:],
		UsedGas: gasUsed,
		Failed:  vmerr != nil,
		NewRoot: s.state.IntermediateRoot(),
	}, nil
}

func runFrame(evm *vm.EVM, c *vm.Contract) ([]byte, uint64, error) {
	ret, leftOver, err := evm.Run(c)
	return ret, leftOver, err
}

// Root returns the session's current state root.
func Root(s *Session) common.Hash { return s.state.IntermediateRoot() }

// State exposes the underlying StateDB, chiefly so the Block Validator can
// apply block rewards to it directly after the last transaction.
func (s *Session) State() *state.StateDB { return s.state }

// rlpOfAddressNonce encodes the (sender, nonce) pair CREATE's contract
// address derivation hashes, matching crypto.CreateAddress's callback
// signature (kept free of a direct rlp import inside the crypto package
// to avoid a cycle).
func rlpOfAddressNonce(from common.Address, nonce uint64) []byte {
	b, err := rlp.EncodeToBytes([]interface{}{from, nonce})
	if err != nil {
		panic(err)
	}
	return b
}

func gasTableFor(p era.Patch, number *big.Int) vm.GasTable {
	if p.IsEIP150(number) {
		return vm.GasTable{
			ExtcodeSize: big.NewInt(700),
			ExtcodeCopy: big.NewInt(700),
			Balance:     big.NewInt(400),
			SLoad:       big.NewInt(200),
			Calls:       big.NewInt(700),
			Suicide:     big.NewInt(5000),
			ExpByte:     big.NewInt(50),
		}
	}
	return vm.GasTable{
		ExtcodeSize: big.NewInt(20),
		ExtcodeCopy: big.NewInt(20),
		Balance:     big.NewInt(20),
		SLoad:       big.NewInt(50),
		Calls:       big.NewInt(40),
		Suicide:     big.NewInt(0),
		ExpByte:     big.NewInt(10),
	}
}
