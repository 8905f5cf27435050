// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dispatcher_test

import (
	"os"
	"testing"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/licentiad/account"
	"github.com/bitmark-inc/licentiad/dispatcher"
	"github.com/bitmark-inc/licentiad/ledger"
	"github.com/bitmark-inc/licentiad/storage"
)

const (
	testingDirName   = "testing"
	databaseFileName = "test"

	totalSupply      = 1000000
	genesisCreateFee = 10
	genesisUpdateFee = 5
)

func setupTestLogger() {
	removeLogFiles()
	_ = os.Mkdir(testingDirName, 0700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

func removeLogFiles() {
	_ = os.RemoveAll(testingDirName)
}

func TestMain(m *testing.M) {
	setupTestLogger()
	rc := m.Run()
	removeLogFiles()
	os.Exit(rc)
}

// public keys of the accounts used across the tests
var (
	rootPublicKey = []byte{
		0x55, 0xb2, 0x98, 0x88, 0x17, 0xf7, 0xea, 0xec,
		0x37, 0x74, 0x1b, 0x82, 0x44, 0x71, 0x63, 0xca,
		0xaa, 0x5a, 0x9d, 0xb2, 0xb6, 0xf0, 0xce, 0x72,
		0x26, 0x26, 0x33, 0x8e, 0x5e, 0x3f, 0xd7, 0xf7,
	}
	dispatcherPublicKey = []byte{
		0x7a, 0x81, 0x92, 0x56, 0x5e, 0x6c, 0xa2, 0x35,
		0x80, 0xe1, 0x81, 0x59, 0xef, 0x30, 0x73, 0xf6,
		0xe2, 0xfb, 0x8e, 0x7e, 0x9d, 0x31, 0x49, 0x7e,
		0x79, 0xd7, 0x73, 0x1b, 0xa3, 0x74, 0x11, 0x01,
	}
	userOnePublicKey = []byte{
		0x27, 0x64, 0x0e, 0x4a, 0xab, 0x92, 0xd8, 0x7b,
		0x4a, 0x6a, 0x2f, 0x30, 0xb8, 0x81, 0xf4, 0x49,
		0x29, 0xf8, 0x66, 0x04, 0x3a, 0x84, 0x1c, 0x38,
		0x14, 0xb1, 0x66, 0xb8, 0x89, 0x44, 0xb0, 0x92,
	}
	userTwoPublicKey = []byte{
		0xa1, 0x36, 0x32, 0xd5, 0x42, 0x5a, 0xed, 0x3a,
		0x6b, 0x62, 0xe2, 0xbb, 0x6d, 0xe4, 0xc9, 0x59,
		0x48, 0x41, 0xc1, 0x5b, 0x70, 0x15, 0x69, 0xec,
		0x99, 0x99, 0xdc, 0x20, 0x1c, 0x35, 0xf7, 0xb3,
	}
)

func makeAccount(publicKey []byte) *account.Account {
	return &account.Account{
		AccountInterface: &account.ED25519Account{
			Test:      true,
			PublicKey: publicKey,
		},
	}
}

var (
	rootAccount       = makeAccount(rootPublicKey)
	dispatcherAccount = makeAccount(dispatcherPublicKey)
	userOneAccount    = makeAccount(userOnePublicKey)
	userTwoAccount    = makeAccount(userTwoPublicKey)
)

// remove all files created by test
func removeFiles() {
	os.RemoveAll(databaseFileName + "-ledger.leveldb")
}

func ledgerHandles() ledger.Handles {
	return ledger.Handles{
		Balances:   storage.Pool.Balances,
		Allowances: storage.Pool.Allowances,
		Sequences:  storage.Pool.Sequences,
		Metadata:   storage.Pool.Metadata,
	}
}

func dispatcherHandles() dispatcher.Handles {
	return dispatcher.Handles{
		Creators: storage.Pool.Creators,
		Metadata: storage.Pool.Metadata,
	}
}

func dispatcherGenesis() dispatcher.Genesis {
	return dispatcher.Genesis{
		Root:      rootAccount,
		Account:   dispatcherAccount,
		CreateFee: genesisCreateFee,
		UpdateFee: genesisUpdateFee,
	}
}

// configure for testing: fresh storage, ledger and dispatcher
func setup(t *testing.T) {
	removeFiles()

	err := storage.Initialise(databaseFileName, storage.ReadWrite)
	if nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}

	err = ledger.Initialise(ledgerHandles(), ledger.Genesis{
		Root:        rootAccount,
		TotalSupply: totalSupply,
	})
	if nil != err {
		t.Fatalf("ledger initialise error: %s", err)
	}

	err = dispatcher.Initialise(dispatcherHandles(), ledger.Credits{}, dispatcherGenesis())
	if nil != err {
		t.Fatalf("dispatcher initialise error: %s", err)
	}
}

// as setup but without the ledger, the pool is supplied by the test
func setupWithPool(t *testing.T, pool dispatcher.CreditPool) {
	removeFiles()

	err := storage.Initialise(databaseFileName, storage.ReadWrite)
	if nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}

	// an existing fee schedule keeps initialise off the genesis path
	storage.Pool.Metadata.PutN([]byte("create-fee"), genesisCreateFee)
	storage.Pool.Metadata.PutN([]byte("update-fee"), genesisUpdateFee)

	err = dispatcher.Initialise(dispatcherHandles(), pool, dispatcherGenesis())
	if nil != err {
		t.Fatalf("dispatcher initialise error: %s", err)
	}
}

// post test cleanup
func teardown(t *testing.T) {
	_ = dispatcher.Finalise()
	_ = ledger.Finalise()
	storage.Finalise()
	removeFiles()
}

// activation wrapper handed to the ledger when binding
func activateDispatcher(acct *account.Account) (ledger.Dispatcher, error) {
	return dispatcher.Activate(acct)
}

// bind the dispatcher as root
func bind(t *testing.T, sequence uint64) {
	t.Helper()
	err := ledger.BindDispatcher(rootAccount, dispatcherAccount, activateDispatcher, sequence)
	if nil != err {
		t.Fatalf("bind dispatcher error: %s", err)
	}
}

func checkBalance(t *testing.T, acct *account.Account, expected uint64) {
	t.Helper()
	n, err := ledger.Balance(acct)
	if nil != err {
		t.Fatalf("balance error: %s", err)
	}
	if expected != n {
		t.Errorf("balance of %s: %d  expected: %d", acct, n, expected)
	}
}

func checkAllowance(t *testing.T, owner *account.Account, spender *account.Account, expected uint64) {
	t.Helper()
	n, err := ledger.Allowance(owner, spender)
	if nil != err {
		t.Fatalf("allowance error: %s", err)
	}
	if expected != n {
		t.Errorf("allowance %s to %s: %d  expected: %d", owner, spender, n, expected)
	}
}

// total of all balances over the accounts used in a test
func balanceSum(t *testing.T, accounts ...*account.Account) uint64 {
	sum := uint64(0)
	for _, acct := range accounts {
		n, err := ledger.Balance(acct)
		if nil != err {
			t.Fatalf("balance error: %s", err)
		}
		sum += n
	}
	return sum
}
