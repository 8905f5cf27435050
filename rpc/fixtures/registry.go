// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fixtures

import (
	"os"

	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/licentiad/account"
	"github.com/bitmark-inc/licentiad/dispatcher"
	"github.com/bitmark-inc/licentiad/ledger"
	"github.com/bitmark-inc/licentiad/mode"
	"github.com/bitmark-inc/licentiad/network"
	"github.com/bitmark-inc/licentiad/storage"
)

// registry genesis values shared by all rpc tests
const (
	TotalSupply = 1000000
	CreateFee   = 10
	UpdateFee   = 5

	databaseFileName = "test-rpc"
)

// KeyPair - an ed25519 key pair for signing test records
type KeyPair struct {
	PublicKey  []byte
	PrivateKey []byte
}

// key pairs shared with the transactionrecord tests
var (
	Root = KeyPair{
		PublicKey: []byte{
			0x55, 0xb2, 0x98, 0x88, 0x17, 0xf7, 0xea, 0xec,
			0x37, 0x74, 0x1b, 0x82, 0x44, 0x71, 0x63, 0xca,
			0xaa, 0x5a, 0x9d, 0xb2, 0xb6, 0xf0, 0xce, 0x72,
			0x26, 0x26, 0x33, 0x8e, 0x5e, 0x3f, 0xd7, 0xf7,
		},
		PrivateKey: []byte{
			0x95, 0xb5, 0xa8, 0x0b, 0x4c, 0xdb, 0xe6, 0x1c,
			0x0f, 0x3f, 0x72, 0xcc, 0x15, 0x2d, 0x4a, 0x4f,
			0x29, 0xbc, 0xfd, 0x39, 0xc9, 0xa6, 0x7e, 0x2c,
			0x7b, 0xc6, 0xe0, 0xe1, 0x4e, 0xc7, 0xc7, 0xba,
			0x55, 0xb2, 0x98, 0x88, 0x17, 0xf7, 0xea, 0xec,
			0x37, 0x74, 0x1b, 0x82, 0x44, 0x71, 0x63, 0xca,
			0xaa, 0x5a, 0x9d, 0xb2, 0xb6, 0xf0, 0xce, 0x72,
			0x26, 0x26, 0x33, 0x8e, 0x5e, 0x3f, 0xd7, 0xf7,
		},
	}

	Dispatcher = KeyPair{
		PublicKey: []byte{
			0x7a, 0x81, 0x92, 0x56, 0x5e, 0x6c, 0xa2, 0x35,
			0x80, 0xe1, 0x81, 0x59, 0xef, 0x30, 0x73, 0xf6,
			0xe2, 0xfb, 0x8e, 0x7e, 0x9d, 0x31, 0x49, 0x7e,
			0x79, 0xd7, 0x73, 0x1b, 0xa3, 0x74, 0x11, 0x01,
		},
		PrivateKey: []byte{
			0x66, 0xf5, 0x28, 0xd0, 0x2a, 0x64, 0x97, 0x3a,
			0x2d, 0xa6, 0x5d, 0xb0, 0x53, 0xea, 0xd0, 0xfd,
			0x94, 0xca, 0x93, 0xeb, 0x9f, 0x74, 0x02, 0x3e,
			0xbe, 0xdb, 0x2e, 0x57, 0xb2, 0x79, 0xfd, 0xf3,
			0x7a, 0x81, 0x92, 0x56, 0x5e, 0x6c, 0xa2, 0x35,
			0x80, 0xe1, 0x81, 0x59, 0xef, 0x30, 0x73, 0xf6,
			0xe2, 0xfb, 0x8e, 0x7e, 0x9d, 0x31, 0x49, 0x7e,
			0x79, 0xd7, 0x73, 0x1b, 0xa3, 0x74, 0x11, 0x01,
		},
	}

	UserOne = KeyPair{
		PublicKey: []byte{
			0x27, 0x64, 0x0e, 0x4a, 0xab, 0x92, 0xd8, 0x7b,
			0x4a, 0x6a, 0x2f, 0x30, 0xb8, 0x81, 0xf4, 0x49,
			0x29, 0xf8, 0x66, 0x04, 0x3a, 0x84, 0x1c, 0x38,
			0x14, 0xb1, 0x66, 0xb8, 0x89, 0x44, 0xb0, 0x92,
		},
		PrivateKey: []byte{
			0xc7, 0xae, 0x9f, 0x22, 0x32, 0x0e, 0xda, 0x65,
			0x02, 0x89, 0xf2, 0x64, 0x7b, 0xc3, 0xa4, 0x4f,
			0xfa, 0xe0, 0x55, 0x79, 0xcb, 0x6a, 0x42, 0x20,
			0x90, 0xb4, 0x59, 0xb3, 0x17, 0xed, 0xf4, 0xa1,
			0x27, 0x64, 0x0e, 0x4a, 0xab, 0x92, 0xd8, 0x7b,
			0x4a, 0x6a, 0x2f, 0x30, 0xb8, 0x81, 0xf4, 0x49,
			0x29, 0xf8, 0x66, 0x04, 0x3a, 0x84, 0x1c, 0x38,
			0x14, 0xb1, 0x66, 0xb8, 0x89, 0x44, 0xb0, 0x92,
		},
	}

	UserTwo = KeyPair{
		PublicKey: []byte{
			0xa1, 0x36, 0x32, 0xd5, 0x42, 0x5a, 0xed, 0x3a,
			0x6b, 0x62, 0xe2, 0xbb, 0x6d, 0xe4, 0xc9, 0x59,
			0x48, 0x41, 0xc1, 0x5b, 0x70, 0x15, 0x69, 0xec,
			0x99, 0x99, 0xdc, 0x20, 0x1c, 0x35, 0xf7, 0xb3,
		},
		PrivateKey: []byte{
			0x8f, 0x83, 0x3e, 0x58, 0x30, 0xde, 0x63, 0x77,
			0x89, 0x4a, 0x8d, 0xf2, 0xd4, 0x4b, 0x17, 0x88,
			0x39, 0x1d, 0xcd, 0xb8, 0xfa, 0x57, 0x22, 0x73,
			0xd6, 0x2e, 0x9f, 0xcb, 0x37, 0x20, 0x2a, 0xb9,
			0xa1, 0x36, 0x32, 0xd5, 0x42, 0x5a, 0xed, 0x3a,
			0x6b, 0x62, 0xe2, 0xbb, 0x6d, 0xe4, 0xc9, 0x59,
			0x48, 0x41, 0xc1, 0x5b, 0x70, 0x15, 0x69, 0xec,
			0x99, 0x99, 0xdc, 0x20, 0x1c, 0x35, 0xf7, 0xb3,
		},
	}
)

// Account - the test account for a key pair
func Account(k KeyPair) *account.Account {
	return &account.Account{
		AccountInterface: &account.ED25519Account{
			Test:      true,
			PublicKey: k.PublicKey,
		},
	}
}

// Sign - sign a packed record with a fixture key
func Sign(k KeyPair, message []byte) account.Signature {
	return account.Signature(ed25519.Sign(k.PrivateKey, message))
}

// SetupRegistry - bring up a complete registry for a service test
//
// the stack is the same as a first daemon boot: mode in normal
// operation, genesis supply on root and the dispatcher already bound,
// so the root sequence starts at 2
func SetupRegistry() error {
	removeDatabaseFiles()

	err := mode.Initialise(network.Testing)
	if nil != err {
		return err
	}
	mode.Set(mode.Normal)

	err = storage.Initialise(databaseFileName, storage.ReadWrite)
	if nil != err {
		return err
	}

	err = ledger.Initialise(
		ledger.Handles{
			Balances:   storage.Pool.Balances,
			Allowances: storage.Pool.Allowances,
			Sequences:  storage.Pool.Sequences,
			Metadata:   storage.Pool.Metadata,
		},
		ledger.Genesis{
			Root:        Account(Root),
			TotalSupply: TotalSupply,
		},
	)
	if nil != err {
		return err
	}

	err = dispatcher.Initialise(
		dispatcher.Handles{
			Creators: storage.Pool.Creators,
			Metadata: storage.Pool.Metadata,
		},
		ledger.Credits{},
		dispatcher.Genesis{
			Root:      Account(Root),
			Account:   Account(Dispatcher),
			CreateFee: CreateFee,
			UpdateFee: UpdateFee,
		},
	)
	if nil != err {
		return err
	}

	return ledger.BindDispatcher(
		Account(Root),
		Account(Dispatcher),
		func(acct *account.Account) (ledger.Dispatcher, error) {
			return dispatcher.Activate(acct)
		},
		1,
	)
}

// TeardownRegistry - stop the registry stack and remove its files
func TeardownRegistry() {
	_ = dispatcher.Finalise()
	_ = ledger.Finalise()
	storage.Finalise()
	_ = mode.Finalise()
	removeDatabaseFiles()
}

func removeDatabaseFiles() {
	_ = os.RemoveAll(databaseFileName + "-ledger.leveldb")
}
