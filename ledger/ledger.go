// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"bytes"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/licentiad/account"
	"github.com/bitmark-inc/licentiad/fault"
	"github.com/bitmark-inc/licentiad/storage"
)

// metadata pool keys
//
// from storage/doc.go:
//
// Metadata:
//   M ++ name   - ledger state items: root, supply,
//                 create fee, update fee, dispatcher
var (
	rootKey       = []byte("root")
	supplyKey     = []byte("supply")
	dispatcherKey = []byte("dispatcher")
)

// Handles - storage pools used by the ledger
type Handles struct {
	Balances   storage.Handle
	Allowances storage.Handle
	Sequences  storage.Handle
	Metadata   storage.Handle
}

// Genesis - the configured initial ledger state
//
// on first boot the whole supply is minted into the root account; on
// every later boot the values are only checked against the stored
// state
type Genesis struct {
	Root        *account.Account
	TotalSupply uint64
}

// globalData - the ledger state
type ledgerData struct {
	sync.RWMutex // to allow locking

	log *logger.L

	root        *account.Account
	totalSupply uint64

	// bound dispatcher: account is persisted, the callback handle is
	// re-established on every start
	dispatcherAccount *account.Account
	handler           Dispatcher

	balances   storage.Handle
	allowances storage.Handle
	sequences  storage.Handle
	metadata   storage.Handle

	// set once during initialise
	initialised bool
}

var globalData ledgerData

// Initialise - open the ledger
//
// the first ever start mints the total supply into the root account
// and records the genesis values; any later start verifies the
// configured genesis against the stored state and refuses to run on a
// mismatch
func Initialise(handles Handles, genesis Genesis) error {
	globalData.Lock()
	defer globalData.Unlock()

	// no need to start if already started
	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	if nil == genesis.Root {
		return fault.InvalidOwnerOrRecipient
	}

	globalData.log = logger.New("ledger")
	globalData.log.Info("starting…")

	globalData.balances = handles.Balances
	globalData.allowances = handles.Allowances
	globalData.sequences = handles.Sequences
	globalData.metadata = handles.Metadata

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}

	storedRoot, err := trx.Get(globalData.metadata, rootKey)
	if nil != err {
		trx.Abort()
		return err
	}

	if nil == storedRoot {

		// first boot: mint the whole supply into the root account
		rootBytes := genesis.Root.Bytes()

		err = trx.Put(globalData.metadata, rootKey, rootBytes, []byte{})
		if nil != err {
			trx.Abort()
			return err
		}
		err = trx.PutN(globalData.metadata, supplyKey, genesis.TotalSupply)
		if nil != err {
			trx.Abort()
			return err
		}
		err = trx.PutN(globalData.balances, rootBytes, genesis.TotalSupply)
		if nil != err {
			trx.Abort()
			return err
		}

		globalData.log.Infof("genesis: minted %d to root: %s", genesis.TotalSupply, genesis.Root)

	} else {

		// already provisioned: the configuration must match the store
		if !bytes.Equal(storedRoot, genesis.Root.Bytes()) {
			trx.Abort()
			return fault.IncorrectGenesisData
		}
		storedSupply, found, err := trx.GetN(globalData.metadata, supplyKey)
		if nil != err {
			trx.Abort()
			return err
		}
		if !found || storedSupply != genesis.TotalSupply {
			trx.Abort()
			return fault.IncorrectGenesisData
		}

		// restore a persisted dispatcher binding; the callback handle
		// is attached separately by AttachDispatcher
		storedDispatcher, err := trx.Get(globalData.metadata, dispatcherKey)
		if nil != err {
			trx.Abort()
			return err
		}
		if nil != storedDispatcher {
			dispatcherAccount, err := account.AccountFromBytes(storedDispatcher)
			if nil != err {
				trx.Abort()
				return err
			}
			globalData.dispatcherAccount = dispatcherAccount
			globalData.log.Infof("restored dispatcher binding: %s", dispatcherAccount)
		}
	}

	err = trx.Commit()
	if nil != err {
		return err
	}

	globalData.root = genesis.Root
	globalData.totalSupply = genesis.TotalSupply

	// all data initialised
	globalData.initialised = true

	return nil
}

// Finalise - shut down the ledger
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	globalData.root = nil
	globalData.totalSupply = 0
	globalData.dispatcherAccount = nil
	globalData.handler = nil
	globalData.balances = nil
	globalData.allowances = nil
	globalData.sequences = nil
	globalData.metadata = nil

	// finally...
	globalData.initialised = false

	globalData.log.Info("finished")
	globalData.log.Flush()

	return nil
}

// TotalSupply - the fixed amount of credit in circulation
func TotalSupply() uint64 {
	globalData.RLock()
	defer globalData.RUnlock()
	return globalData.totalSupply
}

// RootAccount - the platform administrator account
func RootAccount() *account.Account {
	globalData.RLock()
	defer globalData.RUnlock()
	return globalData.root
}

// DispatcherAccount - the bound dispatcher account
//
// second value is false while no dispatcher is bound
func DispatcherAccount() (*account.Account, bool) {
	globalData.RLock()
	defer globalData.RUnlock()
	if nil == globalData.dispatcherAccount {
		return nil, false
	}
	return globalData.dispatcherAccount, true
}

// Balance - current credit balance of an account
//
// an account that never received credit has a zero balance
func Balance(acct *account.Account) (uint64, error) {
	if nil == acct {
		return 0, fault.InvalidOwnerOrRecipient
	}

	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return 0, fault.NotInitialised
	}

	n, _ := globalData.balances.GetN(acct.Bytes())
	return n, nil
}

// Allowance - remaining amount spender may draw from owner
func Allowance(owner *account.Account, spender *account.Account) (uint64, error) {
	if nil == owner || nil == spender {
		return 0, fault.InvalidOwnerOrRecipient
	}

	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return 0, fault.NotInitialised
	}

	n, _ := globalData.allowances.GetN(allowanceKey(owner, spender))
	return n, nil
}

// allowanceKey - allowance pool key: owner ++ spender
func allowanceKey(owner *account.Account, spender *account.Account) []byte {
	ownerBytes := owner.Bytes()
	key := make([]byte, 0, len(ownerBytes)+33)
	key = append(key, ownerBytes...)
	return append(key, spender.Bytes()...)
}
