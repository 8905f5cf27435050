// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dispatcher

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/licentiad/account"
	"github.com/bitmark-inc/licentiad/fault"
	"github.com/bitmark-inc/licentiad/storage"
	"github.com/bitmark-inc/licentiad/transactionrecord"
)

// metadata pool keys for the fee schedule
var (
	createFeeKey = []byte("create-fee")
	updateFeeKey = []byte("update-fee")
)

// CreditPool - the ledger capabilities the dispatcher draws on
//
// kept narrow so the dispatcher never depends on the ledger package
type CreditPool interface {

	// draw on an allowance inside an open transaction
	SpendAllowance(trx storage.Transaction, owner *account.Account, spender *account.Account, recipient *account.Account, quantity uint64) error

	// per-account replay protection
	CheckAndIncrementSequence(trx storage.Transaction, acct *account.Account, sequence uint64) error

	// run an update inside the ledger exclusion scope
	Execute(update func(trx storage.Transaction) error) error
}

// Handles - storage pools used by the dispatcher
type Handles struct {
	Creators storage.Handle
	Metadata storage.Handle
}

// Genesis - the configured initial dispatcher state
//
// the fees only apply until the first SetFees, after that the stored
// schedule wins
type Genesis struct {
	Root      *account.Account
	Account   *account.Account
	CreateFee uint64
	UpdateFee uint64
}

// globalData - the dispatcher state
type dispatcherData struct {
	sync.RWMutex // to allow locking

	log *logger.L

	// frozen at initialise
	root *account.Account
	own  *account.Account

	pool     CreditPool
	creators storage.Handle
	metadata storage.Handle

	// cached fee schedule, the store is authoritative
	createFee uint64
	updateFee uint64

	// the one callback handed out at activation
	callback *Callback

	// set once during initialise
	initialised bool
}

var globalData dispatcherData

// Initialise - set up the dispatcher
//
// the fee schedule is read back from the store; a fresh store gets
// the genesis fees persisted so later fee reads never fall back to
// configuration
func Initialise(handles Handles, pool CreditPool, genesis Genesis) error {
	globalData.Lock()
	defer globalData.Unlock()

	// no need to start if already started
	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	if nil == genesis.Root || nil == genesis.Account {
		return fault.InvalidOwnerOrRecipient
	}
	if nil == pool {
		return fault.NilPointer
	}

	globalData.log = logger.New("dispatcher")
	globalData.log.Info("starting…")

	globalData.root = genesis.Root
	globalData.own = genesis.Account
	globalData.pool = pool
	globalData.creators = handles.Creators
	globalData.metadata = handles.Metadata

	createFee, found := handles.Metadata.GetN(createFeeKey)
	if !found {

		// first boot: persist the genesis fee schedule
		err := pool.Execute(func(trx storage.Transaction) error {
			err := trx.PutN(handles.Metadata, createFeeKey, genesis.CreateFee)
			if nil != err {
				return err
			}
			return trx.PutN(handles.Metadata, updateFeeKey, genesis.UpdateFee)
		})
		if nil != err {
			return err
		}

		globalData.createFee = genesis.CreateFee
		globalData.updateFee = genesis.UpdateFee
		globalData.log.Infof("genesis fees: create: %d update: %d", genesis.CreateFee, genesis.UpdateFee)

	} else {

		updateFee, found := handles.Metadata.GetN(updateFeeKey)
		if !found {
			return fault.NotInitialised
		}
		globalData.createFee = createFee
		globalData.updateFee = updateFee
	}

	// all data initialised
	globalData.initialised = true

	return nil
}

// Finalise - shut down the dispatcher
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	globalData.root = nil
	globalData.own = nil
	globalData.pool = nil
	globalData.creators = nil
	globalData.metadata = nil
	globalData.createFee = 0
	globalData.updateFee = 0
	globalData.callback = nil

	// finally...
	globalData.initialised = false

	globalData.log.Info("finished")
	globalData.log.Flush()

	return nil
}

// Account - the dispatcher's own account identity
func Account() *account.Account {
	globalData.RLock()
	defer globalData.RUnlock()
	return globalData.own
}

// Fees - the current fee schedule
func Fees() (uint64, uint64) {
	globalData.RLock()
	defer globalData.RUnlock()
	return globalData.createFee, globalData.updateFee
}

// CreatorOf - the licensor that paid for a record's registration
//
// anyone can check a record id is present to confirm it was minted
// through this dispatcher
func CreatorOf(recordId transactionrecord.RecordIdentifier) (*account.Account, error) {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return nil, fault.NotInitialised
	}

	packed := globalData.creators.Get(recordId[:])
	if nil == packed {
		return nil, fault.RecordNotFound
	}

	return account.AccountFromBytes(packed)
}

// storedFee - authoritative fee read inside an open transaction
func storedFee(trx storage.Transaction, key []byte) (uint64, error) {
	fee, found, err := trx.GetN(globalData.metadata, key)
	if nil != err {
		return 0, err
	}
	if !found {
		return 0, fault.NotInitialised
	}
	return fee, nil
}
