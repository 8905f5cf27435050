// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dispatcher

import (
	"unicode/utf8"

	"github.com/bitmark-inc/licentiad/account"
	"github.com/bitmark-inc/licentiad/fault"
	"github.com/bitmark-inc/licentiad/license"
	"github.com/bitmark-inc/licentiad/storage"
	"github.com/bitmark-inc/licentiad/transactionrecord"
)

// Callback - payment approval hook handed to the ledger on activation
//
// only the value returned by Activate is honoured; a Callback built
// elsewhere is rejected, so possession of the value proves the binding
// handshake completed
type Callback struct {
	own *account.Account // non-empty so each allocation is distinct
}

// Activate - verify the account being bound and hand out the callback
//
// called by the ledger inside its binding transaction; refusing here
// leaves the binding unrecorded
func Activate(acct *account.Account) (*Callback, error) {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return nil, fault.NotInitialised
	}

	if nil == acct {
		return nil, fault.InvalidOwnerOrRecipient
	}

	// the binding must name this dispatcher's own account
	if !acct.IsSameAs(globalData.own) {
		return nil, fault.WrongDispatcherAccount
	}

	// only one activation for the lifetime of the process
	if nil != globalData.callback {
		return nil, fault.AlreadyBound
	}

	globalData.callback = &Callback{
		own: globalData.own,
	}

	globalData.log.Infof("activated for account: %s", acct)

	return globalData.callback, nil
}

// OnPaymentApproved - registration driven by an approved payment
//
// runs inside the calling transaction with the payer's offer already
// recorded as an allowance; any error discards that allowance together
// with every other write of the chain
func (c *Callback) OnPaymentApproved(
	trx storage.Transaction,
	caller *account.Account,
	data []byte,
) (transactionrecord.RecordIdentifier, error) {

	recordId := transactionrecord.RecordIdentifier{}

	// the ledger serialises payment callbacks, no lock is needed here
	if nil == c || c != globalData.callback {
		return recordId, fault.NotAuthorised
	}

	if nil == caller {
		return recordId, fault.InvalidOwnerOrRecipient
	}

	// the payload carries the record name
	if !utf8.Valid(data) {
		return recordId, fault.RegistrationFailed
	}

	return register(trx, string(data), caller)
}

// register a new record paid for by its licensor
func register(
	trx storage.Transaction,
	name string,
	licensor *account.Account,
) (transactionrecord.RecordIdentifier, error) {

	recordId := transactionrecord.RecordIdentifier{}

	fee, err := storedFee(trx, createFeeKey)
	if nil != err {
		return recordId, err
	}

	// collect the registration fee before creating anything
	err = globalData.pool.SpendAllowance(trx, licensor, globalData.own, globalData.root, fee)
	if nil != err {
		return recordId, err
	}

	recordId, err = license.Create(trx, name, 0, licensor, globalData.own, globalData.root)
	if nil != err {
		return recordId, err
	}

	// public creator entry, never modified afterwards
	err = trx.Put(globalData.creators, recordId[:], licensor.Bytes(), []byte{})
	if nil != err {
		return recordId, err
	}

	globalData.log.Infof("registered: %q  id: %x  licensor: %s", name, recordId, licensor)

	return recordId, nil
}
