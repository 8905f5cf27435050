// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/bitmark-inc/licentiad/account"
	"github.com/bitmark-inc/licentiad/fault"
	"github.com/bitmark-inc/licentiad/messagebus"
	"github.com/bitmark-inc/licentiad/storage"
	"github.com/bitmark-inc/licentiad/transactionrecord"
)

// Dispatcher - the payment approval callback of the bound dispatcher
//
// the callback runs inside the ledger exclusion scope with the
// payment transaction open; all of its writes commit or abort
// together with the allowance grant
type Dispatcher interface {
	OnPaymentApproved(trx storage.Transaction, caller *account.Account, data []byte) (transactionrecord.RecordIdentifier, error)
}

// PayAndRegister - pay a registration fee and create a license record
//
// the caller's allowance for the dispatcher is set to exactly the
// offered quantity, then the dispatcher callback pulls the fee and
// creates the record; any failure aborts the whole chain including
// the allowance grant
//
// sequence is the caller's signing sequence number
func PayAndRegister(caller *account.Account, quantity uint64, data []byte, sequence uint64) (transactionrecord.RecordIdentifier, error) {

	recordId := transactionrecord.RecordIdentifier{}

	if nil == caller {
		return recordId, fault.InvalidOwnerOrRecipient
	}

	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return recordId, fault.NotInitialised
	}

	if nil == globalData.dispatcherAccount || nil == globalData.handler {
		return recordId, fault.DispatcherNotBound
	}

	err := execute(func(trx storage.Transaction) error {
		err := CheckAndIncrementSequence(trx, caller, sequence)
		if nil != err {
			return err
		}

		// fresh one-shot approval for the dispatcher
		err = setAllowance(trx, caller, globalData.dispatcherAccount, quantity)
		if nil != err {
			return err
		}

		recordId, err = globalData.handler.OnPaymentApproved(trx, caller, data)
		return err
	})
	if nil != err {
		return transactionrecord.RecordIdentifier{}, err
	}

	globalData.log.Infof("registered: %s licensor: %s", recordId, caller)
	messagebus.Bus.Broadcast.Send("record", recordId[:], data, caller.Bytes())

	return recordId, nil
}
