// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dispatcher

import (
	"github.com/bitmark-inc/licentiad/account"
	"github.com/bitmark-inc/licentiad/fault"
	"github.com/bitmark-inc/licentiad/license"
	"github.com/bitmark-inc/licentiad/messagebus"
	"github.com/bitmark-inc/licentiad/storage"
	"github.com/bitmark-inc/licentiad/transactionrecord"
)

// RequestAmendment - rename a record on behalf of its licensor
//
// the caller must be the record's licensor and must have granted this
// dispatcher an allowance covering the update fee; the fee transfers
// to root in the same transaction as the rename
func RequestAmendment(
	caller *account.Account,
	recordId transactionrecord.RecordIdentifier,
	newName string,
	sequence uint64,
) error {

	if nil == caller {
		return fault.InvalidOwnerOrRecipient
	}

	globalData.RLock()
	if !globalData.initialised {
		globalData.RUnlock()
		return fault.NotInitialised
	}
	own := globalData.own
	root := globalData.root
	globalData.RUnlock()

	err := globalData.pool.Execute(func(trx storage.Transaction) error {

		err := globalData.pool.CheckAndIncrementSequence(trx, caller, sequence)
		if nil != err {
			return err
		}

		record, _, err := license.Fetch(trx, recordId)
		if nil != err {
			return err
		}

		// amendments only on behalf of the original licensor
		if !caller.IsSameAs(record.Licensor) {
			return fault.NotAuthorised
		}

		fee, err := storedFee(trx, updateFeeKey)
		if nil != err {
			return err
		}

		// collect the update fee before touching the record
		err = globalData.pool.SpendAllowance(trx, caller, own, root, fee)
		if nil != err {
			return err
		}

		return license.Modify(trx, own, recordId, newName)
	})
	if nil != err {
		return err
	}

	globalData.log.Infof("amended: %x  name: %q  licensor: %s", recordId, newName, caller)
	messagebus.Bus.Broadcast.Send("amend", recordId[:], []byte(newName), caller.Bytes())

	return nil
}
