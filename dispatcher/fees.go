// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dispatcher

import (
	"encoding/binary"

	"github.com/bitmark-inc/licentiad/account"
	"github.com/bitmark-inc/licentiad/fault"
	"github.com/bitmark-inc/licentiad/messagebus"
	"github.com/bitmark-inc/licentiad/storage"
)

// SetFees - replace the fee schedule
//
// root only; zero fees are legal and make the corresponding operation
// free of charge
func SetFees(caller *account.Account, createFee uint64, updateFee uint64, sequence uint64) error {

	if nil == caller {
		return fault.InvalidOwnerOrRecipient
	}

	globalData.RLock()
	if !globalData.initialised {
		globalData.RUnlock()
		return fault.NotInitialised
	}
	root := globalData.root
	globalData.RUnlock()

	if !caller.IsSameAs(root) {
		return fault.NotAuthorised
	}

	err := globalData.pool.Execute(func(trx storage.Transaction) error {
		err := globalData.pool.CheckAndIncrementSequence(trx, caller, sequence)
		if nil != err {
			return err
		}
		err = trx.PutN(globalData.metadata, createFeeKey, createFee)
		if nil != err {
			return err
		}
		return trx.PutN(globalData.metadata, updateFeeKey, updateFee)
	})
	if nil != err {
		return err
	}

	globalData.Lock()
	globalData.createFee = createFee
	globalData.updateFee = updateFee
	globalData.Unlock()

	globalData.log.Infof("fees: create: %d  update: %d", createFee, updateFee)
	messagebus.Bus.Broadcast.Send("fees", uint64Bytes(createFee), uint64Bytes(updateFee), uint64Bytes(sequence))

	return nil
}

// fixed eight byte big endian representation for event parameters
func uint64Bytes(value uint64) []byte {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, value)
	return buffer
}
