// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"encoding/binary"

	"github.com/bitmark-inc/licentiad/account"
	"github.com/bitmark-inc/licentiad/fault"
	"github.com/bitmark-inc/licentiad/messagebus"
	"github.com/bitmark-inc/licentiad/storage"
)

// Transfer - move credit from owner to recipient
//
// sequence is the owner's signing sequence number
func Transfer(owner *account.Account, recipient *account.Account, quantity uint64, sequence uint64) error {
	if nil == owner || nil == recipient {
		return fault.InvalidOwnerOrRecipient
	}
	if 0 == quantity {
		return fault.QuantityTooSmall
	}

	globalData.Lock()
	defer globalData.Unlock()

	err := execute(func(trx storage.Transaction) error {
		err := CheckAndIncrementSequence(trx, owner, sequence)
		if nil != err {
			return err
		}
		return transfer(trx, owner, recipient, quantity)
	})
	if nil != err {
		return err
	}

	globalData.log.Infof("transfer: %d from: %s to: %s", quantity, owner, recipient)
	messagebus.Bus.Broadcast.Send("transfer", owner.Bytes(), recipient.Bytes(), uint64Bytes(quantity), uint64Bytes(sequence))

	return nil
}

// uint64Bytes - amount as 8 byte big endian for event parameters
func uint64Bytes(n uint64) []byte {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, n)
	return buffer
}
