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
)

// GrantAllowance - let spender draw up to quantity from the owner
//
// the allowance is overwritten, not added to, so repeated grants
// cannot accumulate spending rights; a zero quantity revokes
//
// sequence is the owner's signing sequence number
func GrantAllowance(owner *account.Account, spender *account.Account, quantity uint64, sequence uint64) error {
	if nil == owner || nil == spender {
		return fault.InvalidOwnerOrRecipient
	}

	globalData.Lock()
	defer globalData.Unlock()

	err := execute(func(trx storage.Transaction) error {
		err := CheckAndIncrementSequence(trx, owner, sequence)
		if nil != err {
			return err
		}
		return setAllowance(trx, owner, spender, quantity)
	})
	if nil != err {
		return err
	}

	globalData.log.Infof("grant: %d owner: %s spender: %s", quantity, owner, spender)
	messagebus.Bus.Broadcast.Send("grant", owner.Bytes(), spender.Bytes(), uint64Bytes(quantity), uint64Bytes(sequence))

	return nil
}

// SpendAllowance - spender draws on an allowance, moving credit from
// owner to recipient
//
// the recipient may differ from the spender; sequence is the
// spender's signing sequence number
func SpendAllowance(spender *account.Account, owner *account.Account, recipient *account.Account, quantity uint64, sequence uint64) error {
	if nil == spender || nil == owner || nil == recipient {
		return fault.InvalidOwnerOrRecipient
	}
	if 0 == quantity {
		return fault.QuantityTooSmall
	}

	globalData.Lock()
	defer globalData.Unlock()

	err := execute(func(trx storage.Transaction) error {
		err := CheckAndIncrementSequence(trx, spender, sequence)
		if nil != err {
			return err
		}
		return spend(trx, owner, spender, recipient, quantity)
	})
	if nil != err {
		return err
	}

	globalData.log.Infof("spend: %d owner: %s spender: %s to: %s", quantity, owner, spender, recipient)
	messagebus.Bus.Broadcast.Send("spend", owner.Bytes(), spender.Bytes(), recipient.Bytes(), uint64Bytes(quantity), uint64Bytes(sequence))

	return nil
}
