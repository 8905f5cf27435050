// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/bitmark-inc/licentiad/account"
	"github.com/bitmark-inc/licentiad/fault"
	"github.com/bitmark-inc/licentiad/storage"
)

// the in-transaction primitives
//
// callers hold the ledger exclusion scope; every helper only batches
// its writes so the enclosing transaction commits or aborts them as a
// unit

// balance - read a balance seeing uncommitted writes
func balance(trx storage.Transaction, acct *account.Account) (uint64, error) {
	n, _, err := trx.GetN(globalData.balances, acct.Bytes())
	return n, err
}

// transfer - move credit between two accounts
//
// a transfer to self leaves the balance unchanged
func transfer(trx storage.Transaction, owner *account.Account, recipient *account.Account, quantity uint64) error {

	ownerBalance, err := balance(trx, owner)
	if nil != err {
		return err
	}
	if ownerBalance < quantity {
		return fault.InsufficientBalance
	}

	err = trx.PutN(globalData.balances, owner.Bytes(), ownerBalance-quantity)
	if nil != err {
		return err
	}

	recipientBalance, err := balance(trx, recipient)
	if nil != err {
		return err
	}
	return trx.PutN(globalData.balances, recipient.Bytes(), recipientBalance+quantity)
}

// setAllowance - overwrite an allowance with an exact value
func setAllowance(trx storage.Transaction, owner *account.Account, spender *account.Account, quantity uint64) error {
	return trx.PutN(globalData.allowances, allowanceKey(owner, spender), quantity)
}

// spend - draw on an allowance, moving credit from owner to recipient
//
// the allowance check runs before the balance check
func spend(trx storage.Transaction, owner *account.Account, spender *account.Account, recipient *account.Account, quantity uint64) error {

	key := allowanceKey(owner, spender)

	remaining, _, err := trx.GetN(globalData.allowances, key)
	if nil != err {
		return err
	}
	if remaining < quantity {
		return fault.InsufficientAllowance
	}

	err = trx.PutN(globalData.allowances, key, remaining-quantity)
	if nil != err {
		return err
	}

	return transfer(trx, owner, recipient, quantity)
}

// Credits - the ledger capabilities handed to the dispatcher
//
// all methods expect to run inside an Execute scope
type Credits struct{}

// SpendAllowance - draw on an allowance inside an open transaction
func (Credits) SpendAllowance(
	trx storage.Transaction,
	owner *account.Account,
	spender *account.Account,
	recipient *account.Account,
	quantity uint64,
) error {
	if nil == owner || nil == spender || nil == recipient {
		return fault.InvalidOwnerOrRecipient
	}
	return spend(trx, owner, spender, recipient, quantity)
}

// CheckAndIncrementSequence - per-account replay protection
func (Credits) CheckAndIncrementSequence(trx storage.Transaction, acct *account.Account, sequence uint64) error {
	return CheckAndIncrementSequence(trx, acct, sequence)
}

// Execute - run an update inside the ledger exclusion scope
func (Credits) Execute(update func(trx storage.Transaction) error) error {
	return Execute(update)
}
