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

// sequence numbers start here for an account's first operation
const firstSequence = 1

// CheckAndIncrementSequence - per-account replay protection
//
// every signed operation carries a sequence number that must equal
// the next expected value for the signing account; the increment is
// batched into the operation's transaction so an aborted operation
// does not consume its sequence number
//
// call inside an Execute scope
func CheckAndIncrementSequence(trx storage.Transaction, acct *account.Account, sequence uint64) error {
	if nil == acct {
		return fault.InvalidOwnerOrRecipient
	}

	key := acct.Bytes()

	expected, found, err := trx.GetN(globalData.sequences, key)
	if nil != err {
		return err
	}
	if !found {
		expected = firstSequence
	}

	if sequence != expected {
		return fault.OutOfSequence
	}

	return trx.PutN(globalData.sequences, key, sequence+1)
}

// NextSequence - the sequence number the account must sign next
func NextSequence(acct *account.Account) (uint64, error) {
	if nil == acct {
		return 0, fault.InvalidOwnerOrRecipient
	}

	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return 0, fault.NotInitialised
	}

	n, found := globalData.sequences.GetN(acct.Bytes())
	if !found {
		return firstSequence, nil
	}
	return n, nil
}
