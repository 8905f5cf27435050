// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/bitmark-inc/licentiad/fault"
	"github.com/bitmark-inc/licentiad/storage"
)

// Execute - run a state update inside the ledger exclusion scope
//
// the update function receives the open storage transaction; a nil
// return commits, any error aborts leaving the store untouched
//
// all writers share this scope so an update never interleaves with a
// ledger operation
func Execute(update func(trx storage.Transaction) error) error {
	globalData.Lock()
	defer globalData.Unlock()

	return execute(update)
}

// execute - as Execute, lock already held
func execute(update func(trx storage.Transaction) error) error {
	if !globalData.initialised {
		return fault.NotInitialised
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}

	err = update(trx)
	if nil != err {
		trx.Abort()
		return err
	}

	return trx.Commit()
}
