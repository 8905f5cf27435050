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

// ActivateFunc - obtain the payment callback for a dispatcher account
//
// the dispatcher refuses activation for an account that is not its
// own and refuses a second activation
type ActivateFunc func(acct *account.Account) (Dispatcher, error)

// BindDispatcher - bind a dispatcher to the ledger
//
// only the root account can bind and only once for the life of the
// ledger; the binding is persisted and the activation runs inside the
// binding transaction so a refused activation leaves the ledger
// unbound
//
// sequence is the root's signing sequence number
func BindDispatcher(caller *account.Account, dispatcherAccount *account.Account, activate ActivateFunc, sequence uint64) error {
	if nil == caller || nil == dispatcherAccount {
		return fault.InvalidOwnerOrRecipient
	}
	if nil == activate {
		return fault.NilPointer
	}

	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	if !caller.IsSameAs(globalData.root) {
		return fault.NotAuthorised
	}

	if nil != globalData.dispatcherAccount {
		return fault.AlreadyBound
	}

	var handler Dispatcher

	err := execute(func(trx storage.Transaction) error {
		err := CheckAndIncrementSequence(trx, caller, sequence)
		if nil != err {
			return err
		}

		err = trx.Put(globalData.metadata, dispatcherKey, dispatcherAccount.Bytes(), []byte{})
		if nil != err {
			return err
		}

		handler, err = activate(dispatcherAccount)
		return err
	})
	if nil != err {
		return err
	}

	globalData.dispatcherAccount = dispatcherAccount
	globalData.handler = handler

	globalData.log.Infof("bound dispatcher: %s", dispatcherAccount)
	messagebus.Bus.Broadcast.Send("bind", dispatcherAccount.Bytes())

	return nil
}

// AttachDispatcher - re-establish the callback of a persisted binding
//
// bindings survive restarts but callback handles do not, so start up
// re-attaches the activated dispatcher to the stored binding
func AttachDispatcher(activate ActivateFunc) error {
	if nil == activate {
		return fault.NilPointer
	}

	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	if nil == globalData.dispatcherAccount {
		return fault.DispatcherNotBound
	}

	if nil != globalData.handler {
		return fault.AlreadyBound
	}

	handler, err := activate(globalData.dispatcherAccount)
	if nil != err {
		return err
	}

	globalData.handler = handler
	globalData.log.Infof("attached dispatcher: %s", globalData.dispatcherAccount)

	return nil
}
