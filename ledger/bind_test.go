// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger_test

import (
	"testing"

	"github.com/bitmark-inc/licentiad/account"
	"github.com/bitmark-inc/licentiad/fault"
	"github.com/bitmark-inc/licentiad/ledger"
)

// test that only root can bind and only once
func TestBindDispatcher(t *testing.T) {
	setup(t)
	defer teardown(t)

	d := &testDispatcher{fee: 10}
	activate := activateTest(d)

	err := ledger.BindDispatcher(nil, dispatcherAccount, activate, 1)
	if fault.InvalidOwnerOrRecipient != err {
		t.Errorf("nil caller error: %s", err)
	}
	err = ledger.BindDispatcher(rootAccount, dispatcherAccount, nil, 1)
	if fault.NilPointer != err {
		t.Errorf("nil activate error: %s", err)
	}

	err = ledger.BindDispatcher(userOneAccount, dispatcherAccount, activate, 1)
	if fault.NotAuthorised != err {
		t.Errorf("non-root bind error: %s", err)
	}
	if _, ok := ledger.DispatcherAccount(); ok {
		t.Fatal("refused bind still set a dispatcher")
	}

	err = ledger.BindDispatcher(rootAccount, dispatcherAccount, activate, 7)
	if fault.OutOfSequence != err {
		t.Errorf("bad sequence bind error: %s", err)
	}

	err = ledger.BindDispatcher(rootAccount, dispatcherAccount, activate, 1)
	if nil != err {
		t.Fatalf("bind error: %s", err)
	}

	bound, ok := ledger.DispatcherAccount()
	if !ok {
		t.Fatal("no dispatcher after bind")
	}
	if !bound.IsSameAs(dispatcherAccount) {
		t.Fatalf("dispatcher: %v  expected: %v", bound, dispatcherAccount)
	}

	// binding is permanent, even for root
	err = ledger.BindDispatcher(rootAccount, userTwoAccount, activate, 2)
	if fault.AlreadyBound != err {
		t.Errorf("rebind error: %s", err)
	}
}

// test that a refused activation leaves the ledger unbound
func TestBindActivationRefused(t *testing.T) {
	setup(t)
	defer teardown(t)

	refuse := func(acct *account.Account) (ledger.Dispatcher, error) {
		return nil, fault.WrongDispatcherAccount
	}

	err := ledger.BindDispatcher(rootAccount, dispatcherAccount, refuse, 1)
	if fault.WrongDispatcherAccount != err {
		t.Fatalf("bind error: %s", err)
	}

	if _, ok := ledger.DispatcherAccount(); ok {
		t.Fatal("refused activation still set a dispatcher")
	}

	// nothing was committed, not even the sequence number
	seq, err := ledger.NextSequence(rootAccount)
	if nil != err {
		t.Fatalf("sequence error: %s", err)
	}
	if 1 != seq {
		t.Errorf("sequence after refused bind: %d  expected: 1", seq)
	}
}

// test that a binding survives a restart and can be re-attached
func TestBindPersistence(t *testing.T) {
	setup(t)
	defer teardown(t)

	d := &testDispatcher{fee: 10}

	// attaching before any binding exists is refused
	err := ledger.AttachDispatcher(activateTest(d))
	if fault.DispatcherNotBound != err {
		t.Errorf("early attach error: %s", err)
	}

	err = ledger.BindDispatcher(rootAccount, dispatcherAccount, activateTest(d), 1)
	if nil != err {
		t.Fatalf("bind error: %s", err)
	}

	err = restart(t, ledger.Genesis{
		Root:        rootAccount,
		TotalSupply: totalSupply,
	})
	if nil != err {
		t.Fatalf("restart error: %s", err)
	}

	// the account part of the binding was restored
	bound, ok := ledger.DispatcherAccount()
	if !ok {
		t.Fatal("no dispatcher after restart")
	}
	if !bound.IsSameAs(dispatcherAccount) {
		t.Fatalf("dispatcher: %v  expected: %v", bound, dispatcherAccount)
	}

	// but payments need the callback handle re-attached first
	_, err = ledger.PayAndRegister(rootAccount, 10, []byte("Widget"), 2)
	if fault.DispatcherNotBound != err {
		t.Fatalf("unattached payment error: %s", err)
	}

	err = ledger.AttachDispatcher(activateTest(d))
	if nil != err {
		t.Fatalf("attach error: %s", err)
	}

	_, err = ledger.PayAndRegister(rootAccount, 10, []byte("Widget"), 2)
	if nil != err {
		t.Fatalf("payment error: %s", err)
	}

	// a live handle cannot be attached twice
	err = ledger.AttachDispatcher(activateTest(d))
	if fault.AlreadyBound != err {
		t.Errorf("double attach error: %s", err)
	}
}
