// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger_test

import (
	"testing"

	"github.com/bitmark-inc/licentiad/fault"
	"github.com/bitmark-inc/licentiad/ledger"
	"github.com/bitmark-inc/licentiad/transactionrecord"
)

// test the full payment chain
//
// an account with no credit is refused, after funding the same
// payment succeeds and moves exactly the fee
func TestPayAndRegister(t *testing.T) {
	setup(t)
	defer teardown(t)

	d := &testDispatcher{fee: 10}
	err := ledger.BindDispatcher(rootAccount, dispatcherAccount, activateTest(d), 1)
	if nil != err {
		t.Fatalf("bind error: %s", err)
	}

	// no credit: the allowance covers the fee but the balance cannot
	_, err = ledger.PayAndRegister(userOneAccount, 10, []byte("Widget"), 1)
	if fault.InsufficientBalance != err {
		t.Fatalf("unfunded payment error: %s", err)
	}
	if 1 != d.payments {
		t.Fatalf("callback invocations: %d  expected: 1", d.payments)
	}

	// the failure left no trace
	checkBalance(t, userOneAccount, 0)
	checkAllowance(t, userOneAccount, dispatcherAccount, 0)
	seq, err := ledger.NextSequence(userOneAccount)
	if nil != err {
		t.Fatalf("sequence error: %s", err)
	}
	if 1 != seq {
		t.Errorf("sequence after failed payment: %d  expected: 1", seq)
	}

	// fund the account and pay again
	err = ledger.Transfer(rootAccount, userOneAccount, 100, 2)
	if nil != err {
		t.Fatalf("transfer error: %s", err)
	}

	recordId, err := ledger.PayAndRegister(userOneAccount, 10, []byte("Widget"), 1)
	if nil != err {
		t.Fatalf("payment error: %s", err)
	}
	if (transactionrecord.RecordIdentifier{}) == recordId {
		t.Fatal("payment returned a zero record id")
	}

	checkBalance(t, userOneAccount, 90)
	checkBalance(t, rootAccount, totalSupply-100+10)
	checkAllowance(t, userOneAccount, dispatcherAccount, 0)
	if 2 != d.payments {
		t.Errorf("callback invocations: %d  expected: 2", d.payments)
	}

	sum := balanceSum(t, rootAccount, userOneAccount, userTwoAccount, dispatcherAccount)
	if totalSupply != sum {
		t.Errorf("balance sum: %d  expected: %d", sum, totalSupply)
	}
}

// test payment without a bound dispatcher
func TestPayAndRegisterUnbound(t *testing.T) {
	setup(t)
	defer teardown(t)

	_, err := ledger.PayAndRegister(rootAccount, 10, []byte("Widget"), 1)
	if fault.DispatcherNotBound != err {
		t.Fatalf("unbound payment error: %s", err)
	}
}

// test that a callback failure rolls the whole chain back
func TestPayAndRegisterCallbackFailure(t *testing.T) {
	setup(t)
	defer teardown(t)

	d := &testDispatcher{fee: 10, fail: fault.RecordAlreadyExists}
	err := ledger.BindDispatcher(rootAccount, dispatcherAccount, activateTest(d), 1)
	if nil != err {
		t.Fatalf("bind error: %s", err)
	}
	err = ledger.Transfer(rootAccount, userOneAccount, 100, 2)
	if nil != err {
		t.Fatalf("transfer error: %s", err)
	}

	_, err = ledger.PayAndRegister(userOneAccount, 10, []byte("Widget"), 1)
	if fault.RecordAlreadyExists != err {
		t.Fatalf("failing callback payment error: %s", err)
	}

	checkBalance(t, userOneAccount, 100)
	checkAllowance(t, userOneAccount, dispatcherAccount, 0)
	seq, err := ledger.NextSequence(userOneAccount)
	if nil != err {
		t.Fatalf("sequence error: %s", err)
	}
	if 1 != seq {
		t.Errorf("sequence after failed payment: %d  expected: 1", seq)
	}
}

// test the offered quantity against the fee
//
// the allowance is set to exactly the offer: an offer below the fee
// fails, an offer above it leaves the difference granted
func TestPayAndRegisterQuantity(t *testing.T) {
	setup(t)
	defer teardown(t)

	d := &testDispatcher{fee: 10}
	err := ledger.BindDispatcher(rootAccount, dispatcherAccount, activateTest(d), 1)
	if nil != err {
		t.Fatalf("bind error: %s", err)
	}
	err = ledger.Transfer(rootAccount, userOneAccount, 100, 2)
	if nil != err {
		t.Fatalf("transfer error: %s", err)
	}

	// offer below the fee
	_, err = ledger.PayAndRegister(userOneAccount, 5, []byte("Widget"), 1)
	if fault.InsufficientAllowance != err {
		t.Fatalf("low offer payment error: %s", err)
	}
	checkBalance(t, userOneAccount, 100)
	checkAllowance(t, userOneAccount, dispatcherAccount, 0)

	// offer above the fee
	_, err = ledger.PayAndRegister(userOneAccount, 25, []byte("Widget"), 1)
	if nil != err {
		t.Fatalf("payment error: %s", err)
	}
	checkBalance(t, userOneAccount, 90)
	checkAllowance(t, userOneAccount, dispatcherAccount, 15)
}
