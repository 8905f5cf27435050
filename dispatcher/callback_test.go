// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dispatcher_test

import (
	"testing"

	"github.com/golang/mock/gomock"

	"github.com/bitmark-inc/licentiad/dispatcher"
	"github.com/bitmark-inc/licentiad/dispatcher/mocks"
	"github.com/bitmark-inc/licentiad/fault"
	"github.com/bitmark-inc/licentiad/license"
	"github.com/bitmark-inc/licentiad/storage"
	"github.com/bitmark-inc/licentiad/transactionrecord"
)

func TestActivate(t *testing.T) {

	// before initialise nothing can activate
	_, err := dispatcher.Activate(dispatcherAccount)
	if fault.NotInitialised != err {
		t.Fatalf("activate returned: %s  expected: %s", err, fault.NotInitialised)
	}

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	setupWithPool(t, mocks.NewMockCreditPool(ctl))
	defer teardown(t)

	_, err = dispatcher.Activate(nil)
	if fault.InvalidOwnerOrRecipient != err {
		t.Fatalf("activate nil returned: %s  expected: %s", err, fault.InvalidOwnerOrRecipient)
	}

	// only the configured account can be bound
	_, err = dispatcher.Activate(userOneAccount)
	if fault.WrongDispatcherAccount != err {
		t.Fatalf("activate returned: %s  expected: %s", err, fault.WrongDispatcherAccount)
	}

	callback, err := dispatcher.Activate(dispatcherAccount)
	if nil != err {
		t.Fatalf("activate error: %s", err)
	}
	if nil == callback {
		t.Fatal("activate returned nil callback")
	}

	// a second activation must be refused
	_, err = dispatcher.Activate(dispatcherAccount)
	if fault.AlreadyBound != err {
		t.Fatalf("second activate returned: %s  expected: %s", err, fault.AlreadyBound)
	}
}

func TestCallbackPayment(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	pool := mocks.NewMockCreditPool(ctl)
	setupWithPool(t, pool)
	defer teardown(t)

	callback, err := dispatcher.Activate(dispatcherAccount)
	if nil != err {
		t.Fatalf("activate error: %s", err)
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		t.Fatalf("transaction error: %s", err)
	}

	// the registration fee is drawn from the payer's allowance for
	// this dispatcher and paid through to root
	pool.EXPECT().
		SpendAllowance(trx, userOneAccount, dispatcherAccount, rootAccount, uint64(genesisCreateFee)).
		Return(nil)

	recordId, err := callback.OnPaymentApproved(trx, userOneAccount, []byte("Widget"))
	if nil != err {
		t.Fatalf("payment callback error: %s", err)
	}
	if (transactionrecord.RecordIdentifier{}) == recordId {
		t.Fatal("payment callback returned zero record id")
	}

	record, amendments, err := license.Fetch(trx, recordId)
	if nil != err {
		t.Fatalf("fetch error: %s", err)
	}
	if "Widget" != record.Name {
		t.Errorf("record name: %q  expected: %q", record.Name, "Widget")
	}
	if 0 != amendments {
		t.Errorf("amendments: %d  expected: 0", amendments)
	}
	if !record.Licensor.IsSameAs(userOneAccount) {
		t.Errorf("record licensor: %s  expected: %s", record.Licensor, userOneAccount)
	}
	if !record.Dispatcher.IsSameAs(dispatcherAccount) {
		t.Errorf("record dispatcher: %s  expected: %s", record.Dispatcher, dispatcherAccount)
	}
	if !record.Root.IsSameAs(rootAccount) {
		t.Errorf("record root: %s  expected: %s", record.Root, rootAccount)
	}

	err = trx.Commit()
	if nil != err {
		t.Fatalf("commit error: %s", err)
	}

	creator, err := dispatcher.CreatorOf(recordId)
	if nil != err {
		t.Fatalf("creator error: %s", err)
	}
	if !creator.IsSameAs(userOneAccount) {
		t.Errorf("creator: %s  expected: %s", creator, userOneAccount)
	}

	// the same name can only be registered once
	trx, err = storage.NewDBTransaction()
	if nil != err {
		t.Fatalf("transaction error: %s", err)
	}
	pool.EXPECT().
		SpendAllowance(trx, userTwoAccount, dispatcherAccount, rootAccount, uint64(genesisCreateFee)).
		Return(nil)
	_, err = callback.OnPaymentApproved(trx, userTwoAccount, []byte("Widget"))
	if fault.RecordAlreadyExists != err {
		t.Fatalf("duplicate returned: %s  expected: %s", err, fault.RecordAlreadyExists)
	}
	trx.Abort()
}

func TestCallbackSpendFailure(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	pool := mocks.NewMockCreditPool(ctl)
	setupWithPool(t, pool)
	defer teardown(t)

	callback, err := dispatcher.Activate(dispatcherAccount)
	if nil != err {
		t.Fatalf("activate error: %s", err)
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		t.Fatalf("transaction error: %s", err)
	}

	pool.EXPECT().
		SpendAllowance(trx, userOneAccount, dispatcherAccount, rootAccount, uint64(genesisCreateFee)).
		Return(fault.InsufficientAllowance)

	recordId, err := callback.OnPaymentApproved(trx, userOneAccount, []byte("Widget"))
	if fault.InsufficientAllowance != err {
		t.Fatalf("payment callback returned: %s  expected: %s", err, fault.InsufficientAllowance)
	}
	if (transactionrecord.RecordIdentifier{}) != recordId {
		t.Fatal("failed payment returned a record id")
	}
	trx.Abort()

	// an unpaid fee means nothing was created
	if _, found := storage.Pool.Records.LastElement(); found {
		t.Fatal("record store not empty after failed payment")
	}
}

func TestCallbackIdentity(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	setupWithPool(t, mocks.NewMockCreditPool(ctl))
	defer teardown(t)

	_, err := dispatcher.Activate(dispatcherAccount)
	if nil != err {
		t.Fatalf("activate error: %s", err)
	}

	// a callback built outside activation carries no authority
	forged := &dispatcher.Callback{}
	_, err = forged.OnPaymentApproved(nil, userOneAccount, []byte("Widget"))
	if fault.NotAuthorised != err {
		t.Fatalf("forged callback returned: %s  expected: %s", err, fault.NotAuthorised)
	}

	var missing *dispatcher.Callback
	_, err = missing.OnPaymentApproved(nil, userOneAccount, []byte("Widget"))
	if fault.NotAuthorised != err {
		t.Fatalf("nil callback returned: %s  expected: %s", err, fault.NotAuthorised)
	}
}

func TestCallbackBadPayload(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	pool := mocks.NewMockCreditPool(ctl)
	setupWithPool(t, pool)
	defer teardown(t)

	callback, err := dispatcher.Activate(dispatcherAccount)
	if nil != err {
		t.Fatalf("activate error: %s", err)
	}

	_, err = callback.OnPaymentApproved(nil, nil, []byte("Widget"))
	if fault.InvalidOwnerOrRecipient != err {
		t.Fatalf("nil caller returned: %s  expected: %s", err, fault.InvalidOwnerOrRecipient)
	}

	// the payload must decode to a record name
	_, err = callback.OnPaymentApproved(nil, userOneAccount, []byte{0x4e, 0xff, 0xfe, 0x01})
	if fault.RegistrationFailed != err {
		t.Fatalf("invalid utf8 returned: %s  expected: %s", err, fault.RegistrationFailed)
	}

	// a decodable but unusable name fails after the fee is offered
	trx, err := storage.NewDBTransaction()
	if nil != err {
		t.Fatalf("transaction error: %s", err)
	}
	pool.EXPECT().
		SpendAllowance(trx, userOneAccount, dispatcherAccount, rootAccount, uint64(genesisCreateFee)).
		Return(nil)
	_, err = callback.OnPaymentApproved(trx, userOneAccount, []byte{})
	if fault.InvalidRecordName != err {
		t.Fatalf("empty name returned: %s  expected: %s", err, fault.InvalidRecordName)
	}
	trx.Abort()
}
