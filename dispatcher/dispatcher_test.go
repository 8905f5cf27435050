// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dispatcher_test

import (
	"testing"

	"github.com/bitmark-inc/licentiad/dispatcher"
	"github.com/bitmark-inc/licentiad/fault"
	"github.com/bitmark-inc/licentiad/ledger"
	"github.com/bitmark-inc/licentiad/license"
	"github.com/bitmark-inc/licentiad/transactionrecord"
)

// the full stack: a payment through the ledger drives a registration
// through the dispatcher into the record store
func TestRegistrationFlow(t *testing.T) {
	setup(t)
	defer teardown(t)

	bind(t, 1) // root sequence 1

	createFee, updateFee := dispatcher.Fees()
	if genesisCreateFee != createFee || genesisUpdateFee != updateFee {
		t.Fatalf("fees: %d %d  expected: %d %d", createFee, updateFee, genesisCreateFee, genesisUpdateFee)
	}

	// an unfunded licensor cannot pay the registration fee
	_, err := ledger.PayAndRegister(userOneAccount, genesisCreateFee, []byte("Widget"), 1)
	if fault.InsufficientBalance != err {
		t.Fatalf("unfunded registration returned: %s  expected: %s", err, fault.InsufficientBalance)
	}
	checkBalance(t, userOneAccount, 0)
	checkAllowance(t, userOneAccount, dispatcherAccount, 0)
	n, err := ledger.NextSequence(userOneAccount)
	if nil != err {
		t.Fatalf("sequence error: %s", err)
	}
	if 1 != n {
		t.Errorf("sequence after failure: %d  expected: 1", n)
	}

	err = ledger.Transfer(rootAccount, userOneAccount, 100, 2)
	if nil != err {
		t.Fatalf("transfer error: %s", err)
	}

	recordId, err := ledger.PayAndRegister(userOneAccount, genesisCreateFee, []byte("Widget"), 1)
	if nil != err {
		t.Fatalf("registration error: %s", err)
	}
	if (transactionrecord.RecordIdentifier{}) == recordId {
		t.Fatal("registration returned zero record id")
	}

	checkBalance(t, userOneAccount, 90)
	checkBalance(t, rootAccount, totalSupply-100+genesisCreateFee)
	checkBalance(t, dispatcherAccount, 0)
	checkAllowance(t, userOneAccount, dispatcherAccount, 0)

	record, amendments, err := license.Fetch(nil, recordId)
	if nil != err {
		t.Fatalf("fetch error: %s", err)
	}
	if "Widget" != record.Name {
		t.Errorf("record name: %q  expected: %q", record.Name, "Widget")
	}
	if 0 != record.ContentHash {
		t.Errorf("content hash: %d  expected: 0", record.ContentHash)
	}
	if 0 != amendments {
		t.Errorf("amendments: %d  expected: 0", amendments)
	}
	if !record.Licensor.IsSameAs(userOneAccount) {
		t.Errorf("licensor: %s  expected: %s", record.Licensor, userOneAccount)
	}
	if !record.Dispatcher.IsSameAs(dispatcherAccount) {
		t.Errorf("dispatcher: %s  expected: %s", record.Dispatcher, dispatcherAccount)
	}
	if !record.Root.IsSameAs(rootAccount) {
		t.Errorf("root: %s  expected: %s", record.Root, rootAccount)
	}

	creator, err := dispatcher.CreatorOf(recordId)
	if nil != err {
		t.Fatalf("creator error: %s", err)
	}
	if !creator.IsSameAs(userOneAccount) {
		t.Errorf("creator: %s  expected: %s", creator, userOneAccount)
	}

	n, err = ledger.NextSequence(userOneAccount)
	if nil != err {
		t.Fatalf("sequence error: %s", err)
	}
	if 2 != n {
		t.Errorf("sequence after registration: %d  expected: 2", n)
	}

	if totalSupply != balanceSum(t, rootAccount, dispatcherAccount, userOneAccount, userTwoAccount) {
		t.Error("total supply not preserved")
	}
}

func TestAmendmentFlow(t *testing.T) {
	setup(t)
	defer teardown(t)

	bind(t, 1)

	err := ledger.Transfer(rootAccount, userOneAccount, 100, 2)
	if nil != err {
		t.Fatalf("transfer error: %s", err)
	}

	recordId, err := ledger.PayAndRegister(userOneAccount, genesisCreateFee, []byte("Gadget"), 1)
	if nil != err {
		t.Fatalf("registration error: %s", err)
	}

	err = dispatcher.RequestAmendment(nil, recordId, "Gadget Pro", 1)
	if fault.InvalidOwnerOrRecipient != err {
		t.Fatalf("nil caller returned: %s  expected: %s", err, fault.InvalidOwnerOrRecipient)
	}

	// no allowance for the update fee yet
	err = dispatcher.RequestAmendment(userOneAccount, recordId, "Gadget Pro", 2)
	if fault.InsufficientAllowance != err {
		t.Fatalf("uncovered amendment returned: %s  expected: %s", err, fault.InsufficientAllowance)
	}
	n, err := ledger.NextSequence(userOneAccount)
	if nil != err {
		t.Fatalf("sequence error: %s", err)
	}
	if 2 != n {
		t.Errorf("sequence after failure: %d  expected: 2", n)
	}

	err = ledger.GrantAllowance(userOneAccount, dispatcherAccount, genesisUpdateFee, 2)
	if nil != err {
		t.Fatalf("grant error: %s", err)
	}

	// only the licensor may amend
	err = dispatcher.RequestAmendment(userTwoAccount, recordId, "Stolen", 1)
	if fault.NotAuthorised != err {
		t.Fatalf("foreign amendment returned: %s  expected: %s", err, fault.NotAuthorised)
	}
	n, err = ledger.NextSequence(userTwoAccount)
	if nil != err {
		t.Fatalf("sequence error: %s", err)
	}
	if 1 != n {
		t.Errorf("sequence after refused amendment: %d  expected: 1", n)
	}

	// a failing rename must not take the fee
	err = dispatcher.RequestAmendment(userOneAccount, recordId, "", 3)
	if fault.InvalidRecordName != err {
		t.Fatalf("empty rename returned: %s  expected: %s", err, fault.InvalidRecordName)
	}
	checkBalance(t, userOneAccount, 90)
	checkAllowance(t, userOneAccount, dispatcherAccount, genesisUpdateFee)

	missing := transactionrecord.NewRecordIdentifier([]byte("no such record"))
	err = dispatcher.RequestAmendment(userOneAccount, missing, "Gadget Pro", 3)
	if fault.RecordNotFound != err {
		t.Fatalf("missing record returned: %s  expected: %s", err, fault.RecordNotFound)
	}

	err = dispatcher.RequestAmendment(userOneAccount, recordId, "Gadget Pro", 3)
	if nil != err {
		t.Fatalf("amendment error: %s", err)
	}

	record, amendments, err := license.Fetch(nil, recordId)
	if nil != err {
		t.Fatalf("fetch error: %s", err)
	}
	if "Gadget Pro" != record.Name {
		t.Errorf("record name: %q  expected: %q", record.Name, "Gadget Pro")
	}
	if 1 != amendments {
		t.Errorf("amendments: %d  expected: 1", amendments)
	}
	if !record.Licensor.IsSameAs(userOneAccount) {
		t.Errorf("licensor changed by amendment: %s", record.Licensor)
	}

	checkBalance(t, userOneAccount, 85)
	checkBalance(t, rootAccount, totalSupply-100+genesisCreateFee+genesisUpdateFee)
	checkAllowance(t, userOneAccount, dispatcherAccount, 0)

	if totalSupply != balanceSum(t, rootAccount, dispatcherAccount, userOneAccount, userTwoAccount) {
		t.Error("total supply not preserved")
	}
}

func TestSetFees(t *testing.T) {
	setup(t)
	defer teardown(t)

	err := dispatcher.SetFees(nil, 2, 1, 1)
	if fault.InvalidOwnerOrRecipient != err {
		t.Fatalf("nil caller returned: %s  expected: %s", err, fault.InvalidOwnerOrRecipient)
	}

	// only root controls the fee schedule
	err = dispatcher.SetFees(userOneAccount, 2, 1, 1)
	if fault.NotAuthorised != err {
		t.Fatalf("non-root returned: %s  expected: %s", err, fault.NotAuthorised)
	}

	err = dispatcher.SetFees(rootAccount, 2, 1, 5)
	if fault.OutOfSequence != err {
		t.Fatalf("skipped sequence returned: %s  expected: %s", err, fault.OutOfSequence)
	}

	err = dispatcher.SetFees(rootAccount, 2, 1, 1)
	if nil != err {
		t.Fatalf("set fees error: %s", err)
	}
	createFee, updateFee := dispatcher.Fees()
	if 2 != createFee || 1 != updateFee {
		t.Fatalf("fees: %d %d  expected: 2 1", createFee, updateFee)
	}

	// the stored schedule survives a dispatcher restart and beats
	// the configured genesis fees
	err = dispatcher.Finalise()
	if nil != err {
		t.Fatalf("finalise error: %s", err)
	}
	err = dispatcher.Initialise(dispatcherHandles(), ledger.Credits{}, dispatcherGenesis())
	if nil != err {
		t.Fatalf("initialise error: %s", err)
	}
	createFee, updateFee = dispatcher.Fees()
	if 2 != createFee || 1 != updateFee {
		t.Fatalf("fees after restart: %d %d  expected: 2 1", createFee, updateFee)
	}

	// registration now costs the new fee
	bind(t, 2)
	err = ledger.Transfer(rootAccount, userOneAccount, 100, 3)
	if nil != err {
		t.Fatalf("transfer error: %s", err)
	}
	_, err = ledger.PayAndRegister(userOneAccount, 2, []byte("Cheap"), 1)
	if nil != err {
		t.Fatalf("registration error: %s", err)
	}
	checkBalance(t, userOneAccount, 98)
}

func TestCreatorOfMissing(t *testing.T) {
	setup(t)
	defer teardown(t)

	missing := transactionrecord.NewRecordIdentifier([]byte("nothing here"))
	_, err := dispatcher.CreatorOf(missing)
	if fault.RecordNotFound != err {
		t.Fatalf("creator returned: %s  expected: %s", err, fault.RecordNotFound)
	}
}

// a zero fee schedule makes registration and amendment free
func TestZeroFees(t *testing.T) {
	setup(t)
	defer teardown(t)

	err := dispatcher.SetFees(rootAccount, 0, 0, 1)
	if nil != err {
		t.Fatalf("set fees error: %s", err)
	}

	bind(t, 2)

	// an unfunded licensor can register for free
	recordId, err := ledger.PayAndRegister(userOneAccount, 0, []byte("Free"), 1)
	if nil != err {
		t.Fatalf("registration error: %s", err)
	}
	if (transactionrecord.RecordIdentifier{}) == recordId {
		t.Fatal("registration returned zero record id")
	}
	checkBalance(t, userOneAccount, 0)
	checkBalance(t, rootAccount, totalSupply)

	creator, err := dispatcher.CreatorOf(recordId)
	if nil != err {
		t.Fatalf("creator error: %s", err)
	}
	if !creator.IsSameAs(userOneAccount) {
		t.Errorf("creator: %s  expected: %s", creator, userOneAccount)
	}

	err = dispatcher.RequestAmendment(userOneAccount, recordId, "Still Free", 2)
	if nil != err {
		t.Fatalf("amendment error: %s", err)
	}

	record, amendments, err := license.Fetch(nil, recordId)
	if nil != err {
		t.Fatalf("fetch error: %s", err)
	}
	if "Still Free" != record.Name {
		t.Errorf("record name: %q  expected: %q", record.Name, "Still Free")
	}
	if 1 != amendments {
		t.Errorf("amendments: %d  expected: 1", amendments)
	}

	if totalSupply != balanceSum(t, rootAccount, dispatcherAccount, userOneAccount, userTwoAccount) {
		t.Error("total supply not preserved")
	}
}
