// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/licentiad/account"
	"github.com/bitmark-inc/licentiad/fault"
	"github.com/bitmark-inc/licentiad/ledger"
	"github.com/bitmark-inc/licentiad/license"
	"github.com/bitmark-inc/licentiad/mode"
	"github.com/bitmark-inc/licentiad/rpc/fixtures"
	"github.com/bitmark-inc/licentiad/rpc/registry"
	"github.com/bitmark-inc/licentiad/transactionrecord"
	"github.com/bitmark-inc/logger"
)

func setup(t *testing.T) *registry.Registry {
	fixtures.SetupTestLogger()

	err := fixtures.SetupRegistry()
	if nil != err {
		t.Fatalf("registry setup error: %s", err)
	}

	return registry.New(logger.New(fixtures.LogCategory), mode.Is, mode.IsTesting, false)
}

func teardown() {
	fixtures.TeardownRegistry()
	fixtures.TeardownTestLogger()
}

func signedBinding(owner fixtures.KeyPair, dispatcherAccount *account.Account, sequence uint64) *transactionrecord.DispatcherBinding {
	r := &transactionrecord.DispatcherBinding{
		Owner:      fixtures.Account(owner),
		Dispatcher: dispatcherAccount,
		Sequence:   sequence,
	}
	packed, _ := r.Pack(r.Owner)
	r.Signature = fixtures.Sign(owner, packed)
	return r
}

func signedFeeUpdate(owner fixtures.KeyPair, createFee uint64, updateFee uint64, sequence uint64) *transactionrecord.FeeUpdate {
	r := &transactionrecord.FeeUpdate{
		Owner:     fixtures.Account(owner),
		CreateFee: createFee,
		UpdateFee: updateFee,
		Sequence:  sequence,
	}
	packed, _ := r.Pack(r.Owner)
	r.Signature = fixtures.Sign(owner, packed)
	return r
}

func signedAmendment(owner fixtures.KeyPair, recordId transactionrecord.RecordIdentifier, name string, sequence uint64) *transactionrecord.LicenseAmendment {
	r := &transactionrecord.LicenseAmendment{
		Owner:    fixtures.Account(owner),
		RecordId: recordId,
		Name:     name,
		Sequence: sequence,
	}
	packed, _ := r.Pack(r.Owner)
	r.Signature = fixtures.Sign(owner, packed)
	return r
}

// fund a licensor and register a record directly on the core
func registerRecord(t *testing.T) transactionrecord.RecordIdentifier {
	t.Helper()

	err := ledger.Transfer(fixtures.Account(fixtures.Root), fixtures.Account(fixtures.UserOne), 100, 2)
	if nil != err {
		t.Fatalf("transfer error: %s", err)
	}

	recordId, err := ledger.PayAndRegister(fixtures.Account(fixtures.UserOne), fixtures.CreateFee, []byte("a-license"), 1)
	if nil != err {
		t.Fatalf("register error: %s", err)
	}

	return recordId
}

func TestRegistryFees(t *testing.T) {
	r := setup(t)
	defer teardown()

	var reply registry.FeesReply
	err := r.Fees(&registry.FeesArguments{}, &reply)
	assert.Nil(t, err, "wrong Fees")
	assert.Equal(t, uint64(fixtures.CreateFee), reply.CreateFee, "wrong create fee")
	assert.Equal(t, uint64(fixtures.UpdateFee), reply.UpdateFee, "wrong update fee")
	assert.True(t, reply.Dispatcher.IsSameAs(fixtures.Account(fixtures.Dispatcher)), "wrong dispatcher account")
}

func TestRegistrySetFees(t *testing.T) {
	r := setup(t)
	defer teardown()

	var reply registry.SetFeesReply
	err := r.SetFees(signedFeeUpdate(fixtures.Root, 20, 8, 2), &reply)
	assert.Nil(t, err, "wrong SetFees")
	assert.Equal(t, uint64(20), reply.CreateFee, "wrong create fee")
	assert.Equal(t, uint64(8), reply.UpdateFee, "wrong update fee")
	assert.Equal(t, uint64(3), reply.Sequence, "wrong sequence")

	var fees registry.FeesReply
	err = r.Fees(&registry.FeesArguments{}, &fees)
	assert.Nil(t, err, "wrong Fees")
	assert.Equal(t, uint64(20), fees.CreateFee, "wrong create fee")
	assert.Equal(t, uint64(8), fees.UpdateFee, "wrong update fee")
}

func TestRegistrySetFeesWhenNotRoot(t *testing.T) {
	r := setup(t)
	defer teardown()

	var reply registry.SetFeesReply
	err := r.SetFees(signedFeeUpdate(fixtures.UserOne, 20, 8, 1), &reply)
	assert.Equal(t, fault.NotAuthorised, err, "wrong error")
}

func TestRegistrySetFeesWhenReadOnly(t *testing.T) {
	setup(t)
	defer teardown()

	r := registry.New(logger.New(fixtures.LogCategory), mode.Is, mode.IsTesting, true)

	var reply registry.SetFeesReply
	err := r.SetFees(signedFeeUpdate(fixtures.Root, 20, 8, 2), &reply)
	assert.Equal(t, fault.NotAvailableInReadOnlyMode, err, "wrong error")
}

func TestRegistryBindWhenAlreadyBound(t *testing.T) {
	r := setup(t)
	defer teardown()

	var reply registry.BindReply
	err := r.Bind(signedBinding(fixtures.Root, fixtures.Account(fixtures.Dispatcher), 2), &reply)
	assert.Equal(t, fault.AlreadyBound, err, "wrong error")
}

func TestRegistryBindWhenNotRoot(t *testing.T) {
	r := setup(t)
	defer teardown()

	var reply registry.BindReply
	err := r.Bind(signedBinding(fixtures.UserOne, fixtures.Account(fixtures.Dispatcher), 1), &reply)
	assert.Equal(t, fault.NotAuthorised, err, "wrong error")
}

func TestRegistryBindWhenNotNormalMode(t *testing.T) {
	r := setup(t)
	defer teardown()

	mode.Set(mode.Resynchronise)

	var reply registry.BindReply
	err := r.Bind(signedBinding(fixtures.Root, fixtures.Account(fixtures.Dispatcher), 2), &reply)
	assert.Equal(t, fault.NotAvailableDuringSynchronise, err, "wrong error")
}

func TestRegistryCreator(t *testing.T) {
	r := setup(t)
	defer teardown()

	recordId := registerRecord(t)

	var reply registry.CreatorReply
	err := r.Creator(&registry.CreatorArguments{RecordId: recordId}, &reply)
	assert.Nil(t, err, "wrong Creator")
	assert.True(t, reply.Creator.IsSameAs(fixtures.Account(fixtures.UserOne)), "wrong creator")
}

func TestRegistryCreatorWhenUnknownRecord(t *testing.T) {
	r := setup(t)
	defer teardown()

	var reply registry.CreatorReply
	err := r.Creator(&registry.CreatorArguments{RecordId: transactionrecord.RecordIdentifier{1, 2, 3}}, &reply)
	assert.Equal(t, fault.RecordNotFound, err, "wrong error")
}

func TestRegistryAmend(t *testing.T) {
	r := setup(t)
	defer teardown()

	recordId := registerRecord(t)

	// authorise the dispatcher to collect the update fee
	err := ledger.GrantAllowance(fixtures.Account(fixtures.UserOne), fixtures.Account(fixtures.Dispatcher), fixtures.UpdateFee, 2)
	assert.Nil(t, err, "wrong GrantAllowance")

	var reply registry.AmendReply
	err = r.Amend(signedAmendment(fixtures.UserOne, recordId, "renamed-license", 3), &reply)
	assert.Nil(t, err, "wrong Amend")
	assert.Equal(t, uint64(1), reply.Amendments, "wrong amendment count")
	assert.Equal(t, uint64(4), reply.Sequence, "wrong sequence")

	stored, _, err := license.Fetch(nil, recordId)
	assert.Nil(t, err, "wrong Fetch")
	assert.Equal(t, "renamed-license", stored.Name, "wrong name")

	// the fee moved from the licensor to root
	balance, err := ledger.Balance(fixtures.Account(fixtures.UserOne))
	assert.Nil(t, err, "wrong Balance")
	assert.Equal(t, uint64(100-fixtures.CreateFee-fixtures.UpdateFee), balance, "wrong licensor balance")
}

func TestRegistryAmendWhenNotLicensor(t *testing.T) {
	r := setup(t)
	defer teardown()

	recordId := registerRecord(t)

	err := ledger.GrantAllowance(fixtures.Account(fixtures.UserTwo), fixtures.Account(fixtures.Dispatcher), fixtures.UpdateFee, 1)
	assert.Nil(t, err, "wrong GrantAllowance")

	var reply registry.AmendReply
	err = r.Amend(signedAmendment(fixtures.UserTwo, recordId, "renamed-license", 2), &reply)
	assert.Equal(t, fault.NotAuthorised, err, "wrong error")
}

func TestRegistryAmendWhenNoAllowance(t *testing.T) {
	r := setup(t)
	defer teardown()

	recordId := registerRecord(t)

	var reply registry.AmendReply
	err := r.Amend(signedAmendment(fixtures.UserOne, recordId, "renamed-license", 2), &reply)
	assert.Equal(t, fault.InsufficientAllowance, err, "wrong error")
}
