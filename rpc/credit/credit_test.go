// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package credit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/licentiad/account"
	"github.com/bitmark-inc/licentiad/fault"
	"github.com/bitmark-inc/licentiad/mode"
	"github.com/bitmark-inc/licentiad/rpc/credit"
	"github.com/bitmark-inc/licentiad/rpc/fixtures"
	"github.com/bitmark-inc/licentiad/transactionrecord"
	"github.com/bitmark-inc/logger"
)

func setup(t *testing.T) *credit.Credit {
	fixtures.SetupTestLogger()

	err := fixtures.SetupRegistry()
	if nil != err {
		t.Fatalf("registry setup error: %s", err)
	}

	return credit.New(logger.New(fixtures.LogCategory), mode.Is, mode.IsTesting, false)
}

func teardown() {
	fixtures.TeardownRegistry()
	fixtures.TeardownTestLogger()
}

func signedTransfer(owner fixtures.KeyPair, recipient *account.Account, quantity uint64, sequence uint64) *transactionrecord.CreditTransfer {
	r := &transactionrecord.CreditTransfer{
		Owner:     fixtures.Account(owner),
		Recipient: recipient,
		Quantity:  quantity,
		Sequence:  sequence,
	}
	packed, _ := r.Pack(r.Owner)
	r.Signature = fixtures.Sign(owner, packed)
	return r
}

func signedGrant(owner fixtures.KeyPair, spender *account.Account, quantity uint64, sequence uint64) *transactionrecord.AllowanceGrant {
	r := &transactionrecord.AllowanceGrant{
		Owner:    fixtures.Account(owner),
		Spender:  spender,
		Quantity: quantity,
		Sequence: sequence,
	}
	packed, _ := r.Pack(r.Owner)
	r.Signature = fixtures.Sign(owner, packed)
	return r
}

func signedSpend(spender fixtures.KeyPair, owner *account.Account, recipient *account.Account, quantity uint64, sequence uint64) *transactionrecord.AllowanceSpend {
	r := &transactionrecord.AllowanceSpend{
		Spender:   fixtures.Account(spender),
		Owner:     owner,
		Recipient: recipient,
		Quantity:  quantity,
		Sequence:  sequence,
	}
	packed, _ := r.Pack(r.Spender)
	r.Signature = fixtures.Sign(spender, packed)
	return r
}

func signedApproval(owner fixtures.KeyPair, quantity uint64, payload string, sequence uint64) *transactionrecord.PaymentApproval {
	r := &transactionrecord.PaymentApproval{
		Owner:    fixtures.Account(owner),
		Quantity: quantity,
		Payload:  payload,
		Sequence: sequence,
	}
	packed, _ := r.Pack(r.Owner)
	r.Signature = fixtures.Sign(owner, packed)
	return r
}

func TestCreditBalance(t *testing.T) {
	c := setup(t)
	defer teardown()

	var reply credit.BalanceReply
	err := c.Balance(&credit.BalanceArguments{Account: fixtures.Account(fixtures.Root)}, &reply)
	assert.Nil(t, err, "wrong Balance")
	assert.Equal(t, uint64(fixtures.TotalSupply), reply.Balance, "wrong root balance")
	assert.Equal(t, uint64(2), reply.Sequence, "wrong root sequence")

	err = c.Balance(&credit.BalanceArguments{Account: fixtures.Account(fixtures.UserOne)}, &reply)
	assert.Nil(t, err, "wrong Balance")
	assert.Equal(t, uint64(0), reply.Balance, "wrong user balance")
	assert.Equal(t, uint64(1), reply.Sequence, "wrong user sequence")
}

func TestCreditBalanceWhenNilAccount(t *testing.T) {
	c := setup(t)
	defer teardown()

	var reply credit.BalanceReply
	err := c.Balance(&credit.BalanceArguments{}, &reply)
	assert.Equal(t, fault.InvalidItem, err, "wrong error")
}

func TestCreditTransfer(t *testing.T) {
	c := setup(t)
	defer teardown()

	var reply credit.TransferReply
	err := c.Transfer(signedTransfer(fixtures.Root, fixtures.Account(fixtures.UserOne), 500, 2), &reply)
	assert.Nil(t, err, "wrong Transfer")
	assert.Equal(t, uint64(fixtures.TotalSupply-500), reply.Balance, "wrong balance")
	assert.Equal(t, uint64(3), reply.Sequence, "wrong sequence")

	var balance credit.BalanceReply
	err = c.Balance(&credit.BalanceArguments{Account: fixtures.Account(fixtures.UserOne)}, &balance)
	assert.Nil(t, err, "wrong Balance")
	assert.Equal(t, uint64(500), balance.Balance, "wrong recipient balance")
}

func TestCreditTransferWhenInsufficientBalance(t *testing.T) {
	c := setup(t)
	defer teardown()

	var reply credit.TransferReply
	err := c.Transfer(signedTransfer(fixtures.UserOne, fixtures.Account(fixtures.UserTwo), 10, 1), &reply)
	assert.Equal(t, fault.InsufficientBalance, err, "wrong error")
}

func TestCreditTransferWhenOutOfSequence(t *testing.T) {
	c := setup(t)
	defer teardown()

	var reply credit.TransferReply
	err := c.Transfer(signedTransfer(fixtures.Root, fixtures.Account(fixtures.UserOne), 500, 99), &reply)
	assert.Equal(t, fault.OutOfSequence, err, "wrong error")
}

func TestCreditTransferWhenBadSignature(t *testing.T) {
	c := setup(t)
	defer teardown()

	arg := signedTransfer(fixtures.Root, fixtures.Account(fixtures.UserOne), 500, 2)
	arg.Signature[0] ^= 0x01

	var reply credit.TransferReply
	err := c.Transfer(arg, &reply)
	assert.Equal(t, fault.InvalidSignature, err, "wrong error")
}

func TestCreditTransferWhenWrongNetwork(t *testing.T) {
	c := setup(t)
	defer teardown()

	arg := &transactionrecord.CreditTransfer{
		Owner: &account.Account{
			AccountInterface: &account.ED25519Account{
				Test:      false,
				PublicKey: fixtures.Root.PublicKey,
			},
		},
		Recipient: fixtures.Account(fixtures.UserOne),
		Quantity:  500,
		Sequence:  2,
	}

	var reply credit.TransferReply
	err := c.Transfer(arg, &reply)
	assert.Equal(t, fault.WrongNetworkForPublicKey, err, "wrong error")
}

func TestCreditTransferWhenNotNormalMode(t *testing.T) {
	c := setup(t)
	defer teardown()

	mode.Set(mode.Resynchronise)

	var reply credit.TransferReply
	err := c.Transfer(signedTransfer(fixtures.Root, fixtures.Account(fixtures.UserOne), 500, 2), &reply)
	assert.Equal(t, fault.NotAvailableDuringSynchronise, err, "wrong error")
}

func TestCreditTransferWhenReadOnly(t *testing.T) {
	setup(t)
	defer teardown()

	c := credit.New(logger.New(fixtures.LogCategory), mode.Is, mode.IsTesting, true)

	var reply credit.TransferReply
	err := c.Transfer(signedTransfer(fixtures.Root, fixtures.Account(fixtures.UserOne), 500, 2), &reply)
	assert.Equal(t, fault.NotAvailableInReadOnlyMode, err, "wrong error")
}

func TestCreditGrantAndSpend(t *testing.T) {
	c := setup(t)
	defer teardown()

	var tr credit.TransferReply
	err := c.Transfer(signedTransfer(fixtures.Root, fixtures.Account(fixtures.UserOne), 1000, 2), &tr)
	assert.Nil(t, err, "wrong Transfer")

	var gr credit.GrantReply
	err = c.Grant(signedGrant(fixtures.UserOne, fixtures.Account(fixtures.UserTwo), 300, 1), &gr)
	assert.Nil(t, err, "wrong Grant")
	assert.Equal(t, uint64(300), gr.Allowance, "wrong allowance")
	assert.Equal(t, uint64(2), gr.Sequence, "wrong sequence")

	var sr credit.SpendReply
	err = c.Spend(signedSpend(fixtures.UserTwo, fixtures.Account(fixtures.UserOne), fixtures.Account(fixtures.UserTwo), 100, 1), &sr)
	assert.Nil(t, err, "wrong Spend")
	assert.Equal(t, uint64(200), sr.Allowance, "wrong remaining allowance")
	assert.Equal(t, uint64(2), sr.Sequence, "wrong sequence")

	var balance credit.BalanceReply
	err = c.Balance(&credit.BalanceArguments{Account: fixtures.Account(fixtures.UserOne)}, &balance)
	assert.Nil(t, err, "wrong Balance")
	assert.Equal(t, uint64(900), balance.Balance, "wrong owner balance")

	err = c.Balance(&credit.BalanceArguments{Account: fixtures.Account(fixtures.UserTwo)}, &balance)
	assert.Nil(t, err, "wrong Balance")
	assert.Equal(t, uint64(100), balance.Balance, "wrong recipient balance")

	// authorisation is checked before the owner balance
	err = c.Spend(signedSpend(fixtures.UserTwo, fixtures.Account(fixtures.UserOne), fixtures.Account(fixtures.UserTwo), 500, 2), &sr)
	assert.Equal(t, fault.InsufficientAllowance, err, "wrong error")
}

func TestCreditSpendWhenInsufficientBalance(t *testing.T) {
	c := setup(t)
	defer teardown()

	// authorisation without funds behind it
	var gr credit.GrantReply
	err := c.Grant(signedGrant(fixtures.UserOne, fixtures.Account(fixtures.UserTwo), 300, 1), &gr)
	assert.Nil(t, err, "wrong Grant")

	var sr credit.SpendReply
	err = c.Spend(signedSpend(fixtures.UserTwo, fixtures.Account(fixtures.UserOne), fixtures.Account(fixtures.UserTwo), 100, 1), &sr)
	assert.Equal(t, fault.InsufficientBalance, err, "wrong error")
}

func TestCreditGrantRevoke(t *testing.T) {
	c := setup(t)
	defer teardown()

	var gr credit.GrantReply
	err := c.Grant(signedGrant(fixtures.UserOne, fixtures.Account(fixtures.UserTwo), 300, 1), &gr)
	assert.Nil(t, err, "wrong Grant")
	assert.Equal(t, uint64(300), gr.Allowance, "wrong allowance")

	err = c.Grant(signedGrant(fixtures.UserOne, fixtures.Account(fixtures.UserTwo), 0, 2), &gr)
	assert.Nil(t, err, "wrong Grant")
	assert.Equal(t, uint64(0), gr.Allowance, "wrong allowance")

	var ar credit.AllowanceReply
	err = c.Allowance(&credit.AllowanceArguments{
		Owner:   fixtures.Account(fixtures.UserOne),
		Spender: fixtures.Account(fixtures.UserTwo),
	}, &ar)
	assert.Nil(t, err, "wrong Allowance")
	assert.Equal(t, uint64(0), ar.Allowance, "wrong allowance")
}

func TestCreditPay(t *testing.T) {
	c := setup(t)
	defer teardown()

	var tr credit.TransferReply
	err := c.Transfer(signedTransfer(fixtures.Root, fixtures.Account(fixtures.UserOne), 100, 2), &tr)
	assert.Nil(t, err, "wrong Transfer")

	var pr credit.PayReply
	err = c.Pay(signedApproval(fixtures.UserOne, fixtures.CreateFee, "first-license", 1), &pr)
	assert.Nil(t, err, "wrong Pay")
	assert.NotEqual(t, transactionrecord.RecordIdentifier{}, pr.RecordId, "wrong record id")
	assert.Equal(t, uint64(100-fixtures.CreateFee), pr.Balance, "wrong balance")
	assert.Equal(t, uint64(2), pr.Sequence, "wrong sequence")

	// the fee went to root
	var balance credit.BalanceReply
	err = c.Balance(&credit.BalanceArguments{Account: fixtures.Account(fixtures.Root)}, &balance)
	assert.Nil(t, err, "wrong Balance")
	assert.Equal(t, uint64(fixtures.TotalSupply-100+fixtures.CreateFee), balance.Balance, "wrong root balance")
}

func TestCreditPayWhenQuantityBelowFee(t *testing.T) {
	c := setup(t)
	defer teardown()

	var tr credit.TransferReply
	err := c.Transfer(signedTransfer(fixtures.Root, fixtures.Account(fixtures.UserOne), 100, 2), &tr)
	assert.Nil(t, err, "wrong Transfer")

	var pr credit.PayReply
	err = c.Pay(signedApproval(fixtures.UserOne, fixtures.CreateFee-1, "a-license", 1), &pr)
	assert.Equal(t, fault.InsufficientAllowance, err, "wrong error")

	// the aborted payment leaves no residue
	var ar credit.AllowanceReply
	err = c.Allowance(&credit.AllowanceArguments{
		Owner:   fixtures.Account(fixtures.UserOne),
		Spender: fixtures.Account(fixtures.Dispatcher),
	}, &ar)
	assert.Nil(t, err, "wrong Allowance")
	assert.Equal(t, uint64(0), ar.Allowance, "wrong residual allowance")

	var balance credit.BalanceReply
	err = c.Balance(&credit.BalanceArguments{Account: fixtures.Account(fixtures.UserOne)}, &balance)
	assert.Nil(t, err, "wrong Balance")
	assert.Equal(t, uint64(100), balance.Balance, "wrong balance")
	assert.Equal(t, uint64(1), balance.Sequence, "wrong sequence")
}

func TestCreditPayWhenDuplicateRecord(t *testing.T) {
	c := setup(t)
	defer teardown()

	var tr credit.TransferReply
	err := c.Transfer(signedTransfer(fixtures.Root, fixtures.Account(fixtures.UserOne), 100, 2), &tr)
	assert.Nil(t, err, "wrong Transfer")

	var pr credit.PayReply
	err = c.Pay(signedApproval(fixtures.UserOne, fixtures.CreateFee, "a-license", 1), &pr)
	assert.Nil(t, err, "wrong Pay")

	err = c.Pay(signedApproval(fixtures.UserOne, fixtures.CreateFee, "a-license", 2), &pr)
	assert.Equal(t, fault.RecordAlreadyExists, err, "wrong error")
}

func TestCreditPayWhenNameTooShort(t *testing.T) {
	c := setup(t)
	defer teardown()

	arg := &transactionrecord.PaymentApproval{
		Owner:    fixtures.Account(fixtures.UserOne),
		Quantity: fixtures.CreateFee,
		Payload:  "",
		Sequence: 1,
	}

	var pr credit.PayReply
	err := c.Pay(arg, &pr)
	assert.Equal(t, fault.NameTooShort, err, "wrong error")
}

func TestCreditPayWhenNilArguments(t *testing.T) {
	c := setup(t)
	defer teardown()

	var pr credit.PayReply
	err := c.Pay(nil, &pr)
	assert.Equal(t, fault.InvalidItem, err, "wrong error")
}
