// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package credit

import (
	"github.com/bitmark-inc/licentiad/account"
	"github.com/bitmark-inc/licentiad/fault"
	"github.com/bitmark-inc/licentiad/ledger"
	"github.com/bitmark-inc/licentiad/mode"
	"github.com/bitmark-inc/licentiad/rpc/ratelimit"
	"github.com/bitmark-inc/licentiad/transactionrecord"
	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"
)

const (
	rateLimitCredit = 200
	rateBurstCredit = 100
)

// Credit - type for the RPC
type Credit struct {
	Log            *logger.L
	Limiter        *rate.Limiter
	IsNormalMode   func(mode.Mode) bool
	IsTestingChain func() bool
	ReadOnly       bool
}

func New(log *logger.L,
	isNormalMode func(mode.Mode) bool,
	isTestingChain func() bool,
	readOnly bool,
) *Credit {
	return &Credit{
		Log:            log,
		Limiter:        rate.NewLimiter(rateLimitCredit, rateBurstCredit),
		IsNormalMode:   isNormalMode,
		IsTestingChain: isTestingChain,
		ReadOnly:       readOnly,
	}
}

// ---

// BalanceArguments - account to query
type BalanceArguments struct {
	Account *account.Account `json:"account"` // base58
}

// BalanceReply - balance and next sequence number of the account
type BalanceReply struct {
	Balance  uint64 `json:"balance"`
	Sequence uint64 `json:"sequence"`
}

// Balance - return the spendable credits of an account
func (credit *Credit) Balance(arguments *BalanceArguments, reply *BalanceReply) error {
	if err := ratelimit.Limit(credit.Limiter); err != nil {
		return err
	}

	log := credit.Log

	log.Infof("Credit.Balance: %+v", arguments)

	if arguments == nil || arguments.Account == nil {
		return fault.InvalidItem
	}

	balance, err := ledger.Balance(arguments.Account)
	if err != nil {
		return err
	}

	sequence, err := ledger.NextSequence(arguments.Account)
	if err != nil {
		return err
	}

	reply.Balance = balance
	reply.Sequence = sequence

	return nil
}

// ---

// AllowanceArguments - owner and spender pair to query
type AllowanceArguments struct {
	Owner   *account.Account `json:"owner"`   // base58
	Spender *account.Account `json:"spender"` // base58
}

// AllowanceReply - remaining authorisation for the pair
type AllowanceReply struct {
	Allowance uint64 `json:"allowance"`
}

// Allowance - return what the spender may still draw from the owner
func (credit *Credit) Allowance(arguments *AllowanceArguments, reply *AllowanceReply) error {
	if err := ratelimit.Limit(credit.Limiter); err != nil {
		return err
	}

	log := credit.Log

	log.Infof("Credit.Allowance: %+v", arguments)

	if arguments == nil || arguments.Owner == nil || arguments.Spender == nil {
		return fault.InvalidItem
	}

	allowance, err := ledger.Allowance(arguments.Owner, arguments.Spender)
	if err != nil {
		return err
	}

	reply.Allowance = allowance

	return nil
}

// ---

// TransferReply - owner balance and next sequence after the move
type TransferReply struct {
	Balance  uint64 `json:"balance"`
	Sequence uint64 `json:"sequence"`
}

// Transfer - move credits from the signing owner to a recipient
func (credit *Credit) Transfer(arguments *transactionrecord.CreditTransfer, reply *TransferReply) error {
	if err := ratelimit.Limit(credit.Limiter); err != nil {
		return err
	}
	if credit.ReadOnly {
		return fault.NotAvailableInReadOnlyMode
	}

	log := credit.Log

	log.Infof("Credit.Transfer: %+v", arguments)

	if arguments == nil || arguments.Owner == nil {
		return fault.InvalidItem
	}

	if !credit.IsNormalMode(mode.Normal) {
		return fault.NotAvailableDuringSynchronise
	}

	if arguments.Owner.IsTesting() != credit.IsTestingChain() {
		return fault.WrongNetworkForPublicKey
	}

	// verify field ranges and the owner signature
	if _, err := arguments.Pack(arguments.Owner); err != nil {
		return err
	}

	err := ledger.Transfer(arguments.Owner, arguments.Recipient, arguments.Quantity, arguments.Sequence)
	if err != nil {
		return err
	}

	balance, err := ledger.Balance(arguments.Owner)
	if err != nil {
		return err
	}

	sequence, err := ledger.NextSequence(arguments.Owner)
	if err != nil {
		return err
	}

	reply.Balance = balance
	reply.Sequence = sequence

	return nil
}

// ---

// GrantReply - authorisation in force and next sequence of the owner
type GrantReply struct {
	Allowance uint64 `json:"allowance"`
	Sequence  uint64 `json:"sequence"`
}

// Grant - authorise a spender up to a limit, replacing any previous
// authorisation; a zero quantity revokes
func (credit *Credit) Grant(arguments *transactionrecord.AllowanceGrant, reply *GrantReply) error {
	if err := ratelimit.Limit(credit.Limiter); err != nil {
		return err
	}
	if credit.ReadOnly {
		return fault.NotAvailableInReadOnlyMode
	}

	log := credit.Log

	log.Infof("Credit.Grant: %+v", arguments)

	if arguments == nil || arguments.Owner == nil {
		return fault.InvalidItem
	}

	if !credit.IsNormalMode(mode.Normal) {
		return fault.NotAvailableDuringSynchronise
	}

	if arguments.Owner.IsTesting() != credit.IsTestingChain() {
		return fault.WrongNetworkForPublicKey
	}

	if _, err := arguments.Pack(arguments.Owner); err != nil {
		return err
	}

	err := ledger.GrantAllowance(arguments.Owner, arguments.Spender, arguments.Quantity, arguments.Sequence)
	if err != nil {
		return err
	}

	allowance, err := ledger.Allowance(arguments.Owner, arguments.Spender)
	if err != nil {
		return err
	}

	sequence, err := ledger.NextSequence(arguments.Owner)
	if err != nil {
		return err
	}

	reply.Allowance = allowance
	reply.Sequence = sequence

	return nil
}

// ---

// SpendReply - remaining authorisation and next sequence of the spender
type SpendReply struct {
	Allowance uint64 `json:"allowance"`
	Sequence  uint64 `json:"sequence"`
}

// Spend - move credits out of the owner's account using the signing
// spender's authorisation
func (credit *Credit) Spend(arguments *transactionrecord.AllowanceSpend, reply *SpendReply) error {
	if err := ratelimit.Limit(credit.Limiter); err != nil {
		return err
	}
	if credit.ReadOnly {
		return fault.NotAvailableInReadOnlyMode
	}

	log := credit.Log

	log.Infof("Credit.Spend: %+v", arguments)

	if arguments == nil || arguments.Spender == nil {
		return fault.InvalidItem
	}

	if !credit.IsNormalMode(mode.Normal) {
		return fault.NotAvailableDuringSynchronise
	}

	if arguments.Spender.IsTesting() != credit.IsTestingChain() {
		return fault.WrongNetworkForPublicKey
	}

	// the spender signs, not the owner
	if _, err := arguments.Pack(arguments.Spender); err != nil {
		return err
	}

	err := ledger.SpendAllowance(arguments.Spender, arguments.Owner, arguments.Recipient, arguments.Quantity, arguments.Sequence)
	if err != nil {
		return err
	}

	allowance, err := ledger.Allowance(arguments.Owner, arguments.Spender)
	if err != nil {
		return err
	}

	sequence, err := ledger.NextSequence(arguments.Spender)
	if err != nil {
		return err
	}

	reply.Allowance = allowance
	reply.Sequence = sequence

	return nil
}

// ---

// PayReply - identifier of the registered record with the owner's
// balance and next sequence after the fee
type PayReply struct {
	RecordId transactionrecord.RecordIdentifier `json:"recordId"`
	Balance  uint64                             `json:"balance"`
	Sequence uint64                             `json:"sequence"`
}

// Pay - approve a payment and register a license record in one step
//
// the quantity is placed as an exact authorisation for the dispatcher
// and the whole operation aborts if the registration fails, so no
// residual authorisation survives a failed registration
func (credit *Credit) Pay(arguments *transactionrecord.PaymentApproval, reply *PayReply) error {
	if err := ratelimit.Limit(credit.Limiter); err != nil {
		return err
	}
	if credit.ReadOnly {
		return fault.NotAvailableInReadOnlyMode
	}

	log := credit.Log

	log.Infof("Credit.Pay: %+v", arguments)

	if arguments == nil || arguments.Owner == nil {
		return fault.InvalidItem
	}

	if !credit.IsNormalMode(mode.Normal) {
		return fault.NotAvailableDuringSynchronise
	}

	if arguments.Owner.IsTesting() != credit.IsTestingChain() {
		return fault.WrongNetworkForPublicKey
	}

	if _, err := arguments.Pack(arguments.Owner); err != nil {
		return err
	}

	recordId, err := ledger.PayAndRegister(arguments.Owner, arguments.Quantity, []byte(arguments.Payload), arguments.Sequence)
	if err != nil {
		return err
	}

	log.Debugf("id: %v", recordId)

	balance, err := ledger.Balance(arguments.Owner)
	if err != nil {
		return err
	}

	sequence, err := ledger.NextSequence(arguments.Owner)
	if err != nil {
		return err
	}

	reply.RecordId = recordId
	reply.Balance = balance
	reply.Sequence = sequence

	return nil
}
