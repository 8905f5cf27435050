// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package registry

import (
	"github.com/bitmark-inc/licentiad/account"
	"github.com/bitmark-inc/licentiad/dispatcher"
	"github.com/bitmark-inc/licentiad/fault"
	"github.com/bitmark-inc/licentiad/ledger"
	"github.com/bitmark-inc/licentiad/license"
	"github.com/bitmark-inc/licentiad/mode"
	"github.com/bitmark-inc/licentiad/rpc/ratelimit"
	"github.com/bitmark-inc/licentiad/transactionrecord"
	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"
)

const (
	rateLimitRegistry = 200
	rateBurstRegistry = 100
)

// Registry - type for the RPC
type Registry struct {
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
) *Registry {
	return &Registry{
		Log:            log,
		Limiter:        rate.NewLimiter(rateLimitRegistry, rateBurstRegistry),
		IsNormalMode:   isNormalMode,
		IsTestingChain: isTestingChain,
		ReadOnly:       readOnly,
	}
}

// activation wrapper handed to the ledger when binding
func activate(acct *account.Account) (ledger.Dispatcher, error) {
	return dispatcher.Activate(acct)
}

// ---

// BindReply - next sequence number of root after the binding
type BindReply struct {
	Sequence uint64 `json:"sequence"`
}

// Bind - connect the dispatcher account to the ledger
//
// only root may sign this and only one binding is ever accepted
func (registry *Registry) Bind(arguments *transactionrecord.DispatcherBinding, reply *BindReply) error {
	if err := ratelimit.Limit(registry.Limiter); err != nil {
		return err
	}
	if registry.ReadOnly {
		return fault.NotAvailableInReadOnlyMode
	}

	log := registry.Log

	log.Infof("Registry.Bind: %+v", arguments)

	if arguments == nil || arguments.Owner == nil {
		return fault.InvalidItem
	}

	if !registry.IsNormalMode(mode.Normal) {
		return fault.NotAvailableDuringSynchronise
	}

	if arguments.Owner.IsTesting() != registry.IsTestingChain() {
		return fault.WrongNetworkForPublicKey
	}

	// verify field ranges and the owner signature
	if _, err := arguments.Pack(arguments.Owner); err != nil {
		return err
	}

	err := ledger.BindDispatcher(arguments.Owner, arguments.Dispatcher, activate, arguments.Sequence)
	if err != nil {
		return err
	}

	sequence, err := ledger.NextSequence(arguments.Owner)
	if err != nil {
		return err
	}

	reply.Sequence = sequence

	return nil
}

// ---

// FeesArguments - empty arguments for the fee request
type FeesArguments struct{}

// FeesReply - fee schedule and account of the bound dispatcher
type FeesReply struct {
	Dispatcher *account.Account `json:"dispatcher"` // base58
	CreateFee  uint64           `json:"createFee"`
	UpdateFee  uint64           `json:"updateFee"`
}

// Fees - return the current fee schedule
func (registry *Registry) Fees(_ *FeesArguments, reply *FeesReply) error {
	if err := ratelimit.Limit(registry.Limiter); err != nil {
		return err
	}

	log := registry.Log

	log.Info("Registry.Fees")

	createFee, updateFee := dispatcher.Fees()

	reply.Dispatcher = dispatcher.Account()
	reply.CreateFee = createFee
	reply.UpdateFee = updateFee

	return nil
}

// ---

// SetFeesReply - fee schedule in force and next sequence of root
type SetFeesReply struct {
	CreateFee uint64 `json:"createFee"`
	UpdateFee uint64 `json:"updateFee"`
	Sequence  uint64 `json:"sequence"`
}

// SetFees - replace the fee schedule, signed by root
func (registry *Registry) SetFees(arguments *transactionrecord.FeeUpdate, reply *SetFeesReply) error {
	if err := ratelimit.Limit(registry.Limiter); err != nil {
		return err
	}
	if registry.ReadOnly {
		return fault.NotAvailableInReadOnlyMode
	}

	log := registry.Log

	log.Infof("Registry.SetFees: %+v", arguments)

	if arguments == nil || arguments.Owner == nil {
		return fault.InvalidItem
	}

	if !registry.IsNormalMode(mode.Normal) {
		return fault.NotAvailableDuringSynchronise
	}

	if arguments.Owner.IsTesting() != registry.IsTestingChain() {
		return fault.WrongNetworkForPublicKey
	}

	if _, err := arguments.Pack(arguments.Owner); err != nil {
		return err
	}

	err := dispatcher.SetFees(arguments.Owner, arguments.CreateFee, arguments.UpdateFee, arguments.Sequence)
	if err != nil {
		return err
	}

	createFee, updateFee := dispatcher.Fees()

	sequence, err := ledger.NextSequence(arguments.Owner)
	if err != nil {
		return err
	}

	reply.CreateFee = createFee
	reply.UpdateFee = updateFee
	reply.Sequence = sequence

	return nil
}

// ---

// CreatorArguments - record identifier to look up
type CreatorArguments struct {
	RecordId transactionrecord.RecordIdentifier `json:"recordId"`
}

// CreatorReply - account whose payment created the record
type CreatorReply struct {
	Creator *account.Account `json:"creator"` // base58
}

// Creator - return the account that paid for a registration
func (registry *Registry) Creator(arguments *CreatorArguments, reply *CreatorReply) error {
	if err := ratelimit.Limit(registry.Limiter); err != nil {
		return err
	}

	log := registry.Log

	log.Infof("Registry.Creator: %+v", arguments)

	if arguments == nil {
		return fault.InvalidItem
	}

	creator, err := dispatcher.CreatorOf(arguments.RecordId)
	if err != nil {
		return err
	}

	reply.Creator = creator

	return nil
}

// ---

// AmendReply - amendment count and next sequence of the licensor
type AmendReply struct {
	Amendments uint64 `json:"amendments"`
	Sequence   uint64 `json:"sequence"`
}

// Amend - rename a record on behalf of its licensor
//
// the signing licensor pays the update fee from the authorisation it
// granted to the dispatcher; fee and rename commit together
func (registry *Registry) Amend(arguments *transactionrecord.LicenseAmendment, reply *AmendReply) error {
	if err := ratelimit.Limit(registry.Limiter); err != nil {
		return err
	}
	if registry.ReadOnly {
		return fault.NotAvailableInReadOnlyMode
	}

	log := registry.Log

	log.Infof("Registry.Amend: %+v", arguments)

	if arguments == nil || arguments.Owner == nil {
		return fault.InvalidItem
	}

	if !registry.IsNormalMode(mode.Normal) {
		return fault.NotAvailableDuringSynchronise
	}

	if arguments.Owner.IsTesting() != registry.IsTestingChain() {
		return fault.WrongNetworkForPublicKey
	}

	if _, err := arguments.Pack(arguments.Owner); err != nil {
		return err
	}

	err := dispatcher.RequestAmendment(arguments.Owner, arguments.RecordId, arguments.Name, arguments.Sequence)
	if err != nil {
		return err
	}

	_, amendments, err := license.Fetch(nil, arguments.RecordId)
	if err != nil {
		return err
	}

	sequence, err := ledger.NextSequence(arguments.Owner)
	if err != nil {
		return err
	}

	reply.Amendments = amendments
	reply.Sequence = sequence

	return nil
}
