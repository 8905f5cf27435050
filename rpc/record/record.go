// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"github.com/bitmark-inc/licentiad/account"
	"github.com/bitmark-inc/licentiad/fault"
	"github.com/bitmark-inc/licentiad/ledger"
	"github.com/bitmark-inc/licentiad/license"
	"github.com/bitmark-inc/licentiad/messagebus"
	"github.com/bitmark-inc/licentiad/mode"
	"github.com/bitmark-inc/licentiad/rpc/ratelimit"
	"github.com/bitmark-inc/licentiad/storage"
	"github.com/bitmark-inc/licentiad/transactionrecord"
	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"
)

const (
	rateLimitRecord = 200
	rateBurstRecord = 100
)

// Record - type for the RPC
type Record struct {
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
) *Record {
	return &Record{
		Log:            log,
		Limiter:        rate.NewLimiter(rateLimitRecord, rateBurstRecord),
		IsNormalMode:   isNormalMode,
		IsTestingChain: isTestingChain,
		ReadOnly:       readOnly,
	}
}

// ---

// GetArguments - record identifier to fetch
type GetArguments struct {
	RecordId transactionrecord.RecordIdentifier `json:"recordId"`
}

// GetReply - stored license record fields and amendment count
type GetReply struct {
	Name        string           `json:"name"`
	ContentHash uint64           `json:"contentHash,string"`
	Licensor    *account.Account `json:"licensor"`   // base58
	Dispatcher  *account.Account `json:"dispatcher"` // base58
	Root        *account.Account `json:"root"`       // base58
	Amendments  uint64           `json:"amendments"`
}

// Get - return a stored license record
func (record *Record) Get(arguments *GetArguments, reply *GetReply) error {
	if err := ratelimit.Limit(record.Limiter); err != nil {
		return err
	}

	log := record.Log

	log.Infof("Record.Get: %+v", arguments)

	if arguments == nil {
		return fault.InvalidItem
	}

	r, amendments, err := license.Fetch(nil, arguments.RecordId)
	if err != nil {
		return err
	}

	reply.Name = r.Name
	reply.ContentHash = r.ContentHash
	reply.Licensor = r.Licensor
	reply.Dispatcher = r.Dispatcher
	reply.Root = r.Root
	reply.Amendments = amendments

	return nil
}

// ---

// ModifyReply - amendment count and next sequence of the caller
type ModifyReply struct {
	Amendments uint64 `json:"amendments"`
	Sequence   uint64 `json:"sequence"`
}

// Modify - rename a record directly, signed by the dispatcher frozen
// into the record or by root
//
// no fee is taken on this path; licensors rename through the
// dispatcher's amendment operation instead
func (record *Record) Modify(arguments *transactionrecord.LicenseAmendment, reply *ModifyReply) error {
	if err := ratelimit.Limit(record.Limiter); err != nil {
		return err
	}
	if record.ReadOnly {
		return fault.NotAvailableInReadOnlyMode
	}

	log := record.Log

	log.Infof("Record.Modify: %+v", arguments)

	if arguments == nil || arguments.Owner == nil {
		return fault.InvalidItem
	}

	if !record.IsNormalMode(mode.Normal) {
		return fault.NotAvailableDuringSynchronise
	}

	if arguments.Owner.IsTesting() != record.IsTestingChain() {
		return fault.WrongNetworkForPublicKey
	}

	// verify field ranges and the owner signature
	if _, err := arguments.Pack(arguments.Owner); err != nil {
		return err
	}

	err := ledger.Execute(func(trx storage.Transaction) error {
		err := ledger.CheckAndIncrementSequence(trx, arguments.Owner, arguments.Sequence)
		if err != nil {
			return err
		}
		return license.Modify(trx, arguments.Owner, arguments.RecordId, arguments.Name)
	})
	if err != nil {
		return err
	}

	messagebus.Bus.Broadcast.Send("amend", arguments.RecordId[:], []byte(arguments.Name), arguments.Owner.Bytes())

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
