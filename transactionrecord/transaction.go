// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"encoding/hex"

	"github.com/bitmark-inc/licentiad/account"
	"github.com/bitmark-inc/licentiad/util"
)

// TagType - type code for records
type TagType uint64

// enumerate the possible record types
// this is encoded a Varint64 at start of "Packed"
const (
	// null marks beginning of list - not used as a record type
	NullTag = TagType(iota)

	// valid record types
	CreditTransferTag    = TagType(iota) // move credits between accounts
	AllowanceGrantTag    = TagType(iota) // authorise a spender up to a limit
	AllowanceSpendTag    = TagType(iota) // move credits using an allowance
	PaymentApprovalTag   = TagType(iota) // pay for a registration in one step
	FeeUpdateTag         = TagType(iota) // change the dispatcher fees
	DispatcherBindingTag = TagType(iota) // connect a dispatcher to the ledger
	LicenseAmendmentTag  = TagType(iota) // rename a license record

	// this item must be last
	InvalidTag = TagType(iota)
)

// Packed - packed records are just a byte slice
type Packed []byte

// Transaction - generic record interface
type Transaction interface {
	Pack(account *account.Account) (Packed, error)
}

// byte sizes for various fields
const (
	minNameLength      = 1
	maxNameLength      = 64
	maxSignatureLength = 1024
)

// CreditTransfer - move a quantity of credits from owner to recipient
type CreditTransfer struct {
	Owner     *account.Account  `json:"owner"`     // base58
	Recipient *account.Account  `json:"recipient"` // base58
	Quantity  uint64            `json:"quantity"`  // credits to move > 0
	Sequence  uint64            `json:"sequence"`  // next sequence number of owner
	Signature account.Signature `json:"signature"` // hex: corresponds to owner
}

// AllowanceGrant - authorise a spender to draw up to quantity from
// the owner, replacing any previous authorisation
type AllowanceGrant struct {
	Owner     *account.Account  `json:"owner"`     // base58
	Spender   *account.Account  `json:"spender"`   // base58
	Quantity  uint64            `json:"quantity"`  // zero revokes the authorisation
	Sequence  uint64            `json:"sequence"`  // next sequence number of owner
	Signature account.Signature `json:"signature"` // hex: corresponds to owner
}

// AllowanceSpend - move credits from owner to recipient using the
// spender's remaining allowance
type AllowanceSpend struct {
	Spender   *account.Account  `json:"spender"`   // base58
	Owner     *account.Account  `json:"owner"`     // base58: source of the credits
	Recipient *account.Account  `json:"recipient"` // base58
	Quantity  uint64            `json:"quantity"`  // credits to move > 0
	Sequence  uint64            `json:"sequence"`  // next sequence number of spender
	Signature account.Signature `json:"signature"` // hex: corresponds to spender
}

// PaymentApproval - approve a payment of quantity and request a
// registration in the same step
// payload is the utf-8 name for the requested license record
type PaymentApproval struct {
	Owner     *account.Account  `json:"owner"`     // base58: the paying account
	Quantity  uint64            `json:"quantity"`  // credits offered for the registration
	Payload   string            `json:"payload"`   // utf-8
	Sequence  uint64            `json:"sequence"`  // next sequence number of owner
	Signature account.Signature `json:"signature"` // hex: corresponds to owner
}

// FeeUpdate - replace the dispatcher fee schedule
// only valid when signed by the root account
type FeeUpdate struct {
	Owner     *account.Account  `json:"owner"`     // base58: must be root
	CreateFee uint64            `json:"createFee"` // credits per registration
	UpdateFee uint64            `json:"updateFee"` // credits per amendment
	Sequence  uint64            `json:"sequence"`  // next sequence number of owner
	Signature account.Signature `json:"signature"` // hex: corresponds to owner
}

// DispatcherBinding - connect a dispatcher account to the ledger
// only valid when signed by the root account and only accepted once
type DispatcherBinding struct {
	Owner      *account.Account  `json:"owner"`      // base58: must be root
	Dispatcher *account.Account  `json:"dispatcher"` // base58
	Sequence   uint64            `json:"sequence"`   // next sequence number of owner
	Signature  account.Signature `json:"signature"`  // hex: corresponds to owner
}

// LicenseAmendment - change the name of an existing license record
// accepted from the record's licensor or from root
type LicenseAmendment struct {
	Owner     *account.Account  `json:"owner"`     // base58
	RecordId  RecordIdentifier  `json:"recordId"`  // link to the license record
	Name      string            `json:"name"`      // utf-8: replacement name
	Sequence  uint64            `json:"sequence"`  // next sequence number of owner
	Signature account.Signature `json:"signature"` // hex: corresponds to owner
}

// Type - returns the record type code
func (record Packed) Type() TagType {
	recordType, n := util.FromVarint64(record)
	if 0 == n {
		return NullTag
	}
	return TagType(recordType)
}

// RecordName - returns the name of a record as a string
func RecordName(record interface{}) (string, bool) {
	switch record.(type) {
	case *CreditTransfer, CreditTransfer:
		return "CreditTransfer", true

	case *AllowanceGrant, AllowanceGrant:
		return "AllowanceGrant", true

	case *AllowanceSpend, AllowanceSpend:
		return "AllowanceSpend", true

	case *PaymentApproval, PaymentApproval:
		return "PaymentApproval", true

	case *FeeUpdate, FeeUpdate:
		return "FeeUpdate", true

	case *DispatcherBinding, DispatcherBinding:
		return "DispatcherBinding", true

	case *LicenseAmendment, LicenseAmendment:
		return "LicenseAmendment", true

	default:
		return "*unknown*", false
	}
}

// MakeId - create the record identifier for a packed record
func (record Packed) MakeId() RecordIdentifier {
	return NewRecordIdentifier(record)
}

// MarshalText - convert a packed to its hex JSON form
func (record Packed) MarshalText() ([]byte, error) {
	size := hex.EncodedLen(len(record))
	b := make([]byte, size)
	hex.Encode(b, record)
	return b, nil
}

// UnmarshalText - convert a packed to its hex JSON form
func (record *Packed) UnmarshalText(s []byte) error {
	size := hex.DecodedLen(len(s))
	*record = make([]byte, size)
	_, err := hex.Decode(*record, s)
	return err
}
