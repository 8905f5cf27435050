// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"unicode/utf8"

	"github.com/bitmark-inc/licentiad/account"
	"github.com/bitmark-inc/licentiad/fault"
	"github.com/bitmark-inc/licentiad/util"
)

// Pack - pack a CreditTransfer
//
// Pack Varint64(tag) followed by fields in order as struct above with
// signature last
//
// NOTE: returns the "unsigned" message on signature failure - for
//       debugging/testing
func (transfer *CreditTransfer) Pack(address *account.Account) (Packed, error) {
	if len(transfer.Signature) > maxSignatureLength {
		return nil, fault.SignatureTooLong
	}

	if nil == transfer.Owner || nil == transfer.Recipient || nil == address {
		return nil, fault.InvalidOwnerOrRecipient
	}

	if 0 == transfer.Quantity {
		return nil, fault.QuantityTooSmall
	}

	// concatenate bytes
	message := util.ToVarint64(uint64(CreditTransferTag))
	message = appendAccount(message, transfer.Owner)
	message = appendAccount(message, transfer.Recipient)
	message = appendUint64(message, transfer.Quantity)
	message = appendUint64(message, transfer.Sequence)

	// signature
	err := address.CheckSignature(message, transfer.Signature)
	if nil != err {
		return message, err
	}
	// Signature Last
	return appendBytes(message, transfer.Signature), nil
}

// Pack - pack an AllowanceGrant
//
// Pack Varint64(tag) followed by fields in order as struct above with
// signature last
//
// a zero quantity is allowed here: granting zero revokes any
// previous authorisation for the spender
//
// NOTE: returns the "unsigned" message on signature failure - for
//       debugging/testing
func (grant *AllowanceGrant) Pack(address *account.Account) (Packed, error) {
	if len(grant.Signature) > maxSignatureLength {
		return nil, fault.SignatureTooLong
	}

	if nil == grant.Owner || nil == grant.Spender || nil == address {
		return nil, fault.InvalidOwnerOrRecipient
	}

	// concatenate bytes
	message := util.ToVarint64(uint64(AllowanceGrantTag))
	message = appendAccount(message, grant.Owner)
	message = appendAccount(message, grant.Spender)
	message = appendUint64(message, grant.Quantity)
	message = appendUint64(message, grant.Sequence)

	// signature
	err := address.CheckSignature(message, grant.Signature)
	if nil != err {
		return message, err
	}
	// Signature Last
	return appendBytes(message, grant.Signature), nil
}

// Pack - pack an AllowanceSpend
//
// Pack Varint64(tag) followed by fields in order as struct above with
// signature last
//
// NOTE: returns the "unsigned" message on signature failure - for
//       debugging/testing
func (spend *AllowanceSpend) Pack(address *account.Account) (Packed, error) {
	if len(spend.Signature) > maxSignatureLength {
		return nil, fault.SignatureTooLong
	}

	if nil == spend.Spender || nil == spend.Owner || nil == spend.Recipient || nil == address {
		return nil, fault.InvalidOwnerOrRecipient
	}

	if 0 == spend.Quantity {
		return nil, fault.QuantityTooSmall
	}

	// concatenate bytes
	message := util.ToVarint64(uint64(AllowanceSpendTag))
	message = appendAccount(message, spend.Spender)
	message = appendAccount(message, spend.Owner)
	message = appendAccount(message, spend.Recipient)
	message = appendUint64(message, spend.Quantity)
	message = appendUint64(message, spend.Sequence)

	// signature
	err := address.CheckSignature(message, spend.Signature)
	if nil != err {
		return message, err
	}
	// Signature Last
	return appendBytes(message, spend.Signature), nil
}

// Pack - pack a PaymentApproval
//
// Pack Varint64(tag) followed by fields in order as struct above with
// signature last
//
// the quantity may be zero so that a zero fee schedule still works
//
// NOTE: returns the "unsigned" message on signature failure - for
//       debugging/testing
func (approval *PaymentApproval) Pack(address *account.Account) (Packed, error) {
	if len(approval.Signature) > maxSignatureLength {
		return nil, fault.SignatureTooLong
	}

	if nil == approval.Owner || nil == address {
		return nil, fault.InvalidOwnerOrRecipient
	}

	if utf8.RuneCountInString(approval.Payload) < minNameLength {
		return nil, fault.NameTooShort
	}
	if utf8.RuneCountInString(approval.Payload) > maxNameLength {
		return nil, fault.NameTooLong
	}

	// concatenate bytes
	message := util.ToVarint64(uint64(PaymentApprovalTag))
	message = appendAccount(message, approval.Owner)
	message = appendUint64(message, approval.Quantity)
	message = appendString(message, approval.Payload)
	message = appendUint64(message, approval.Sequence)

	// signature
	err := address.CheckSignature(message, approval.Signature)
	if nil != err {
		return message, err
	}
	// Signature Last
	return appendBytes(message, approval.Signature), nil
}

// Pack - pack a FeeUpdate
//
// Pack Varint64(tag) followed by fields in order as struct above with
// signature last
//
// either fee may be zero
//
// NOTE: returns the "unsigned" message on signature failure - for
//       debugging/testing
func (update *FeeUpdate) Pack(address *account.Account) (Packed, error) {
	if len(update.Signature) > maxSignatureLength {
		return nil, fault.SignatureTooLong
	}

	if nil == update.Owner || nil == address {
		return nil, fault.InvalidOwnerOrRecipient
	}

	// concatenate bytes
	message := util.ToVarint64(uint64(FeeUpdateTag))
	message = appendAccount(message, update.Owner)
	message = appendUint64(message, update.CreateFee)
	message = appendUint64(message, update.UpdateFee)
	message = appendUint64(message, update.Sequence)

	// signature
	err := address.CheckSignature(message, update.Signature)
	if nil != err {
		return message, err
	}
	// Signature Last
	return appendBytes(message, update.Signature), nil
}

// Pack - pack a DispatcherBinding
//
// Pack Varint64(tag) followed by fields in order as struct above with
// signature last
//
// NOTE: returns the "unsigned" message on signature failure - for
//       debugging/testing
func (binding *DispatcherBinding) Pack(address *account.Account) (Packed, error) {
	if len(binding.Signature) > maxSignatureLength {
		return nil, fault.SignatureTooLong
	}

	if nil == binding.Owner || nil == binding.Dispatcher || nil == address {
		return nil, fault.InvalidOwnerOrRecipient
	}

	// concatenate bytes
	message := util.ToVarint64(uint64(DispatcherBindingTag))
	message = appendAccount(message, binding.Owner)
	message = appendAccount(message, binding.Dispatcher)
	message = appendUint64(message, binding.Sequence)

	// signature
	err := address.CheckSignature(message, binding.Signature)
	if nil != err {
		return message, err
	}
	// Signature Last
	return appendBytes(message, binding.Signature), nil
}

// Pack - pack a LicenseAmendment
//
// Pack Varint64(tag) followed by fields in order as struct above with
// signature last
//
// NOTE: returns the "unsigned" message on signature failure - for
//       debugging/testing
func (amendment *LicenseAmendment) Pack(address *account.Account) (Packed, error) {
	if len(amendment.Signature) > maxSignatureLength {
		return nil, fault.SignatureTooLong
	}

	if nil == amendment.Owner || nil == address {
		return nil, fault.InvalidOwnerOrRecipient
	}

	if utf8.RuneCountInString(amendment.Name) < minNameLength {
		return nil, fault.NameTooShort
	}
	if utf8.RuneCountInString(amendment.Name) > maxNameLength {
		return nil, fault.NameTooLong
	}

	// concatenate bytes
	message := util.ToVarint64(uint64(LicenseAmendmentTag))
	message = appendAccount(message, amendment.Owner)
	message = appendBytes(message, amendment.RecordId[:])
	message = appendString(message, amendment.Name)
	message = appendUint64(message, amendment.Sequence)

	// signature
	err := address.CheckSignature(message, amendment.Signature)
	if nil != err {
		return message, err
	}
	// Signature Last
	return appendBytes(message, amendment.Signature), nil
}

// append a single field to a buffer
//
// the field is prefixed by Varint64(length)
func appendString(buffer Packed, s string) Packed {
	l := util.ToVarint64(uint64(len(s)))
	buffer = append(buffer, l...)
	return append(buffer, s...)
}

// append an address to a buffer
//
// the field is prefixed by Varint64(length)
func appendAccount(buffer Packed, address *account.Account) Packed {
	data := address.Bytes()
	l := util.ToVarint64(uint64(len(data)))
	buffer = append(buffer, l...)
	buffer = append(buffer, data...)
	return buffer
}

// append a bytes to a buffer
//
// the field is prefixed by Varint64(length)
func appendBytes(buffer Packed, data []byte) Packed {
	l := util.ToVarint64(uint64(len(data)))
	buffer = append(buffer, l...)
	buffer = append(buffer, data...)
	return buffer
}

// append a Varint64 to buffer
func appendUint64(buffer Packed, value uint64) Packed {
	valueBytes := util.ToVarint64(value)
	buffer = append(buffer, valueBytes...)
	return buffer
}
