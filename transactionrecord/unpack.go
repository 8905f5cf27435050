// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"github.com/bitmark-inc/licentiad/account"
	"github.com/bitmark-inc/licentiad/fault"
	"github.com/bitmark-inc/licentiad/util"
)

// Unpack - turn a byte slice into a record
//
// Note: the unpacker will access the underlying array of the packed
//       record so p[x:y].Unpack() can read past p[y] and could continue up to cap(p)
//       i.e p[x:cap(p)].Unpack() performs the same operation
//       elements before p[x] cannot be accessed
//       see: https://blog.golang.org/go-slices-usage-and-internals
//
// must cast result to correct type
//
// e.g.
//   transfer, ok := result.(*transactionrecord.CreditTransfer)
// or:
//   switch tx := result.(type) {
//   case *transactionrecord.CreditTransfer:
func (record Packed) Unpack(testnet bool) (t Transaction, n int, e error) {

	defer func() {
		if r := recover(); nil != r {
			e = fault.NotTransactionPack
		}
	}()

	recordType, n := util.ClippedVarint64(record, 1, 8192)
	if 0 == n {
		return nil, 0, fault.NotTransactionPack
	}

unpack_switch:
	switch TagType(recordType) {

	case CreditTransferTag:

		// owner public key
		ownerLength, ownerOffset := util.ClippedVarint64(record[n:], 1, 8192)
		if 0 == ownerOffset {
			break unpack_switch
		}
		n += ownerOffset
		owner, err := account.AccountFromBytes(record[n : n+ownerLength])
		if nil != err {
			return nil, 0, err
		}
		if owner.IsTesting() != testnet {
			return nil, 0, fault.WrongNetworkForPublicKey
		}
		n += ownerLength

		// recipient public key
		recipientLength, recipientOffset := util.ClippedVarint64(record[n:], 1, 8192)
		if 0 == recipientOffset {
			break unpack_switch
		}
		n += recipientOffset
		recipient, err := account.AccountFromBytes(record[n : n+recipientLength])
		if nil != err {
			return nil, 0, err
		}
		if recipient.IsTesting() != testnet {
			return nil, 0, fault.WrongNetworkForPublicKey
		}
		n += recipientLength

		// number of credits to transfer
		quantity, quantityLength := util.FromVarint64(record[n:])
		if 0 == quantityLength {
			break unpack_switch
		}
		n += quantityLength

		// sequence number
		sequence, sequenceLength := util.FromVarint64(record[n:])
		if 0 == sequenceLength {
			break unpack_switch
		}
		n += sequenceLength

		// signature is remainder of record
		signatureLength, signatureOffset := util.ClippedVarint64(record[n:], 1, 8192)
		if 0 == signatureOffset {
			break unpack_switch
		}
		signature := make(account.Signature, signatureLength)
		n += signatureOffset
		copy(signature, record[n:n+signatureLength])
		n += signatureLength

		r := &CreditTransfer{
			Owner:     owner,
			Recipient: recipient,
			Quantity:  quantity,
			Sequence:  sequence,
			Signature: signature,
		}
		return r, n, nil

	case AllowanceGrantTag:

		// owner public key
		ownerLength, ownerOffset := util.ClippedVarint64(record[n:], 1, 8192)
		if 0 == ownerOffset {
			break unpack_switch
		}
		n += ownerOffset
		owner, err := account.AccountFromBytes(record[n : n+ownerLength])
		if nil != err {
			return nil, 0, err
		}
		if owner.IsTesting() != testnet {
			return nil, 0, fault.WrongNetworkForPublicKey
		}
		n += ownerLength

		// spender public key
		spenderLength, spenderOffset := util.ClippedVarint64(record[n:], 1, 8192)
		if 0 == spenderOffset {
			break unpack_switch
		}
		n += spenderOffset
		spender, err := account.AccountFromBytes(record[n : n+spenderLength])
		if nil != err {
			return nil, 0, err
		}
		if spender.IsTesting() != testnet {
			return nil, 0, fault.WrongNetworkForPublicKey
		}
		n += spenderLength

		// authorised quantity
		quantity, quantityLength := util.FromVarint64(record[n:])
		if 0 == quantityLength {
			break unpack_switch
		}
		n += quantityLength

		// sequence number
		sequence, sequenceLength := util.FromVarint64(record[n:])
		if 0 == sequenceLength {
			break unpack_switch
		}
		n += sequenceLength

		// signature is remainder of record
		signatureLength, signatureOffset := util.ClippedVarint64(record[n:], 1, 8192)
		if 0 == signatureOffset {
			break unpack_switch
		}
		signature := make(account.Signature, signatureLength)
		n += signatureOffset
		copy(signature, record[n:n+signatureLength])
		n += signatureLength

		r := &AllowanceGrant{
			Owner:     owner,
			Spender:   spender,
			Quantity:  quantity,
			Sequence:  sequence,
			Signature: signature,
		}
		return r, n, nil

	case AllowanceSpendTag:

		// spender public key
		spenderLength, spenderOffset := util.ClippedVarint64(record[n:], 1, 8192)
		if 0 == spenderOffset {
			break unpack_switch
		}
		n += spenderOffset
		spender, err := account.AccountFromBytes(record[n : n+spenderLength])
		if nil != err {
			return nil, 0, err
		}
		if spender.IsTesting() != testnet {
			return nil, 0, fault.WrongNetworkForPublicKey
		}
		n += spenderLength

		// owner public key
		ownerLength, ownerOffset := util.ClippedVarint64(record[n:], 1, 8192)
		if 0 == ownerOffset {
			break unpack_switch
		}
		n += ownerOffset
		owner, err := account.AccountFromBytes(record[n : n+ownerLength])
		if nil != err {
			return nil, 0, err
		}
		if owner.IsTesting() != testnet {
			return nil, 0, fault.WrongNetworkForPublicKey
		}
		n += ownerLength

		// recipient public key
		recipientLength, recipientOffset := util.ClippedVarint64(record[n:], 1, 8192)
		if 0 == recipientOffset {
			break unpack_switch
		}
		n += recipientOffset
		recipient, err := account.AccountFromBytes(record[n : n+recipientLength])
		if nil != err {
			return nil, 0, err
		}
		if recipient.IsTesting() != testnet {
			return nil, 0, fault.WrongNetworkForPublicKey
		}
		n += recipientLength

		// number of credits to transfer
		quantity, quantityLength := util.FromVarint64(record[n:])
		if 0 == quantityLength {
			break unpack_switch
		}
		n += quantityLength

		// sequence number
		sequence, sequenceLength := util.FromVarint64(record[n:])
		if 0 == sequenceLength {
			break unpack_switch
		}
		n += sequenceLength

		// signature is remainder of record
		signatureLength, signatureOffset := util.ClippedVarint64(record[n:], 1, 8192)
		if 0 == signatureOffset {
			break unpack_switch
		}
		signature := make(account.Signature, signatureLength)
		n += signatureOffset
		copy(signature, record[n:n+signatureLength])
		n += signatureLength

		r := &AllowanceSpend{
			Spender:   spender,
			Owner:     owner,
			Recipient: recipient,
			Quantity:  quantity,
			Sequence:  sequence,
			Signature: signature,
		}
		return r, n, nil

	case PaymentApprovalTag:

		// owner public key
		ownerLength, ownerOffset := util.ClippedVarint64(record[n:], 1, 8192)
		if 0 == ownerOffset {
			break unpack_switch
		}
		n += ownerOffset
		owner, err := account.AccountFromBytes(record[n : n+ownerLength])
		if nil != err {
			return nil, 0, err
		}
		if owner.IsTesting() != testnet {
			return nil, 0, fault.WrongNetworkForPublicKey
		}
		n += ownerLength

		// credits offered
		quantity, quantityLength := util.FromVarint64(record[n:])
		if 0 == quantityLength {
			break unpack_switch
		}
		n += quantityLength

		// payload
		payloadLength, payloadOffset := util.ClippedVarint64(record[n:], 1, 8192)
		if 0 == payloadOffset {
			break unpack_switch
		}
		payload := make([]byte, payloadLength)
		n += payloadOffset
		copy(payload, record[n:n+payloadLength])
		n += payloadLength

		// sequence number
		sequence, sequenceLength := util.FromVarint64(record[n:])
		if 0 == sequenceLength {
			break unpack_switch
		}
		n += sequenceLength

		// signature is remainder of record
		signatureLength, signatureOffset := util.ClippedVarint64(record[n:], 1, 8192)
		if 0 == signatureOffset {
			break unpack_switch
		}
		signature := make(account.Signature, signatureLength)
		n += signatureOffset
		copy(signature, record[n:n+signatureLength])
		n += signatureLength

		r := &PaymentApproval{
			Owner:     owner,
			Quantity:  quantity,
			Payload:   string(payload),
			Sequence:  sequence,
			Signature: signature,
		}
		return r, n, nil

	case FeeUpdateTag:

		// owner public key
		ownerLength, ownerOffset := util.ClippedVarint64(record[n:], 1, 8192)
		if 0 == ownerOffset {
			break unpack_switch
		}
		n += ownerOffset
		owner, err := account.AccountFromBytes(record[n : n+ownerLength])
		if nil != err {
			return nil, 0, err
		}
		if owner.IsTesting() != testnet {
			return nil, 0, fault.WrongNetworkForPublicKey
		}
		n += ownerLength

		// registration fee
		createFee, createFeeLength := util.FromVarint64(record[n:])
		if 0 == createFeeLength {
			break unpack_switch
		}
		n += createFeeLength

		// amendment fee
		updateFee, updateFeeLength := util.FromVarint64(record[n:])
		if 0 == updateFeeLength {
			break unpack_switch
		}
		n += updateFeeLength

		// sequence number
		sequence, sequenceLength := util.FromVarint64(record[n:])
		if 0 == sequenceLength {
			break unpack_switch
		}
		n += sequenceLength

		// signature is remainder of record
		signatureLength, signatureOffset := util.ClippedVarint64(record[n:], 1, 8192)
		if 0 == signatureOffset {
			break unpack_switch
		}
		signature := make(account.Signature, signatureLength)
		n += signatureOffset
		copy(signature, record[n:n+signatureLength])
		n += signatureLength

		r := &FeeUpdate{
			Owner:     owner,
			CreateFee: createFee,
			UpdateFee: updateFee,
			Sequence:  sequence,
			Signature: signature,
		}
		return r, n, nil

	case DispatcherBindingTag:

		// owner public key
		ownerLength, ownerOffset := util.ClippedVarint64(record[n:], 1, 8192)
		if 0 == ownerOffset {
			break unpack_switch
		}
		n += ownerOffset
		owner, err := account.AccountFromBytes(record[n : n+ownerLength])
		if nil != err {
			return nil, 0, err
		}
		if owner.IsTesting() != testnet {
			return nil, 0, fault.WrongNetworkForPublicKey
		}
		n += ownerLength

		// dispatcher public key
		dispatcherLength, dispatcherOffset := util.ClippedVarint64(record[n:], 1, 8192)
		if 0 == dispatcherOffset {
			break unpack_switch
		}
		n += dispatcherOffset
		dispatcher, err := account.AccountFromBytes(record[n : n+dispatcherLength])
		if nil != err {
			return nil, 0, err
		}
		if dispatcher.IsTesting() != testnet {
			return nil, 0, fault.WrongNetworkForPublicKey
		}
		n += dispatcherLength

		// sequence number
		sequence, sequenceLength := util.FromVarint64(record[n:])
		if 0 == sequenceLength {
			break unpack_switch
		}
		n += sequenceLength

		// signature is remainder of record
		signatureLength, signatureOffset := util.ClippedVarint64(record[n:], 1, 8192)
		if 0 == signatureOffset {
			break unpack_switch
		}
		signature := make(account.Signature, signatureLength)
		n += signatureOffset
		copy(signature, record[n:n+signatureLength])
		n += signatureLength

		r := &DispatcherBinding{
			Owner:      owner,
			Dispatcher: dispatcher,
			Sequence:   sequence,
			Signature:  signature,
		}
		return r, n, nil

	case LicenseAmendmentTag:

		// owner public key
		ownerLength, ownerOffset := util.ClippedVarint64(record[n:], 1, 8192)
		if 0 == ownerOffset {
			break unpack_switch
		}
		n += ownerOffset
		owner, err := account.AccountFromBytes(record[n : n+ownerLength])
		if nil != err {
			return nil, 0, err
		}
		if owner.IsTesting() != testnet {
			return nil, 0, fault.WrongNetworkForPublicKey
		}
		n += ownerLength

		// record id
		recordIdLength, recordIdOffset := util.ClippedVarint64(record[n:], 1, 8192)
		if 0 == recordIdOffset {
			break unpack_switch
		}
		n += recordIdOffset
		var recordId RecordIdentifier
		err = RecordIdentifierFromBytes(&recordId, record[n:n+recordIdLength])
		if nil != err {
			return nil, 0, err
		}
		n += recordIdLength

		// replacement name
		nameLength, nameOffset := util.ClippedVarint64(record[n:], 1, 8192)
		if 0 == nameOffset {
			break unpack_switch
		}
		name := make([]byte, nameLength)
		n += nameOffset
		copy(name, record[n:n+nameLength])
		n += nameLength

		// sequence number
		sequence, sequenceLength := util.FromVarint64(record[n:])
		if 0 == sequenceLength {
			break unpack_switch
		}
		n += sequenceLength

		// signature is remainder of record
		signatureLength, signatureOffset := util.ClippedVarint64(record[n:], 1, 8192)
		if 0 == signatureOffset {
			break unpack_switch
		}
		signature := make(account.Signature, signatureLength)
		n += signatureOffset
		copy(signature, record[n:n+signatureLength])
		n += signatureLength

		r := &LicenseAmendment{
			Owner:     owner,
			RecordId:  recordId,
			Name:      string(name),
			Sequence:  sequence,
			Signature: signature,
		}
		return r, n, nil

	default: // also NullTag
	}
	return nil, 0, fault.NotTransactionPack
}
