// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package license

import (
	"encoding/binary"
	"unicode/utf8"

	"github.com/bitmark-inc/licentiad/account"
	"github.com/bitmark-inc/licentiad/fault"
	"github.com/bitmark-inc/licentiad/storage"
	"github.com/bitmark-inc/licentiad/transactionrecord"
)

const (
	uint64ByteSize = 8
)

// Create - store the record of a new registration
//
// the identifier is the digest of the packed creation form; storing
// the same registration twice is detected as a duplicate
//
// the caller supplies an open transaction so the store composes into
// the payment batch and aborts with it
func Create(
	trx storage.Transaction,
	name string,
	contentHash uint64,
	licensor *account.Account,
	dispatcher *account.Account,
	root *account.Account,
) (transactionrecord.RecordIdentifier, error) {

	recordId := transactionrecord.RecordIdentifier{}

	if nil == licensor || nil == dispatcher || nil == root {
		return recordId, fault.InvalidOwnerOrRecipient
	}

	if utf8.RuneCountInString(name) < minNameLength ||
		utf8.RuneCountInString(name) > maxNameLength {
		return recordId, fault.InvalidRecordName
	}

	record := Record{
		Name:        name,
		ContentHash: contentHash,
		Licensor:    licensor,
		Dispatcher:  dispatcher,
		Root:        root,
	}
	packed := record.Pack()

	recordId = transactionrecord.NewRecordIdentifier(packed)

	here, err := trx.Has(storage.Pool.Records, recordId[:])
	if nil != err {
		return recordId, err
	}
	if here {
		return recordId, fault.RecordAlreadyExists
	}

	// zero amendments at creation
	counter := make([]byte, uint64ByteSize)
	err = trx.Put(storage.Pool.Records, recordId[:], counter, packed)
	if nil != err {
		return recordId, err
	}

	return recordId, nil
}

// Fetch - read a stored record and its amendment counter
//
// pass a nil transaction for a plain read outside any batch
func Fetch(
	trx storage.Transaction,
	recordId transactionrecord.RecordIdentifier,
) (*Record, uint64, error) {

	var amendments uint64
	var packed []byte

	if nil == trx {
		amendments, packed = storage.Pool.Records.GetNB(recordId[:])
	} else {
		var err error
		amendments, packed, err = trx.GetNB(storage.Pool.Records, recordId[:])
		if nil != err {
			return nil, 0, err
		}
	}

	if nil == packed {
		return nil, 0, fault.RecordNotFound
	}

	record, err := PackedRecord(packed).Unpack()
	if nil != err {
		return nil, 0, err
	}

	return record, amendments, nil
}

// Modify - rename a stored record
//
// only the dispatcher that created the record or the root frozen into
// it at creation time may rename; the identifier, content hash,
// licensor and snapshots never change
func Modify(
	trx storage.Transaction,
	caller *account.Account,
	recordId transactionrecord.RecordIdentifier,
	newName string,
) error {

	if nil == caller {
		return fault.InvalidOwnerOrRecipient
	}

	if utf8.RuneCountInString(newName) < minNameLength ||
		utf8.RuneCountInString(newName) > maxNameLength {
		return fault.InvalidRecordName
	}

	amendments, packed, err := trx.GetNB(storage.Pool.Records, recordId[:])
	if nil != err {
		return err
	}
	if nil == packed {
		return fault.RecordNotFound
	}

	record, err := PackedRecord(packed).Unpack()
	if nil != err {
		return err
	}

	if !caller.IsSameAs(record.Dispatcher) && !caller.IsSameAs(record.Root) {
		return fault.NotAuthorised
	}

	record.Name = newName

	counter := make([]byte, uint64ByteSize)
	binary.BigEndian.PutUint64(counter, amendments+1)
	return trx.Put(storage.Pool.Records, recordId[:], counter, record.Pack())
}
