// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package license

import (
	"github.com/bitmark-inc/licentiad/account"
	"github.com/bitmark-inc/licentiad/fault"
	"github.com/bitmark-inc/licentiad/util"
)

// from storage/doc.go:
//
// Records:
//   R ++ record id   - registered license records
//                      data: amendment counter ++ packed record

// limits on the record name
const (
	minNameLength = 1
	maxNameLength = 64
)

// Record - a registered license
//
// Licensor, Dispatcher and Root are frozen at registration time;
// only the name can change afterwards
type Record struct {
	Name        string           `json:"name"`
	ContentHash uint64           `json:"contentHash"`
	Licensor    *account.Account `json:"licensor"`
	Dispatcher  *account.Account `json:"dispatcher"`
	Root        *account.Account `json:"root"`
}

// PackedRecord - packed record to store in the database
type PackedRecord []byte

// Pack - flatten a record to its stored byte form
//
// fields are length prefixed and in struct order so the identifier
// derived from the creation form is reproducible
func (record Record) Pack() PackedRecord {
	message := appendString(PackedRecord{}, record.Name)
	message = appendUint64(message, record.ContentHash)
	message = appendAccount(message, record.Licensor)
	message = appendAccount(message, record.Dispatcher)
	message = appendAccount(message, record.Root)
	return message
}

// Unpack - rebuild a record from its stored byte form
func (packed PackedRecord) Unpack() (r *Record, e error) {

	defer func() {
		if p := recover(); nil != p {
			e = fault.NotLicensePack
		}
	}()

	record := []byte(packed)
	n := 0

	// current name
	nameLength, nameOffset := util.ClippedVarint64(record[n:], 1, 8192)
	if 0 == nameOffset {
		return nil, fault.NotLicensePack
	}
	name := make([]byte, nameLength)
	n += nameOffset
	copy(name, record[n:n+nameLength])
	n += nameLength

	// content hash from registration
	contentHash, contentHashLength := util.FromVarint64(record[n:])
	if 0 == contentHashLength {
		return nil, fault.NotLicensePack
	}
	n += contentHashLength

	// licensor public key
	licensorLength, licensorOffset := util.ClippedVarint64(record[n:], 1, 8192)
	if 0 == licensorOffset {
		return nil, fault.NotLicensePack
	}
	n += licensorOffset
	licensor, err := account.AccountFromBytes(record[n : n+licensorLength])
	if nil != err {
		return nil, err
	}
	n += licensorLength

	// dispatcher public key
	dispatcherLength, dispatcherOffset := util.ClippedVarint64(record[n:], 1, 8192)
	if 0 == dispatcherOffset {
		return nil, fault.NotLicensePack
	}
	n += dispatcherOffset
	dispatcher, err := account.AccountFromBytes(record[n : n+dispatcherLength])
	if nil != err {
		return nil, err
	}
	n += dispatcherLength

	// root public key
	rootLength, rootOffset := util.ClippedVarint64(record[n:], 1, 8192)
	if 0 == rootOffset {
		return nil, fault.NotLicensePack
	}
	n += rootOffset
	root, err := account.AccountFromBytes(record[n : n+rootLength])
	if nil != err {
		return nil, err
	}
	n += rootLength

	if n != len(record) {
		return nil, fault.NotLicensePack
	}

	r = &Record{
		Name:        string(name),
		ContentHash: contentHash,
		Licensor:    licensor,
		Dispatcher:  dispatcher,
		Root:        root,
	}
	return r, nil
}

// append a single field to a buffer
//
// the field is prefixed by Varint64(length)
func appendString(buffer PackedRecord, s string) PackedRecord {
	l := util.ToVarint64(uint64(len(s)))
	buffer = append(buffer, l...)
	return append(buffer, s...)
}

// append an address to a buffer
//
// the field is prefixed by Varint64(length)
func appendAccount(buffer PackedRecord, address *account.Account) PackedRecord {
	data := address.Bytes()
	l := util.ToVarint64(uint64(len(data)))
	buffer = append(buffer, l...)
	buffer = append(buffer, data...)
	return buffer
}

// append a Varint64 to buffer
func appendUint64(buffer PackedRecord, value uint64) PackedRecord {
	valueBytes := util.ToVarint64(value)
	buffer = append(buffer, valueBytes...)
	return buffer
}
