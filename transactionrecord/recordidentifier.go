// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/licentiad/fault"
)

// limits
const (
	RecordIdentifierLength = 32
)

// RecordIdentifier - the type for a license record identifier
// stored as fixed length byte array
// represented as hex text for JSON encoding
// to get bytes value just use recordId[:]
type RecordIdentifier [RecordIdentifierLength]byte

// NewRecordIdentifier - create a record id from a packed record
//
// SHA3-256 Hash
func NewRecordIdentifier(record []byte) RecordIdentifier {
	return RecordIdentifier(sha3.Sum256(record))
}

// String - convert a binary recordId to hex string for use by the fmt package (for %s)
func (recordId RecordIdentifier) String() string {
	return hex.EncodeToString(recordId[:])
}

// GoString - convert a binary recordId to hex string for use by the fmt package (for %#v)
func (recordId RecordIdentifier) GoString() string {
	return "<record:" + hex.EncodeToString(recordId[:]) + ">"
}

// Scan - convert a hex text representation to a recordId for use by the format package scan routines
func (recordId *RecordIdentifier) Scan(state fmt.ScanState, verb rune) error {
	token, err := state.Token(true, func(c rune) bool {
		if c >= '0' && c <= '9' {
			return true
		}
		if c >= 'A' && c <= 'F' {
			return true
		}
		if c >= 'a' && c <= 'f' {
			return true
		}
		return false
	})
	if nil != err {
		return err
	}
	if len(token) != hex.EncodedLen(RecordIdentifierLength) {
		return fault.NotRecordId
	}

	byteCount, err := hex.Decode(recordId[:], token)
	if nil != err {
		return err
	}

	if RecordIdentifierLength != byteCount {
		return fault.NotRecordId
	}
	return nil
}

// MarshalText - convert recordId to hex text
func (recordId RecordIdentifier) MarshalText() ([]byte, error) {
	size := hex.EncodedLen(len(recordId))
	buffer := make([]byte, size)
	hex.Encode(buffer, recordId[:])
	return buffer, nil
}

// UnmarshalText - convert hex text into a recordId
func (recordId *RecordIdentifier) UnmarshalText(s []byte) error {
	if len(recordId) != hex.DecodedLen(len(s)) {
		return fault.NotRecordId
	}
	byteCount, err := hex.Decode(recordId[:], s)
	if nil != err {
		return err
	}
	if RecordIdentifierLength != byteCount {
		return fault.NotRecordId
	}
	return nil
}

// RecordIdentifierFromBytes - convert and validate a binary byte slice to a recordId
func RecordIdentifierFromBytes(recordId *RecordIdentifier, buffer []byte) error {
	if RecordIdentifierLength != len(buffer) {
		return fault.NotRecordId
	}
	copy(recordId[:], buffer)
	return nil
}
