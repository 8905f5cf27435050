// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sync"

	"github.com/bitmark-inc/licentiad/fault"
)

// Transaction - a set of pool operations that commit or abort as a
// unit
//
// reads go through the pending-operation cache so a transaction
// sees its own uncommitted writes
type Transaction interface {
	Abort()
	Begin() error
	Commit() error
	Delete(Handle, []byte) error
	Get(Handle, []byte) ([]byte, error)
	GetN(Handle, []byte) (uint64, bool, error)
	GetNB(Handle, []byte) (uint64, []byte, error)
	Has(Handle, []byte) (bool, error)
	InUse() bool
	Put(Handle, []byte, []byte, []byte) error
	PutN(Handle, []byte, uint64) error
}

type TransactionData struct {
	sync.Mutex
	inUse      bool
	dataAccess []DataAccess
}

func newTransaction(access []DataAccess) Transaction {
	return &TransactionData{
		inUse:      false,
		dataAccess: access,
	}
}

func isNilPtr(ptr interface{}) error {
	if nil == ptr {
		return fault.NilPointer
	}
	return nil
}

// Begin - acquire the transaction
//
// only one transaction can be in progress at a time
func (t *TransactionData) Begin() error {
	t.Lock()
	defer t.Unlock()

	if t.inUse {
		return fault.TransactionAlreadyInUse
	}

	for _, access := range t.dataAccess {
		_ = access.Begin()
	}

	t.inUse = true
	return nil
}

// InUse - check if a transaction is in progress
func (t *TransactionData) InUse() bool {
	t.Lock()
	defer t.Unlock()
	return t.inUse
}

// Put - batch a key/value store into a pool
func (t *TransactionData) Put(
	h Handle,
	key []byte,
	nValue []byte,
	bValue []byte,
) error {
	err := isNilPtr(h)
	if nil != err {
		return err
	}
	h.put(key, nValue, bValue)
	return nil
}

// PutN - batch a key and an 8 byte big endian value store into a pool
func (t *TransactionData) PutN(h Handle, key []byte, value uint64) error {
	err := isNilPtr(h)
	if nil != err {
		return err
	}
	h.putN(key, value)
	return nil
}

// Delete - batch a key removal from a pool
func (t *TransactionData) Delete(h Handle, key []byte) error {
	err := isNilPtr(h)
	if nil != err {
		return err
	}
	h.remove(key)
	return nil
}

// Get - read a value, seeing any uncommitted write of this transaction
func (t *TransactionData) Get(h Handle, key []byte) ([]byte, error) {
	err := isNilPtr(h)
	if nil != err {
		return nil, err
	}
	return h.Get(key), nil
}

// GetN - read an 8 byte big endian value
func (t *TransactionData) GetN(h Handle, key []byte) (uint64, bool, error) {
	err := isNilPtr(h)
	if nil != err {
		return 0, false, err
	}
	n, found := h.getN(key)
	return n, found, nil
}

// GetNB - read an 8 byte big endian value and the remaining bytes
func (t *TransactionData) GetNB(h Handle, key []byte) (uint64, []byte, error) {
	err := isNilPtr(h)
	if nil != err {
		return 0, nil, err
	}
	n, buffer := h.getNB(key)
	return n, buffer, nil
}

// Has - check if a key exists
func (t *TransactionData) Has(h Handle, key []byte) (bool, error) {
	err := isNilPtr(h)
	if nil != err {
		return false, err
	}
	return h.Has(key), nil
}

// Commit - write all batched operations to the database
func (t *TransactionData) Commit() error {
	t.Lock()
	defer t.Unlock()

	for _, access := range t.dataAccess {
		err := access.Commit()
		if nil != err {
			return err
		}
	}

	// release batch and cache for the next transaction
	for _, access := range t.dataAccess {
		access.Abort()
	}
	t.inUse = false
	return nil
}

// Abort - discard all batched operations
func (t *TransactionData) Abort() {
	t.Lock()
	defer t.Unlock()

	for _, access := range t.dataAccess {
		access.Abort()
	}
	t.inUse = false
}
