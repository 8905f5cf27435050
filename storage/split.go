// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/bitmark-inc/logger"
)

// PoolNB - handle for a pool holding a counter and a byte slice in
// each record
type PoolNB struct {
	pool *PoolHandle
}

// Put - store a key with a record formed from an 8 byte count
// followed by the data bytes
func (p *PoolNB) Put(key []byte, nValue []byte, bValue []byte) {
	p.pool.Put(key, joinNB(nValue, bValue), []byte{})
}

// put - in-transaction form of Put
func (p *PoolNB) put(key []byte, nValue []byte, bValue []byte) {
	p.pool.put(key, joinNB(nValue, bValue), []byte{})
}

func joinNB(nValue []byte, bValue []byte) []byte {
	if 8 != len(nValue) {
		logger.Panic("pool.PutNB 1st parameter must be 8 bytes")
		return nil
	}
	data := make([]byte, len(nValue)+len(bValue))
	copy(data, nValue)
	copy(data[len(nValue):], bValue)
	return data
}

// PutN - for interface only
func (p *PoolNB) PutN(key []byte, value uint64) {
	logger.Panic("pool.PutN is not supported on a PoolNB")
}

// putN - for interface only
func (p *PoolNB) putN(key []byte, value uint64) {
	logger.Panic("pool.putN is not supported on a PoolNB")
}

// Delete - remove a key from the database
func (p *PoolNB) Delete(key []byte) {
	p.pool.Delete(key)
}

// remove - in-transaction delete
func (p *PoolNB) remove(key []byte) {
	p.pool.remove(key)
}

// Get - for interface only
func (p *PoolNB) Get(key []byte) []byte {
	return p.pool.Get(key)
}

// GetN - for interface only
func (p *PoolNB) GetN(key []byte) (uint64, bool) {
	return uint64(0), false
}

func (p *PoolNB) getN(key []byte) (uint64, bool) {
	return uint64(0), false
}

// GetNB - read a record and decode first 8 bytes as big endian uint64
// and return the rest of the record as byte slice
//
// second parameter is nil if record was not found
// panics if not 9 (or more) bytes in the record
// this returns the actual element in the second parameter - copy the result if it must be preserved
func (p *PoolNB) GetNB(key []byte) (uint64, []byte) {
	return p.pool.GetNB(key)
}

func (p *PoolNB) getNB(key []byte) (uint64, []byte) {
	return p.pool.getNB(key)
}

// Has - check if a key exists
func (p *PoolNB) Has(key []byte) bool {
	return p.pool.Has(key)
}

// Begin - mark the underlying access as in use
func (p *PoolNB) Begin() {
	p.pool.Begin()
}

// Commit - write the pending batch to the database
func (p *PoolNB) Commit() error {
	return p.pool.Commit()
}

// Ready - check the pool is initialised
func (p *PoolNB) Ready() bool {
	return nil != p && p.pool.Ready()
}

// LastElement - get the last element in a pool
func (p *PoolNB) LastElement() (Element, bool) {
	return p.pool.LastElement()
}

// NewFetchCursor - initialise a cursor to the start of a key range
func (p *PoolNB) NewFetchCursor() *FetchCursor {
	return p.pool.NewFetchCursor()
}
