// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func setupTestCache() Cache {
	return newCache()
}

func TestCacheWriteThenRead(t *testing.T) {
	cache := setupTestCache()

	key := "balance"
	expected := []byte{'a', 'b', 'c', 'd'}

	_, found := cache.Get(key)
	assert.Equal(t, false, found, "empty cache should not find key")

	cache.Set(dbPut, key, expected)
	actual, found := cache.Get(key)
	assert.Equal(t, true, found, "cached key not found")
	assert.Equal(t, expected, actual, "wrong cached value")
}

func TestCacheClear(t *testing.T) {
	cache := setupTestCache()

	key := "balance"
	data := []byte{'a', 'b', 'c', 'd'}

	cache.Set(dbPut, key, data)
	cache.Clear()

	_, found := cache.Get(key)
	assert.Equal(t, false, found, "Clear did not empty the cache")
}

func TestCacheReadDeleteOperation(t *testing.T) {
	cache := setupTestCache()

	key := "balance"
	data := []byte{'a', 'b', 'c', 'd'}

	cache.Set(dbDelete, key, data)

	_, found := cache.Get(key)
	assert.Equal(t, false, found, "deleted key should not be found")
}
