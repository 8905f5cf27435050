// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk data store
//
// maintain separate pools of a number of elements in key->value form
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the available tables.
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ++          = concatenation of byte data
// 3. account     = packed account (key variant varint ++ 32 byte public key)
// 4. record id   = registration digest as 32 byte SHA3-256(packed creation record)
// 5. amount      = credit units as big endian uint64 (8 bytes)
// 6. sequence    = successive value as big endian uint64 (8 bytes)
//
// Balances:
//
//   B ++ account               - credit balance of one account
//                                data: amount
//
// Allowances:
//
//   A ++ owner ++ spender      - amount spender may draw from owner
//                                data: amount
//
// Records:
//
//   R ++ record id             - registered license records
//                                data: amendment counter ++ packed record
//
// Creators:
//
//   C ++ record id             - licensor that registered the record (append only)
//                                data: packed licensor account
//
// Sequences:
//
//   S ++ account               - next expected signing sequence number
//                                data: sequence
//
// Metadata:
//
//   M ++ name                  - ledger state items: root, supply,
//                                create fee, update fee, dispatcher
//                                data: packed account or amount
//
// Testing:
//
//   Z ++ key                   - testing data
package storage
