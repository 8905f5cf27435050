// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package dispatcher - the paid gatekeeper for license registration
//
// The dispatcher is the only component that creates license records.
// A payment approved by the ledger arrives through the activated
// callback: the dispatcher pulls the creation fee from the paying
// account through its allowance, with the root account as the
// recipient, and only then creates the record.  The fee pull runs
// strictly before the record creation, so a failed payment leaves no
// orphan record and no creators entry.
//
// Every record ever created is remembered in the creators pool; the
// mapping is append only and public, so anyone can verify a record id
// was minted through this dispatcher rather than forged.
//
// The fee schedule is mutable by the root account only and persists
// across restarts.  The root account itself is a snapshot frozen at
// initialisation time.
package dispatcher
