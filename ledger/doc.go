// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger - the credit ledger and its payment chain
//
// The ledger keeps named-account balances and a delegated-spend
// allowance table.  The sum of all balances is fixed at first boot
// when the whole supply is minted into the root account; every later
// operation only moves credit between accounts.
//
// A single dispatcher can be bound to the ledger by the root account,
// exactly once.  After binding, any account can call PayAndRegister:
// the ledger grants the dispatcher a fresh one-shot allowance for the
// offered amount and hands control to the dispatcher callback, which
// pulls the registration fee and creates the license record.  The
// whole chain runs inside one storage transaction, so a failure at
// any point leaves balances, allowances and the record store exactly
// as they were.
//
// All state changing operations run inside the ledger exclusion
// scope; other packages join that scope through Execute.
package ledger
