// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package license - storage of registered license records
//
// a record captures the state of one paid registration: its current
// name, the content hash supplied at creation and frozen snapshots of
// the licensor, the registering dispatcher and the root account
//
// the record identifier is the SHA3-256 digest of the packed creation
// form, so an identical registration can be detected as a duplicate;
// renaming a record later never changes its identifier
package license
