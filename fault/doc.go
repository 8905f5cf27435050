// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - error instances
//
// Provides a single instance of errors to allow easy comparison
// without having to resort to partial string matches
//
// Each error is one of a small set of classes: exists, invalid,
// length, not found, process and record.  The IsErr* functions
// match any error of the corresponding class.
package fault
