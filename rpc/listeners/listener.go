// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners

// Listener - start serving on all configured addresses
//
// Serve returns after the accept loops are spawned, not when they end
type Listener interface {
	Serve() error
}
