// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import (
	"net/rpc"
	"time"

	"github.com/bitmark-inc/licentiad/counter"
	"github.com/bitmark-inc/licentiad/mode"
	"github.com/bitmark-inc/licentiad/rpc/credit"
	"github.com/bitmark-inc/licentiad/rpc/node"
	"github.com/bitmark-inc/licentiad/rpc/record"
	"github.com/bitmark-inc/licentiad/rpc/registry"
	"github.com/bitmark-inc/logger"
)

func Create(log *logger.L, version string, rpcCount *counter.Counter, readOnly bool) *rpc.Server {

	start := time.Now().UTC()

	server := rpc.NewServer()

	_ = server.Register(credit.New(log, mode.Is, mode.IsTesting, readOnly))
	_ = server.Register(registry.New(log, mode.Is, mode.IsTesting, readOnly))
	_ = server.Register(record.New(log, mode.Is, mode.IsTesting, readOnly))
	_ = server.Register(node.New(log, start, version, rpcCount))

	return server
}
