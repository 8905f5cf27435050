// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import (
	"encoding/hex"
	"time"

	"github.com/bitmark-inc/licentiad/counter"
	"github.com/bitmark-inc/licentiad/dispatcher"
	"github.com/bitmark-inc/licentiad/ledger"
	"github.com/bitmark-inc/licentiad/mode"
	"github.com/bitmark-inc/licentiad/publish"
	"github.com/bitmark-inc/licentiad/rpc/ratelimit"
	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"
)

const (
	rateLimitNode = 200
	rateBurstNode = 100
)

// Node - type for RPC calls
type Node struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Start   time.Time
	Version string
	counter *counter.Counter
}

func New(log *logger.L, start time.Time, version string, counter *counter.Counter) *Node {
	return &Node{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitNode, rateBurstNode),
		Start:   start,
		Version: version,
		counter: counter,
	}
}

// ---

// InfoArguments - empty arguments for info request
type InfoArguments struct{}

// InfoReply - results from info request
type InfoReply struct {
	Network    string `json:"network"`
	Mode       string `json:"mode"`
	Supply     uint64 `json:"supply"`
	Dispatcher bool   `json:"dispatcher"`
	CreateFee  uint64 `json:"createFee"`
	UpdateFee  uint64 `json:"updateFee"`
	RPCs       uint64 `json:"rpcs"`
	Version    string `json:"version"`
	Uptime     string `json:"uptime"`
	PublicKey  string `json:"publicKey"`
}

// Info - return some information about this node
// only enough for clients to determine node state
// for more detail information use HTTP GET requests
func (node *Node) Info(_ *InfoArguments, reply *InfoReply) error {

	if err := ratelimit.Limit(node.Limiter); nil != err {
		return err
	}

	_, bound := ledger.DispatcherAccount()
	createFee, updateFee := dispatcher.Fees()

	reply.Network = mode.NetworkName()
	reply.Mode = mode.String()
	reply.Supply = ledger.TotalSupply()
	reply.Dispatcher = bound
	reply.CreateFee = createFee
	reply.UpdateFee = updateFee
	reply.RPCs = node.counter.Uint64()
	reply.Version = node.Version
	reply.Uptime = time.Since(node.Start).String()
	reply.PublicKey = hex.EncodeToString(publish.PublicKey())
	return nil
}
