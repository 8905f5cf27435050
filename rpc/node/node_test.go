// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/licentiad/counter"
	"github.com/bitmark-inc/licentiad/mode"
	"github.com/bitmark-inc/licentiad/network"
	"github.com/bitmark-inc/licentiad/rpc/fixtures"
	"github.com/bitmark-inc/licentiad/rpc/node"
	"github.com/bitmark-inc/logger"
)

func TestNodeInfo(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	err := fixtures.SetupRegistry()
	if nil != err {
		t.Fatalf("registry setup error: %s", err)
	}
	defer fixtures.TeardownRegistry()

	now := time.Now()
	ctr := counter.Counter(5)

	n := node.New(logger.New(fixtures.LogCategory), now, "100", &ctr)

	var reply node.InfoReply
	err = n.Info(&node.InfoArguments{}, &reply)
	assert.Nil(t, err, "wrong Info")
	assert.Equal(t, network.Testing, reply.Network, "wrong network")
	assert.Equal(t, mode.Normal.String(), reply.Mode, "wrong mode")
	assert.Equal(t, uint64(fixtures.TotalSupply), reply.Supply, "wrong supply")
	assert.True(t, reply.Dispatcher, "wrong dispatcher flag")
	assert.Equal(t, uint64(fixtures.CreateFee), reply.CreateFee, "wrong create fee")
	assert.Equal(t, uint64(fixtures.UpdateFee), reply.UpdateFee, "wrong update fee")
	assert.Equal(t, ctr.Uint64(), reply.RPCs, "wrong connection count")
	assert.Equal(t, n.Version, reply.Version, "wrong version")
	assert.NotEmpty(t, reply.Uptime, "wrong uptime")
	assert.Equal(t, "", reply.PublicKey, "wrong empty public key")
}

func TestNodeInfoWhenStopped(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	now := time.Now()
	ctr := counter.Counter(0)

	n := node.New(logger.New(fixtures.LogCategory), now, "100", &ctr)

	// nothing initialised: the report shows a stopped empty node
	var reply node.InfoReply
	err := n.Info(&node.InfoArguments{}, &reply)
	assert.Nil(t, err, "wrong Info")
	assert.Equal(t, mode.Stopped.String(), reply.Mode, "wrong mode")
	assert.Equal(t, uint64(0), reply.Supply, "wrong supply")
	assert.False(t, reply.Dispatcher, "wrong dispatcher flag")
}
