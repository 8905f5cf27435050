// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/licentiad/account"
	"github.com/bitmark-inc/licentiad/fault"
	"github.com/bitmark-inc/licentiad/rpc/registry"
	"github.com/bitmark-inc/licentiad/transactionrecord"
)

// BindData - data for a dispatcher binding request
//
// only the root account may sign this and the node accepts exactly
// one binding for its lifetime
type BindData struct {
	Root       *account.PrivateKey
	Dispatcher *account.Account
}

// Bind - connect the dispatcher account to the ledger
func (client *Client) Bind(bindConfig *BindData) (*registry.BindReply, error) {

	sequence, err := client.nextSequence(bindConfig.Root.Account())
	if err != nil {
		return nil, err
	}

	binding, err := makeDispatcherBinding(bindConfig, sequence)
	if err != nil {
		return nil, err
	}
	if binding == nil {
		return nil, fault.MakeBindingFailed
	}

	client.printJson("Bind Request", binding)

	var reply registry.BindReply
	err = client.client.Call("Registry.Bind", binding, &reply)
	if err != nil {
		return nil, err
	}

	client.printJson("Bind Reply", reply)

	return &reply, nil
}

func makeDispatcherBinding(bindConfig *BindData, sequence uint64) (*transactionrecord.DispatcherBinding, error) {

	rootAccount := bindConfig.Root.Account()

	r := transactionrecord.DispatcherBinding{
		Owner:      rootAccount,
		Dispatcher: bindConfig.Dispatcher,
		Sequence:   sequence,
		Signature:  nil,
	}

	// pack without signature
	packed, err := r.Pack(rootAccount)
	if err == nil {
		return nil, fault.MakeBindingFailed
	} else if err != fault.InvalidSignature {
		return nil, err
	}

	// attach signature
	signature := ed25519.Sign(bindConfig.Root.PrivateKeyBytes(), packed)
	r.Signature = signature[:]

	// check that signature is correct by packing again
	_, err = r.Pack(rootAccount)
	if err != nil {
		return nil, err
	}
	return &r, nil
}
