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

// SetFeesData - data for a fee schedule update
//
// only the root account may sign this
type SetFeesData struct {
	Root      *account.PrivateKey
	CreateFee uint64
	UpdateFee uint64
}

// Fees - retrieve the current fee schedule
func (client *Client) Fees() (*registry.FeesReply, error) {

	reply := &registry.FeesReply{}
	err := client.client.Call("Registry.Fees", registry.FeesArguments{}, reply)
	if err != nil {
		return nil, err
	}

	client.printJson("Fees Reply", reply)

	return reply, nil
}

// SetFees - replace the fee schedule
func (client *Client) SetFees(feesConfig *SetFeesData) (*registry.SetFeesReply, error) {

	sequence, err := client.nextSequence(feesConfig.Root.Account())
	if err != nil {
		return nil, err
	}

	update, err := makeFeeUpdate(feesConfig, sequence)
	if err != nil {
		return nil, err
	}
	if update == nil {
		return nil, fault.MakeFeeUpdateFailed
	}

	client.printJson("SetFees Request", update)

	var reply registry.SetFeesReply
	err = client.client.Call("Registry.SetFees", update, &reply)
	if err != nil {
		return nil, err
	}

	client.printJson("SetFees Reply", reply)

	return &reply, nil
}

func makeFeeUpdate(feesConfig *SetFeesData, sequence uint64) (*transactionrecord.FeeUpdate, error) {

	rootAccount := feesConfig.Root.Account()

	r := transactionrecord.FeeUpdate{
		Owner:     rootAccount,
		CreateFee: feesConfig.CreateFee,
		UpdateFee: feesConfig.UpdateFee,
		Sequence:  sequence,
		Signature: nil,
	}

	// pack without signature
	packed, err := r.Pack(rootAccount)
	if err == nil {
		return nil, fault.MakeFeeUpdateFailed
	} else if err != fault.InvalidSignature {
		return nil, err
	}

	// attach signature
	signature := ed25519.Sign(feesConfig.Root.PrivateKeyBytes(), packed)
	r.Signature = signature[:]

	// check that signature is correct by packing again
	_, err = r.Pack(rootAccount)
	if err != nil {
		return nil, err
	}
	return &r, nil
}
