// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/licentiad/account"
	"github.com/bitmark-inc/licentiad/fault"
	"github.com/bitmark-inc/licentiad/rpc/credit"
	"github.com/bitmark-inc/licentiad/transactionrecord"
)

// GrantData - data for a grant request
type GrantData struct {
	Owner    *account.PrivateKey
	Spender  *account.Account
	Quantity uint64
}

// Grant - authorise a spender up to a limit, zero revokes
func (client *Client) Grant(grantConfig *GrantData) (*credit.GrantReply, error) {

	sequence, err := client.nextSequence(grantConfig.Owner.Account())
	if err != nil {
		return nil, err
	}

	grant, err := makeAllowanceGrant(grantConfig, sequence)
	if err != nil {
		return nil, err
	}
	if grant == nil {
		return nil, fault.MakeGrantFailed
	}

	client.printJson("Grant Request", grant)

	var reply credit.GrantReply
	err = client.client.Call("Credit.Grant", grant, &reply)
	if err != nil {
		return nil, err
	}

	client.printJson("Grant Reply", reply)

	return &reply, nil
}

func makeAllowanceGrant(grantConfig *GrantData, sequence uint64) (*transactionrecord.AllowanceGrant, error) {

	ownerAccount := grantConfig.Owner.Account()

	r := transactionrecord.AllowanceGrant{
		Owner:     ownerAccount,
		Spender:   grantConfig.Spender,
		Quantity:  grantConfig.Quantity,
		Sequence:  sequence,
		Signature: nil,
	}

	// pack without signature
	packed, err := r.Pack(ownerAccount)
	if err == nil {
		return nil, fault.MakeGrantFailed
	} else if err != fault.InvalidSignature {
		return nil, err
	}

	// attach signature
	signature := ed25519.Sign(grantConfig.Owner.PrivateKeyBytes(), packed)
	r.Signature = signature[:]

	// check that signature is correct by packing again
	_, err = r.Pack(ownerAccount)
	if err != nil {
		return nil, err
	}
	return &r, nil
}
