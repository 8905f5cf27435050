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

// SpendData - data for a spend request
//
// the spender signs, drawing on the allowance granted by the owner
type SpendData struct {
	Spender   *account.PrivateKey
	Owner     *account.Account
	Recipient *account.Account
	Quantity  uint64
}

// Spend - move credits out of an owner account using the signing
// spender's allowance
func (client *Client) Spend(spendConfig *SpendData) (*credit.SpendReply, error) {

	sequence, err := client.nextSequence(spendConfig.Spender.Account())
	if err != nil {
		return nil, err
	}

	spend, err := makeAllowanceSpend(spendConfig, sequence)
	if err != nil {
		return nil, err
	}
	if spend == nil {
		return nil, fault.MakeSpendFailed
	}

	client.printJson("Spend Request", spend)

	var reply credit.SpendReply
	err = client.client.Call("Credit.Spend", spend, &reply)
	if err != nil {
		return nil, err
	}

	client.printJson("Spend Reply", reply)

	return &reply, nil
}

func makeAllowanceSpend(spendConfig *SpendData, sequence uint64) (*transactionrecord.AllowanceSpend, error) {

	spenderAccount := spendConfig.Spender.Account()

	r := transactionrecord.AllowanceSpend{
		Spender:   spenderAccount,
		Owner:     spendConfig.Owner,
		Recipient: spendConfig.Recipient,
		Quantity:  spendConfig.Quantity,
		Sequence:  sequence,
		Signature: nil,
	}

	// pack without signature
	packed, err := r.Pack(spenderAccount)
	if err == nil {
		return nil, fault.MakeSpendFailed
	} else if err != fault.InvalidSignature {
		return nil, err
	}

	// attach signature
	signature := ed25519.Sign(spendConfig.Spender.PrivateKeyBytes(), packed)
	r.Signature = signature[:]

	// check that signature is correct by packing again
	_, err = r.Pack(spenderAccount)
	if err != nil {
		return nil, err
	}
	return &r, nil
}
