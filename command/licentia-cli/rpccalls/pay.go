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

// PayData - data for a payment approval request
//
// name becomes the registered license record name
type PayData struct {
	Owner    *account.PrivateKey
	Name     string
	Quantity uint64
}

// Pay - approve a payment and register a license record in one step
func (client *Client) Pay(payConfig *PayData) (*credit.PayReply, error) {

	sequence, err := client.nextSequence(payConfig.Owner.Account())
	if err != nil {
		return nil, err
	}

	approval, err := makePaymentApproval(payConfig, sequence)
	if err != nil {
		return nil, err
	}
	if approval == nil {
		return nil, fault.MakePaymentFailed
	}

	client.printJson("Pay Request", approval)

	var reply credit.PayReply
	err = client.client.Call("Credit.Pay", approval, &reply)
	if err != nil {
		return nil, err
	}

	client.printJson("Pay Reply", reply)

	return &reply, nil
}

func makePaymentApproval(payConfig *PayData, sequence uint64) (*transactionrecord.PaymentApproval, error) {

	ownerAccount := payConfig.Owner.Account()

	r := transactionrecord.PaymentApproval{
		Owner:     ownerAccount,
		Quantity:  payConfig.Quantity,
		Payload:   payConfig.Name,
		Sequence:  sequence,
		Signature: nil,
	}

	// pack without signature
	packed, err := r.Pack(ownerAccount)
	if err == nil {
		return nil, fault.MakePaymentFailed
	} else if err != fault.InvalidSignature {
		return nil, err
	}

	// attach signature
	signature := ed25519.Sign(payConfig.Owner.PrivateKeyBytes(), packed)
	r.Signature = signature[:]

	// check that signature is correct by packing again
	_, err = r.Pack(ownerAccount)
	if err != nil {
		return nil, err
	}
	return &r, nil
}
