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

// TransferData - data for a transfer request
type TransferData struct {
	Owner     *account.PrivateKey
	Recipient *account.Account
	Quantity  uint64
}

// Transfer - move credits to a recipient account
func (client *Client) Transfer(transferConfig *TransferData) (*credit.TransferReply, error) {

	sequence, err := client.nextSequence(transferConfig.Owner.Account())
	if err != nil {
		return nil, err
	}

	transfer, err := makeCreditTransfer(transferConfig, sequence)
	if err != nil {
		return nil, err
	}
	if transfer == nil {
		return nil, fault.MakeTransferFailed
	}

	client.printJson("Transfer Request", transfer)

	var reply credit.TransferReply
	err = client.client.Call("Credit.Transfer", transfer, &reply)
	if err != nil {
		return nil, err
	}

	client.printJson("Transfer Reply", reply)

	return &reply, nil
}

func makeCreditTransfer(transferConfig *TransferData, sequence uint64) (*transactionrecord.CreditTransfer, error) {

	ownerAccount := transferConfig.Owner.Account()

	r := transactionrecord.CreditTransfer{
		Owner:     ownerAccount,
		Recipient: transferConfig.Recipient,
		Quantity:  transferConfig.Quantity,
		Sequence:  sequence,
		Signature: nil,
	}

	// pack without signature
	packed, err := r.Pack(ownerAccount)
	if err == nil {
		return nil, fault.MakeTransferFailed
	} else if err != fault.InvalidSignature {
		return nil, err
	}

	// attach signature
	signature := ed25519.Sign(transferConfig.Owner.PrivateKeyBytes(), packed)
	r.Signature = signature[:]

	// check that signature is correct by packing again
	_, err = r.Pack(ownerAccount)
	if err != nil {
		return nil, err
	}
	return &r, nil
}
