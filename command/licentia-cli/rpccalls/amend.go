// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/licentiad/account"
	"github.com/bitmark-inc/licentiad/fault"
	"github.com/bitmark-inc/licentiad/rpc/record"
	"github.com/bitmark-inc/licentiad/rpc/registry"
	"github.com/bitmark-inc/licentiad/transactionrecord"
)

// AmendData - data for a record rename request
type AmendData struct {
	Owner    *account.PrivateKey
	RecordId string
	Name     string
}

// Amend - rename a record through the dispatcher
//
// the signing licensor pays the update fee from its allowance
func (client *Client) Amend(amendConfig *AmendData) (*registry.AmendReply, error) {

	amendment, err := client.makeSignedAmendment(amendConfig)
	if err != nil {
		return nil, err
	}

	client.printJson("Amend Request", amendment)

	var reply registry.AmendReply
	err = client.client.Call("Registry.Amend", amendment, &reply)
	if err != nil {
		return nil, err
	}

	client.printJson("Amend Reply", reply)

	return &reply, nil
}

// Modify - rename a record directly as the dispatcher or root
//
// no fee is taken on this path
func (client *Client) Modify(amendConfig *AmendData) (*record.ModifyReply, error) {

	amendment, err := client.makeSignedAmendment(amendConfig)
	if err != nil {
		return nil, err
	}

	client.printJson("Modify Request", amendment)

	var reply record.ModifyReply
	err = client.client.Call("Record.Modify", amendment, &reply)
	if err != nil {
		return nil, err
	}

	client.printJson("Modify Reply", reply)

	return &reply, nil
}

func (client *Client) makeSignedAmendment(amendConfig *AmendData) (*transactionrecord.LicenseAmendment, error) {

	var recordId transactionrecord.RecordIdentifier
	err := recordId.UnmarshalText([]byte(amendConfig.RecordId))
	if err != nil {
		return nil, err
	}

	sequence, err := client.nextSequence(amendConfig.Owner.Account())
	if err != nil {
		return nil, err
	}

	ownerAccount := amendConfig.Owner.Account()

	r := transactionrecord.LicenseAmendment{
		Owner:     ownerAccount,
		RecordId:  recordId,
		Name:      amendConfig.Name,
		Sequence:  sequence,
		Signature: nil,
	}

	// pack without signature
	packed, err := r.Pack(ownerAccount)
	if err == nil {
		return nil, fault.MakeAmendmentFailed
	} else if err != fault.InvalidSignature {
		return nil, err
	}

	// attach signature
	signature := ed25519.Sign(amendConfig.Owner.PrivateKeyBytes(), packed)
	r.Signature = signature[:]

	// check that signature is correct by packing again
	_, err = r.Pack(ownerAccount)
	if err != nil {
		return nil, err
	}
	return &r, nil
}
