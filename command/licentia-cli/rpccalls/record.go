// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/licentiad/rpc/record"
	"github.com/bitmark-inc/licentiad/rpc/registry"
	"github.com/bitmark-inc/licentiad/transactionrecord"
)

// GetRecord - retrieve a stored license record
func (client *Client) GetRecord(recordIdText string) (*record.GetReply, error) {

	var recordId transactionrecord.RecordIdentifier
	err := recordId.UnmarshalText([]byte(recordIdText))
	if err != nil {
		return nil, err
	}

	getArgs := record.GetArguments{
		RecordId: recordId,
	}

	client.printJson("Get Request", getArgs)

	reply := &record.GetReply{}
	err = client.client.Call("Record.Get", getArgs, reply)
	if err != nil {
		return nil, err
	}

	client.printJson("Get Reply", reply)

	return reply, nil
}

// Creator - retrieve the account whose payment created a record
func (client *Client) Creator(recordIdText string) (*registry.CreatorReply, error) {

	var recordId transactionrecord.RecordIdentifier
	err := recordId.UnmarshalText([]byte(recordIdText))
	if err != nil {
		return nil, err
	}

	creatorArgs := registry.CreatorArguments{
		RecordId: recordId,
	}

	client.printJson("Creator Request", creatorArgs)

	reply := &registry.CreatorReply{}
	err = client.client.Call("Registry.Creator", creatorArgs, reply)
	if err != nil {
		return nil, err
	}

	client.printJson("Creator Reply", reply)

	return reply, nil
}
