// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/licentiad/command/licentia-cli/rpccalls"
)

// the signing identity must be the record's dispatcher or root
// no fee is taken on this path
func runModify(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	recordId, err := checkRecordId(c.String("recordid"))
	if err != nil {
		return err
	}

	name, err := checkRecordName(c.String("name"))
	if err != nil {
		return err
	}

	from, owner, err := checkOwnerWithPasswordPrompt(c.GlobalString("identity"), m.config, c)
	if err != nil {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "record id: %s\n", recordId)
		fmt.Fprintf(m.e, "name: %s\n", name)
		fmt.Fprintf(m.e, "signer: %s\n", from)
	}

	client, err := rpccalls.NewClient(m.testnet, m.config.Connections[m.connectionOffset], m.verbose, m.e)
	if err != nil {
		return err
	}
	defer client.Close()

	amendConfig := &rpccalls.AmendData{
		Owner:    owner.PrivateKey,
		RecordId: recordId,
		Name:     name,
	}

	response, err := client.Modify(amendConfig)
	if err != nil {
		return err
	}

	printJson(m.w, response)
	return nil
}
