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

// the signing identity is the licensor, the update fee is drawn from
// the allowance it granted to the dispatcher
func runAmend(c *cli.Context) error {

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
		fmt.Fprintf(m.e, "licensor: %s\n", from)
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

	response, err := client.Amend(amendConfig)
	if err != nil {
		return err
	}

	printJson(m.w, response)
	return nil
}
