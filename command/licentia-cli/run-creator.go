// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/licentiad/command/licentia-cli/rpccalls"
)

func runCreator(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	recordId, err := checkRecordId(c.String("recordid"))
	if err != nil {
		return err
	}

	client, err := rpccalls.NewClient(m.testnet, m.config.Connections[m.connectionOffset], m.verbose, m.e)
	if err != nil {
		return err
	}
	defer client.Close()

	response, err := client.Creator(recordId)
	if err != nil {
		return err
	}

	printJson(m.w, response)
	return nil
}
