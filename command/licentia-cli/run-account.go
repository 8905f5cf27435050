// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"
)

// display the stored account of an identity, no password is needed
func runAccount(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	name := c.Args().Get(0)
	if name == "" {
		name = c.GlobalString("identity")
	}
	if name == "" {
		name = m.config.DefaultIdentity
	}

	id, err := m.config.Identity(name)
	if err != nil {
		return err
	}

	result := struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Account     string `json:"account"`
	}{
		Name:        name,
		Description: id.Description,
		Account:     id.Account,
	}

	printJson(m.w, result)
	return nil
}
