// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"
)

func runChangePassword(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	name := c.GlobalString("identity")
	if name == "" {
		name = m.config.DefaultIdentity
	}

	if m.verbose {
		fmt.Fprintf(m.e, "identity: %s\n", name)
	}

	oldPassword, err := getPassword(c, name, c.Command.Name)
	if err != nil {
		return err
	}

	newPassword, err := promptNewPassword()
	if err != nil {
		return err
	}

	err = m.config.UpdatePassword(name, oldPassword, newPassword)
	if err != nil {
		return err
	}

	// require configuration update
	m.save = true
	return nil
}
