// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"net"
	"os"
	"strings"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/licentiad/account"
	"github.com/bitmark-inc/licentiad/command/licentia-cli/configuration"
	"github.com/bitmark-inc/licentiad/fault"
)

// identity is required, but not check the config file
func checkName(name string) (string, error) {
	if name == "" {
		return "", fault.IdentityNameRequired
	}
	return name, nil
}

// check for non-blank host:port connection strings
// comma separated list is allowed
func checkConnect(connect string) (string, error) {
	connect = strings.TrimSpace(connect)
	if connect == "" {
		return "", fault.ConnectRequired
	}

	for _, hostPort := range strings.Split(connect, ",") {
		_, _, err := net.SplitHostPort(strings.TrimSpace(hostPort))
		if err != nil {
			return "", err
		}
	}

	return connect, nil
}

// description is required
func checkDescription(description string) (string, error) {
	if description == "" {
		return "", fault.DescriptionRequired
	}
	return description, nil
}

// generate a seed if new is set, validate the result and confirm it
// belongs to the current network
func checkSeed(seed string, new bool, testnet bool) (string, error) {

	if new && seed == "" {
		var err error
		seed, err = account.NewBase58EncodedSeedV2(testnet)
		if err != nil {
			return "", err
		}
	}

	private, err := account.PrivateKeyFromBase58Seed(seed)
	if err != nil {
		return "", err
	}
	if private.IsTesting() != testnet {
		return "", fault.WrongNetworkForPrivateKey
	}

	return seed, nil
}

// record names are limited by the registry
func checkRecordName(name string) (string, error) {
	if name == "" {
		return "", fault.InvalidRecordName
	}
	return name, nil
}

// hex record id, fully validated by the rpc call
func checkRecordId(recordId string) (string, error) {
	if recordId == "" {
		return "", fault.NotRecordId
	}
	return recordId, nil
}

// convert an identity name or an account string to an account
func checkAccount(name string, config *configuration.Configuration) (*account.Account, error) {
	if acc, err := config.Account(name); err == nil {
		return acc, nil
	}
	return account.AccountFromBase58(name)
}

// recipient field from a flag, either an identity name from the
// configuration or a full account string
func checkRecipient(c *cli.Context, name string, config *configuration.Configuration) (string, *account.Account, error) {
	recipient := c.String(name)
	if recipient == "" {
		return "", nil, fault.InvalidOwnerOrRecipient
	}

	acc, err := checkAccount(recipient, config)
	if err != nil {
		return "", nil, err
	}

	return recipient, acc, nil
}

// check if file exists and is a directory
func checkFileExists(name string) (bool, error) {
	s, err := os.Stat(name)
	if err != nil {
		return false, err
	}
	return s.IsDir(), nil
}
