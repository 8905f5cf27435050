// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"

	"github.com/urfave/cli"
	"golang.org/x/crypto/ssh/terminal"

	"github.com/bitmark-inc/licentiad/command/licentia-cli/configuration"
	"github.com/bitmark-inc/licentiad/fault"
)

var passwordConsole *terminal.Terminal

func getTerminal() (*terminal.Terminal, int, *terminal.State) {
	oldState, err := terminal.MakeRaw(0)
	if err != nil {
		panic(err)
	}

	if passwordConsole != nil {
		return passwordConsole, 0, oldState
	}

	tmpIO, err := os.OpenFile("/dev/tty", os.O_RDWR, os.ModePerm)
	if err != nil {
		panic("No console")
	}

	passwordConsole = terminal.NewTerminal(tmpIO, "licentia-cli: ")

	return passwordConsole, 0, oldState
}

// prompt for a new password and verify the re-entry matches
func promptNewPassword() (string, error) {
	console, fd, state := getTerminal()
	password, err := console.ReadPassword("Set identity password(length >= 8): ")
	terminal.Restore(fd, state)
	if err != nil {
		return "", err
	}

	if len(password) < 8 {
		return "", fault.PasswordLength
	}

	console, fd, state = getTerminal()
	verifyPassword, err := console.ReadPassword("Verify password: ")
	terminal.Restore(fd, state)
	if err != nil {
		return "", err
	}

	if password != verifyPassword {
		return "", fault.DifferentPasswords
	}

	return password, nil
}

// prompt for an existing password
func promptCheckPasswordReader() (string, error) {
	console, fd, state := getTerminal()
	password, err := console.ReadPassword("password: ")
	terminal.Restore(fd, state)
	if err != nil {
		return "", err
	}

	return password, nil
}

// resolve the password for an identity from the global flags
//
// order is: --password flag, then password agent, then terminal prompt
func getPassword(c *cli.Context, name string, title string) (string, error) {

	password := c.GlobalString("password")
	if password != "" {
		return password, nil
	}

	agent := c.GlobalString("use-agent")
	if agent != "" {
		clearCache := c.GlobalBool("zero-agent-cache")
		return passwordFromAgent(name, title, agent, clearCache)
	}

	return promptCheckPasswordReader()
}

// resolve an identity name, prompt for its password and decrypt its
// private data
func checkOwnerWithPasswordPrompt(name string, config *configuration.Configuration, c *cli.Context) (string, *configuration.Private, error) {

	if name == "" {
		name = config.DefaultIdentity
	}

	id, err := config.Identity(name)
	if err != nil {
		return "", nil, err
	}
	if id.Data == "" {
		// receive-only identities carry no seed
		return "", nil, fault.NotPrivateKey
	}

	password, err := getPassword(c, name, c.Command.Name)
	if err != nil {
		return "", nil, err
	}

	owner, err := config.Private(password, name)
	if err != nil {
		return "", nil, err
	}

	return name, owner, nil
}
