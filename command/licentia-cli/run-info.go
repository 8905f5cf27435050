// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"sort"

	"github.com/urfave/cli"
)

type infoIdentity struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Account     string `json:"account"`
	HasKey      bool   `json:"hasKey"`
}

type infoResult struct {
	File            string         `json:"file"`
	DefaultIdentity string         `json:"default_identity"`
	TestNet         bool           `json:"testnet"`
	Connections     []string       `json:"connections"`
	Identities      []infoIdentity `json:"identities"`
}

// display the local configuration without any secret data
func runInfo(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	names := make([]string, 0, len(m.config.Identities))
	for name := range m.config.Identities {
		names = append(names, name)
	}
	sort.Strings(names)

	identities := make([]infoIdentity, 0, len(names))
	for _, name := range names {
		id := m.config.Identities[name]
		identities = append(identities, infoIdentity{
			Name:        name,
			Description: id.Description,
			Account:     id.Account,
			HasKey:      id.Data != "",
		})
	}

	result := infoResult{
		File:            m.file,
		DefaultIdentity: m.config.DefaultIdentity,
		TestNet:         m.config.TestNet,
		Connections:     m.config.Connections,
		Identities:      identities,
	}

	printJson(m.w, result)
	return nil
}
