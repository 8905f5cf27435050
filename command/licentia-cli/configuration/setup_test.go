// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/bitmark-inc/licentiad/account"
)

const (
	testPassword = "a password for testing"
)

func makeTestConfiguration(t *testing.T) (*Configuration, string) {
	t.Helper()

	seed, err := account.NewBase58EncodedSeedV2(true)
	if err != nil {
		t.Fatalf("make seed error: %s", err)
	}

	config := &Configuration{
		DefaultIdentity: "first",
		TestNet:         true,
		Connections:     []string{"127.0.0.1:2130"},
		Identities:      make(map[string]Identity),
	}

	err = config.AddIdentity("first", "first test identity", seed, testPassword)
	if err != nil {
		t.Fatalf("add identity error: %s", err)
	}
	return config, seed
}

func TestAddIdentity(t *testing.T) {

	config, seed := makeTestConfiguration(t)

	if _, ok := config.Identities["first"]; !ok {
		t.Fatalf("identity was not stored")
	}

	// duplicate names are refused
	err := config.AddIdentity("first", "duplicate", seed, testPassword)
	if err == nil {
		t.Errorf("unexpected success adding duplicate identity")
	}

	private, err := config.Private(testPassword, "first")
	if err != nil {
		t.Fatalf("private error: %s", err)
	}
	if private.Seed != seed {
		t.Errorf("seed: actual: %q  expected: %q", private.Seed, seed)
	}

	acc, err := config.Account("first")
	if err != nil {
		t.Fatalf("account error: %s", err)
	}
	if acc.String() != private.PrivateKey.Account().String() {
		t.Errorf("account: actual: %s  expected: %s", acc, private.PrivateKey.Account())
	}

	_, err = config.Private("not the password", "first")
	if err == nil {
		t.Errorf("unexpected success with wrong password")
	}
}

func TestReceiveOnlyIdentity(t *testing.T) {

	config, _ := makeTestConfiguration(t)

	acc, err := config.Account("first")
	if err != nil {
		t.Fatalf("account error: %s", err)
	}

	err = config.AddReceiveOnlyIdentity("second", "receive only", acc.String())
	if err != nil {
		t.Fatalf("add receive-only error: %s", err)
	}

	// no private data is stored
	_, err = config.Private(testPassword, "second")
	if err == nil {
		t.Errorf("unexpected private data for receive-only identity")
	}

	err = config.AddReceiveOnlyIdentity("third", "bad account", "not-an-account")
	if err == nil {
		t.Errorf("unexpected success with invalid account")
	}
}

func TestUpdatePassword(t *testing.T) {

	config, seed := makeTestConfiguration(t)

	newPassword := "a replacement password"

	err := config.UpdatePassword("first", "not the password", newPassword)
	if err == nil {
		t.Fatalf("unexpected success with wrong password")
	}

	err = config.UpdatePassword("first", testPassword, newPassword)
	if err != nil {
		t.Fatalf("update password error: %s", err)
	}

	_, err = config.Private(testPassword, "first")
	if err == nil {
		t.Errorf("old password still unlocks identity")
	}

	private, err := config.Private(newPassword, "first")
	if err != nil {
		t.Fatalf("private error: %s", err)
	}
	if private.Seed != seed {
		t.Errorf("seed: actual: %q  expected: %q", private.Seed, seed)
	}
}

func TestSaveLoad(t *testing.T) {

	config, _ := makeTestConfiguration(t)

	dir, err := ioutil.TempDir("", "configuration-test")
	if err != nil {
		t.Fatalf("tempdir error: %s", err)
	}
	defer os.RemoveAll(dir)

	file := filepath.Join(dir, "testing-licentia-cli.json")

	err = Save(file, config)
	if err != nil {
		t.Fatalf("save error: %s", err)
	}

	// second save keeps a backup of the previous file
	err = Save(file, config)
	if err != nil {
		t.Fatalf("second save error: %s", err)
	}
	if _, err := os.Stat(file + ".bk"); err != nil {
		t.Errorf("missing backup file: %s", err)
	}

	loaded, err := Load(file)
	if err != nil {
		t.Fatalf("load error: %s", err)
	}

	if loaded.DefaultIdentity != config.DefaultIdentity {
		t.Errorf("default identity: actual: %q  expected: %q", loaded.DefaultIdentity, config.DefaultIdentity)
	}
	if loaded.TestNet != config.TestNet {
		t.Errorf("testnet: actual: %t  expected: %t", loaded.TestNet, config.TestNet)
	}
	if len(loaded.Identities) != len(config.Identities) {
		t.Fatalf("identities: actual: %d  expected: %d", len(loaded.Identities), len(config.Identities))
	}

	private, err := loaded.Private(testPassword, "first")
	if err != nil {
		t.Fatalf("private after load error: %s", err)
	}
	if private.PrivateKey.Account().String() != loaded.Identities["first"].Account {
		t.Errorf("account mismatch after load")
	}
}
