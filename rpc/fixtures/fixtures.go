// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fixtures

import (
	"fmt"
	"io/ioutil"
	"os"
	"path"

	"github.com/bitmark-inc/logger"
)

// LogCategory - logger name for all rpc tests
const LogCategory = "testing"

const (
	logDirectory        = "testing"
	certificateFileName = "rpcServer.crt"
	keyFileName         = "rpcServer.key"
)

// SetupTestLogger - setup a logging directory for a test run
func SetupTestLogger() {
	removeFiles()
	_ = os.Mkdir(logDirectory, 0700)

	logging := logger.Configuration{
		Directory: logDirectory,
		File:      fmt.Sprintf("%s.log", LogCategory),
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

// TeardownTestLogger - remove the test logging directory
func TeardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

func removeFiles() {
	_ = os.RemoveAll(logDirectory)
}

// Certificate - read the fixture TLS certificate
func Certificate(dir string) string {
	return readFixture(dir, certificateFileName)
}

// Key - read the fixture TLS private key
func Key(dir string) string {
	return readFixture(dir, keyFileName)
}

func readFixture(dir string, name string) string {
	data, err := ioutil.ReadFile(path.Join(dir, name))
	if nil != err {
		return ""
	}
	return string(data)
}
