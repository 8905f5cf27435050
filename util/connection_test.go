// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util_test

import (
	"testing"

	"github.com/bitmark-inc/licentiad/fault"
	"github.com/bitmark-inc/licentiad/util"
)

// Test IP address detection
func TestCanonical(t *testing.T) {

	testData := []struct {
		in       string
		expected string
		v6       bool
	}{
		{"127.0.0.1:1234", "127.0.0.1:1234", false},
		{"127.0.0.1:1", "127.0.0.1:1", false},
		{" 127.0.0.1:1 ", "127.0.0.1:1", false},
		{"127.0.0.1:65535", "127.0.0.1:65535", false},
		{"0.0.0.0:1234", "0.0.0.0:1234", false},
		{"[::1]:1234", "[::1]:1234", true},
		{"[::]:1234", "[::]:1234", true},
		{"[0:0::0:0]:1234", "[::]:1234", true},
		{"[0:0:0:0::1]:1234", "[::1]:1234", true},
	}

	for i, d := range testData {
		c, err := util.NewConnection(d.in)
		if nil != err {
			t.Errorf("failed on:[%d] %q  err = %v", i, d.in, err)
			continue
		}
		s, v6 := c.CanonicalIPandPort("")
		if s != d.expected {
			t.Errorf("failed on:[%d] %q  actual: %q  expected: %q", i, d.in, s, d.expected)
		}
		if v6 != d.v6 {
			t.Errorf("failed on:[%d] %q  v6: %v  expected: %v", i, d.in, v6, d.v6)
		}
	}
}

// Test invalid IP addresses
func TestCanonicalIP(t *testing.T) {

	testData := []string{
		"256.0.0.0:1234",
		"0.256.0.0:1234",
		"0.0.256.0:1234",
		"0.0.0.256:1234",
		"0:0:1234",
		"[]:1234",
		"[as34::]:1234",
		"[1ffff::]:1234",
		"*:1234",
	}

	for i, d := range testData {
		c, err := util.NewConnection(d)
		if fault.InvalidIpAddress != err {
			t.Errorf("failed on:[%d] %q  err = %v", i, d, err)
		} else if nil != c {
			t.Errorf("failed on:[%d] %q  unexpected connection: %v", i, d, c)
		}
	}
}

// Test invalid ports
func TestCanonicalPort(t *testing.T) {

	testData := []string{
		"127.0.0.1:0",
		"127.0.0.1:65536",
		"127.0.0.1:-1",
		"127.0.0.1:",
		"127.0.0.1:port",
	}

	for i, d := range testData {
		c, err := util.NewConnection(d)
		if fault.InvalidPortNumber != err {
			t.Errorf("failed on:[%d] %q  err = %v", i, d, err)
		} else if nil != c {
			t.Errorf("failed on:[%d] %q  unexpected connection: %v", i, d, c)
		}
	}
}
