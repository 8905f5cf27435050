// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"testing"
)

// test Marshal and Unmarshal
func TestSalt(t *testing.T) {
	salt, err := MakeSalt()
	if err != nil {
		t.Fatalf("makeSalt fail: %s", err)
	}

	marshalSalt, err := salt.MarshalText()
	if err != nil {
		t.Fatalf("marshal fail: %s", err)
	}

	salt2 := new(Salt)
	err = salt2.UnmarshalText(marshalSalt)
	if err != nil {
		t.Fatalf("unmarshal fail: %s", err)
	}

	if salt.String() != salt2.String() {
		t.Errorf("unmarshal failed, %s != %s", salt.String(), salt2.String())
	}
}

// short or overlong hex must be rejected
func TestSaltUnmarshalBadLength(t *testing.T) {
	bad := []string{
		"",
		"00",
		"000102030405060708090a0b0c0d0e",
		"000102030405060708090a0b0c0d0e0f00",
	}
	for i, s := range bad {
		salt := new(Salt)
		err := salt.UnmarshalText([]byte(s))
		if err == nil {
			t.Errorf("%d: unexpected success for: %q", i, s)
		}
	}
}
