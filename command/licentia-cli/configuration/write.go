// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"encoding/json"
	"os"
)

// Save - atomically update the configuration file
//
// writes to a temporary file first then renames, keeping the previous
// file as a backup
func Save(filename string, configuration *Configuration) error {

	tempFile := filename + ".new"
	previousFile := filename + ".bk"

	os.Remove(tempFile)

	file, err := os.OpenFile(tempFile, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	err = enc.Encode(configuration)
	if err != nil {
		file.Close()
		return err
	}
	err = file.Close()
	if err != nil {
		return err
	}

	err = os.Remove(previousFile)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	err = os.Rename(filename, previousFile)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	err = os.Rename(tempFile, filename)
	if err != nil {
		return err
	}

	return nil
}
