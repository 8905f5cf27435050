// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/licentiad/account"
	"github.com/bitmark-inc/licentiad/dispatcher"
	"github.com/bitmark-inc/licentiad/ledger"
	"github.com/bitmark-inc/licentiad/license"
	"github.com/bitmark-inc/licentiad/mode"
	"github.com/bitmark-inc/licentiad/rpc/certificate"
	"github.com/bitmark-inc/licentiad/transactionrecord"
	"github.com/bitmark-inc/licentiad/zmqutil"
)

const (
	broadcastPublicKeyFilename  = "broadcast.public"
	broadcastPrivateKeyFilename = "broadcast.private"

	rpcCertificateKeyFilename = "rpc.crt"
	rpcPrivateKeyFilename     = "rpc.key"
)

// setup command handler
//
// commands that run to create key and certificate files these
// commands cannot access any internal database or states or the
// configuration file
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {
	case "gen-rpc-cert", "rpc":
		certificateFilename := getFilenameWithDirectory(arguments, rpcCertificateKeyFilename)
		privateKeyFilename := getFilenameWithDirectory(arguments, rpcPrivateKeyFilename)

		addresses := []string{}
		if len(arguments) >= 2 {
			for _, a := range arguments[1:] {
				if "" != a {
					addresses = append(addresses, a)
				}
			}
		}

		err := makeSelfSignedCertificate("rpc", certificateFilename, privateKeyFilename, 0 != len(addresses), addresses)
		if nil != err {
			fmt.Printf("generate RPC key: %q and certificate: %q error: %s\n", privateKeyFilename, certificateFilename, err)
			exitwithstatus.Exit(1)
		}
		fmt.Printf("generated RPC key: %q and certificate: %q\n", privateKeyFilename, certificateFilename)

	case "gen-broadcast-key", "broadcast":
		publicKeyFilename := getFilenameWithDirectory(arguments, broadcastPublicKeyFilename)
		privateKeyFilename := getFilenameWithDirectory(arguments, broadcastPrivateKeyFilename)

		err := zmqutil.MakeKeyPair(publicKeyFilename, privateKeyFilename)
		if nil != err {
			fmt.Printf("generate private key: %q and public key: %q error: %s\n", privateKeyFilename, publicKeyFilename, err)
			exitwithstatus.Exit(1)
		}
		fmt.Printf("generated private key: %q and public key: %q\n", privateKeyFilename, publicKeyFilename)

	case "fingerprint", "f":
		return false // defer processing until configuration is read

	case "start", "run":
		return false // continue processing

	case "registry", "reg", "balance", "bal", "record", "rec":
		return false // defer processing until database is loaded

	case "config-test", "cfg":
		return false

	case "version", "v":
		fmt.Printf("%s\n", version)
		return true

	default:
		switch command {
		case "help", "h", "?":
		case "", " ":
			fmt.Printf("error: missing command\n")
		default:
			fmt.Printf("error: no such command: %q\n", command)
		}
		fmt.Printf("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE [[command|help] arguments...]", program)

		fmt.Printf("supported commands:\n\n")
		fmt.Printf("  help                       (h)      - display this message\n\n")
		fmt.Printf("  version                    (v)      - display version sting\n\n")

		fmt.Printf("  gen-rpc-cert [DIR]         (rpc)    - create private key in:  %q\n", "DIR/"+rpcPrivateKeyFilename)
		fmt.Printf("                                        and the certificate in: %q\n", "DIR/"+rpcCertificateKeyFilename)
		fmt.Printf("\n")

		fmt.Printf("  gen-rpc-cert [DIR] [IPs...]         - create private key in:  %q\n", "DIR/"+rpcPrivateKeyFilename)
		fmt.Printf("                                        and the certificate in: %q\n", "DIR/"+rpcCertificateKeyFilename)
		fmt.Printf("\n")

		fmt.Printf("  gen-broadcast-key [DIR]    (broadcast) - create private key in: %q\n", "DIR/"+broadcastPrivateKeyFilename)
		fmt.Printf("                                           and the public key in: %q\n", "DIR/"+broadcastPublicKeyFilename)
		fmt.Printf("\n")

		fmt.Printf("  fingerprint                (f)      - display the SHA3-256 fingerprint of the rpc certificate\n")
		fmt.Printf("\n")

		fmt.Printf("  start                      (run)    - just run the program, same as no arguments\n")
		fmt.Printf("                                        for convienience when passing script arguments\n")
		fmt.Printf("\n")

		fmt.Printf("  config-test                (cfg)    - just check the configuration file\n")
		fmt.Printf("\n")

		fmt.Printf("  registry                   (reg)    - display the registry state\n")
		fmt.Printf("\n")

		fmt.Printf("  balance ACCOUNT            (bal)    - display the stored credit balance of an account\n")
		fmt.Printf("\n")

		fmt.Printf("  record IDENTIFIER          (rec)    - dump a licence record as JSON to stdout\n")
		fmt.Printf("\n")

		exitwithstatus.Exit(1)
	}

	// indicate processing complete and preform normal exit from main
	return true
}

// configuration file enquiry commands
// have configuration file read and decoded, but nothing else
func processConfigCommand(arguments []string, options *Configuration) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "fingerprint", "f":
		keyPair, err := tls.X509KeyPair([]byte(options.ClientRPC.Certificate), []byte(options.ClientRPC.PrivateKey))
		if nil != err {
			exitwithstatus.Message("error: cannot decode certificate: error: %s", err)
		}
		fmt.Printf("rpc fingerprint: %x\n", certificate.Fingerprint(keyPair.Certificate[0]))

	case "config-test", "cfg":
		b, err := json.Marshal(options)
		if err != nil {
			exitwithstatus.Message("error: %s", err)
		}
		var out bytes.Buffer
		json.Indent(&out, b, "", "  ")
		out.WriteTo(os.Stdout)
		os.Stdout.WriteString("\n")

	default: // unknown commands fall through to data command
		return false
	}

	// indicate processing complete and perform normal exit from main
	return true
}

// data command handler
// the ledger and dispatcher are initialised so these commands can
// read the stored registry state
func processDataCommand(log *logger.L, arguments []string, options *Configuration) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {

	case "start", "run":
		return false // continue processing

	case "registry", "reg":
		fmt.Printf("network: %s\n", mode.NetworkName())
		fmt.Printf("root: %s\n", ledger.RootAccount())
		fmt.Printf("total supply: %d\n", ledger.TotalSupply())
		if dispatcherAccount, ok := ledger.DispatcherAccount(); ok {
			fmt.Printf("dispatcher: %s\n", dispatcherAccount)
		} else {
			fmt.Printf("dispatcher: not bound\n")
		}
		createFee, updateFee := dispatcher.Fees()
		fmt.Printf("create fee: %d\n", createFee)
		fmt.Printf("update fee: %d\n", updateFee)

	case "balance", "bal":
		if len(arguments) < 1 {
			exitwithstatus.Message("missing account argument")
		}
		acct, err := account.AccountFromBase58(arguments[0])
		if nil != err {
			exitwithstatus.Message("error in account: %s", err)
		}
		balance, err := ledger.Balance(acct)
		if nil != err {
			exitwithstatus.Message("balance read error: %s", err)
		}
		fmt.Printf("%s: %d\n", acct, balance)

	case "record", "rec":
		if len(arguments) < 1 {
			exitwithstatus.Message("missing record identifier argument")
		}
		var recordId transactionrecord.RecordIdentifier
		err := recordId.UnmarshalText([]byte(arguments[0]))
		if nil != err {
			exitwithstatus.Message("error in record identifier: %s", err)
		}
		record, amendments, err := license.Fetch(nil, recordId)
		if nil != err {
			exitwithstatus.Message("record fetch error: %s", err)
		}
		s, err := json.MarshalIndent(record, "", "  ")
		if nil != err {
			exitwithstatus.Message("record JSON error: %s", err)
		}
		fmt.Printf("%s\namendments: %d\n", s, amendments)

	default:
		exitwithstatus.Message("error: no such command: %s", command)

	}

	// indicate processing complete and perform normal exit from main
	return true
}

func getFilenameWithDirectory(arguments []string, name string) string {
	dir := "."
	if len(arguments) >= 1 {
		dir = arguments[0]
	}

	return filepath.Join(dir, name)
}
