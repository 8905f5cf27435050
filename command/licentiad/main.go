// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/licentiad/account"
	"github.com/bitmark-inc/licentiad/dispatcher"
	"github.com/bitmark-inc/licentiad/fault"
	"github.com/bitmark-inc/licentiad/ledger"
	"github.com/bitmark-inc/licentiad/mode"
	"github.com/bitmark-inc/licentiad/publish"
	"github.com/bitmark-inc/licentiad/rpc"
	"github.com/bitmark-inc/licentiad/storage"
	"github.com/bitmark-inc/licentiad/zmqutil"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
		{Long: "read-only", HasArg: getoptions.NO_ARGUMENT, Short: 'r'},
		{Long: "memory-stats", HasArg: getoptions.NO_ARGUMENT, Short: 'm'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		processSetupCommand(program, []string{"version"})
		return
	}

	if len(options["help"]) > 0 {
		processSetupCommand(program, []string{"help"})
		return
	}

	// these commands do not require the configuration and
	// process data needed for initial setup
	if len(arguments) > 0 && processSetupCommand(program, arguments) {
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	theConfiguration, err := getConfiguration(configurationFile)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	// these commands require the configuration and
	// perform enquiries on the configuration
	if len(arguments) > 0 && processConfigCommand(arguments, theConfiguration) {
		return
	}

	// start logging
	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("theConfiguration: %v", theConfiguration)

	// ------------------
	// start of real main
	// ------------------

	// optional PID file
	// use if not running under a supervisor program like daemon(8)
	if "" != theConfiguration.PidFile {
		lockFile, err := os.OpenFile(theConfiguration.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if err != nil {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %s", program, theConfiguration.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(theConfiguration.PidFile)
	}

	// set the initial system mode - before any background tasks are started
	err = mode.Initialise(theConfiguration.Network)
	if nil != err {
		log.Criticalf("mode initialise error: %s", err)
		exitwithstatus.Message("mode initialise error: %s", err)
	}
	defer mode.Finalise()

	// start a profiling http server
	// this uses the default builtin HTTP handler
	// and is not associated with the normal ClientRPC HTTPS server
	if "" != theConfiguration.ProfileHTTP {
		go func() {
			log.Warnf("profile listener on: %s", theConfiguration.ProfileHTTP)
			err = http.ListenAndServe(theConfiguration.ProfileHTTP, nil)
			exitwithstatus.Message("profile error: %s", err)
		}()
	}

	// general info
	log.Infof("test mode: %v", mode.IsTesting())
	log.Infof("database: %q", theConfiguration.Database)

	// connection info
	log.Debugf("%s = %#v", "ClientRPC", theConfiguration.ClientRPC)
	log.Debugf("%s = %#v", "HttpsRPC", theConfiguration.HttpsRPC)
	log.Debugf("%s = %#v", "Publishing", theConfiguration.Publishing)

	readOnly := len(options["read-only"]) > 0
	if readOnly {
		log.Warn("running in read only mode, all credit and record updates are disabled")
	}

	// start the data storage
	log.Info("initialise storage")
	access := storage.ReadWrite
	if readOnly {
		access = storage.ReadOnly
	}
	err = storage.Initialise(theConfiguration.Database.Name, access)
	if nil != err {
		log.Criticalf("storage initialise error: %s", err)
		exitwithstatus.Message("storage initialise error: %s", err)
	}
	defer storage.Finalise()

	// the configured genesis accounts
	rootAccount, err := account.AccountFromBase58(theConfiguration.Registry.Root)
	if nil != err {
		log.Criticalf("registry root account error: %s", err)
		exitwithstatus.Message("registry root account error: %s", err)
	}
	dispatcherAccount, err := account.AccountFromBase58(theConfiguration.Registry.Dispatcher)
	if nil != err {
		log.Criticalf("registry dispatcher account error: %s", err)
		exitwithstatus.Message("registry dispatcher account error: %s", err)
	}
	if rootAccount.IsTesting() != mode.IsTesting() {
		log.Criticalf("registry root account: %s is not valid for network: %s", rootAccount, theConfiguration.Network)
		exitwithstatus.Message("registry root account: %s is not valid for network: %s", rootAccount, theConfiguration.Network)
	}
	if dispatcherAccount.IsTesting() != mode.IsTesting() {
		log.Criticalf("registry dispatcher account: %s is not valid for network: %s", dispatcherAccount, theConfiguration.Network)
		exitwithstatus.Message("registry dispatcher account: %s is not valid for network: %s", dispatcherAccount, theConfiguration.Network)
	}

	// open the credit ledger, the first ever start mints the supply
	log.Info("initialise ledger")
	err = ledger.Initialise(
		ledger.Handles{
			Balances:   storage.Pool.Balances,
			Allowances: storage.Pool.Allowances,
			Sequences:  storage.Pool.Sequences,
			Metadata:   storage.Pool.Metadata,
		},
		ledger.Genesis{
			Root:        rootAccount,
			TotalSupply: theConfiguration.Registry.Supply,
		},
	)
	if nil != err {
		log.Criticalf("ledger initialise error: %s", err)
		exitwithstatus.Message("ledger initialise error: %s", err)
	}
	defer ledger.Finalise()

	// start the licence dispatcher
	log.Info("initialise dispatcher")
	err = dispatcher.Initialise(
		dispatcher.Handles{
			Creators: storage.Pool.Creators,
			Metadata: storage.Pool.Metadata,
		},
		ledger.Credits{},
		dispatcher.Genesis{
			Root:      rootAccount,
			Account:   dispatcherAccount,
			CreateFee: theConfiguration.Registry.CreateFee,
			UpdateFee: theConfiguration.Registry.UpdateFee,
		},
	)
	if nil != err {
		log.Criticalf("dispatcher initialise error: %s", err)
		exitwithstatus.Message("dispatcher initialise error: %s", err)
	}
	defer dispatcher.Finalise()

	// re-attach a persisted dispatcher binding, a fresh database has
	// none until the root account sends Registry.Bind
	err = ledger.AttachDispatcher(
		func(acct *account.Account) (ledger.Dispatcher, error) {
			return dispatcher.Activate(acct)
		},
	)
	if nil == err {
		log.Info("dispatcher re-attached")
	} else if fault.DispatcherNotBound == err {
		log.Info("dispatcher is not bound yet")
	} else {
		log.Criticalf("dispatcher attach error: %s", err)
		exitwithstatus.Message("dispatcher attach error: %s", err)
	}

	// these commands are allowed to access the internal database
	if len(arguments) > 0 && processDataCommand(log, arguments, theConfiguration) {
		return
	}

	// initialise encryption
	err = zmqutil.StartAuthentication()
	if nil != err {
		log.Criticalf("zmq.AuthStart: error: %s", err)
		exitwithstatus.Message("zmq.AuthStart: error: %s", err)
	}

	// start up the publishing background processes
	err = publish.Initialise(&theConfiguration.Publishing, version)
	if nil != err {
		log.Criticalf("publish initialise error: %s", err)
		exitwithstatus.Message("publish initialise error: %s", err)
	}
	defer publish.Finalise()

	// start up the rpc background processes
	err = rpc.Initialise(&theConfiguration.ClientRPC, &theConfiguration.HttpsRPC, version, readOnly)
	if nil != err {
		log.Criticalf("rpc initialise error: %s", err)
		exitwithstatus.Message("rpc initialise error: %s", err)
	}
	defer rpc.Finalise()

	// watch the configuration file to apply supported changes
	// without a restart
	watcherChannel := WatcherChannel{
		change: make(chan struct{}, 1),
		remove: make(chan struct{}, 1),
	}
	watcher, err := newFileWatcher(configurationFile, logger.New(FileWatcherLoggerPrefix), watcherChannel)
	if nil != err {
		log.Criticalf("file watcher error: %s", err)
		exitwithstatus.Message("file watcher error: %s", err)
	}
	err = watcher.Start()
	if nil != err {
		log.Criticalf("file watcher start error: %s", err)
		exitwithstatus.Message("file watcher start error: %s", err)
	}
	go configurationReload(logger.New(ReloadLoggerPrefix), configurationFile, watcherChannel)

	// if memory logging enabled
	if len(options["memory-stats"]) > 0 {
		go memstats()
	}

	// all state is local so there is no synchronisation phase
	mode.Set(mode.Normal)

	// wait for CTRL-C before shutting down to allow manual testing
	if 0 == len(options["quiet"]) {
		fmt.Printf("\n\nWaiting for CTRL-C (SIGINT) or 'kill <pid>' (SIGTERM)…")
	}

	// turn Signals into channel messages
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v", sig)
	if 0 == len(options["quiet"]) {
		fmt.Printf("\nreceived signal: %v\n", sig)
		fmt.Printf("\nshutting down…\n")
	}

	log.Info("shutting down…")
	mode.Set(mode.Stopped)
}
