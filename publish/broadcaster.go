// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package publish

import (
	"encoding/binary"
	"time"

	"github.com/bitmark-inc/logger"
	zmq "github.com/pebbe/zmq4"

	"github.com/bitmark-inc/licentiad/messagebus"
	"github.com/bitmark-inc/licentiad/util"
	"github.com/bitmark-inc/licentiad/zmqutil"
)

const (
	broadcasterZapDomain = "broadcaster"
	heartbeatInterval    = 60 * time.Second
)

type broadcaster struct {
	log     *logger.L
	version string
	counter uint64
	socket4 *zmq.Socket
	socket6 *zmq.Socket
}

// initialise the broadcaster
func (brdc *broadcaster) initialise(privateKey []byte, publicKey []byte, broadcast []string, version string) error {

	log := logger.New("broadcaster")
	brdc.log = log
	brdc.version = version

	log.Info("initialising…")

	c, err := util.NewConnections(broadcast)
	if nil != err {
		log.Errorf("ip and port error: %s", err)
		return err
	}

	// allocate IPv4 and IPv6 sockets
	brdc.socket4, brdc.socket6, err = zmqutil.NewBind(log, zmq.PUB, broadcasterZapDomain, privateKey, publicKey, c)
	if nil != err {
		log.Errorf("bind error: %s", err)
		return err
	}

	return nil
}

// Run - publish events as multipart frames
// heartbeats are interleaved so subscribers can detect a dead publisher
func (brdc *broadcaster) Run(args interface{}, shutdown <-chan struct{}) {

	log := brdc.log

	log.Info("starting…")

	queue := messagebus.Bus.Broadcast.Chan(0)

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-time.After(heartbeatInterval):
			brdc.heartbeat()
		case item := <-queue:
			log.Infof("sending: %s  data: %x", item.Command, item.Parameters)
			brdc.process(brdc.socket4, &item)
			brdc.process(brdc.socket6, &item)
		}
	}
	if nil != brdc.socket4 {
		brdc.socket4.Close()
	}
	if nil != brdc.socket6 {
		brdc.socket6.Close()
	}
}

// periodic liveness frame carrying a beat counter and the server version
func (brdc *broadcaster) heartbeat() {
	brdc.counter += 1
	beat := make([]byte, 8)
	binary.BigEndian.PutUint64(beat, brdc.counter)

	item := messagebus.Message{
		Command:    "heart",
		Parameters: [][]byte{beat, []byte(brdc.version)},
	}
	brdc.process(brdc.socket4, &item)
	brdc.process(brdc.socket6, &item)
}

// send one event as a multipart message
func (brdc *broadcaster) process(socket *zmq.Socket, item *messagebus.Message) {
	if nil == socket {
		return
	}

	_, err := socket.Send(item.Command, zmq.SNDMORE|zmq.DONTWAIT)
	logger.PanicIfError("broadcaster", err)
	last := len(item.Parameters) - 1
	for i, p := range item.Parameters {
		if i == last {
			_, err = socket.SendBytes(p, 0|zmq.DONTWAIT)
		} else {
			_, err = socket.SendBytes(p, zmq.SNDMORE|zmq.DONTWAIT)
		}
		logger.PanicIfError("broadcaster", err)
	}
}
