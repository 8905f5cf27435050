// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus

import (
	"fmt"
	"reflect"
	"strconv"
	"sync"
)

// Message - message to put into a queue
type Message struct {
	Command    string   // type of packed data
	Parameters [][]byte // array of parameters
}

// Queue - interface for any queue
type Queue interface {
	Send(command string, parameters ...[]byte)
	Release()
}

// the exported message queues and their sizes
// any item with a size option will be allocated that size
type busses struct {
	Broadcast *broadcaster `size:"1000"` // to broadcast events to all subscribers
	TestQueue *queue       `size:"50"`   // for testing use
}

// Bus - all available message queues
var Bus busses

// commands that only need to be broadcast once for a given content
var cacheableCommands = map[string]struct{}{
	"record":   {},
	"amend":    {},
	"transfer": {},
	"grant":    {},
	"spend":    {},
	"fees":     {},
	"bind":     {},
}

// the cache of recent broadcasts so duplicates can be dropped
var cache struct {
	sync.Mutex
	table map[string]struct{}
}

// initialise all queues with the sizes from the struct tags
func init() {

	cache.table = make(map[string]struct{})

	busType := reflect.TypeOf(Bus)
	busValue := reflect.ValueOf(&Bus).Elem()

	for i := 0; i < busType.NumField(); i += 1 {

		fieldInfo := busType.Field(i)
		sizeTag := fieldInfo.Tag.Get("size")
		if "" == sizeTag {
			panic(fmt.Sprintf("queue: %q has no size tag", fieldInfo.Name))
		}

		queueSize, err := strconv.Atoi(sizeTag)
		if nil != err || queueSize < 1 {
			panic(fmt.Sprintf("queue: %q has invalid size tag: %q", fieldInfo.Name, sizeTag))
		}

		switch busValue.Field(i).Type() {

		case reflect.TypeOf((*broadcaster)(nil)):
			b := &broadcaster{
				in:          make(chan Message, queueSize),
				defaultSize: queueSize,
			}
			go b.run()
			busValue.Field(i).Set(reflect.ValueOf(b))

		case reflect.TypeOf((*queue)(nil)):
			q := &queue{
				c: make(chan Message, queueSize),
			}
			busValue.Field(i).Set(reflect.ValueOf(q))

		default:
			panic(fmt.Sprintf("queue: %q has invalid type", fieldInfo.Name))
		}
	}
}

// queue - 1:1 queue
type queue struct {
	c chan Message
}

// Send - send a message to a 1:1 queue
// will block if queue is full
func (q *queue) Send(command string, parameters ...[]byte) {
	q.c <- Message{
		Command:    command,
		Parameters: parameters,
	}
}

// Chan - channel to read from a 1:1 queue
func (q *queue) Chan() <-chan Message {
	return q.c
}

// Release - empty a queue
func (q *queue) Release() {
drain:
	for {
		select {
		case <-q.c:
		default:
			break drain
		}
	}
}

// broadcaster - 1:many queue
// a message is delivered to all current subscribers,
// or dropped when there are none
type broadcaster struct {
	sync.Mutex
	in          chan Message
	out         []chan Message
	defaultSize int
}

// Send - send a message to a broadcast queue
// cacheable commands with identical content are only sent once
func (b *broadcaster) Send(command string, parameters ...[]byte) {
	m := Message{
		Command:    command,
		Parameters: parameters,
	}
	if isCached(m) {
		return
	}
	b.in <- m
}

// Chan - subscribe to a broadcast queue
// a size of zero gets the default buffering
func (b *broadcaster) Chan(size int) <-chan Message {
	if size < 0 {
		panic("invalid negative size")
	} else if 0 == size {
		size = b.defaultSize
	}
	c := make(chan Message, size)
	b.Lock()
	b.out = append(b.out, c)
	b.Unlock()
	return c
}

// Release - drop all pending messages
func (b *broadcaster) Release() {
drain:
	for {
		select {
		case <-b.in:
		default:
			break drain
		}
	}
}

// background distributor
// a subscriber that fails to keep up loses messages
func (b *broadcaster) run() {
	for m := range b.in {
		b.Lock()
		for _, out := range b.out {
			select {
			case out <- m:
			default:
			}
		}
		b.Unlock()
	}
}

// DropCache - remove a message from the duplicate detection cache
// so it can be sent again
func DropCache(m Message) {
	signature := signature(m)
	cache.Lock()
	delete(cache.table, signature)
	cache.Unlock()
}

// detect and record a duplicate broadcast
func isCached(m Message) bool {
	if _, ok := cacheableCommands[m.Command]; !ok {
		return false
	}
	signature := signature(m)
	cache.Lock()
	defer cache.Unlock()
	if _, ok := cache.table[signature]; ok {
		return true
	}
	cache.table[signature] = struct{}{}
	return false
}

// unique identification of a message
func signature(m Message) string {
	s := m.Command
	for _, p := range m.Parameters {
		s += string(p)
	}
	return s
}
