// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package handler

import (
	"encoding/hex"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/rpc"
	"net/rpc/jsonrpc"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/licentiad/counter"
	"github.com/bitmark-inc/licentiad/dispatcher"
	"github.com/bitmark-inc/licentiad/ledger"
	"github.com/bitmark-inc/licentiad/mode"
	"github.com/bitmark-inc/licentiad/publish"
)

// Handler - HTTP request handlers for the status server
type Handler interface {
	SetAllow(allow map[string][]*net.IPNet)
	RPC(w http.ResponseWriter, r *http.Request)
	Details(w http.ResponseWriter, r *http.Request)
	Connections(w http.ResponseWriter, r *http.Request)
	Root(w http.ResponseWriter, r *http.Request)
}

// type to allow rpc system to interface to http request
type internalConnection struct {
	in  io.Reader
	out io.Writer
}

func (c *internalConnection) Read(p []byte) (n int, err error) {
	return c.in.Read(p)
}
func (c *internalConnection) Write(d []byte) (n int, err error) {
	return c.out.Write(d)
}
func (c *internalConnection) Close() error {
	return nil
}

type httpHandler struct {
	log                *logger.L
	server             *rpc.Server
	start              time.Time
	version            string
	maximumConnections uint64
	count              counter.Counter

	sync.RWMutex // allow can be replaced on a configuration reload
	allow        map[string][]*net.IPNet
}

// New - create a handler for the status endpoints
func New(
	log *logger.L,
	server *rpc.Server,
	start time.Time,
	version string,
	maximumConnections uint64,
) Handler {
	return &httpHandler{
		log:                log,
		server:             server,
		start:              start,
		version:            version,
		maximumConnections: maximumConnections,
	}
}

// SetAllow - set the CIDR ranges permitted for each endpoint
func (s *httpHandler) SetAllow(allow map[string][]*net.IPNet) {
	s.Lock()
	s.allow = allow
	s.Unlock()
}

// Root - matches anything not matched elsewhere and returns an error
func (s *httpHandler) Root(w http.ResponseWriter, _ *http.Request) {
	sendNotFound(w)
}

// RPC - performs a call to any normal RPC
func (s *httpHandler) RPC(w http.ResponseWriter, r *http.Request) {
	if http.MethodPost != r.Method {
		sendMethodNotAllowed(w)
		return
	}

	if s.count.Increment() > s.maximumConnections {
		s.count.Decrement()
		sendTooManyRequests(w)
		return
	}
	defer s.count.Decrement()

	serverCodec := jsonrpc.NewServerCodec(&internalConnection{in: r.Body, out: w})
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	err := s.server.ServeRequest(serverCodec)
	if nil != err {
		sendInternalServerError(w)
		return
	}
}

type registryInfo struct {
	Supply     uint64 `json:"supply"`
	Dispatcher bool   `json:"dispatcher"`
}

type feeInfo struct {
	Create uint64 `json:"create"`
	Update uint64 `json:"update"`
}

type detailsReply struct {
	Chain     string       `json:"chain"`
	Mode      string       `json:"mode"`
	Registry  registryInfo `json:"registry"`
	Fees      feeInfo      `json:"fees"`
	RPCs      uint64       `json:"rpcs"`
	Version   string       `json:"version"`
	Uptime    string       `json:"uptime"`
	PublicKey string       `json:"publicKey"`
}

// Details - to allow a GET for the same response as the Node.Info RPC
func (s *httpHandler) Details(w http.ResponseWriter, r *http.Request) {
	if http.MethodGet != r.Method {
		sendMethodNotAllowed(w)
		return
	}

	if !s.isAllowed("details", r) {
		s.log.Warnf("Deny access: %q", r.RemoteAddr)
		sendForbidden(w)
		return
	}

	if s.count.Increment() > s.maximumConnections {
		s.count.Decrement()
		sendTooManyRequests(w)
		return
	}
	defer s.count.Decrement()

	_, dispatcherBound := ledger.DispatcherAccount()
	createFee, updateFee := dispatcher.Fees()

	reply := detailsReply{
		Chain: mode.NetworkName(),
		Mode:  mode.String(),
		Registry: registryInfo{
			Supply:     ledger.TotalSupply(),
			Dispatcher: dispatcherBound,
		},
		Fees: feeInfo{
			Create: createFee,
			Update: updateFee,
		},
		RPCs:      s.count.Uint64(),
		Version:   s.version,
		Uptime:    time.Since(s.start).String(),
		PublicKey: hex.EncodeToString(publish.PublicKey()),
	}

	sendReply(w, reply)
}

type connectionsReply struct {
	Current uint64 `json:"current"`
	Maximum uint64 `json:"maximum"`
}

// Connections - report the current handler connection load
func (s *httpHandler) Connections(w http.ResponseWriter, r *http.Request) {
	if http.MethodGet != r.Method {
		sendMethodNotAllowed(w)
		return
	}

	if !s.isAllowed("connections", r) {
		s.log.Warnf("Deny access: %q", r.RemoteAddr)
		sendForbidden(w)
		return
	}

	if s.count.Increment() > s.maximumConnections {
		s.count.Decrement()
		sendTooManyRequests(w)
		return
	}
	defer s.count.Decrement()

	reply := connectionsReply{
		Current: s.count.Uint64(),
		Maximum: s.maximumConnections,
	}

	sendReply(w, reply)
}

// check a remote address against the allowed CIDR ranges of an endpoint
func (s *httpHandler) isAllowed(endpoint string, r *http.Request) bool {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if nil != err {
		return false
	}

	addr := net.ParseIP(host)
	if nil == addr {
		return false
	}

	s.RLock()
	set, ok := s.allow[endpoint]
	s.RUnlock()
	if !ok {
		return false
	}

	for _, cidr := range set {
		if cidr.Contains(addr) {
			return true
		}
	}

	return false
}

// send a JSON encoded reply
func sendReply(w http.ResponseWriter, data interface{}) {
	text, err := json.Marshal(data)
	if nil != err {
		sendInternalServerError(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(text)
}

// selected errors as required above
func sendNotFound(w http.ResponseWriter) {
	sendError(w, "not found", http.StatusNotFound)
}
func sendMethodNotAllowed(w http.ResponseWriter) {
	sendError(w, "method not allowed", http.StatusMethodNotAllowed)
}
func sendForbidden(w http.ResponseWriter) {
	sendError(w, "forbidden", http.StatusForbidden)
}
func sendInternalServerError(w http.ResponseWriter) {
	sendError(w, "internal server error", http.StatusInternalServerError)
}
func sendTooManyRequests(w http.ResponseWriter) {
	sendError(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
}

// to compose JSON error messages
type eType struct {
	Code  int    `json:"code"`
	Error string `json:"error"`
}

// output an error with a JSON body
func sendError(w http.ResponseWriter, message string, code int) {
	text, err := json.Marshal(eType{
		Code:  code,
		Error: message,
	})
	if nil != err {
		// manually composed error just incase JSON fails
		http.Error(w, `{"code":500,"error":"Internal Server Error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(code)
	_, _ = w.Write(text)
}
