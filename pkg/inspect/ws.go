// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package inspect

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/wavetermdev/waveframe/pkg/frameapi/recordkit"
)

const wsReadWaitTimeout = 15 * time.Second
const wsWriteWaitTimeout = 10 * time.Second
const wsPingPeriodTickTime = 10 * time.Second
const wsInitialPingTime = 1 * time.Second
const wsCallPollTime = 100 * time.Millisecond

const (
	MessageType_Calls = "calls"
	MessageType_Ping  = "ping"
	MessageType_Pong  = "pong"
)

// CallsUpdate carries the native calls recorded at log positions [Since, Since+len(Calls)).
type CallsUpdate struct {
	Type  string           `json:"type,omitempty"`
	Since int              `json:"since"`
	Calls []recordkit.Call `json:"calls"`
}

var WebSocketUpgrader = websocket.Upgrader{
	ReadBufferSize:   4 * 1024,
	WriteBufferSize:  32 * 1024,
	HandshakeTimeout: 1 * time.Second,
	CheckOrigin:      func(r *http.Request) bool { return true },
}

func (s *Server) handleWs(w http.ResponseWriter, r *http.Request) {
	err := s.handleWsInternal(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func getMessageType(jmsg map[string]any) string {
	if str, ok := jmsg["type"].(string); ok {
		return str
	}
	return ""
}

func readLoop(conn *websocket.Conn, outputCh chan any, closeCh chan any) {
	readWait := wsReadWaitTimeout
	conn.SetReadLimit(64 * 1024)
	conn.SetReadDeadline(time.Now().Add(readWait))
	defer close(closeCh)
	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			break
		}
		jmsg := map[string]any{}
		err = json.Unmarshal(message, &jmsg)
		if err != nil {
			log.Printf("[inspect] error unmarshalling ws message: %v\n", err)
			break
		}
		conn.SetReadDeadline(time.Now().Add(readWait))
		if getMessageType(jmsg) == MessageType_Ping {
			outputCh <- map[string]any{"type": MessageType_Pong, "stime": time.Now().UnixMilli()}
		}
	}
}

func writePing(conn *websocket.Conn) error {
	pingMessage := map[string]any{"type": MessageType_Ping, "stime": time.Now().UnixMilli()}
	jsonVal, _ := json.Marshal(pingMessage)
	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWaitTimeout))
	return conn.WriteMessage(websocket.TextMessage, jsonVal)
}

// writeLoop streams new calls as they land in the kit's log, interleaved with pings.
func (s *Server) writeLoop(conn *websocket.Conn, since int, outputCh chan any, closeCh chan any) {
	pingTicker := time.NewTicker(wsInitialPingTime)
	defer pingTicker.Stop()
	pollTicker := time.NewTicker(wsCallPollTime)
	defer pollTicker.Stop()
	initialPing := true
	var err error
	for {
		select {
		case msg := <-outputCh:
			err = writeJsonMessage(conn, msg)

		case <-pollTicker.C:
			calls := s.source.Kit().Calls()
			if len(calls) < since {
				// log was reset
				since = 0
			}
			if len(calls) == since {
				continue
			}
			update := CallsUpdate{Type: MessageType_Calls, Since: since, Calls: calls[since:]}
			since = len(calls)
			err = writeJsonMessage(conn, update)

		case <-pingTicker.C:
			err = writePing(conn)
			if initialPing {
				initialPing = false
				pingTicker.Reset(wsPingPeriodTickTime)
			}

		case <-closeCh:
			return
		}
		if err != nil {
			log.Printf("[inspect] ws write error: %v\n", err)
			conn.Close()
			return
		}
	}
}

func writeJsonMessage(conn *websocket.Conn, msg any) error {
	barr, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("cannot marshal websocket message: %w", err)
	}
	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWaitTimeout))
	return conn.WriteMessage(websocket.TextMessage, barr)
}

func (s *Server) handleWsInternal(w http.ResponseWriter, r *http.Request) error {
	since := 0
	if sinceStr := r.URL.Query().Get("since"); sinceStr != "" {
		var err error
		since, err = strconv.Atoi(sinceStr)
		if err != nil || since < 0 {
			return fmt.Errorf("invalid since %q", sinceStr)
		}
	}
	conn, err := WebSocketUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return fmt.Errorf("websocket upgrade failed: %v", err)
	}
	defer conn.Close()
	connId := uuid.New().String()
	log.Printf("[inspect] new websocket connection %s since:%d\n", connId, since)
	defer log.Printf("[inspect] websocket connection %s closed\n", connId)
	outputCh := make(chan any, 100)
	closeCh := make(chan any)
	wg := &sync.WaitGroup{}
	wg.Add(2)
	go func() {
		defer wg.Done()
		readLoop(conn, outputCh, closeCh)
	}()
	go func() {
		defer wg.Done()
		s.writeLoop(conn, since, outputCh, closeCh)
	}()
	wg.Wait()
	return nil
}
