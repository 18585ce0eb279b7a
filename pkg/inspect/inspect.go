// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

// Package inspect serves a recordkit's frame tree and native call log over HTTP so a
// replayed scene can be examined (and poked) from a browser or curl.
package inspect

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"runtime/debug"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/wavetermdev/waveframe/pkg/frameapi"
	"github.com/wavetermdev/waveframe/pkg/frameapi/recordkit"
	"github.com/wavetermdev/waveframe/pkg/frameprops"
)

const HttpReadTimeout = 5 * time.Second
const HttpWriteTimeout = 21 * time.Second
const HttpMaxHeaderBytes = 60000

const (
	ContentTypeHeaderKey      = "Content-Type"
	ContentTypeJson           = "application/json"
	CacheControlHeaderKey     = "Cache-Control"
	CacheControlHeaderNoCache = "no-cache"
)

// Source is what the inspector looks at: a recordkit plus the handler labels that
// have fired so far (scene.Player implements it).
type Source interface {
	Kit() *recordkit.Kit
	Events() []string
}

type Server struct {
	lock   *sync.Mutex
	source Source
	router *mux.Router
}

type WebFnType = func(http.ResponseWriter, *http.Request)

type PropInfo struct {
	Name         string `json:"name"`
	Category     string `json:"category"`
	Default      any    `json:"default"`
	CreationOnly bool   `json:"creationonly,omitempty"`
}

func MakeServer(source Source) *Server {
	s := &Server{
		lock:   &sync.Mutex{},
		source: source,
		router: mux.NewRouter(),
	}
	s.router.HandleFunc("/api/frames", webFnWrap(s.handleFrames)).Methods(http.MethodGet)
	s.router.HandleFunc("/api/frames/{id:[0-9]+}", webFnWrap(s.handleFrame)).Methods(http.MethodGet)
	s.router.HandleFunc("/api/frames/{id:[0-9]+}/fire", webFnWrap(s.handleFire)).Methods(http.MethodPost)
	s.router.HandleFunc("/api/calls", webFnWrap(s.handleCalls)).Methods(http.MethodGet)
	s.router.HandleFunc("/api/events", webFnWrap(s.handleEvents)).Methods(http.MethodGet)
	s.router.HandleFunc("/api/tick", webFnWrap(s.handleTick)).Methods(http.MethodPost)
	s.router.HandleFunc("/api/defaults", webFnWrap(handleDefaults)).Methods(http.MethodGet)
	s.router.HandleFunc("/api/props", webFnWrap(handleProps)).Methods(http.MethodGet)
	s.router.HandleFunc("/ws", s.handleWs)
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func marshalReturnValue(data any, err error) []byte {
	var mapRtn = make(map[string]any)
	if err != nil {
		mapRtn["error"] = err.Error()
	} else {
		mapRtn["success"] = true
		mapRtn["data"] = data
	}
	rtn, err := json.Marshal(mapRtn)
	if err != nil {
		return marshalReturnValue(nil, fmt.Errorf("error serializing response: %v", err))
	}
	return rtn
}

func writeJson(w http.ResponseWriter, status int, data any, err error) {
	barr := marshalReturnValue(data, err)
	w.Header().Set(ContentTypeHeaderKey, ContentTypeJson)
	w.WriteHeader(status)
	w.Write(barr)
}

func webFnWrap(fn WebFnType) WebFnType {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			recErr := recover()
			if recErr == nil {
				return
			}
			log.Printf("[inspect] panic: %v\n", recErr)
			debug.PrintStack()
			writeJson(w, http.StatusInternalServerError, nil, fmt.Errorf("panic: %v", recErr))
		}()
		w.Header().Set(CacheControlHeaderKey, CacheControlHeaderNoCache)
		fn(w, r)
	}
}

func frameIdFromRequest(r *http.Request) (frameapi.Frame, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		return frameapi.NoFrame, fmt.Errorf("invalid frame id: %w", err)
	}
	return frameapi.Frame(id), nil
}

func (s *Server) handleFrames(w http.ResponseWriter, r *http.Request) {
	writeJson(w, http.StatusOK, s.source.Kit().Snapshot(), nil)
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	frame, err := frameIdFromRequest(r)
	if err != nil {
		writeJson(w, http.StatusBadRequest, nil, err)
		return
	}
	info, ok := s.source.Kit().Info(frame)
	if !ok {
		writeJson(w, http.StatusNotFound, nil, fmt.Errorf("%s does not exist", frame))
		return
	}
	writeJson(w, http.StatusOK, info, nil)
}

// handleCalls returns the call log, optionally starting at ?since=N.
func (s *Server) handleCalls(w http.ResponseWriter, r *http.Request) {
	since := 0
	if sinceStr := r.URL.Query().Get("since"); sinceStr != "" {
		var err error
		since, err = strconv.Atoi(sinceStr)
		if err != nil || since < 0 {
			writeJson(w, http.StatusBadRequest, nil, fmt.Errorf("invalid since %q", sinceStr))
			return
		}
	}
	calls := s.source.Kit().Calls()
	if since > len(calls) {
		since = len(calls)
	}
	writeJson(w, http.StatusOK, CallsUpdate{Since: since, Calls: calls[since:]}, nil)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	s.lock.Lock()
	events := s.source.Events()
	s.lock.Unlock()
	writeJson(w, http.StatusOK, events, nil)
}

// handleFire dispatches a native event (?event=control_click) to a frame's triggers.
func (s *Server) handleFire(w http.ResponseWriter, r *http.Request) {
	frame, err := frameIdFromRequest(r)
	if err != nil {
		writeJson(w, http.StatusBadRequest, nil, err)
		return
	}
	eventName := r.URL.Query().Get("event")
	event, ok := frameapi.ParseFrameEvent(eventName)
	if !ok {
		writeJson(w, http.StatusBadRequest, nil, fmt.Errorf("unknown event %q", eventName))
		return
	}
	s.lock.Lock()
	ran := s.source.Kit().Fire(frame, event)
	s.lock.Unlock()
	writeJson(w, http.StatusOK, map[string]any{"conditions": ran}, nil)
}

func (s *Server) handleTick(w http.ResponseWriter, r *http.Request) {
	n := 1
	if nStr := r.URL.Query().Get("n"); nStr != "" {
		var err error
		n, err = strconv.Atoi(nStr)
		if err != nil || n < 1 {
			writeJson(w, http.StatusBadRequest, nil, fmt.Errorf("invalid n %q", nStr))
			return
		}
	}
	s.lock.Lock()
	fired := s.source.Kit().RunTicks(n)
	s.lock.Unlock()
	writeJson(w, http.StatusOK, map[string]any{"timers": fired}, nil)
}

func handleDefaults(w http.ResponseWriter, r *http.Request) {
	writeJson(w, http.StatusOK, frameprops.DefaultTable(), nil)
}

func handleProps(w http.ResponseWriter, r *http.Request) {
	var rtn []PropInfo
	for _, name := range frameprops.AllProps() {
		cat, _ := frameprops.CategoryOf(name)
		def, _ := frameprops.Default(name)
		rtn = append(rtn, PropInfo{
			Name:         string(name),
			Category:     cat.String(),
			Default:      def,
			CreationOnly: frameprops.IsCreationOnly(name),
		})
	}
	writeJson(w, http.StatusOK, rtn, nil)
}

// Serve runs the server on listener until ctx is done.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	server := &http.Server{
		ReadTimeout:    HttpReadTimeout,
		WriteTimeout:   HttpWriteTimeout,
		MaxHeaderBytes: HttpMaxHeaderBytes,
		Handler:        s.router,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancelFn := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancelFn()
		server.Shutdown(shutdownCtx)
	}()
	log.Printf("[inspect] serving on %s\n", listener.Addr())
	err := server.Serve(listener)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
