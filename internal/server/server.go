// Package server exposes the resolution engine over WebSocket for
// integration harnesses and load testing. The engine itself owns no wire
// format; this service is one consumer of it.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/underworld-games/destinydeck/internal/randutil"
	"github.com/underworld-games/destinydeck/internal/resolve"
	"github.com/underworld-games/destinydeck/internal/resolveid"
)

// Server serves resolution requests over WebSocket
type Server struct {
	addr        string
	upgrader    websocket.Upgrader
	resolver    *resolve.Resolver
	ids         *resolveid.Generator
	logger      *log.Logger
	httpServer  *http.Server
	mu          sync.Mutex
	connections map[*websocket.Conn]bool
	ctx         context.Context
	cancel      context.CancelFunc
}

// NewServer creates a resolution server
func NewServer(addr string, resolver *resolve.Resolver, logger *log.Logger) *Server {
	ctx, cancel := context.WithCancel(context.Background())

	return &Server{
		addr: addr,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		resolver:    resolver,
		ids:         resolveid.New(),
		logger:      logger.WithPrefix("server"),
		connections: make(map[*websocket.Conn]bool),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Handler returns the HTTP handler serving the WebSocket and health
// endpoints
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// Start starts the server and blocks until it stops
func (s *Server) Start() error {
	s.httpServer = &http.Server{Addr: s.addr, Handler: s.Handler()}
	s.logger.Info("Starting resolution server", "addr", s.addr)

	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Stop shuts the server down and closes all connections
func (s *Server) Stop() error {
	s.cancel()

	s.mu.Lock()
	for conn := range s.connections {
		_ = conn.Close()
	}
	s.mu.Unlock()

	if s.httpServer != nil {
		return s.httpServer.Shutdown(context.Background())
	}
	return nil
}

// handleWebSocket upgrades the connection and serves resolution requests
// until the client disconnects
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	s.mu.Lock()
	s.connections[conn] = true
	total := len(s.connections)
	s.mu.Unlock()
	s.logger.Info("Client connected", "total", total)

	defer func() {
		s.mu.Lock()
		delete(s.connections, conn)
		s.mu.Unlock()
		_ = conn.Close()
		s.logger.Info("Client disconnected")
	}()

	for {
		select {
		case <-s.ctx.Done():
			return
		default:
		}

		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Error("Read failed", "error", err)
			}
			return
		}

		response := s.handleMessage(&msg)
		response.RequestID = msg.RequestID
		if response.RequestID == "" {
			// Requests without a client correlation ID still get a
			// server-issued one so results can be traced in the logs
			id, err := s.ids.Generate()
			if err != nil {
				s.logger.Error("ID generation failed", "error", err)
			} else {
				response.RequestID = id
			}
		}
		s.logger.Debug("Request handled", "type", msg.Type, "request_id", response.RequestID)
		if err := conn.WriteJSON(response); err != nil {
			s.logger.Error("Write failed", "error", err)
			return
		}
	}
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK")
}

// handleMessage dispatches one request and builds the response message
func (s *Server) handleMessage(msg *Message) *Message {
	switch msg.Type {
	case MessageTypeResolveThreshold:
		var req ThresholdRequestData
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			return errorMessage("bad_request", err)
		}
		return s.resolveThreshold(&req)

	case MessageTypeResolveOpposed:
		var req OpposedRequestData
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			return errorMessage("bad_request", err)
		}
		return s.resolveOpposed(&req)

	default:
		return errorMessage("unknown_type", fmt.Errorf("unknown message type %q", msg.Type))
	}
}

func (s *Server) resolveThreshold(req *ThresholdRequestData) *Message {
	bonuses, err := parseBonuses(req.Bonuses)
	if err != nil {
		return errorMessage("bad_request", err)
	}
	mods, err := parseModifiers(req.Modifiers)
	if err != nil {
		return errorMessage("bad_request", err)
	}

	res, err := s.resolver.ResolveThreshold(bonuses, req.Difficulty, mods)
	if err != nil {
		return resolutionErrorMessage(err)
	}

	return resultMessage(res)
}

func (s *Server) resolveOpposed(req *OpposedRequestData) *Message {
	actorBonuses, err := parseBonuses(req.ActorBonuses)
	if err != nil {
		return errorMessage("bad_request", err)
	}
	defenderBonuses, err := parseBonuses(req.DefenderBonuses)
	if err != nil {
		return errorMessage("bad_request", err)
	}
	actorMods, err := parseModifiers(req.ActorModifiers)
	if err != nil {
		return errorMessage("bad_request", err)
	}
	defenderMods, err := parseModifiers(req.DefenderModifiers)
	if err != nil {
		return errorMessage("bad_request", err)
	}

	res, err := s.resolver.ResolveOpposed(actorBonuses, defenderBonuses, actorMods, defenderMods)
	if err != nil {
		return resolutionErrorMessage(err)
	}

	return resultMessage(res)
}

func resultMessage(res *resolve.Result) *Message {
	msg, err := NewMessage(MessageTypeResult, newResultData(res))
	if err != nil {
		return errorMessage("internal", err)
	}
	return msg
}

// resolutionErrorMessage maps engine errors onto wire error codes
func resolutionErrorMessage(err error) *Message {
	code := "internal"
	switch {
	case errors.Is(err, resolve.ErrConfig):
		code = "bad_config"
	case errors.Is(err, resolve.ErrInvariant):
		code = "invariant_violation"
	case errors.Is(err, randutil.ErrUnavailable):
		code = "random_source_unavailable"
	}
	return errorMessage(code, err)
}

func errorMessage(code string, err error) *Message {
	msg, marshalErr := NewMessage(MessageTypeError, ErrorData{Code: code, Message: err.Error()})
	if marshalErr != nil {
		// ErrorData always marshals
		panic(marshalErr)
	}
	return msg
}
