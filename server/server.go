package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-sphere/common"
	"github.com/Carmen-Shannon/oxy-sphere/engine/sphere"
	"github.com/gorilla/websocket"
)

// ErrMissingOrder is returned for a request without an order field.
var ErrMissingOrder = errors.New("request has no order")

// server is the implementation of the Server interface.
type server struct {
	addr         string
	defaultOrder int
	maxOrder     int
	logging      bool

	upgrader websocket.Upgrader

	// cache holds built mesh messages by order.
	cacheMu sync.Mutex
	cache   map[int]*MeshMessage

	clientsMu sync.RWMutex
	clients   map[*websocket.Conn]*sync.Mutex
}

// Server streams sphere meshes to websocket clients at /ws. A client receives the
// default order on connect and then one reply per {"order": n} request.
type Server interface {
	// Handler returns the HTTP handler serving /ws.
	//
	// Returns:
	//   - http.Handler: the handler
	Handler() http.Handler

	// Serve listens on the configured address until ctx is done, then shuts down.
	//
	// Parameters:
	//   - ctx: cancels the server
	//
	// Returns:
	//   - error: a listen error, or nil after a clean shutdown
	Serve(ctx context.Context) error

	// Mesh returns the mesh message for an order, building and caching it on first use.
	//
	// Parameters:
	//   - order: the subdivision order
	//
	// Returns:
	//   - *MeshMessage: the mesh, shared and read-only
	//   - error: sphere.ErrOrderOutOfRange above the server limit, or a build error
	Mesh(order int) (*MeshMessage, error)

	// Clients returns the number of connected clients.
	Clients() int
}

var _ Server = &server{}

// NewServer creates a Server with the provided options.
//
// Parameters:
//   - options: a variadic list of ServerBuilderOption functions
//
// Returns:
//   - Server: the configured server
func NewServer(options ...ServerBuilderOption) Server {
	s := &server{
		addr:         ":8080",
		defaultOrder: 3,
		maxOrder:     sphere.DefaultMaxOrder,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		cache:   make(map[int]*MeshMessage),
		clients: make(map[*websocket.Conn]*sync.Mutex),
	}
	for _, opt := range options {
		opt(s)
	}
	s.defaultOrder = common.Clamp(s.defaultOrder, 0, s.maxOrder)
	return s
}

func (s *server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	return mux
}

func (s *server) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logf("listening on %s", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.closeClients()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}

func (s *server) Mesh(order int) (*MeshMessage, error) {
	if order < 0 || order > s.maxOrder {
		return nil, fmt.Errorf("order %d outside [0, %d]: %w", order, s.maxOrder, sphere.ErrOrderOutOfRange)
	}

	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	if m, ok := s.cache[order]; ok {
		return m, nil
	}

	mesh, err := sphere.Build(order)
	if err != nil {
		return nil, err
	}
	verts := mesh.Vertices()
	m := &MeshMessage{
		Type:          MessageTypeMesh,
		Order:         order,
		VertexCount:   mesh.VertexCount(),
		TriangleCount: mesh.TriangleCount(),
		Vertices:      make([][3]float32, mesh.VertexCount()),
		Indices:       mesh.Indices(),
	}
	for i := range m.Vertices {
		m.Vertices[i] = [3]float32{verts[3*i], verts[3*i+1], verts[3*i+2]}
	}
	s.cache[order] = m
	s.logf("built order %d: %d vertices, %d triangles", order, m.VertexCount, m.TriangleCount)
	return m, nil
}

func (s *server) Clients() int {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	return len(s.clients)
}

func (s *server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logf("upgrade: %v", err)
		return
	}
	defer conn.Close()

	connMutex := &sync.Mutex{}
	s.clientsMu.Lock()
	s.clients[conn] = connMutex
	s.clientsMu.Unlock()
	defer func() {
		s.clientsMu.Lock()
		delete(s.clients, conn)
		s.clientsMu.Unlock()
	}()

	if err := s.reply(conn, connMutex, s.defaultOrder); err != nil {
		s.logf("write: %v", err)
		return
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logf("read: %v", err)
			}
			return
		}

		var req MeshRequest
		if err := json.Unmarshal(data, &req); err != nil {
			err = s.writeJSON(conn, connMutex, ErrorMessage{Type: MessageTypeError, Error: fmt.Sprintf("bad request: %v", err)})
		} else if req.Order == nil {
			err = s.writeJSON(conn, connMutex, ErrorMessage{Type: MessageTypeError, Error: ErrMissingOrder.Error()})
		} else {
			err = s.reply(conn, connMutex, *req.Order)
		}
		if err != nil {
			s.logf("write: %v", err)
			return
		}
	}
}

// reply sends the mesh for order, or an error message if it cannot be built.
func (s *server) reply(conn *websocket.Conn, mu *sync.Mutex, order int) error {
	m, err := s.Mesh(order)
	if err != nil {
		return s.writeJSON(conn, mu, ErrorMessage{Type: MessageTypeError, Error: err.Error()})
	}
	return s.writeJSON(conn, mu, m)
}

func (s *server) writeJSON(conn *websocket.Conn, mu *sync.Mutex, v any) error {
	mu.Lock()
	defer mu.Unlock()
	return conn.WriteJSON(v)
}

// closeClients sends a close frame to every client so their read loops end.
func (s *server) closeClients() {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
	for conn, mu := range s.clients {
		mu.Lock()
		_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
		mu.Unlock()
	}
}

func (s *server) logf(format string, args ...any) {
	if s.logging {
		log.Printf("[Server] "+format, args...)
	}
}
