package spruthub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/shady2k/spruthub-mcp-server/internal/logging"
)

// Client is the inventory and command interface of a Sprut.hub.
type Client interface {
	// ListAccessories fetches a fresh accessory snapshot with services and characteristics expanded.
	ListAccessories(ctx context.Context) ([]Accessory, error)

	// ListRooms fetches all rooms.
	ListRooms(ctx context.Context) ([]Room, error)

	// ListHubs fetches the hubs registered on the account.
	ListHubs(ctx context.Context) ([]Hub, error)

	// SendCommand writes a characteristic value.
	SendCommand(ctx context.Context, cmd Command) error

	// Connected reports whether a hub session is currently established.
	Connected() bool

	// Close terminates the hub session.
	Close() error
}

var _ Client = (*WSClient)(nil)

// WSClient talks JSON-RPC to the hub over a WebSocket.
type WSClient struct {
	config Config
	dialer *websocket.Dialer
	logger *slog.Logger

	// mu guards conn, token and closed.
	mu     sync.Mutex
	conn   *websocket.Conn
	token  string
	closed bool

	// connected mirrors conn != nil && token != "" without taking mu, which is
	// held for the whole dial and login.
	connected atomic.Bool

	writeMu sync.Mutex

	pendingMu sync.Mutex
	pending   map[string]chan rpcResponse
}

// NewWSClient validates the configuration and returns a client that connects on first use.
func NewWSClient(config Config, logger *slog.Logger) (*WSClient, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	config = config.withDefaults()

	return &WSClient{
		config: config,
		dialer: &websocket.Dialer{
			HandshakeTimeout: config.HandshakeTimeout,
			Proxy:            http.ProxyFromEnvironment,
		},
		logger:  logger,
		pending: make(map[string]chan rpcResponse),
	}, nil
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      string `json:"id"`
	Params  any    `json:"params"`
	Token   string `json:"token,omitempty"`
	Serial  string `json:"serial,omitempty"`
}

type rpcResponse struct {
	ID     string          `json:"id"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  *RPCError       `json:"error,omitempty"`

	transportErr error
}

// ListAccessories implements Client.
func (c *WSClient) ListAccessories(ctx context.Context) ([]Accessory, error) {
	var result struct {
		Accessory struct {
			List struct {
				Accessories []Accessory `json:"accessories"`
			} `json:"list"`
		} `json:"accessory"`
	}
	params := map[string]any{
		"accessory": map[string]any{
			"list": map[string]any{"expand": "services,characteristics"},
		},
	}
	if err := c.call(ctx, params, &result); err != nil {
		return nil, err
	}
	return result.Accessory.List.Accessories, nil
}

// ListRooms implements Client.
func (c *WSClient) ListRooms(ctx context.Context) ([]Room, error) {
	var result struct {
		Room struct {
			List struct {
				Rooms []Room `json:"rooms"`
			} `json:"list"`
		} `json:"room"`
	}
	params := map[string]any{"room": map[string]any{"list": map[string]any{}}}
	if err := c.call(ctx, params, &result); err != nil {
		return nil, err
	}
	return result.Room.List.Rooms, nil
}

// ListHubs implements Client.
func (c *WSClient) ListHubs(ctx context.Context) ([]Hub, error) {
	var result struct {
		Hub struct {
			List struct {
				Hubs []Hub `json:"hubs"`
			} `json:"list"`
		} `json:"hub"`
	}
	params := map[string]any{"hub": map[string]any{"list": map[string]any{}}}
	if err := c.call(ctx, params, &result); err != nil {
		return nil, err
	}
	return result.Hub.List.Hubs, nil
}

// SendCommand implements Client.
func (c *WSClient) SendCommand(ctx context.Context, cmd Command) error {
	params := map[string]any{
		"characteristic": map[string]any{
			"update": map[string]any{
				"aId": cmd.AccessoryID,
				"sId": cmd.ServiceID,
				"cId": cmd.CharacteristicID,
				"control": map[string]any{
					"value": encodeValue(cmd.Value),
				},
			},
		},
	}
	return c.call(ctx, params, nil)
}

// Connected implements Client.
func (c *WSClient) Connected() bool {
	return c.connected.Load()
}

// Close implements Client.
func (c *WSClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	c.connected.Store(false)

	if c.conn == nil {
		return nil
	}
	c.writeMu.Lock()
	_ = c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	c.writeMu.Unlock()

	err := c.conn.Close()
	c.conn = nil
	c.token = ""
	return err
}

// call sends params and decodes the result into out (which may be nil).
func (c *WSClient) call(ctx context.Context, params any, out any) error {
	conn, token, err := c.ensureConnected(ctx)
	if err != nil {
		return err
	}

	result, err := c.roundTrip(ctx, conn, token, params)
	if err != nil {
		var rpcErr *RPCError
		if !errors.As(err, &rpcErr) {
			c.dropConn(conn)
		}
		return err
	}

	if out == nil || len(result) == 0 {
		return nil
	}
	if err := json.Unmarshal(result, out); err != nil {
		return fmt.Errorf("failed to decode hub response: %w", err)
	}
	return nil
}

// ensureConnected dials and logs in when no session exists.
func (c *WSClient) ensureConnected(ctx context.Context) (*websocket.Conn, string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, "", ErrClientClosed
	}
	if c.conn != nil && c.token != "" {
		return c.conn, c.token, nil
	}

	conn, resp, err := c.dialer.DialContext(ctx, c.config.URL, nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		return nil, "", fmt.Errorf("%w: dial %s: %v", ErrNotConnected, c.config.URL, err)
	}
	go c.readLoop(conn)

	token, err := c.login(ctx, conn)
	if err != nil {
		_ = conn.Close()
		return nil, "", err
	}

	c.conn = conn
	c.token = token
	c.connected.Store(true)
	c.logger.Info("connected to Sprut.hub",
		logging.Serial(c.config.Serial),
		slog.String("token", logging.SanitizeToken(token)))
	return conn, token, nil
}

func (c *WSClient) login(ctx context.Context, conn *websocket.Conn) (string, error) {
	params := map[string]any{
		"account": map[string]any{
			"login": map[string]any{
				"login":    c.config.Email,
				"password": c.config.Password,
			},
		},
	}
	raw, err := c.roundTrip(ctx, conn, "", params)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrLoginFailed, err)
	}

	var result struct {
		Account struct {
			Login struct {
				Token string `json:"token"`
			} `json:"login"`
		} `json:"account"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return "", fmt.Errorf("%w: decode login response: %v", ErrLoginFailed, err)
	}
	if result.Account.Login.Token == "" {
		return "", fmt.Errorf("%w: response did not contain a token", ErrLoginFailed)
	}
	return result.Account.Login.Token, nil
}

func (c *WSClient) roundTrip(ctx context.Context, conn *websocket.Conn, token string, params any) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.RequestTimeout)
	defer cancel()

	id := uuid.NewString()
	ch := make(chan rpcResponse, 1)

	c.pendingMu.Lock()
	c.pending[id] = ch
	c.pendingMu.Unlock()
	defer func() {
		c.pendingMu.Lock()
		delete(c.pending, id)
		c.pendingMu.Unlock()
	}()

	req := rpcRequest{
		JSONRPC: "2.0",
		ID:      id,
		Params:  params,
		Token:   token,
		Serial:  c.config.Serial,
	}

	c.writeMu.Lock()
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetWriteDeadline(deadline)
	}
	err := conn.WriteJSON(req)
	c.writeMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("%w: write request: %v", ErrNotConnected, err)
	}

	select {
	case resp := <-ch:
		if resp.transportErr != nil {
			return nil, fmt.Errorf("%w: %v", ErrNotConnected, resp.transportErr)
		}
		if resp.Error != nil {
			return nil, resp.Error
		}
		return resp.Result, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("waiting for hub response: %w", ctx.Err())
	}
}

// readLoop delivers responses to waiting callers until the connection fails.
func (c *WSClient) readLoop(conn *websocket.Conn) {
	for {
		var resp rpcResponse
		if err := conn.ReadJSON(&resp); err != nil {
			c.failPending(err)
			c.dropConn(conn)
			return
		}
		if resp.ID == "" {
			// Unsolicited event; the hub pushes state changes we do not subscribe to.
			continue
		}

		c.pendingMu.Lock()
		ch, ok := c.pending[resp.ID]
		c.pendingMu.Unlock()
		if !ok {
			continue
		}
		select {
		case ch <- resp:
		default:
			// Duplicate ID for a request that already has its answer.
			c.logger.Debug("dropping duplicate hub response", slog.String("id", resp.ID))
		}
	}
}

func (c *WSClient) failPending(err error) {
	c.pendingMu.Lock()
	defer c.pendingMu.Unlock()
	for id, ch := range c.pending {
		select {
		case ch <- rpcResponse{ID: id, transportErr: err}:
		default:
		}
	}
}

// dropConn forgets conn so that the next call reconnects.
func (c *WSClient) dropConn(conn *websocket.Conn) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != conn || conn == nil {
		return
	}
	_ = conn.Close()
	c.conn = nil
	c.token = ""
	c.connected.Store(false)
	c.logger.Warn("Sprut.hub connection dropped, will reconnect on next request")
}

// encodeValue wraps a Go value into the typed value object the hub expects.
func encodeValue(v any) map[string]any {
	switch val := v.(type) {
	case bool:
		return map[string]any{"boolValue": val}
	case int:
		return map[string]any{"intValue": val}
	case int64:
		return map[string]any{"intValue": val}
	case float64:
		if val == float64(int64(val)) {
			return map[string]any{"intValue": int64(val)}
		}
		return map[string]any{"doubleValue": val}
	case string:
		return map[string]any{"stringValue": val}
	default:
		return map[string]any{"stringValue": fmt.Sprint(val)}
	}
}
