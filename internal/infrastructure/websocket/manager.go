package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"sunstone/pkg/logger"
)

// Client is one connected browser. A client starts with no topics and
// subscribes to the feeds its page currently shows.
type Client struct {
	ID     string
	Conn   *websocket.Conn
	Send   chan []byte
	topics map[string]bool

	mu     sync.Mutex
	closed bool
}

func NewClient(id string, conn *websocket.Conn) *Client {
	return &Client{
		ID:     id,
		Conn:   conn,
		Send:   make(chan []byte, 16),
		topics: make(map[string]bool),
	}
}

// trySend queues a message for the client. Returns false when the send
// buffer is full. The client mutex keeps the send and the close in
// closeSend mutually exclusive, so concurrent topic pumps can never send
// on a closed channel.
func (c *Client) trySend(message []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return true
	}

	select {
	case c.Send <- message:
		return true
	default:
		return false
	}
}

func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.Send)
	}
}

// Manager fans feed snapshots out to clients by topic. The topic hooks fire
// when a topic gains its first subscriber and when it loses its last one, so
// the feed layer can start and stop upstream listeners to match.
type Manager struct {
	clients map[string]*Client
	topics  map[string]map[string]*Client

	Register   chan *Client
	Unregister chan *Client
	mutex      sync.RWMutex

	onFirstSubscriber func(topic string)
	onLastSubscriber  func(topic string)
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]*Client),
		topics:     make(map[string]map[string]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// SetTopicHooks must be called before Start.
func (m *Manager) SetTopicHooks(onFirst, onLast func(topic string)) {
	m.onFirstSubscriber = onFirst
	m.onLastSubscriber = onLast
}

// Start runs the manager's main loop in a goroutine.
func (m *Manager) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case client := <-m.Register:
				m.mutex.Lock()
				m.clients[client.ID] = client
				m.mutex.Unlock()
				logger.Debug("Feed client registered: %s", client.ID)

			case client := <-m.Unregister:
				m.removeClient(client)
				logger.Debug("Feed client unregistered: %s", client.ID)

			case <-ctx.Done():
				return
			}
		}
	}()
}

// removeClient runs its topic hooks while still holding the manager lock,
// so hook order always matches the order of the map transitions.
func (m *Manager) removeClient(client *Client) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, ok := m.clients[client.ID]; !ok {
		return
	}

	for topic := range client.topics {
		delete(m.topics[topic], client.ID)
		if len(m.topics[topic]) == 0 {
			delete(m.topics, topic)
			if m.onLastSubscriber != nil {
				m.onLastSubscriber(topic)
			}
		}
	}
	delete(m.clients, client.ID)
	client.closeSend()
}

// Subscribe adds a client to a topic, starting the upstream feed when this
// is the topic's first subscriber.
func (m *Manager) Subscribe(clientID, topic string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	client, ok := m.clients[clientID]
	if !ok {
		return
	}

	first := false
	if m.topics[topic] == nil {
		m.topics[topic] = make(map[string]*Client)
		first = true
	}
	m.topics[topic][clientID] = client
	client.topics[topic] = true

	if first && m.onFirstSubscriber != nil {
		m.onFirstSubscriber(topic)
	}
}

// Unsubscribe removes a client from a topic, stopping the upstream feed when
// no subscriber remains.
func (m *Manager) Unsubscribe(clientID, topic string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	client, ok := m.clients[clientID]
	if !ok || !client.topics[topic] {
		return
	}

	delete(client.topics, topic)
	delete(m.topics[topic], clientID)
	if len(m.topics[topic]) == 0 {
		delete(m.topics, topic)
		if m.onLastSubscriber != nil {
			m.onLastSubscriber(topic)
		}
	}
}

// Broadcast sends a message to every subscriber of a topic. A client whose
// send buffer is full is dropped rather than allowed to stall the feed.
func (m *Manager) Broadcast(topic string, message []byte) {
	m.mutex.RLock()
	subscribers := make([]*Client, 0, len(m.topics[topic]))
	for _, client := range m.topics[topic] {
		subscribers = append(subscribers, client)
	}
	m.mutex.RUnlock()

	for _, client := range subscribers {
		if !client.trySend(message) {
			logger.Warn("Dropping slow feed client %s", client.ID)
			m.removeClient(client)
		}
	}
}

// clientCommand is what browsers send: subscribe/unsubscribe to a topic.
type clientCommand struct {
	Action string `json:"action"`
	Topic  string `json:"topic"`
}

// ReadPump reads subscription commands from the connection until it closes.
func (c *Client) ReadPump(m *Manager) {
	defer func() {
		m.Unregister <- c
		c.Conn.Close()
	}()

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("Feed client %s read error: %v", c.ID, err)
			}
			break
		}

		var cmd clientCommand
		if err := json.Unmarshal(message, &cmd); err != nil {
			logger.Debug("Ignoring malformed feed command from %s", c.ID)
			continue
		}

		switch cmd.Action {
		case "subscribe":
			m.Subscribe(c.ID, cmd.Topic)
		case "unsubscribe":
			m.Unsubscribe(c.ID, cmd.Topic)
		}
	}
}

// WritePump sends queued messages to the connection.
func (c *Client) WritePump() {
	defer c.Conn.Close()

	for {
		message, ok := <-c.Send
		if !ok {
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}

		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			logger.Warn("Feed client %s write error: %v", c.ID, err)
			return
		}
	}
}
