// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package viz

import (
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 5 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 8) / 10

	// Enough for every Snapshot of one request.
	socketBufferSize = 32

	// Maximum message size allowed from peer.
	maxMessageSize = 512

	debugSocket = false
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	HandshakeTimeout: time.Second,
	ReadBufferSize:   maxMessageSize,
	WriteBufferSize:  4096,
}

// Outbound is one message to a socket client. Exactly one field is set.
type Outbound struct {
	Snapshot *Snapshot `json:"snapshot,omitempty"`
	Done     *Done     `json:"done,omitempty"`
	Error    string    `json:"error,omitempty"`
}

// Done ends the Snapshots of a Request.
type Done struct {
	Cell   Cell `json:"cell"`
	Rivers int  `json:"rivers"`
}

// SocketClient streams Snapshots of requested regions, one per task.
type SocketClient struct {
	server *Server
	conn   *websocket.Conn
	send   chan Outbound
	done   chan struct{}
	once   sync.Once
}

func NewSocketClient(server *Server, conn *websocket.Conn) *SocketClient {
	return &SocketClient{
		server: server,
		conn:   conn,
		send:   make(chan Outbound, socketBufferSize),
		done:   make(chan struct{}),
	}
}

func (client *SocketClient) Destroy() {
	client.once.Do(func() {
		atomic.AddInt32(&client.server.clients, -1)
		close(client.done)
		_ = client.conn.Close()
	})
}

func (client *SocketClient) Init() {
	atomic.AddInt32(&client.server.clients, 1)
	go client.writePump()
	go client.readPump()
}

// Send queues a message, destroying the client if it doesn't keep up.
func (client *SocketClient) Send(message Outbound) bool {
	select {
	case client.send <- message:
		return true
	case <-client.done:
		return false
	default:
	}

	timer := time.NewTimer(writeWait)
	defer timer.Stop()

	select {
	case client.send <- message:
		return true
	case <-client.done:
		return false
	case <-timer.C:
		// Not responsive
		if debugSocket {
			log.Println("SocketClient is not responsive")
		}
		client.Destroy()
		return false
	}
}

// handle visualizes a request on the read goroutine, so requests are answered in order.
func (client *SocketClient) handle(request Request) {
	layers, err := parseLayers(request.Layers)
	if err != nil {
		client.Send(Outbound{Error: err.Error()})
		return
	}

	alive := true
	r := visualize(client.server.generator, request.X, request.Z, layers, func(snapshot Snapshot) {
		if alive {
			alive = client.Send(Outbound{Snapshot: &snapshot})
		}
	})

	if alive {
		client.Send(Outbound{Done: &Done{Cell: newCell(r.Cell), Rivers: len(r.Rivers)}})
	}
}

func (client *SocketClient) readPump() {
	defer client.Destroy()
	client.conn.SetReadLimit(maxMessageSize)
	_ = client.conn.SetReadDeadline(time.Now().Add(pongWait))
	client.conn.SetPongHandler(func(string) error {
		_ = client.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, r, err := client.conn.NextReader()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Println("close error:", err)
			}
			break
		}

		var request Request
		if err = json.NewDecoder(r).Decode(&request); err != nil {
			log.Println("unmarshal error:", err.Error())
			break
		}

		client.handle(request)
	}
}

func (client *SocketClient) writePump() {
	pingTicker := time.NewTicker(pingPeriod)

	defer func() {
		pingTicker.Stop()
		client.Destroy()
	}()

	for {
		select {
		case out := <-client.send:
			_ = client.conn.SetWriteDeadline(time.Now().Add(writeWait))

			w, err := client.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				if debugSocket {
					log.Println("send error:", err)
				}
				return
			}

			if err = json.NewEncoder(w).Encode(out); err != nil {
				log.Println("marshal error:", err)
				return
			}

			if err = w.Close(); err != nil {
				return
			}
		case <-pingTicker.C:
			_ = client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-client.done:
			_ = client.conn.WriteMessage(websocket.CloseMessage, nil)
			return
		}
	}
}
