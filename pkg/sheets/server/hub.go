// Package server exposes a workbook to browser front-ends over a websocket.
package server

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/dhruv-33/google-sheets/pkg/sheets"
)

// Frame types sent to clients.
const (
	FrameState = "STATE"
	FrameError = "ERROR"
)

// ErrHubStopped is returned by Do once Run has returned.
var ErrHubStopped = errors.New("hub stopped")

// Frame is a server-to-client message.
type Frame struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// ErrorPayload describes a rejected command.
type ErrorPayload struct {
	Command string `json:"command"`
	Error   string `json:"error"`
}

type inbound struct {
	client *Client
	cmd    sheets.Command
	err    error
}

// Hub owns a workbook and the connected clients. All workbook access happens
// on the goroutine running Run.
type Hub struct {
	wb  *sheets.Workbook
	log logrus.FieldLogger

	// Registered clients.
	clients map[*Client]bool

	// Decoded commands from the clients.
	commands chan inbound

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Closures to run against the workbook.
	tasks chan func(*sheets.Workbook)

	done chan struct{}
}

// NewHub returns a hub serving wb. Call Run to start it.
func NewHub(wb *sheets.Workbook, logger logrus.FieldLogger) *Hub {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Hub{
		wb:         wb,
		log:        logger,
		clients:    make(map[*Client]bool),
		commands:   make(chan inbound),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		tasks:      make(chan func(*sheets.Workbook)),
		done:       make(chan struct{}),
	}
}

// Run processes client traffic until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				h.drop(client)
			}
			return

		case client := <-h.register:
			h.clients[client] = true
			h.log.WithFields(logrus.Fields{"client": client.id, "clients": len(h.clients)}).Debug("Client registered")
			h.send(client, h.state())

		case client := <-h.unregister:
			if h.clients[client] {
				h.drop(client)
				h.log.WithFields(logrus.Fields{"client": client.id, "clients": len(h.clients)}).Debug("Client unregistered")
			}

		case in := <-h.commands:
			err := in.err
			if err == nil {
				err = h.wb.Apply(in.cmd)
			}
			if err != nil {
				h.log.WithError(err).WithFields(logrus.Fields{"client": in.client.id, "command": in.cmd.Type}).Info("Command rejected")
				if h.clients[in.client] {
					h.send(in.client, encode(Frame{
						Type:    FrameError,
						Payload: ErrorPayload{Command: in.cmd.Type, Error: err.Error()},
					}))
				}
				continue
			}
			h.broadcast(h.state())

		case fn := <-h.tasks:
			fn(h.wb)
		}
	}
}

// Do runs fn against the workbook on the hub goroutine and waits for it to return.
func (h *Hub) Do(ctx context.Context, fn func(*sheets.Workbook)) error {
	finished := make(chan struct{})
	task := func(wb *sheets.Workbook) {
		defer close(finished)
		fn(wb)
	}
	select {
	case h.tasks <- task:
	case <-h.done:
		return ErrHubStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	<-finished
	return nil
}

func (h *Hub) state() []byte {
	return encode(Frame{Type: FrameState, Payload: h.wb.Snapshot()})
}

func (h *Hub) broadcast(msg []byte) {
	for client := range h.clients {
		h.send(client, msg)
	}
}

// send queues msg for client, dropping clients that cannot keep up.
func (h *Hub) send(client *Client, msg []byte) {
	select {
	case client.send <- msg:
	default:
		h.log.WithField("client", client.id).Warn("Dropping slow client")
		h.drop(client)
	}
}

func (h *Hub) drop(client *Client) {
	delete(h.clients, client)
	close(client.send)
}

func encode(f Frame) []byte {
	b, _ := json.Marshal(f)
	return b
}
