package handlers

import (
	"net/http"

	"github.com/gorilla/websocket"
	zlog "github.com/rs/zerolog/log"

	"github.com/mechstore/go-mechstore/app/broadcast"
)

type WsHandler struct {
	hub      *broadcast.Hub
	upgrader websocket.Upgrader
}

func NewWsHandler(hub *broadcast.Hub) *WsHandler {
	return &WsHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The storefront runs on its own origin.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Subscribe upgrades the connection and registers it with the hub. The
// client only receives events; anything it sends is discarded.
func (h *WsHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		zlog.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := broadcast.NewClient(conn)
	h.hub.Register(client)
	go client.WritePump()
	go client.ReadPump(h.hub)
}
