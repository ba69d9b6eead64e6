package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(req *http.Request) bool {
		return true
	},
}

var statsInterval = 2 * time.Second

// @Summary	Open websocket for realtime status information
// @Router		/api/ws [get]
// @Param		Upgrade	header	string	true	"websocket"
// @Tags		base
// @Success	101
func (a *Api) handleWebsocket(w http.ResponseWriter, req *http.Request) {
	ws, err := upgrader.Upgrade(w, req, nil)
	if err != nil {
		// Upgrade already replied
		return
	}
	defer func(ws *websocket.Conn) {
		err := ws.Close()
		if err != nil {
			slog.Debug(fmt.Sprintf("could not close websocket: %s", err), slog.String("module", "api"))
		}
	}(ws)

	a.addClient(ws)
	defer a.removeClient(ws)

	done := make(chan struct{})
	defer close(done)
	go a.websocketWriter(ws, done)

	for {
		_, msg, err := ws.ReadMessage()
		if err != nil {
			break
		}
		slog.Debug(fmt.Sprintf("Received: %s", msg), slog.String("module", "api"))
	}
}

func (a *Api) addClient(ws *websocket.Conn) {
	a.wsMutex.Lock()
	a.wsClients[ws] = true
	n := len(a.wsClients)
	a.wsMutex.Unlock()
	a.Stats.SetWsClients(n)
}

func (a *Api) removeClient(ws *websocket.Conn) {
	a.wsMutex.Lock()
	delete(a.wsClients, ws)
	n := len(a.wsClients)
	a.wsMutex.Unlock()
	a.Stats.SetWsClients(n)
}

func (a *Api) websocketWriter(ws *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(statsInterval)
	defer ticker.Stop()
	timeout := 10 * time.Second

	send := func() bool {
		packet, err := json.Marshal(a.Stats)
		if err != nil {
			return false
		}
		err = ws.SetWriteDeadline(time.Now().Add(timeout))
		if err != nil {
			slog.Debug(fmt.Sprintf("could not set write deadline: %s", err), slog.String("module", "api"))
			return false
		}
		return ws.WriteMessage(websocket.TextMessage, packet) == nil
	}

	if !send() {
		return
	}
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if !send() {
				return
			}
		}
	}
}
