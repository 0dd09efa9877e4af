package config

import (
	"github.com/yeminhtut/donortrack-be/websocket"
)

// WSHub fans ledger and registry change events out to connected dashboard
// clients. Controllers broadcast through it after successful mutations; a nil
// hub (as in tests) makes Broadcast a no-op.
var WSHub *websocket.Hub

// InitializeWebSocketHub starts the hub's event loop. Called once from main
// before the router begins accepting /ws connections.
func InitializeWebSocketHub() {
	WSHub = websocket.NewHub()
	go WSHub.Run()
}
