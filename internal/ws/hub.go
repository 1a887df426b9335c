package ws

import (
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

var (
	projectClients   = make(map[string]map[*websocket.Conn]bool)
	projectClientsMu sync.RWMutex
)

const (
	WriteWait      = 10 * time.Second
	PongWait       = 60 * time.Second
	PingPeriod     = (PongWait * 9) / 10
	MaxMessageSize = 512
)

// Register attaches a connection to a project's client set.
func Register(projectID string, conn *websocket.Conn) {
	projectClientsMu.Lock()
	if projectClients[projectID] == nil {
		projectClients[projectID] = make(map[*websocket.Conn]bool)
	}
	projectClients[projectID][conn] = true
	projectClientsMu.Unlock()
}

// Unregister detaches a connection and drops the project entry once empty.
func Unregister(projectID string, conn *websocket.Conn) {
	projectClientsMu.Lock()

	if clients, exists := projectClients[projectID]; exists {
		delete(clients, conn)

		if len(clients) == 0 {
			delete(projectClients, projectID)
		}
	}

	projectClientsMu.Unlock()
}

// BroadcastRefresh tells every client watching the project to reload its data.
func BroadcastRefresh(projectID string) {
	projectClientsMu.RLock()
	clients, exists := projectClients[projectID]
	if !exists || len(clients) == 0 {
		projectClientsMu.RUnlock()
		return
	}

	// Create a copy of the clients map to avoid holding the lock during message sending
	clientsCopy := make([]*websocket.Conn, 0, len(clients))
	for conn := range clients {
		clientsCopy = append(clientsCopy, conn)
	}
	projectClientsMu.RUnlock()

	for _, conn := range clientsCopy {
		if err := conn.SetWriteDeadline(time.Now().Add(WriteWait)); err != nil {
			log.Printf("Failed to set write deadline for broadcast: %v", err)
			continue
		}

		err := conn.WriteJSON(map[string]string{
			"type":       "refresh",
			"message":    "Project data updated",
			"project_id": projectID,
		})

		if err != nil {
			log.Printf("Failed to broadcast refresh to client: %v", err)
			Unregister(projectID, conn)
			conn.Close()
		}
	}
}
