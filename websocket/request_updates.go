package websocket

import (
	"encoding/json"
	"log"
	"time"
)

// RequestUpdate represents a real-time asset-request update pushed to
// connected dashboards.
type RequestUpdate struct {
	Type      string      `json:"type"` // REQUEST_CREATED, REQUEST_STATUS_CHANGE
	RequestID string      `json:"requestId,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	UserID    string      `json:"userId,omitempty"`
	UserName  string      `json:"userName,omitempty"`
}

// BroadcastRequestUpdate sends the update to all connected clients.
func BroadcastRequestUpdate(update RequestUpdate) {
	data, err := json.Marshal(update)
	if err != nil {
		log.Printf("Failed to marshal request update: %v", err)
		return
	}

	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	for c := range hub.clients {
		select {
		case c.send <- data:
		default:
			close(c.send)
			delete(hub.clients, c)
		}
	}
}

// SendRequestCreated broadcasts a newly submitted request.
func SendRequestCreated(request interface{}, userID, userName string) {
	BroadcastRequestUpdate(RequestUpdate{
		Type:      "REQUEST_CREATED",
		Data:      request,
		Timestamp: time.Now(),
		UserID:    userID,
		UserName:  userName,
	})
}

// SendRequestStatusChange broadcasts approve/reject/dispatch outcomes.
func SendRequestStatusChange(requestID, oldStatus, newStatus, userID, userName string) {
	BroadcastRequestUpdate(RequestUpdate{
		Type:      "REQUEST_STATUS_CHANGE",
		RequestID: requestID,
		Data: map[string]interface{}{
			"oldStatus": oldStatus,
			"newStatus": newStatus,
		},
		Timestamp: time.Now(),
		UserID:    userID,
		UserName:  userName,
	})
}
