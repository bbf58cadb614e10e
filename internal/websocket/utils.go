package websocket

import (
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait = 10 * time.Second
	// readWait bounds the idle time between client frames.
	readWait = 5 * time.Minute
)

// WriteTyped sends a strongly-typed response payload over the WebSocket.
func WriteTyped(conn *websocket.Conn, v interface{}) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(v)
}

// WriteError sends a typed ErrorResponse over the WebSocket.
func WriteError(conn *websocket.Conn, code, errMsg string) error {
	return WriteTyped(conn, ErrorResponse{
		Event: EventError,
		Code:  code,
		Error: errMsg,
	})
}

// ReadMessage reads the next data frame. It sets a read deadline.
// Errors are transport or close errors; decoding is left to the caller.
func ReadMessage(conn *websocket.Conn) ([]byte, error) {
	conn.SetReadDeadline(time.Now().Add(readWait))
	_, data, err := conn.ReadMessage()
	return data, err
}

// CloseNormal sends a normal-closure control frame with a reason.
func CloseNormal(conn *websocket.Conn, reason string) error {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason)
	return conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
}
