package service

// RoomBroadcaster is the transport surface the session layer uses:
// room membership plus targeted and room-wide delivery. Implemented by
// the ws hub (interface lives here to avoid an import cycle).
type RoomBroadcaster interface {
	JoinRoom(connID, roomID string)
	LeaveRoom(connID, roomID string)
	EmitTo(connID, event string, payload interface{})
	BroadcastToRoom(roomID, excludeConnID, event string, payload interface{})
}

// Ack delivers the reply payload for one request/reply exchange. The
// transport binds it to the request's correlation seq before handing it
// to the session layer.
type Ack func(payload interface{})
