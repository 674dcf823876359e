package contracts

import "context"

// RoomBroadcaster pushes server originated events into a consultation room.
type RoomBroadcaster interface {
	BroadcastEvent(ctx context.Context, consultationID string, messageType string, payload interface{})
}
