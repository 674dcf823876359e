package constvars

// Message types exchanged over the consultation room socket.
const (
	RoomMessageOffer   = "offer"
	RoomMessageAnswer  = "answer"
	RoomMessageICE     = "ice"
	RoomMessageChat    = "chat"
	RoomMessageMedia   = "media"
	RoomMessageEndCall = "end-call"
	RoomMessageSystem  = "system"
	RoomMessageFile    = "file"
)

const (
	RoomEventConnected  = "connected"
	RoomEventReady      = "ready"
	RoomEventPeerJoined = "peer_joined"
	RoomEventPeerLeft   = "peer_left"
	RoomEventCallEnded  = "call_ended"
)

// Close codes in the 4000-4999 private range mirror the HTTP status they stand for.
const (
	RoomCloseInvalidCredentials = 4401
	RoomCloseNotParticipant     = 4403
	RoomCloseNotFound           = 4404
	RoomCloseServerError        = 1011
	RoomCloseGoingAway          = 1001

	RoomCloseReasonShutdown = "server shutting down"
)

const (
	RoomTriggerSecondJoin = "second_join"
	RoomTriggerEndCall    = "end_call"
)
