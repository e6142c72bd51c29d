package room

import "errors"

var (
	ErrRoomNotFound      = errors.New("room not found")
	ErrRoomFull          = errors.New("room full")
	ErrInvalidTransition = errors.New("invalid transition for current phase")
	ErrUnauthorized      = errors.New("only the room creator may start the game")
	ErrInvalidPlayer     = errors.New("player not in room")
	ErrRoundClosed       = errors.New("round closed for submissions")
)
