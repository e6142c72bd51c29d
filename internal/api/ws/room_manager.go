package ws

import "draw-duel/internal/shared"

type RoomManager interface {
	Join(roomID, playerName string) (shared.Player, error)
	Start(roomID, playerID string) error
	Submit(roomID, playerID, drawing string) error
	Rematch(roomID, playerID string) error
}
