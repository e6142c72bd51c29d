package room

// SubmissionBuffer holds at most one drawing per player for the current
// round. Writes overwrite freely (last write wins) until the round closes.
// It is owned by the room and only touched under the room's lock.
type SubmissionBuffer struct {
	drawings map[string]string
}

func NewSubmissionBuffer() *SubmissionBuffer {
	return &SubmissionBuffer{drawings: make(map[string]string)}
}

func (sb *SubmissionBuffer) Set(playerID, drawing string) {
	sb.drawings[playerID] = drawing
}

// Snapshot copies the current submissions so scoring can run without
// holding the room lock.
func (sb *SubmissionBuffer) Snapshot() map[string]string {
	out := make(map[string]string, len(sb.drawings))
	for id, d := range sb.drawings {
		out[id] = d
	}
	return out
}

func (sb *SubmissionBuffer) Len() int {
	return len(sb.drawings)
}

// Reset drops all buffered drawings. Called when a new round starts;
// submissions never outlive their round.
func (sb *SubmissionBuffer) Reset() {
	sb.drawings = make(map[string]string)
}
