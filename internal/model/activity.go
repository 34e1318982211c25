package model

// ChatMessage is one line of a project's chat log.
type ChatMessage struct {
	ID        string `json:"id"`
	AuthorID  string `json:"author_id"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

// AuditLogEntry records who did what to which target.
type AuditLogEntry struct {
	ID        string `json:"id"`
	ActorID   string `json:"actor_id"`
	Action    string `json:"action"`
	Target    string `json:"target"`
	Timestamp string `json:"timestamp"`
}
