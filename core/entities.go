package core

import "time"

// User mirrors the backend user record.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	DepartmentID string    `json:"department_id,omitempty"`
	ProjectIDs   []string  `json:"project_ids,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// ChatRoom mirrors the backend chat room record.
type ChatRoom struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	ProjectID   string    `json:"project_id,omitempty"`
	OwnerID     string    `json:"owner_id"`
	MemberCount int       `json:"member_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RoomMember is a user's membership in a chat room.
type RoomMember struct {
	UserID   string    `json:"user_id"`
	RoomID   string    `json:"chat_room_id"`
	Name     string    `json:"name"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

// Message mirrors the backend chat message record.
// ClientID is a client-generated identifier carried through the send
// path so a locally appended message can be matched against its
// server-pushed copy.
type Message struct {
	ID        string    `json:"id"`
	RoomID    string    `json:"chat_room_id"`
	SenderID  string    `json:"sender_id"`
	Sender    string    `json:"sender_name,omitempty"`
	Content   string    `json:"content"`
	ParentID  string    `json:"parent_id,omitempty"`
	ClientID  string    `json:"client_msg_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Memory mirrors a backend-extracted memory record. Memories are
// created and destroyed exclusively by the backend; the client only
// caches and displays them.
type Memory struct {
	ID         string    `json:"id"`
	OwnerID    string    `json:"owner_id"`
	RoomID     string    `json:"chat_room_id,omitempty"`
	Type       string    `json:"type"`
	Content    string    `json:"content"`
	Importance float64   `json:"importance"`
	Tags       []string  `json:"tags,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Document mirrors the backend document record. Chunking and indexing
// happen backend-side; the client sees only upload status.
type Document struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	MimeType   string    `json:"mime_type"`
	SizeBytes  int64     `json:"size_bytes"`
	RoomID     string    `json:"chat_room_id,omitempty"`
	UploaderID string    `json:"uploader_id"`
	Status     string    `json:"status"`
	ChunkCount int       `json:"chunk_count"`
	CreatedAt  time.Time `json:"created_at"`
}

// AgentType is a marketplace agent definition. ConfigSchema is a
// JSON-schema-shaped object describing instance configuration.
type AgentType struct {
	ID           string                 `json:"id"`
	Name         string                 `json:"name"`
	Description  string                 `json:"description"`
	Version      string                 `json:"version"`
	Publisher    string                 `json:"publisher"`
	ConfigSchema map[string]interface{} `json:"config_schema,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
}

// AgentInstance is an installed agent bound to a room or project.
type AgentInstance struct {
	ID          string                 `json:"id"`
	AgentTypeID string                 `json:"agent_type_id"`
	Name        string                 `json:"name"`
	RoomID      string                 `json:"chat_room_id,omitempty"`
	ProjectID   string                 `json:"project_id,omitempty"`
	Config      map[string]interface{} `json:"config,omitempty"`
	Enabled     bool                   `json:"enabled"`
	CreatedAt   time.Time              `json:"created_at"`
}

// Share is a grant of access to a memory or document.
type Share struct {
	ID           string    `json:"id"`
	ResourceType string    `json:"resource_type"`
	ResourceID   string    `json:"resource_id"`
	GranteeID    string    `json:"grantee_id"`
	Permission   string    `json:"permission"`
	CreatedAt    time.Time `json:"created_at"`
}

// Project groups chat rooms and documents for administration.
type Project struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	DepartmentID string    `json:"department_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Department is the top-level administrative grouping.
type Department struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// AdminStats is the dashboard summary returned by the admin endpoint.
type AdminStats struct {
	UserCount     int `json:"user_count"`
	RoomCount     int `json:"room_count"`
	MemoryCount   int `json:"memory_count"`
	DocumentCount int `json:"document_count"`
	AgentCount    int `json:"agent_count"`
}
