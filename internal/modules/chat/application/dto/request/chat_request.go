package request

type CreateSessionRequest struct {
	Title string `json:"title"`
}

type AppendMessageRequest struct {
	Role     string         `json:"role" binding:"omitempty,oneof=user assistant"`
	Content  string         `json:"content"`
	Metadata map[string]any `json:"metadata"`
}
