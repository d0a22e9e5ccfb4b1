package respond

import "EDT/internal/modules/ai/infrastructure/reader"

type AskRespond struct {
	Answer       string               `json:"answer"`
	CitedRecords []reader.CitedRecord `json:"cited_records"`
	SessionId    string               `json:"session_id,omitempty"`
	Mode         string               `json:"mode"`
}
