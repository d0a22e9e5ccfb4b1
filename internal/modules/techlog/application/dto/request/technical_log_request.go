package request

type TechnicalLogRequest struct {
	Title       string   `json:"title"`
	System      string   `json:"system"`
	Description string   `json:"description"`
	Resolution  string   `json:"resolution"`
	Outcome     string   `json:"outcome"`
	Tags        []string `json:"tags"`
	Images      []string `json:"images"`
	LogDate     string   `json:"log_date"`
}
