package request

type IntegrationRequest struct {
	Name     string `json:"name"`
	Type     string `json:"type" binding:"required,oneof=scada cmms plc erp historian"`
	Endpoint string `json:"endpoint"`
}
