package dto

// ListAnalysesRequest - параметры листинга истории анализов
type ListAnalysesRequest struct {
	Limit  int `json:"limit" validate:"gte=1,lte=100"`
	Offset int `json:"offset" validate:"gte=0"`
}
