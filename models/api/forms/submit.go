package formsapimodels

// SubmitResult возвращается после одиночной отправки формы.
type SubmitResult struct {
	Record    RecordView `json:"record"`
	RequestID string     `json:"request_id,omitempty"`
}

// BatchResult описывает исход пакетной отправки. Строки обрабатываются
// последовательно, при первой ошибке обработка останавливается и уже
// созданные записи остаются.
type BatchResult struct {
	Succeeded []SubmitResult `json:"succeeded"`
	FailedAt  int            `json:"failed_at"`
	Error     string         `json:"error,omitempty"`
}
