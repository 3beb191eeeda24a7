package analysis

// AnalyzeRequest is the wire format for the statement-comparison call.
type AnalyzeRequest struct {
	Statement1Text string `json:"statement_1_text"`
	Statement1Type string `json:"statement_1_type"`
	Statement2Text string `json:"statement_2_text"`
	Statement2Type string `json:"statement_2_type"`
}

// UploadResult is the wire format returned by the document-extraction call.
type UploadResult struct {
	Filename       string `json:"filename"`
	Message        string `json:"message"`
	ContentPreview string `json:"content_preview"`
}

// transcriptResponse is the wire format returned by the speech-to-text call.
type transcriptResponse struct {
	Text string `json:"text"`
}

// errorBody is the error envelope the backend uses for failures.
type errorBody struct {
	Detail string `json:"detail"`
}
