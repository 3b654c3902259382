package genai

// Request shape we send upstream (Gemini generateContent REST surface).
type providerPart struct {
	Text string `json:"text"`
}

type providerContent struct {
	Role  string         `json:"role,omitempty"`
	Parts []providerPart `json:"parts"`
}

type providerGenerateRequest struct {
	Contents []providerContent `json:"contents"`
}

// Candidate for non-streaming responses.
type providerCandidate struct {
	Content      providerContent `json:"content"`
	FinishReason string          `json:"finishReason,omitempty"`
}

type providerUsageMetadata struct {
	PromptTokenCount     int `json:"promptTokenCount"`
	CandidatesTokenCount int `json:"candidatesTokenCount"`
	TotalTokenCount      int `json:"totalTokenCount"`
}

type providerGenerateResponse struct {
	Candidates    []providerCandidate    `json:"candidates"`
	UsageMetadata *providerUsageMetadata `json:"usageMetadata,omitempty"`
	ModelVersion  string                 `json:"modelVersion,omitempty"`
}

type providerErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}
