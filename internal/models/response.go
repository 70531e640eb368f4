package models

// ResumeResponse is the uniform envelope returned for every parse, fetch
// and delete outcome. Data is nil exactly when Status is "error"; Error is
// nil exactly when Status is "success".
type ResumeResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    *ResumeData `json:"data"`
	Error   *string     `json:"error"`
}

func SuccessResponse(message string, data *ResumeData) ResumeResponse {
	return ResumeResponse{
		Status:  string(StatusSuccess),
		Message: message,
		Data:    data,
	}
}

func PartialResponse(message string, data *ResumeData, errDetail string) ResumeResponse {
	return ResumeResponse{
		Status:  string(StatusPartial),
		Message: message,
		Data:    data,
		Error:   &errDetail,
	}
}

func ErrorResponse(message string, errDetail string) ResumeResponse {
	return ResumeResponse{
		Status:  string(StatusError),
		Message: message,
		Error:   &errDetail,
	}
}

// FromOutcome maps a ParseOutcome onto the envelope, preserving the
// status/data/error pairing invariants.
func FromOutcome(outcome *ParseOutcome) ResumeResponse {
	switch outcome.Status {
	case StatusSuccess:
		return SuccessResponse(outcome.Message, outcome.Data)
	case StatusPartial:
		return PartialResponse(outcome.Message, outcome.Data, outcome.Err)
	default:
		return ErrorResponse(outcome.Message, outcome.Err)
	}
}

type SearchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

type SearchMatch struct {
	UserID   uint    `json:"user_id"`
	FileName string  `json:"file_name"`
	Score    float32 `json:"score"`
	Summary  string  `json:"summary"`
}
