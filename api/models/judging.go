package models

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// SubmitScoreRequest carries one judge's initial rating. The binding tags
// keep scores inside 1-10 before any storage work happens.
type SubmitScoreRequest struct {
	Score int    `json:"score" binding:"required,min=1,max=10"`
	Notes string `json:"notes"`
}

type FinalistScoreRequest struct {
	Score int `json:"score" binding:"required,min=1,max=10"`
}

type CountsResponse struct {
	Reviewed  int `json:"reviewed"`
	Submitted int `json:"submitted"`
}
