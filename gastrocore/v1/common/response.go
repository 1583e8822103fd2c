package common

// StatusAPIResponse is the standard GastroCore response envelope.
type StatusAPIResponse[T any] struct {
	Status bool       `json:"status"`
	Data   T          `json:"data,omitempty"`
	Error  *ErrorBody `json:"error,omitempty"`
}

// ErrorBody is the machine-readable failure detail inside an envelope.
type ErrorBody struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

type Pagination struct {
	Total int64 `json:"total"`
}

// SearchResponse wraps paged list results.
type SearchResponse[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}
