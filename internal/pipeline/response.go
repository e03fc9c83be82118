package pipeline

// Status is the classified outcome of one invocation.
type Status int

const (
	StatusSuccess Status = iota
	StatusClientError
	StatusServerError
)

// Fixed response bodies. Internal error detail stays in the logs and never
// leaks to the caller.
const (
	bodyClientError = "unsupported or corrupted image format"
	bodyServerError = "internal error while processing the image"
)

// Result is built exactly once per invocation and never mutated after
// being returned.
type Result struct {
	Status          Status
	OutputKey       string
	OutputSizeBytes int
	Message         string

	// Retryable tells the delivery adapter whether redelivering the same
	// event could succeed.
	Retryable bool
}

// Response is the caller-visible shape of a result.
type Response struct {
	StatusCode int    `json:"status_code"`
	Body       string `json:"body"`
}

// Response maps the result onto the three public response shapes.
func (r Result) Response() Response {
	switch r.Status {
	case StatusSuccess:
		return Response{StatusCode: 200, Body: r.Message}
	case StatusClientError:
		return Response{StatusCode: 400, Body: bodyClientError}
	default:
		return Response{StatusCode: 500, Body: bodyServerError}
	}
}
