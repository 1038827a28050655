package port

import "context"

// ExtractedField is one flat dotted-path field returned by the extraction
// service, e.g. {"name": "rates.stackable.per_kg", "value": "0.1676"}.
type ExtractedField struct {
	Name  string      `json:"name"`
	Value interface{} `json:"value"`
}

// ExtractInput carries a document into the extraction service.
type ExtractInput struct {
	FileBytes []byte
	Filename  string
}

// ExtractOutput is the terminal result of an extraction task.
type ExtractOutput struct {
	TaskID string
	Fields []ExtractedField
}

// DocumentExtractor abstracts the external structured-extraction service:
// create a task for a document and block until it reaches a terminal state.
type DocumentExtractor interface {
	Extract(ctx context.Context, input ExtractInput) (*ExtractOutput, error)
}
