package domain

// JobSource identifies how a document entered the pipeline.
type JobSource string

const (
	JobSourceURL    JobSource = "url"
	JobSourceUpload JobSource = "upload"
)

// JobStatus represents the lifecycle of an extraction job.
type JobStatus string

const (
	JobStatusQueued     JobStatus = "queued"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// AllowedContentTypes maps the MIME content types accepted for extraction.
// Chunkr structured extraction is only run against PDFs.
var AllowedContentTypes = map[string]bool{
	"application/pdf": true,
}

// RateCategories are the fixed keys of the rates bucket, in output order.
var RateCategories = []string{"stackable", "non-stackable", "hazardous", "mix", "general"}

// ScreeningCategories are the fixed keys of the screeningPrices bucket.
var ScreeningCategories = []string{"primaryScreeningPrice", "secondaryScreeningPrice"}

// FFWHCategories are the fixed keys of the FFWH surcharge bucket.
var FFWHCategories = []string{"fuelSurcharge", "freightCharge", "warRiskSurcharge", "handlingFee"}
