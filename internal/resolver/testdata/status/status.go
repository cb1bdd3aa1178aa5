package status

// Status of a job.
type Status int

const (
	OK Status = iota
	ERROR
)

// Level is a string enum.
type Level string

const (
	High Level = "high"
	Low  Level = "low"
)

// Job is not an enum.
type Job struct {
	Status Status `json:"status"`
}
