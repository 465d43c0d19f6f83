package notifiers

import "github.com/bytedance/sonic"

// ErrorBucket truncated error message and its count
type ErrorBucket struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// RunSummary download run result
type RunSummary struct {
	ID      string        `json:"id"`
	Start   int64         `json:"start"`
	End     int64         `json:"end"`
	Total   int           `json:"total"`
	Success int           `json:"success"`
	Exists  int           `json:"exists"`
	Empty   int           `json:"empty"`
	Error   int           `json:"error"`
	Errors  []ErrorBucket `json:"errors"`
}

// Marshal encode summary to json
func (s RunSummary) Marshal() ([]byte, error) {
	if s.Errors == nil {
		s.Errors = []ErrorBucket{}
	}

	return sonic.ConfigStd.Marshal(s)
}
