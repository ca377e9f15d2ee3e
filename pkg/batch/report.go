package batch

import "fmt"

// Status describes the outcome of a single batch item.
type Status string

const (
	// StatusSuccess means every step of the item's operation completed
	StatusSuccess Status = "success"
	// StatusPartial means the issue was created but a later step failed
	StatusPartial Status = "partial"
	// StatusFailure means no durable change was confirmed for the item
	StatusFailure Status = "failure"
)

// ItemResult is the outcome of one batch item. Index always refers to the
// item's position in the request, so callers can line results up with what
// they sent.
type ItemResult struct {
	Index     int    `json:"index"`
	Status    Status `json:"status"`
	IssueKey  string `json:"issue_key,omitempty"`
	ErrorKind string `json:"error_kind,omitempty"`
	Message   string `json:"message"`
}

// Report collects the per-item results of a batch run, one record per input
// item, in input order. It carries no aggregate counts; consumers derive
// whatever totals they need.
type Report struct {
	Results []ItemResult `json:"results"`
}

// NewReport allocates a report with capacity for n items.
func NewReport(n int) *Report {
	return &Report{Results: make([]ItemResult, 0, n)}
}

// AddSuccess records a fully completed item.
func (r *Report) AddSuccess(index int, issueKey, message string) {
	r.Results = append(r.Results, ItemResult{
		Index:    index,
		Status:   StatusSuccess,
		IssueKey: issueKey,
		Message:  message,
	})
}

// AddPartial records an item whose issue exists but whose follow-up step
// failed. The created key is always reported so the caller can find the issue.
func (r *Report) AddPartial(index int, issueKey string, kind ErrorKind, message string) {
	r.Results = append(r.Results, ItemResult{
		Index:     index,
		Status:    StatusPartial,
		IssueKey:  issueKey,
		ErrorKind: kind.String(),
		Message:   message,
	})
}

// AddFailure records an item that produced no confirmed change.
func (r *Report) AddFailure(index int, kind ErrorKind, message string) {
	r.Results = append(r.Results, ItemResult{
		Index:     index,
		Status:    StatusFailure,
		ErrorKind: kind.String(),
		Message:   message,
	})
}

// Len returns the number of recorded results.
func (r *Report) Len() int {
	return len(r.Results)
}

// Counts derives the success/partial/failure totals for display.
func (r *Report) Counts() (succeeded, partial, failed int) {
	for _, res := range r.Results {
		switch res.Status {
		case StatusSuccess:
			succeeded++
		case StatusPartial:
			partial++
		case StatusFailure:
			failed++
		}
	}
	return succeeded, partial, failed
}

// Summary returns a one-line description of the report.
func (r *Report) Summary() string {
	succeeded, partial, failed := r.Counts()
	return fmt.Sprintf("%d succeeded, %d partial, %d failed of %d", succeeded, partial, failed, r.Len())
}
