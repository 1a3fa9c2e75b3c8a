package domain

import "time"

// Submission statuses.
const (
	SubmissionPending = "Pending"
	SubmissionPassed  = "Passed"
	SubmissionFailed  = "Failed"
)

// Test case verdicts reported by the judge.
const (
	VerdictAccepted          = "Accepted"
	VerdictWrongAnswer       = "Wrong Answer"
	VerdictRuntimeError      = "Runtime Error"
	VerdictTimeLimitExceeded = "Time Limit Exceeded"
	VerdictCompilationError  = "Compilation Error"
)

// Submission is a row of the per-problem submission history.
type Submission struct {
	ID        int64     `json:"id"`
	Problem   string    `json:"problem"`
	Slug      string    `json:"slug"`
	Language  string    `json:"language"`
	Status    string    `json:"status"`
	Runtime   *float64  `json:"runtime"`
	Memory    *float64  `json:"memory"`
	CreatedAt time.Time `json:"created_at"`
}

// SubmissionDetail is a single submission with its source and failed cases.
type SubmissionDetail struct {
	ID                   int64            `json:"id"`
	Status               string           `json:"status"`
	Language             string           `json:"language"`
	SourceCode           string           `json:"source_code"`
	CreatedAt            time.Time        `json:"created_at"`
	TotalTestCases       int              `json:"-"`
	TotalPassedTestCases int              `json:"-"`
	FailedTestCases      []TestCaseResult `json:"-"`
}

// SubmitRequest is the payload for submitting a solution.
type SubmitRequest struct {
	Problem    string `json:"problem"`
	Language   string `json:"language"`
	SourceCode string `json:"source_code"`
}

// TestCaseResult is the judge outcome of a single test case.
type TestCaseResult struct {
	ID       int64  `json:"id"`
	Input    string `json:"input"`
	Expected string `json:"expected"`
	Stdout   string `json:"stdout"`
	Stderr   string `json:"stderr"`
	Status   string `json:"status"`
}

// SubmissionResult is the polled state of a submission.
type SubmissionResult struct {
	SubmissionID int64            `json:"submission_id"`
	Status       string           `json:"status"`
	TestCases    []TestCaseResult `json:"testcases"`
}

// Final reports whether the judge has finished with the submission.
func (r *SubmissionResult) Final() bool {
	return r != nil && r.Status != "" && r.Status != SubmissionPending
}

// Passed counts accepted test cases.
func (r *SubmissionResult) Passed() int {
	if r == nil {
		return 0
	}
	n := 0
	for _, tc := range r.TestCases {
		if tc.Status == VerdictAccepted {
			n++
		}
	}
	return n
}
