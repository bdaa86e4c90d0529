// Package api holds the JSON shapes of the HTTP API.
package api

import "time"

// ErrorCode classifies an error response.
type ErrorCode string

// Defines values for ErrorCode.
const (
	INVALIDARGUMENT ErrorCode = "INVALID_ARGUMENT"
	NOTFOUND        ErrorCode = "NOT_FOUND"
	INVALIDLOCATOR  ErrorCode = "INVALID_LOCATOR"
	UPSTREAM        ErrorCode = "UPSTREAM_ERROR"
	INTERNAL        ErrorCode = "INTERNAL"
)

// ErrorBody describes a failed request.
type ErrorBody struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// ErrorResponse wraps ErrorBody.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// CLA is a stored signature.
type CLA struct {
	ID          string    `json:"id"`
	Repo        string    `json:"repo"`
	Owner       string    `json:"owner"`
	User        string    `json:"user"`
	UserID      *int64    `json:"user_id,omitempty"`
	GistURL     string    `json:"gist_url"`
	GistVersion string    `json:"gist_version"`
	CreatedAt   time.Time `json:"created_at"`
}

// Gist is the resolved CLA document.
type Gist struct {
	URL       string            `json:"url"`
	Version   string            `json:"version"`
	Files     map[string]string `json:"files"`
	UpdatedAt *time.Time        `json:"updated_at,omitempty"`
}

// Committers partitions the committers of a pull request.
type Committers struct {
	Signed    []string `json:"signed"`
	NotSigned []string `json:"not_signed"`
}

// CheckResponse is returned by GET /api/cla/check.
type CheckResponse struct {
	Signed     bool        `json:"signed"`
	Gist       *Gist       `json:"gist,omitempty"`
	Committers *Committers `json:"committers,omitempty"`
}

// SignRequest is the body of POST /api/cla/sign.
type SignRequest struct {
	Repo   string `json:"repo"`
	Owner  string `json:"owner"`
	User   string `json:"user"`
	UserID *int64 `json:"user_id,omitempty"`
}

// SignResponse is returned by POST /api/cla/sign.
type SignResponse struct {
	Signed       bool  `json:"signed"`
	CLA          *CLA  `json:"cla,omitempty"`
	PullRequests []int `json:"pull_requests"`
}

// CLAList is a list of signatures.
type CLAList struct {
	CLAs []CLA `json:"clas"`
}

// LastSignatureResponse is returned by GET /api/cla/last. CLA is null when
// the user never signed.
type LastSignatureResponse struct {
	CLA *CLA `json:"cla"`
}

// RepoLinkRequest is the body of PUT /api/repos.
type RepoLinkRequest struct {
	Repo        string `json:"repo"`
	Owner       string `json:"owner"`
	GistURL     string `json:"gist_url"`
	GistVersion string `json:"gist_version,omitempty"`
	Token       string `json:"token,omitempty"`
}

// Repo is a linked repository. The token is never echoed back.
type Repo struct {
	Repo        string    `json:"repo"`
	Owner       string    `json:"owner"`
	GistURL     string    `json:"gist_url"`
	GistVersion string    `json:"gist_version,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
