package entities

// CheckQuery asks whether a user, or every committer of a pull request,
// signed the current CLA revision. Exactly one of User and Number is set.
type CheckQuery struct {
	Repo   string
	Owner  string
	User   string
	Number int
}

// CheckResult is the outcome of a check.
type CheckResult struct {
	Signed     bool
	Gist       *Gist
	Committers *CommitterResult
}

// SignRequest records acceptance of the current CLA revision.
type SignRequest struct {
	Repo   string
	Owner  string
	User   string
	UserID *int64
}

// SignResult is the outcome of a sign.
type SignResult struct {
	Signed       bool
	Created      *CLA
	PullRequests []int
}
