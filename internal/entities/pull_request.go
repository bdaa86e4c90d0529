package entities

// PullRequest is an open pull request as reported by GitHub.
type PullRequest struct {
	Number  int
	Author  string
	HeadSHA string
}

// Committer is a commit author on a pull request.
type Committer struct {
	Name string
}

// CommitterResult partitions pull request committers by signature state.
// Both lists keep the order committers first appeared in.
type CommitterResult struct {
	Signed    []string
	NotSigned []string
	AllSigned bool
}
