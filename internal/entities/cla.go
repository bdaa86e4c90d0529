package entities

import "time"

// CLA is one accepted gist revision by one user for one repository.
// Records are never updated or deleted.
type CLA struct {
	ID          string
	Repo        string
	Owner       string
	User        string
	UserID      *int64
	GistURL     string
	GistVersion string
	CreatedAt   time.Time
}

// CLAQuery selects records of a user on a repository. An empty GistVersion
// matches any revision.
type CLAQuery struct {
	Repo        string
	Owner       string
	User        string
	GistURL     string
	GistVersion string
}
