package entities

import "time"

// RepoConfig links a repository to its CLA gist and the token used to read it.
type RepoConfig struct {
	Repo        string
	Owner       string
	GistURL     string
	GistVersion string
	Token       string
	CreatedAt   time.Time
}

// Locator returns the gist locator configured for the repository.
func (r RepoConfig) Locator() GistLocator {
	return GistLocator{URL: r.GistURL, Version: r.GistVersion}
}

// StatusUpdate reports the CLA state of a pull request to the status sink.
type StatusUpdate struct {
	Repo   string
	Owner  string
	Number int
	SHA    string
	Token  string
	Signed bool
}
