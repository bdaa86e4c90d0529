// Package mapper converts between domain models and transport DTOs.
package mapper

import (
	"github.com/pmn/cla-assistant/internal/api"
	"github.com/pmn/cla-assistant/internal/entities"
)

// ToAPICLA maps entities.CLA to transport model.
func ToAPICLA(c entities.CLA) api.CLA {
	return api.CLA{
		ID:          c.ID,
		Repo:        c.Repo,
		Owner:       c.Owner,
		User:        c.User,
		UserID:      c.UserID,
		GistURL:     c.GistURL,
		GistVersion: c.GistVersion,
		CreatedAt:   c.CreatedAt,
	}
}

// ToAPICLAList maps a slice of entities.CLA to transport slice.
func ToAPICLAList(list []entities.CLA) []api.CLA {
	res := make([]api.CLA, 0, len(list))
	for _, c := range list {
		res = append(res, ToAPICLA(c))
	}
	return res
}

// ToAPIGist maps entities.Gist to transport model.
func ToAPIGist(g entities.Gist) api.Gist {
	res := api.Gist{
		URL:     g.URL,
		Version: g.Version,
		Files:   g.Files,
	}
	if !g.UpdatedAt.IsZero() {
		updated := g.UpdatedAt
		res.UpdatedAt = &updated
	}
	if res.Files == nil {
		res.Files = map[string]string{}
	}
	return res
}

// ToAPICheck maps a check outcome to transport model.
func ToAPICheck(r entities.CheckResult) api.CheckResponse {
	res := api.CheckResponse{Signed: r.Signed}
	if r.Gist != nil {
		g := ToAPIGist(*r.Gist)
		res.Gist = &g
	}
	if r.Committers != nil {
		res.Committers = &api.Committers{
			Signed:    nonNil(r.Committers.Signed),
			NotSigned: nonNil(r.Committers.NotSigned),
		}
	}
	return res
}

// ToAPISign maps a sign outcome to transport model.
func ToAPISign(r entities.SignResult) api.SignResponse {
	res := api.SignResponse{
		Signed:       r.Signed,
		PullRequests: r.PullRequests,
	}
	if r.Created != nil {
		c := ToAPICLA(*r.Created)
		res.CLA = &c
	}
	if res.PullRequests == nil {
		res.PullRequests = []int{}
	}
	return res
}

// FromAPISign builds an entities.SignRequest from transport DTO.
func FromAPISign(src api.SignRequest) entities.SignRequest {
	return entities.SignRequest{
		Repo:   src.Repo,
		Owner:  src.Owner,
		User:   src.User,
		UserID: src.UserID,
	}
}

// FromAPIRepoLink builds an entities.RepoConfig from transport DTO.
func FromAPIRepoLink(src api.RepoLinkRequest) entities.RepoConfig {
	return entities.RepoConfig{
		Repo:        src.Repo,
		Owner:       src.Owner,
		GistURL:     src.GistURL,
		GistVersion: src.GistVersion,
		Token:       src.Token,
	}
}

// ToAPIRepo maps entities.RepoConfig to transport model.
func ToAPIRepo(cfg entities.RepoConfig) api.Repo {
	return api.Repo{
		Repo:        cfg.Repo,
		Owner:       cfg.Owner,
		GistURL:     cfg.GistURL,
		GistVersion: cfg.GistVersion,
		CreatedAt:   cfg.CreatedAt,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
