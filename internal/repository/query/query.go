// Package query shapes acceptance record listings the same way for every
// storage backend.
package query

import (
	"sort"

	"github.com/pmn/cla-assistant/internal/entities"
)

// NewestFirst sorts records by creation time, newest first. Ties keep their
// input order.
func NewestFirst(clas []entities.CLA) {
	sort.SliceStable(clas, func(i, j int) bool {
		return clas[i].CreatedAt.After(clas[j].CreatedAt)
	})
}

// LatestPerRepo keeps the newest record of every owner/repo pair, newest first.
func LatestPerRepo(clas []entities.CLA) []entities.CLA {
	sorted := append([]entities.CLA(nil), clas...)
	NewestFirst(sorted)

	type repoKey struct{ owner, repo string }
	seen := make(map[repoKey]struct{}, len(sorted))
	res := make([]entities.CLA, 0, len(sorted))
	for _, c := range sorted {
		k := repoKey{owner: c.Owner, repo: c.Repo}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		res = append(res, c)
	}
	return res
}

// CurrentVersion keeps records signed for version, newest first.
func CurrentVersion(clas []entities.CLA, version string) []entities.CLA {
	res := make([]entities.CLA, 0, len(clas))
	for _, c := range clas {
		if c.GistVersion == version {
			res = append(res, c)
		}
	}
	NewestFirst(res)
	return res
}

// Matches reports whether cla belongs to the query. An empty GistURL or
// GistVersion in q matches any value.
func Matches(cla entities.CLA, q entities.CLAQuery) bool {
	if cla.Repo != q.Repo || cla.Owner != q.Owner || cla.User != q.User {
		return false
	}
	if q.GistURL != "" && cla.GistURL != q.GistURL {
		return false
	}
	if q.GistVersion != "" && cla.GistVersion != q.GistVersion {
		return false
	}
	return true
}
