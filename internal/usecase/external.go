package usecase

import "context"

// ExternalPlayerRecord is one normalized provider row. String fields
// keep the provider's value verbatim; Weight is set only when the
// provider sent a whole number.
type ExternalPlayerRecord struct {
	ID         string
	FirstName  string
	LastName   string
	FullName   string
	Position   string
	Team       string
	Conference string
	ClassYear  string
	Height     string
	Weight     *int
	Raw        string
}

type ExternalTeamRecord struct {
	School       string
	Mascot       string
	Abbreviation string
	Conference   string
	Division     string
	Location     string
	Raw          string
}

// PlayerFetchResult carries whatever the provider walk produced.
// Problems are human-readable strings, not Go errors; a failed page
// never discards the pages fetched before it. APICalls counts every
// attempted request, successful or not.
type PlayerFetchResult struct {
	Records  []ExternalPlayerRecord
	Problems []string
	APICalls int
}

type TeamFetchResult struct {
	Records  []ExternalTeamRecord
	Problems []string
	APICalls int
}

// CatalogProvider is the upstream sports data source.
type CatalogProvider interface {
	FetchPlayers(ctx context.Context, season int) PlayerFetchResult
	FetchTeams(ctx context.Context, season int) TeamFetchResult
}
