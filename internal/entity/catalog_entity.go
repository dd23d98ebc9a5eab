package entity

import (
	"time"

	"github.com/google/uuid"
)

// Genre is one dimension of the preference vector space. The set of all
// genres in the catalog forms the basis used by the recommender.
type Genre struct {
	Id     uuid.UUID
	TmdbId int
	Name   string
}

type Movie struct {
	Id            uuid.UUID
	TmdbId        int
	Title         string
	OriginalTitle string
	Overview      string
	Adult         bool
	Budget        int
	OriginCountry string
	Runtime       int
	ReleaseDate   time.Time
	Tagline       string
	VoteAverage   float64
	PosterPath    string
	Genres        []Genre
}

// HasGenre reports whether the movie carries the given genre.
func (m *Movie) HasGenre(genreID uuid.UUID) bool {
	for _, g := range m.Genres {
		if g.Id == genreID {
			return true
		}
	}
	return false
}

// Review rows are owned by the movie CRUD subsystem; this core only
// reads them to build preference vectors.
type Review struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	MovieId   uuid.UUID
	Movie     *Movie
	Rating    float64
	Comment   string
	CreatedAt time.Time
}
