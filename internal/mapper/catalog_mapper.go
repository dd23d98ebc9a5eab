package mapper

import (
	"flix-n-chill-be/internal/entity"
	"flix-n-chill-be/internal/model"
)

type CatalogMapper struct{}

func NewCatalogMapper() *CatalogMapper {
	return &CatalogMapper{}
}

func (m *CatalogMapper) GenreToEntity(g *model.Genre) entity.Genre {
	return entity.Genre{
		Id:     g.Id,
		TmdbId: g.TmdbId,
		Name:   g.Name,
	}
}

func (m *CatalogMapper) MovieToEntity(mv *model.Movie) *entity.Movie {
	if mv == nil {
		return nil
	}
	genres := make([]entity.Genre, len(mv.Genres))
	for i := range mv.Genres {
		genres[i] = m.GenreToEntity(&mv.Genres[i])
	}
	return &entity.Movie{
		Id:            mv.Id,
		TmdbId:        mv.TmdbId,
		Title:         mv.Title,
		OriginalTitle: mv.OriginalTitle,
		Overview:      mv.Overview,
		Adult:         mv.Adult,
		Budget:        mv.Budget,
		OriginCountry: mv.OriginCountry,
		Runtime:       mv.Runtime,
		ReleaseDate:   mv.ReleaseDate,
		Tagline:       mv.Tagline,
		VoteAverage:   mv.VoteAverage,
		PosterPath:    mv.PosterPath,
		Genres:        genres,
	}
}

func (m *CatalogMapper) ReviewToEntity(r *model.Review) *entity.Review {
	if r == nil {
		return nil
	}
	return &entity.Review{
		Id:        r.Id,
		UserId:    r.UserId,
		MovieId:   r.MovieId,
		Movie:     m.MovieToEntity(r.Movie),
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}
