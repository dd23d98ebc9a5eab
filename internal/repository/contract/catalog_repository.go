package contract

import (
	"context"

	"flix-n-chill-be/internal/entity"

	"github.com/google/uuid"
)

// CatalogRepository is the read-only view over movies, genres and a
// user's rating history. Catalog writes belong to the ingestion job and
// the movie CRUD subsystem.
type CatalogRepository interface {
	FindAllGenres(ctx context.Context) ([]entity.Genre, error)
	FindMovieById(ctx context.Context, id uuid.UUID) (*entity.Movie, error)
	FindAllMovies(ctx context.Context) ([]*entity.Movie, error)

	// FindMoviesExcludingRated returns catalog movies the user has not
	// reviewed yet.
	FindMoviesExcludingRated(ctx context.Context, userID uuid.UUID) ([]*entity.Movie, error)

	// FindReviewsByUser returns the user's reviews with each rated
	// movie's genre set preloaded.
	FindReviewsByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Review, error)
}
