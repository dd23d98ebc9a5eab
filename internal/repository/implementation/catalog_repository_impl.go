package implementation

import (
	"context"
	"errors"

	"flix-n-chill-be/internal/entity"
	"flix-n-chill-be/internal/mapper"
	"flix-n-chill-be/internal/model"
	"flix-n-chill-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CatalogRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CatalogMapper
}

func NewCatalogRepository(db *gorm.DB) contract.CatalogRepository {
	return &CatalogRepositoryImpl{
		db:     db,
		mapper: mapper.NewCatalogMapper(),
	}
}

func (r *CatalogRepositoryImpl) FindAllGenres(ctx context.Context) ([]entity.Genre, error) {
	var models []model.Genre
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	genres := make([]entity.Genre, len(models))
	for i := range models {
		genres[i] = r.mapper.GenreToEntity(&models[i])
	}
	return genres, nil
}

func (r *CatalogRepositoryImpl) FindMovieById(ctx context.Context, id uuid.UUID) (*entity.Movie, error) {
	var m model.Movie
	err := r.db.WithContext(ctx).Preload("Genres").First(&m, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.MovieToEntity(&m), nil
}

func (r *CatalogRepositoryImpl) FindAllMovies(ctx context.Context) ([]*entity.Movie, error) {
	var models []*model.Movie
	if err := r.db.WithContext(ctx).Preload("Genres").Order("tmdb_id ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	movies := make([]*entity.Movie, len(models))
	for i, m := range models {
		movies[i] = r.mapper.MovieToEntity(m)
	}
	return movies, nil
}

func (r *CatalogRepositoryImpl) FindMoviesExcludingRated(ctx context.Context, userID uuid.UUID) ([]*entity.Movie, error) {
	subQuery := r.db.Table("reviews").Select("movie_id").Where("user_id = ?", userID)

	var models []*model.Movie
	err := r.db.WithContext(ctx).
		Preload("Genres").
		Where("id NOT IN (?)", subQuery).
		Order("tmdb_id ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	movies := make([]*entity.Movie, len(models))
	for i, m := range models {
		movies[i] = r.mapper.MovieToEntity(m)
	}
	return movies, nil
}

func (r *CatalogRepositoryImpl) FindReviewsByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Review, error) {
	var models []*model.Review
	err := r.db.WithContext(ctx).
		Preload("Movie.Genres").
		Preload("Movie").
		Where("user_id = ?", userID).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	reviews := make([]*entity.Review, len(models))
	for i, m := range models {
		reviews[i] = r.mapper.ReviewToEntity(m)
	}
	return reviews, nil
}
