package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"flix-n-chill-be/internal/dto"
	"flix-n-chill-be/internal/entity"
	"flix-n-chill-be/internal/pkg/logger"
	"flix-n-chill-be/internal/repository/contract"
	"flix-n-chill-be/pkg/recommender"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

// NoRatingsMessage signals "cannot recommend yet", not an error.
const NoRatingsMessage = "rate some movies first to get personalized recommendations"

type IRecommendationService interface {
	// Recommend ranks catalog movies against the user's genre
	// preference vector. count must be positive; a user with no ratings
	// gets an empty list with a guidance message.
	Recommend(ctx context.Context, userID uuid.UUID, count int, excludeRated bool) (*dto.RecommendationResponse, error)

	// GenreAnalysis exposes the raw preference vector keyed by genre
	// name.
	GenreAnalysis(ctx context.Context, userID uuid.UUID) (*dto.GenreAnalysisResponse, error)

	// SimilarMovies ranks the catalog by item-to-item similarity with
	// the anchor movie.
	SimilarMovies(ctx context.Context, movieID uuid.UUID, count int) (*dto.SimilarMoviesResponse, error)
}

type recommendationService struct {
	catalog     contract.CatalogRepository
	preferences *gocache.Cache
	logger      logger.ILogger
}

func NewRecommendationService(catalog contract.CatalogRepository, cacheTTL time.Duration, log logger.ILogger) IRecommendationService {
	if cacheTTL <= 0 {
		cacheTTL = 10 * time.Minute
	}
	return &recommendationService{
		catalog:     catalog,
		preferences: gocache.New(cacheTTL, 2*cacheTTL),
		logger:      log,
	}
}

func (s *recommendationService) Recommend(ctx context.Context, userID uuid.UUID, count int, excludeRated bool) (res *dto.RecommendationResponse, err error) {
	if count <= 0 {
		return nil, ErrInvalidCount
	}

	// The ranking must never come out partial or corrupt; a panic in
	// the numeric path becomes a generic service error.
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("RecommendationService", "Recovered from computation failure", map[string]interface{}{
				"user_id": userID,
				"panic":   fmt.Sprint(r),
			})
			res = nil
			err = fmt.Errorf("recommendation computation failed")
		}
	}()

	vector, err := s.preferenceFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	if vector.IsEmpty() {
		return &dto.RecommendationResponse{
			Recommendations: []dto.RecommendationItem{},
			Message:         NoRatingsMessage,
		}, nil
	}

	// Basis snapshot: one per call, shared by the dense preference
	// vector and every candidate indicator vector.
	basis, err := s.catalog.FindAllGenres(ctx)
	if err != nil {
		return nil, err
	}

	var candidates []*entity.Movie
	if excludeRated {
		candidates, err = s.catalog.FindMoviesExcludingRated(ctx, userID)
	} else {
		candidates, err = s.catalog.FindAllMovies(ctx)
	}
	if err != nil {
		return nil, err
	}

	ranked := recommender.RankMovies(vector, basis, candidates)
	if len(ranked) > count {
		ranked = ranked[:count]
	}

	items := make([]dto.RecommendationItem, len(ranked))
	for i, scored := range ranked {
		items[i] = dto.RecommendationItem{
			Movie:           movieResponse(scored.Movie),
			SimilarityScore: recommender.Round4(scored.Score),
			GenreMatches:    genreMatches(scored.Movie, vector),
		}
	}

	return &dto.RecommendationResponse{Recommendations: items}, nil
}

func (s *recommendationService) GenreAnalysis(ctx context.Context, userID uuid.UUID) (*dto.GenreAnalysisResponse, error) {
	reviews, err := s.catalog.FindReviewsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	vector := recommender.BuildPreference(reviews)
	if vector.IsEmpty() {
		return &dto.GenreAnalysisResponse{
			GenrePreferences: map[string]float64{},
			TotalReviews:     0,
			Message:          NoRatingsMessage,
		}, nil
	}

	genres, err := s.catalog.FindAllGenres(ctx)
	if err != nil {
		return nil, err
	}

	preferences := make(map[string]float64, len(vector))
	for _, genre := range genres {
		if score, ok := vector[genre.Id]; ok {
			preferences[genre.Name] = recommender.Round4(score)
		}
	}

	return &dto.GenreAnalysisResponse{
		GenrePreferences: preferences,
		TotalReviews:     len(reviews),
	}, nil
}

func (s *recommendationService) SimilarMovies(ctx context.Context, movieID uuid.UUID, count int) (*dto.SimilarMoviesResponse, error) {
	if count <= 0 {
		return nil, ErrInvalidCount
	}

	anchor, err := s.catalog.FindMovieById(ctx, movieID)
	if err != nil {
		return nil, err
	}
	if anchor == nil {
		return nil, ErrMovieNotFound
	}

	basis, err := s.catalog.FindAllGenres(ctx)
	if err != nil {
		return nil, err
	}
	movies, err := s.catalog.FindAllMovies(ctx)
	if err != nil {
		return nil, err
	}

	scored := make([]recommender.ScoredMovie, 0, len(movies))
	for _, movie := range movies {
		if movie.Id == anchor.Id {
			continue
		}
		score := recommender.MovieSimilarity(anchor, movie, basis)
		if score <= 0 {
			continue
		}
		scored = append(scored, recommender.ScoredMovie{Movie: movie, Score: score})
	}

	ranked := rankStable(scored)
	if len(ranked) > count {
		ranked = ranked[:count]
	}

	items := make([]dto.SimilarMovieItem, len(ranked))
	for i, sm := range ranked {
		items[i] = dto.SimilarMovieItem{
			Movie:           movieResponse(sm.Movie),
			SimilarityScore: recommender.Round4(sm.Score),
		}
	}
	return &dto.SimilarMoviesResponse{SimilarMovies: items}, nil
}

// preferenceFor returns the cached preference vector, rebuilding it from
// the rating history on miss. The cache is an optimization only; basis
// and candidates are still read fresh per request.
func (s *recommendationService) preferenceFor(ctx context.Context, userID uuid.UUID) (recommender.PreferenceVector, error) {
	key := userID.String()
	if cached, ok := s.preferences.Get(key); ok {
		return cached.(recommender.PreferenceVector), nil
	}

	reviews, err := s.catalog.FindReviewsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	vector := recommender.BuildPreference(reviews)
	s.preferences.SetDefault(key, vector)
	return vector, nil
}

func rankStable(scored []recommender.ScoredMovie) []recommender.ScoredMovie {
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

func genreMatches(movie *entity.Movie, vector recommender.PreferenceVector) []dto.GenreMatch {
	matches := make([]dto.GenreMatch, 0, len(movie.Genres))
	for _, genre := range movie.Genres {
		if score, ok := vector[genre.Id]; ok {
			matches = append(matches, dto.GenreMatch{
				Genre:          genre.Name,
				UserPreference: recommender.Round4(score),
			})
		}
	}
	return matches
}

func movieResponse(movie *entity.Movie) dto.MovieResponse {
	genres := make([]string, len(movie.Genres))
	for i, g := range movie.Genres {
		genres[i] = g.Name
	}
	return dto.MovieResponse{
		Id:          movie.Id,
		TmdbId:      movie.TmdbId,
		Title:       movie.Title,
		Overview:    movie.Overview,
		ReleaseDate: movie.ReleaseDate,
		VoteAverage: movie.VoteAverage,
		PosterPath:  movie.PosterPath,
		Genres:      genres,
	}
}
