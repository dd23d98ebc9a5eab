package dto

import (
	"time"

	"github.com/google/uuid"
)

type MovieResponse struct {
	Id          uuid.UUID `json:"id"`
	TmdbId      int       `json:"tmdb_id"`
	Title       string    `json:"title"`
	Overview    string    `json:"overview"`
	ReleaseDate time.Time `json:"release_date"`
	VoteAverage float64   `json:"vote_average"`
	PosterPath  string    `json:"poster_path"`
	Genres      []string  `json:"genres"`
}

type GenreMatch struct {
	Genre          string  `json:"genre"`
	UserPreference float64 `json:"user_preference"`
}

type RecommendationItem struct {
	Movie           MovieResponse `json:"movie"`
	SimilarityScore float64       `json:"similarity_score"`
	GenreMatches    []GenreMatch  `json:"genre_matches"`
}

type RecommendationResponse struct {
	Recommendations []RecommendationItem `json:"recommendations"`
	Message         string               `json:"message,omitempty"`
}

type RecommendationQuery struct {
	Count        int  `json:"count" validate:"gt=0"`
	ExcludeRated bool `json:"exclude_rated"`
}

type GenreAnalysisResponse struct {
	GenrePreferences map[string]float64 `json:"genre_preferences"`
	TotalReviews     int                `json:"total_reviews"`
	Message          string             `json:"message,omitempty"`
}

type SimilarMovieItem struct {
	Movie           MovieResponse `json:"movie"`
	SimilarityScore float64       `json:"similarity_score"`
}

type SimilarMoviesResponse struct {
	SimilarMovies []SimilarMovieItem `json:"similar_movies"`
}
