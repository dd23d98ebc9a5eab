package recommender

import (
	"math"
	"sort"

	"flix-n-chill-be/internal/entity"
)

// Basis is the ordered set of all genres currently in the catalog. It is
// snapshotted once per recommendation call; every dense vector built
// within one call uses the same basis, which is what keeps dot products
// meaningful. Order does not need to be stable across calls.
type Basis []entity.Genre

// Dense 0-fills a sparse preference vector over the basis.
func Dense(vector PreferenceVector, basis Basis) []float64 {
	dense := make([]float64, len(basis))
	for i, genre := range basis {
		dense[i] = vector[genre.Id]
	}
	return dense
}

// Indicator builds the movie's binary genre vector over the basis.
func Indicator(movie *entity.Movie, basis Basis) []float64 {
	indicator := make([]float64, len(basis))
	for i, genre := range basis {
		if movie.HasGenre(genre.Id) {
			indicator[i] = 1
		}
	}
	return indicator
}

// Cosine computes dot(u, v) / (||u|| * ||v||), defined as 0 when either
// norm is 0. Dimensionality equals the catalog's genre count, so a
// direct computation is all that is needed.
func Cosine(u, v []float64) float64 {
	var dot, normU, normV float64
	for i := range u {
		dot += u[i] * v[i]
		normU += u[i] * u[i]
		normV += v[i] * v[i]
	}
	if normU == 0 || normV == 0 {
		return 0
	}
	return dot / (math.Sqrt(normU) * math.Sqrt(normV))
}

type ScoredMovie struct {
	Movie *entity.Movie
	Score float64
}

// RankMovies scores every candidate against the preference vector and
// returns them descending by score. Zero and undefined scores (no genre
// overlap, untagged movies, all-zero preference) are excluded. Equal
// scores keep input order — callers rely on stable pagination.
func RankMovies(vector PreferenceVector, basis Basis, candidates []*entity.Movie) []ScoredMovie {
	user := Dense(vector, basis)

	ranked := make([]ScoredMovie, 0, len(candidates))
	for _, movie := range candidates {
		score := Cosine(user, Indicator(movie, basis))
		if score <= 0 || math.IsNaN(score) {
			continue
		}
		ranked = append(ranked, ScoredMovie{Movie: movie, Score: score})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// MovieSimilarity is the item-to-item variant: cosine over the two
// movies' indicator vectors.
func MovieSimilarity(a, b *entity.Movie, basis Basis) float64 {
	return Cosine(Indicator(a, basis), Indicator(b, basis))
}

// Round4 rounds a similarity score to 4 decimals for presentation.
func Round4(score float64) float64 {
	return math.Round(score*10000) / 10000
}
