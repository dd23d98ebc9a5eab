package recommender

import (
	"flix-n-chill-be/internal/entity"

	"github.com/google/uuid"
)

// PreferenceVector maps genre id -> mean rating the user gave to movies
// carrying that genre. Genres the user never rated are absent. A
// zero-length vector is the EMPTY sentinel: the user has no ratings and
// cannot be recommended to — distinct from a populated vector whose
// entries happen to be zero.
type PreferenceVector map[uuid.UUID]float64

func (v PreferenceVector) IsEmpty() bool {
	return len(v) == 0
}

// BuildPreference accumulates each review's rating into every genre
// bucket of the rated movie (a movie with k genres contributes its
// rating k times), then reduces each bucket to its arithmetic mean.
func BuildPreference(reviews []*entity.Review) PreferenceVector {
	sums := make(map[uuid.UUID]float64)
	counts := make(map[uuid.UUID]int)

	for _, review := range reviews {
		if review == nil || review.Movie == nil {
			continue
		}
		for _, genre := range review.Movie.Genres {
			sums[genre.Id] += review.Rating
			counts[genre.Id]++
		}
	}

	vector := make(PreferenceVector, len(sums))
	for genreID, sum := range sums {
		vector[genreID] = sum / float64(counts[genreID])
	}
	return vector
}
