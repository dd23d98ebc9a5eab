package recommender

import (
	"math"
	"testing"

	"flix-n-chill-be/internal/entity"

	"github.com/google/uuid"
)

func genre(name string) entity.Genre {
	return entity.Genre{Id: uuid.New(), Name: name}
}

func movieWith(genres ...entity.Genre) *entity.Movie {
	return &entity.Movie{Id: uuid.New(), Genres: genres}
}

func review(movie *entity.Movie, rating float64) *entity.Review {
	return &entity.Review{Id: uuid.New(), MovieId: movie.Id, Movie: movie, Rating: rating}
}

func TestBuildPreference(t *testing.T) {
	action := genre("Action")
	drama := genre("Drama")

	t.Run("averages per genre bucket", func(t *testing.T) {
		m1 := movieWith(action)
		m2 := movieWith(action)
		m3 := movieWith(drama)

		vector := BuildPreference([]*entity.Review{
			review(m1, 5),
			review(m2, 3),
			review(m3, 4),
		})

		if got := vector[action.Id]; got != 4.0 {
			t.Errorf("action preference = %v, want 4.0", got)
		}
		if got := vector[drama.Id]; got != 4.0 {
			t.Errorf("drama preference = %v, want 4.0", got)
		}
		if len(vector) != 2 {
			t.Errorf("vector has %d genres, want 2", len(vector))
		}
	})

	t.Run("multi-genre movie contributes its rating to every bucket", func(t *testing.T) {
		m := movieWith(action, drama)

		vector := BuildPreference([]*entity.Review{review(m, 5)})

		if vector[action.Id] != 5.0 || vector[drama.Id] != 5.0 {
			t.Errorf("vector = %v, want 5.0 in both buckets", vector)
		}
	})

	t.Run("no reviews yields the empty sentinel", func(t *testing.T) {
		vector := BuildPreference(nil)
		if !vector.IsEmpty() {
			t.Errorf("vector.IsEmpty() = false, want true")
		}
	})

	t.Run("reviews of untagged movies yield the empty sentinel", func(t *testing.T) {
		vector := BuildPreference([]*entity.Review{review(movieWith(), 5)})
		if !vector.IsEmpty() {
			t.Errorf("vector.IsEmpty() = false, want true")
		}
	})

	t.Run("reviews missing the movie are skipped", func(t *testing.T) {
		vector := BuildPreference([]*entity.Review{
			{Id: uuid.New(), Rating: 5},
			nil,
			review(movieWith(action), 2),
		})

		if got := vector[action.Id]; got != 2.0 {
			t.Errorf("action preference = %v, want 2.0", got)
		}
	})

	t.Run("populated vector with unrelated genres is not empty", func(t *testing.T) {
		vector := BuildPreference([]*entity.Review{review(movieWith(action), 1)})
		if vector.IsEmpty() {
			t.Error("vector with one entry reported empty")
		}
	})
}

func TestRound4(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0.70710678, 0.7071},
		{0.12345, 0.1235},
		{1, 1},
		{0, 0},
	}

	for _, tt := range tests {
		if got := Round4(tt.in); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Round4(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
