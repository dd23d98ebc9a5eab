package recommender

import (
	"math"
	"testing"

	"flix-n-chill-be/internal/entity"
)

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		u    []float64
		v    []float64
		want float64
	}{
		{"identical direction", []float64{1, 0}, []float64{2, 0}, 1},
		{"orthogonal", []float64{1, 0}, []float64{0, 1}, 0},
		{"zero user vector", []float64{0, 0}, []float64{1, 1}, 0},
		{"zero movie vector", []float64{1, 1}, []float64{0, 0}, 0},
		{"both zero", []float64{0, 0}, []float64{0, 0}, 0},
		// user (4,4) against indicator (1,0): 4 / (sqrt(32)*1)
		{"partial overlap", []float64{4, 4}, []float64{1, 0}, 4 / math.Sqrt(32)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Cosine(tt.u, tt.v)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Cosine(%v, %v) = %v, want %v", tt.u, tt.v, got, tt.want)
			}
		})
	}
}

func TestDenseAndIndicator(t *testing.T) {
	action := genre("Action")
	drama := genre("Drama")
	horror := genre("Horror")
	basis := Basis{action, drama, horror}

	vector := PreferenceVector{action.Id: 4, drama.Id: 2}
	dense := Dense(vector, basis)
	want := []float64{4, 2, 0}
	for i := range want {
		if dense[i] != want[i] {
			t.Fatalf("Dense = %v, want %v", dense, want)
		}
	}

	movie := movieWith(drama, horror)
	indicator := Indicator(movie, basis)
	want = []float64{0, 1, 1}
	for i := range want {
		if indicator[i] != want[i] {
			t.Fatalf("Indicator = %v, want %v", indicator, want)
		}
	}
}

func TestRankMovies(t *testing.T) {
	action := genre("Action")
	drama := genre("Drama")
	horror := genre("Horror")
	basis := Basis{action, drama, horror}

	t.Run("orders by score descending and drops zero scores", func(t *testing.T) {
		vector := PreferenceVector{action.Id: 4, drama.Id: 4}

		pureAction := movieWith(action)
		actionDrama := movieWith(action, drama)
		pureHorror := movieWith(horror)
		untagged := movieWith()

		ranked := RankMovies(vector, basis, []*entity.Movie{pureHorror, pureAction, untagged, actionDrama})

		if len(ranked) != 2 {
			t.Fatalf("ranked %d movies, want 2", len(ranked))
		}
		// (4,4,0)·(1,1,0) / (sqrt(32)*sqrt(2)) = 1 beats 4/sqrt(32).
		if ranked[0].Movie.Id != actionDrama.Id {
			t.Errorf("top movie = %v, want the full-overlap one", ranked[0].Movie.Id)
		}
		if ranked[1].Movie.Id != pureAction.Id {
			t.Errorf("second movie = %v, want the partial-overlap one", ranked[1].Movie.Id)
		}
		if ranked[0].Score <= ranked[1].Score {
			t.Errorf("scores not descending: %v then %v", ranked[0].Score, ranked[1].Score)
		}
	})

	t.Run("equal scores keep candidate order", func(t *testing.T) {
		vector := PreferenceVector{action.Id: 5}

		first := movieWith(action)
		second := movieWith(action)
		third := movieWith(action)

		ranked := RankMovies(vector, basis, []*entity.Movie{first, second, third})

		if len(ranked) != 3 {
			t.Fatalf("ranked %d movies, want 3", len(ranked))
		}
		for i, want := range []*entity.Movie{first, second, third} {
			if ranked[i].Movie.Id != want.Id {
				t.Fatalf("position %d = %v, want input order preserved", i, ranked[i].Movie.Id)
			}
		}
	})

	t.Run("all-zero preference ranks nothing", func(t *testing.T) {
		ranked := RankMovies(PreferenceVector{}, basis, []*entity.Movie{movieWith(action)})
		if len(ranked) != 0 {
			t.Errorf("ranked %d movies, want 0", len(ranked))
		}
	})
}

func TestMovieSimilarity(t *testing.T) {
	action := genre("Action")
	drama := genre("Drama")
	horror := genre("Horror")
	basis := Basis{action, drama, horror}

	a := movieWith(action, drama)
	b := movieWith(action, drama)
	c := movieWith(horror)

	if got := MovieSimilarity(a, b, basis); math.Abs(got-1) > 1e-9 {
		t.Errorf("similarity of same genre sets = %v, want 1", got)
	}
	if got := MovieSimilarity(a, c, basis); got != 0 {
		t.Errorf("similarity of disjoint genre sets = %v, want 0", got)
	}

	shared := movieWith(action)
	want := 1 / math.Sqrt(2)
	if got := MovieSimilarity(a, shared, basis); math.Abs(got-want) > 1e-9 {
		t.Errorf("similarity = %v, want %v", got, want)
	}
}
