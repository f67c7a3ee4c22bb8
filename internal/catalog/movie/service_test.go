package movie_test

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kurgu/movielog/internal/catalog/movie"
	"github.com/kurgu/movielog/internal/platform/apperr"
	"github.com/kurgu/movielog/internal/platform/dberr"
	"github.com/kurgu/movielog/pkg/pointer"
)

type fakeRepo struct {
	nextID int
	movies map[int]*movie.Movie
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{nextID: 1, movies: map[int]*movie.Movie{}}
}

func (f *fakeRepo) ListMovies(_ context.Context) ([]*movie.Movie, error) {
	var out []*movie.Movie
	for _, m := range f.movies {
		copied := *m
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeRepo) GetMovie(_ context.Context, id int) (*movie.Movie, error) {
	m, ok := f.movies[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	copied := *m
	return &copied, nil
}

func (f *fakeRepo) CreateMovie(_ context.Context, m *movie.Movie) error {
	m.ID = f.nextID
	f.nextID++

	copied := *m
	f.movies[m.ID] = &copied
	return nil
}

func (f *fakeRepo) UpdateMovie(_ context.Context, m *movie.Movie) error {
	if _, ok := f.movies[m.ID]; !ok {
		return dberr.ErrNotFound
	}
	copied := *m
	f.movies[m.ID] = &copied
	return nil
}

func (f *fakeRepo) DeleteMovie(_ context.Context, id int) error {
	if _, ok := f.movies[id]; !ok {
		return dberr.ErrNotFound
	}
	delete(f.movies, id)
	return nil
}

// fakeRefs reports a fixed answer for every movie.
type fakeRefs struct {
	referenced bool
}

func (f *fakeRefs) ExistsActiveByMovieID(_ context.Context, _ int) (bool, error) {
	return f.referenced, nil
}

func newService(refs *fakeRefs) (*movie.Service, *fakeRepo) {
	repo := newFakeRepo()
	return movie.NewService(repo, refs, slog.New(slog.NewTextHandler(io.Discard, nil))), repo
}

func TestCreateMovie_IgnoresCallerID(t *testing.T) {
	service, repo := newService(&fakeRefs{})

	m := &movie.Movie{ID: 999, Title: pointer.To("Heat"), Director: pointer.To("Mann"), Year: 1995}
	require.NoError(t, service.CreateMovie(context.Background(), m))

	assert.NotEqual(t, 999, m.ID)
	assert.Positive(t, m.ID)
	require.Contains(t, repo.movies, m.ID)
}

func TestGetMovie_NotFound(t *testing.T) {
	service, _ := newService(&fakeRefs{})

	_, err := service.GetMovie(context.Background(), 7)
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
}

/*
TestUpdateMovie_PartialOverwrite pins the patch rules: title and director are
only replaced when present in the input, while year is always taken from the
input, including the zero value.
*/
func TestUpdateMovie_PartialOverwrite(t *testing.T) {
	tests := []struct {
		name         string
		input        movie.UpdateInput
		wantTitle    string
		wantDirector string
		wantYear     int
	}{
		{
			name:         "title_only",
			input:        movie.UpdateInput{Title: pointer.To("Aliens"), Year: 1986},
			wantTitle:    "Aliens",
			wantDirector: "Scott",
			wantYear:     1986,
		},
		{
			name:         "director_only",
			input:        movie.UpdateInput{Director: pointer.To("Cameron"), Year: 1986},
			wantTitle:    "Alien",
			wantDirector: "Cameron",
			wantYear:     1986,
		},
		{
			name:         "year_resets_to_zero_when_omitted",
			input:        movie.UpdateInput{},
			wantTitle:    "Alien",
			wantDirector: "Scott",
			wantYear:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo := newService(&fakeRefs{})

			seed := &movie.Movie{Title: pointer.To("Alien"), Director: pointer.To("Scott"), Year: 1979}
			require.NoError(t, service.CreateMovie(context.Background(), seed))

			updated, err := service.UpdateMovie(context.Background(), seed.ID, tt.input)
			require.NoError(t, err)

			assert.Equal(t, tt.wantTitle, pointer.Val(updated.Title))
			assert.Equal(t, tt.wantDirector, pointer.Val(updated.Director))
			assert.Equal(t, tt.wantYear, updated.Year)

			stored := repo.movies[seed.ID]
			assert.Equal(t, tt.wantYear, stored.Year)
		})
	}
}

func TestUpdateMovie_NotFound(t *testing.T) {
	service, _ := newService(&fakeRefs{})

	_, err := service.UpdateMovie(context.Background(), 3, movie.UpdateInput{Year: 2001})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
}

func TestDeleteMovie_BlockedByActiveClassification(t *testing.T) {
	service, repo := newService(&fakeRefs{referenced: true})

	seed := &movie.Movie{Title: pointer.To("Heat"), Year: 1995}
	require.NoError(t, service.CreateMovie(context.Background(), seed))

	err := service.DeleteMovie(context.Background(), seed.ID)
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)

	// The movie must survive a blocked delete.
	assert.Contains(t, repo.movies, seed.ID)
}

func TestDeleteMovie_Unreferenced(t *testing.T) {
	service, repo := newService(&fakeRefs{})

	seed := &movie.Movie{Title: pointer.To("Heat"), Year: 1995}
	require.NoError(t, service.CreateMovie(context.Background(), seed))

	require.NoError(t, service.DeleteMovie(context.Background(), seed.ID))
	assert.NotContains(t, repo.movies, seed.ID)
}

func TestDeleteMovie_NotFound(t *testing.T) {
	service, _ := newService(&fakeRefs{})

	err := service.DeleteMovie(context.Background(), 11)
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
}
