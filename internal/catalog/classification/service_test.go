package classification_test

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kurgu/movielog/internal/catalog/category"
	"github.com/kurgu/movielog/internal/catalog/classification"
	"github.com/kurgu/movielog/internal/catalog/movie"
	"github.com/kurgu/movielog/internal/platform/apperr"
	"github.com/kurgu/movielog/internal/platform/dberr"
	"github.com/kurgu/movielog/pkg/pointer"
)

// # In-memory fakes

type fakeRepo struct {
	nextID int
	rows   map[int]*classification.Classification
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{nextID: 1, rows: map[int]*classification.Classification{}}
}

func (f *fakeRepo) ListActive(_ context.Context) ([]*classification.Classification, error) {
	var out []*classification.Classification
	for _, c := range f.rows {
		if c.Status == classification.StatusActive {
			copied := *c
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeRepo) GetActiveByID(_ context.Context, id int) (*classification.Classification, error) {
	c, ok := f.rows[id]
	if !ok || c.Status != classification.StatusActive {
		return nil, dberr.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id int) (*classification.Classification, error) {
	c, ok := f.rows[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (f *fakeRepo) FindActiveByPair(_ context.Context, movieID, categoryID int) (*classification.Classification, error) {
	for _, c := range f.rows {
		if c.Status == classification.StatusActive && c.MovieID == movieID && c.CategoryID == categoryID {
			copied := *c
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) Create(_ context.Context, c *classification.Classification) error {
	c.ID = f.nextID
	f.nextID++
	c.Status = classification.StatusActive
	c.AssignedOn = time.Now().Truncate(24 * time.Hour)

	copied := *c
	f.rows[c.ID] = &copied
	return nil
}

func (f *fakeRepo) UpdatePair(_ context.Context, id, movieID, categoryID int) error {
	c, ok := f.rows[id]
	if !ok || c.Status != classification.StatusActive {
		return dberr.ErrNotFound
	}
	c.MovieID = movieID
	c.CategoryID = categoryID
	return nil
}

func (f *fakeRepo) SoftDelete(_ context.Context, id int) error {
	c, ok := f.rows[id]
	if !ok {
		return dberr.ErrNotFound
	}
	c.Status = classification.StatusSoftDeleted
	return nil
}

type fakeMovies struct {
	movies map[int]*movie.Movie
}

func (f *fakeMovies) GetMovie(_ context.Context, id int) (*movie.Movie, error) {
	m, ok := f.movies[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return m, nil
}

type fakeCategories struct {
	categories map[int]*category.Category
}

func (f *fakeCategories) GetCategory(_ context.Context, id int) (*category.Category, error) {
	c, ok := f.categories[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return c, nil
}

// newFixture returns a service over fresh fakes, pre-seeded with one movie
// (ID 1) and one category (ID 2).
func newFixture() (*classification.Service, *fakeRepo) {
	repo := newFakeRepo()
	movies := &fakeMovies{movies: map[int]*movie.Movie{
		1: {ID: 1, Title: pointer.To("Inception"), Director: pointer.To("Nolan"), Year: 2010},
		3: {ID: 3, Title: pointer.To("Alien"), Director: pointer.To("Scott"), Year: 1979},
	}}
	categories := &fakeCategories{categories: map[int]*category.Category{
		2: {ID: 2, Name: "Sci-Fi"},
		4: {ID: 4, Name: "Thriller"},
	}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return classification.NewService(repo, movies, categories, logger), repo
}

// # Create

func TestCreateClassification(t *testing.T) {
	service, repo := newFixture()

	enriched, err := service.CreateClassification(context.Background(), classification.Input{MovieID: 1, CategoryID: 2})
	require.NoError(t, err)
	require.NotNil(t, enriched)

	assert.Positive(t, enriched.ClassificationID)
	require.NotNil(t, enriched.Movie)
	require.NotNil(t, enriched.Category)
	assert.Equal(t, 1, enriched.Movie.ID)
	assert.Equal(t, "Sci-Fi", enriched.Category.Name)

	stored := repo.rows[enriched.ClassificationID]
	require.NotNil(t, stored)
	assert.Equal(t, classification.StatusActive, stored.Status)
}

func TestCreateClassification_InvalidIDs(t *testing.T) {
	tests := []struct {
		name       string
		movieID    int
		categoryID int
	}{
		{"zero_movie", 0, 2},
		{"zero_category", 1, 0},
		{"negative_movie", -1, 2},
		{"both_invalid", 0, -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo := newFixture()

			_, err := service.CreateClassification(context.Background(), classification.Input{
				MovieID:    tt.movieID,
				CategoryID: tt.categoryID,
			})
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)

			// Nothing may be persisted on a validation failure.
			assert.Empty(t, repo.rows)
		})
	}
}

func TestCreateClassification_UnresolvableRefs(t *testing.T) {
	service, repo := newFixture()

	_, err := service.CreateClassification(context.Background(), classification.Input{MovieID: 99, CategoryID: 98})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	assert.Len(t, ae.Details, 2)
	assert.Empty(t, repo.rows)
}

func TestCreateClassification_DuplicateActivePair(t *testing.T) {
	service, repo := newFixture()

	first, err := service.CreateClassification(context.Background(), classification.Input{MovieID: 1, CategoryID: 2})
	require.NoError(t, err)

	// A second create for the same pair must conflict while the first stays active.
	_, err = service.CreateClassification(context.Background(), classification.Input{MovieID: 1, CategoryID: 2})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)

	assert.Len(t, repo.rows, 1)
	assert.Equal(t, classification.StatusActive, repo.rows[first.ClassificationID].Status)
}

func TestCreateClassification_AfterSoftDelete(t *testing.T) {
	service, repo := newFixture()

	first, err := service.CreateClassification(context.Background(), classification.Input{MovieID: 1, CategoryID: 2})
	require.NoError(t, err)

	require.NoError(t, service.DeleteClassification(context.Background(), first.ClassificationID))

	// The pair is free again once the prior record is soft-deleted.
	second, err := service.CreateClassification(context.Background(), classification.Input{MovieID: 1, CategoryID: 2})
	require.NoError(t, err)

	assert.NotEqual(t, first.ClassificationID, second.ClassificationID)
	assert.Len(t, repo.rows, 2)
	assert.Equal(t, classification.StatusSoftDeleted, repo.rows[first.ClassificationID].Status)
	assert.Equal(t, classification.StatusActive, repo.rows[second.ClassificationID].Status)
}

// # Update

func TestUpdateClassification_PairHeldByOtherRecord(t *testing.T) {
	service, repo := newFixture()

	_, err := service.CreateClassification(context.Background(), classification.Input{MovieID: 1, CategoryID: 2})
	require.NoError(t, err)
	second, err := service.CreateClassification(context.Background(), classification.Input{MovieID: 3, CategoryID: 4})
	require.NoError(t, err)

	// Re-pointing the second record at the first record's pair must conflict.
	_, err = service.UpdateClassification(context.Background(), second.ClassificationID, classification.Input{MovieID: 1, CategoryID: 2})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)

	// The target record is unchanged.
	unchanged := repo.rows[second.ClassificationID]
	assert.Equal(t, 3, unchanged.MovieID)
	assert.Equal(t, 4, unchanged.CategoryID)
}

func TestUpdateClassification_OwnPairIsNotAConflict(t *testing.T) {
	service, _ := newFixture()

	created, err := service.CreateClassification(context.Background(), classification.Input{MovieID: 1, CategoryID: 2})
	require.NoError(t, err)

	// Re-submitting the record's own pair is a no-op update, not a conflict.
	enriched, err := service.UpdateClassification(context.Background(), created.ClassificationID, classification.Input{MovieID: 1, CategoryID: 2})
	require.NoError(t, err)
	assert.Equal(t, created.ClassificationID, enriched.ClassificationID)
}

func TestUpdateClassification_Repoint(t *testing.T) {
	service, repo := newFixture()

	created, err := service.CreateClassification(context.Background(), classification.Input{MovieID: 1, CategoryID: 2})
	require.NoError(t, err)

	enriched, err := service.UpdateClassification(context.Background(), created.ClassificationID, classification.Input{MovieID: 3, CategoryID: 4})
	require.NoError(t, err)

	assert.Equal(t, 3, enriched.Movie.ID)
	assert.Equal(t, 4, enriched.Category.ID)

	stored := repo.rows[created.ClassificationID]
	assert.Equal(t, 3, stored.MovieID)
	assert.Equal(t, 4, stored.CategoryID)
	assert.Equal(t, classification.StatusActive, stored.Status)
}

func TestUpdateClassification_SoftDeletedIsNotFound(t *testing.T) {
	service, _ := newFixture()

	created, err := service.CreateClassification(context.Background(), classification.Input{MovieID: 1, CategoryID: 2})
	require.NoError(t, err)
	require.NoError(t, service.DeleteClassification(context.Background(), created.ClassificationID))

	_, err = service.UpdateClassification(context.Background(), created.ClassificationID, classification.Input{MovieID: 3, CategoryID: 4})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
}

// # Delete

func TestDeleteClassification_Idempotent(t *testing.T) {
	service, repo := newFixture()

	created, err := service.CreateClassification(context.Background(), classification.Input{MovieID: 1, CategoryID: 2})
	require.NoError(t, err)

	require.NoError(t, service.DeleteClassification(context.Background(), created.ClassificationID))
	assert.Equal(t, classification.StatusSoftDeleted, repo.rows[created.ClassificationID].Status)

	// A repeated delete succeeds without side effects.
	require.NoError(t, service.DeleteClassification(context.Background(), created.ClassificationID))
	assert.Equal(t, classification.StatusSoftDeleted, repo.rows[created.ClassificationID].Status)
	assert.Len(t, repo.rows, 1)
}

func TestDeleteClassification_NotFound(t *testing.T) {
	service, _ := newFixture()

	err := service.DeleteClassification(context.Background(), 42)
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
}

// # Reads

func TestGetClassification_DanglingReferenceIsServerError(t *testing.T) {
	service, repo := newFixture()

	created, err := service.CreateClassification(context.Background(), classification.Input{MovieID: 1, CategoryID: 2})
	require.NoError(t, err)

	// Simulate the movie disappearing underneath the classification.
	repo.rows[created.ClassificationID].MovieID = 77

	_, err = service.GetClassification(context.Background(), created.ClassificationID)
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "INTERNAL_ERROR", ae.Code)
}

func TestListClassifications_SkipsDangling(t *testing.T) {
	service, repo := newFixture()

	kept, err := service.CreateClassification(context.Background(), classification.Input{MovieID: 1, CategoryID: 2})
	require.NoError(t, err)
	dangling, err := service.CreateClassification(context.Background(), classification.Input{MovieID: 3, CategoryID: 4})
	require.NoError(t, err)

	repo.rows[dangling.ClassificationID].CategoryID = 88

	listed, err := service.ListClassifications(context.Background())
	require.NoError(t, err)

	require.Len(t, listed, 1)
	assert.Equal(t, kept.ClassificationID, listed[0].ClassificationID)
}

func TestListClassifications_ExcludesSoftDeleted(t *testing.T) {
	service, _ := newFixture()

	created, err := service.CreateClassification(context.Background(), classification.Input{MovieID: 1, CategoryID: 2})
	require.NoError(t, err)
	require.NoError(t, service.DeleteClassification(context.Background(), created.ClassificationID))

	listed, err := service.ListClassifications(context.Background())
	require.NoError(t, err)
	assert.Empty(t, listed)
}
