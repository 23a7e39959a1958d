package repository_test

import (
	"context"
	"errors"
	"testing"

	"hotel/infras/otel/mocks"
	"hotel/infras/postgres"
	"hotel/shared/dto"
	"hotel/shared/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widget struct {
	ID       string `db:"id"`
	Name     string `db:"name"`
	KindName string `db:"kind_name" table:"kinds" column:"name"`
}

func (widget) GetJoinQuery() string {
	return "LEFT JOIN kinds ON kinds.id = widgets.kind_id"
}

const selectWidgets = `SELECT widgets\.id, widgets\.name, kinds\.name AS kind_name FROM widgets LEFT JOIN kinds ON kinds\.id = widgets\.kind_id`

func newRepo(t *testing.T) (repository.Repository[widget], sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	conn := sqlx.NewDb(db, "postgres")

	return repository.NewRepository[widget]("widget", "widgets", "id", &postgres.Connection{Read: conn, Write: conn}, mocks.NewOtel()), mock
}

func byID(id string) dto.FilterGroup {
	return dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "id", Table: "widgets", Value: id, Operator: dto.FilterOperatorEq},
		},
	}
}

func TestInsertSkipsJoinedColumns(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(`INSERT INTO widgets \(id, name\) VALUES \(\$1, \$2\)`).
		WithArgs("w1", "bolt").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Insert(context.Background(), widget{ID: "w1", Name: "bolt", KindName: "hardware"}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertWrapsFailure(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec("INSERT INTO widgets").WillReturnError(errors.New("disk full"))

	err := repo.Insert(context.Background(), widget{ID: "w1"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to insert data (widget)")
	assert.Contains(t, err.Error(), "disk full")
}

func TestInsertBulk(t *testing.T) {
	t.Run("empty batch", func(t *testing.T) {
		repo, mock := newRepo(t)

		require.NoError(t, repo.InsertBulk(context.Background(), nil))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("one statement", func(t *testing.T) {
		repo, mock := newRepo(t)

		mock.ExpectExec("INSERT INTO widgets").
			WithArgs("w1", "bolt", "w2", "nut").
			WillReturnResult(sqlmock.NewResult(0, 2))

		require.NoError(t, repo.InsertBulk(context.Background(), []widget{{ID: "w1", Name: "bolt"}, {ID: "w2", Name: "nut"}}))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGet(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, mock := newRepo(t)

		mock.ExpectPrepare(selectWidgets + `\s+WHERE \(widgets\.id = \$1\)`).
			ExpectQuery().
			WithArgs("w1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "kind_name"}).AddRow("w1", "bolt", "hardware"))

		got, err := repo.Get(context.Background(), byID("w1"))

		require.NoError(t, err)
		assert.Equal(t, widget{ID: "w1", Name: "bolt", KindName: "hardware"}, got)
	})

	t.Run("missing row is the zero value", func(t *testing.T) {
		repo, mock := newRepo(t)

		mock.ExpectPrepare("SELECT (.+) FROM widgets").
			ExpectQuery().
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "kind_name"}))

		got, err := repo.Get(context.Background(), byID("nope"))

		require.NoError(t, err)
		assert.Equal(t, widget{}, got)
	})

	t.Run("selected columns", func(t *testing.T) {
		repo, mock := newRepo(t)

		mock.ExpectPrepare(`SELECT widgets\.id FROM widgets`).
			ExpectQuery().
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("w1"))

		got, err := repo.Get(context.Background(), byID("w1"), "id")

		require.NoError(t, err)
		assert.Equal(t, "w1", got.ID)
	})

	t.Run("prepare failure", func(t *testing.T) {
		repo, mock := newRepo(t)

		mock.ExpectPrepare("SELECT").WillReturnError(errors.New("syntax"))

		_, err := repo.Get(context.Background(), byID("w1"))

		assert.ErrorContains(t, err, "failed to prepare statement (widget)")
	})
}

func TestGetAllPaginates(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectPrepare(selectWidgets + `\s+ORDER BY name ASC LIMIT \$1 OFFSET \$2`).
		ExpectQuery().
		WithArgs(10, 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "kind_name"}).
			AddRow("w11", "bolt", "hardware").
			AddRow("w12", "nut", "hardware"))

	got, err := repo.GetAll(context.Background(), dto.QueryParams{Page: 2, Limit: 10, SortBy: "name", SortDir: dto.SortDirAsc}, dto.FilterGroup{})

	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCount(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectPrepare(`SELECT COUNT\(widgets\.id\) FROM widgets LEFT JOIN kinds`).
		ExpectQuery().
		WithArgs("w1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	count, err := repo.Count(context.Background(), byID("w1"))

	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestUpdate(t *testing.T) {
	t.Run("requires a filter", func(t *testing.T) {
		repo, mock := newRepo(t)

		err := repo.Update(context.Background(), map[string]any{"name": "nut"}, dto.FilterGroup{})

		require.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("sets columns in name order", func(t *testing.T) {
		repo, mock := newRepo(t)

		mock.ExpectExec(`UPDATE widgets SET kind_id = \$1, name = \$2\s+WHERE \(widgets\.id = \$3\)`).
			WithArgs(3, "nut", "w1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Update(context.Background(), map[string]any{"name": "nut", "kind_id": 3}, byID("w1"))

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDelete(t *testing.T) {
	t.Run("requires a filter", func(t *testing.T) {
		repo, _ := newRepo(t)

		assert.Error(t, repo.Delete(context.Background(), dto.FilterGroup{}))
	})

	t.Run("by id", func(t *testing.T) {
		repo, mock := newRepo(t)

		mock.ExpectExec(`DELETE FROM widgets\s+WHERE \(widgets\.id = \$1\)`).
			WithArgs("w1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Delete(context.Background(), byID("w1")))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
