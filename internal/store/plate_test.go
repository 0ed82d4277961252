package store

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plategate/apiserver/types"
)

func newMockDB(t *testing.T) (*PlateRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPlateRepository(db), mock
}

func TestPlateCreateMapsUniqueViolation(t *testing.T) {
	repo, mock := newMockDB(t)

	mock.ExpectQuery("INSERT INTO license_plate").
		WithArgs("John", "Doe", "ABC123", 1).
		WillReturnError(&pq.Error{Code: uniqueViolationCode})

	_, err := repo.Create(context.Background(), types.LicensePlate{
		FirstName:     "John",
		LastName:      "Doe",
		LicenseNumber: "ABC123",
		ProvinceID:    1,
	})
	assert.ErrorIs(t, err, ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlateExists(t *testing.T) {
	repo, mock := newMockDB(t)

	mock.ExpectQuery("SELECT COUNT").
		WithArgs("ABC123", 1).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.Exists(context.Background(), "ABC123", 1)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlateUpdateNotFound(t *testing.T) {
	repo, mock := newMockDB(t)

	mock.ExpectExec("UPDATE license_plate").
		WithArgs("John", "Doe", "ABC123", 1, 42).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.Update(context.Background(), types.LicensePlate{
		ID:            42,
		FirstName:     "John",
		LastName:      "Doe",
		LicenseNumber: "ABC123",
		ProvinceID:    1,
	})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteWithHistoryCommits(t *testing.T) {
	repo, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM access_history").
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("DELETE FROM license_plate").
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.DeleteWithHistory(context.Background(), 7)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteWithHistoryRollsBackWhenPlateMissing(t *testing.T) {
	repo, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM access_history").
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM license_plate").
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.DeleteWithHistory(context.Background(), 7)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteWithHistoryRollsBackOnHistoryError(t *testing.T) {
	repo, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM access_history").
		WithArgs(7).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := repo.DeleteWithHistory(context.Background(), 7)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
