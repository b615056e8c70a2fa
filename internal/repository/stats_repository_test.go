package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsRepository_Leaderboard(t *testing.T) {
	t.Run("Лидеры отсортированы по счету", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewStatsRepository(db)

		rows := sqlmock.NewRows([]string{"citizen_name", "total_reports", "resolved_reports", "score"}).
			AddRow("Ivan", 5, 3, 200).
			AddRow("Anonymous", 10, 1, 150).
			AddRow("Maria", 2, 1, 70)

		mock.ExpectQuery(`SELECT citizen_name,\s+COUNT\(\*\) AS total_reports`).
			WithArgs(10).
			WillReturnRows(rows)

		entries, err := repo.Leaderboard(context.Background(), 10)

		require.NoError(t, err)
		require.Len(t, entries, 3)
		assert.Equal(t, "Ivan", entries[0].CitizenName)
		assert.Equal(t, 200, entries[0].Score)
		assert.Equal(t, 5, entries[0].TotalReports)
		assert.Equal(t, 3, entries[0].ResolvedReports)
		assert.Equal(t, "Maria", entries[2].CitizenName)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Пустая таблица лидеров", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewStatsRepository(db)

		rows := sqlmock.NewRows([]string{"citizen_name", "total_reports", "resolved_reports", "score"})

		mock.ExpectQuery(`SELECT citizen_name,\s+COUNT\(\*\) AS total_reports`).
			WithArgs(10).
			WillReturnRows(rows)

		entries, err := repo.Leaderboard(context.Background(), 10)

		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("Ошибка базы данных", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewStatsRepository(db)

		mock.ExpectQuery(`SELECT citizen_name,\s+COUNT\(\*\) AS total_reports`).
			WillReturnError(errors.New("connection lost"))

		entries, err := repo.Leaderboard(context.Background(), 10)

		assert.Nil(t, entries)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "ошибка при построении таблицы лидеров")
	})
}

func TestStatsRepository_Counts(t *testing.T) {
	t.Run("Подсчет всех жалоб", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewStatsRepository(db)

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM complaints`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

		count, err := repo.CountComplaints(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 42, count)
	})

	t.Run("Подсчет решенных жалоб", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewStatsRepository(db)

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM complaints WHERE status = 'Resolved'`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(17))

		count, err := repo.CountResolvedComplaints(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 17, count)
	})

	t.Run("Подсчет пользователей по роли", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewStatsRepository(db)

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users WHERE role = \$1`).
			WithArgs("user").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(9))

		count, err := repo.CountUsersByRole(context.Background(), "user")

		require.NoError(t, err)
		assert.Equal(t, 9, count)
	})

	t.Run("Ошибка при подсчете жалоб", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewStatsRepository(db)

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM complaints`).
			WillReturnError(errors.New("connection lost"))

		_, err := repo.CountComplaints(context.Background())

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "ошибка при подсчёте жалоб")
	})
}
