package history

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/YuminosukeSato/carprice/core/model"
	"github.com/YuminosukeSato/carprice/pkg/errors"
)

const schema = `
    CREATE TABLE IF NOT EXISTS training_log (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        model_name VARCHAR(50),
        alpha REAL NOT NULL,
        epochs INTEGER NOT NULL,
        theta0 REAL NOT NULL,
        theta1 REAL NOT NULL,
        data_points INTEGER,
        trained_at DATETIME
    );
`

// Store は SQLite に学習履歴を保存する
type Store struct {
	db *sql.DB
}

// Open は path のデータベースを開き、training_log テーブルを作成する
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrapf(err, "open history database %s", path)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "create training_log in %s", path)
	}
	return &Store{db: db}, nil
}

// Record は run を 1 行挿入する。TrainedAt が空なら現在時刻を使う。
func (s *Store) Record(ctx context.Context, run Run) error {
	if run.TrainedAt.IsZero() {
		run.TrainedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO training_log (
            model_name, alpha, epochs, theta0, theta1, data_points, trained_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?)
    `, run.ModelName, run.Alpha, run.Epochs, run.Thetas.Theta0, run.Thetas.Theta1, run.DataPoints, run.TrainedAt)
	if err != nil {
		return errors.Wrap(err, "insert training_log")
	}
	return nil
}

// List は新しい順に最大 limit 件の履歴を返す。limit <= 0 なら全件。
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	query := `
        SELECT model_name, alpha, epochs, theta0, theta1, data_points, trained_at
        FROM training_log
        ORDER BY trained_at DESC, id DESC
    `
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "query training_log")
	}
	defer rows.Close()

	runs := make([]Run, 0)
	for rows.Next() {
		var (
			run    Run
			name   sql.NullString
			points sql.NullInt64
			t0, t1 float64
		)
		if err := rows.Scan(&name, &run.Alpha, &run.Epochs, &t0, &t1, &points, &run.TrainedAt); err != nil {
			return nil, errors.Wrap(err, "scan training_log")
		}
		run.ModelName = name.String
		run.DataPoints = int(points.Int64)
		run.Thetas = model.Thetas{Theta0: t0, Theta1: t1}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate training_log")
	}
	return runs, nil
}

// Close はデータベースを閉じる
func (s *Store) Close() error {
	return s.db.Close()
}
