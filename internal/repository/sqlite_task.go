package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/nmhoang/taskflow/internal/domain"
	"github.com/nmhoang/taskflow/internal/ordering"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// taskColumns is the canonical SELECT column list for tasks.
const taskColumns = `id, title, description, priority, assignee, due_date,
		details, tags, created_by, display_order, created_at, updated_at`

// SQLiteTaskRepo implements TaskRepo using a SQLite database.
type SQLiteTaskRepo struct {
	db *sql.DB
}

// NewSQLiteTaskRepo creates a new SQLiteTaskRepo.
func NewSQLiteTaskRepo(db *sql.DB) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: db}
}

func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	query := `INSERT INTO tasks (` + taskColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.Title,
		t.Description,
		string(t.Priority),
		t.Assignee,
		nullableTimeToString(t.DueDate, dateLayout),
		t.Details,
		tagsToJSON(t.Tags),
		t.CreatedBy,
		0,
		t.CreatedAt.Format(timeLayout),
		t.UpdatedAt.Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`
	return scanTask(r.db.QueryRowContext(ctx, query, id))
}

// List returns all tasks in display order; rows sharing a display slot
// fall back to newest-first, matching the original fetch ordering.
func (r *SQLiteTaskRepo) List(ctx context.Context) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks
		ORDER BY display_order, created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *SQLiteTaskRepo) Update(ctx context.Context, t *domain.Task) error {
	query := `UPDATE tasks SET title = ?, description = ?, priority = ?, assignee = ?,
		due_date = ?, details = ?, tags = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		t.Title,
		t.Description,
		string(t.Priority),
		t.Assignee,
		nullableTimeToString(t.DueDate, dateLayout),
		t.Details,
		tagsToJSON(t.Tags),
		t.UpdatedAt.Format(timeLayout),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteTaskRepo) UpdatePriority(ctx context.Context, id string, p domain.Priority) error {
	query := `UPDATE tasks SET priority = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, string(p), time.Now().UTC().Format(timeLayout), id)
	if err != nil {
		return fmt.Errorf("updating task priority: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteTaskRepo) UpdateOrder(ctx context.Context, ranks []ordering.Rank) error {
	return updateDisplayOrder(ctx, r.db, "tasks", ranks)
}

func (r *SQLiteTaskRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	return requireRow(res)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var t domain.Task
	var priority, tags, createdAt, updatedAt string
	var dueDate sql.NullString
	var displayOrder int

	err := row.Scan(
		&t.ID,
		&t.Title,
		&t.Description,
		&priority,
		&t.Assignee,
		&dueDate,
		&t.Details,
		&tags,
		&t.CreatedBy,
		&displayOrder,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning task: %w", err)
	}

	t.Priority = domain.Priority(priority)
	t.Tags = tagsFromJSON(tags)
	t.DueDate = parseNullableTime(dueDate, dateLayout)
	t.CreatedAt = parseTime(createdAt, timeLayout)
	t.UpdatedAt = parseTime(updatedAt, timeLayout)
	return &t, nil
}

// updateDisplayOrder writes a full reindex for one table in a single
// transaction so a partial failure never leaves a mixed ordering.
func updateDisplayOrder(ctx context.Context, database *sql.DB, table string, ranks []ordering.Rank) error {
	tx, err := database.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting order update: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `UPDATE `+table+` SET display_order = ? WHERE id = ?`)
	if err != nil {
		return fmt.Errorf("preparing order update: %w", err)
	}
	defer stmt.Close()

	for _, rank := range ranks {
		if _, err := stmt.ExecContext(ctx, rank.Order, rank.ID); err != nil {
			return fmt.Errorf("writing display order for %s: %w", rank.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing order update: %w", err)
	}
	return nil
}

// requireRow converts a zero-row update/delete into ErrNotFound.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
