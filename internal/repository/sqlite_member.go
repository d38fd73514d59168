package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nmhoang/taskflow/internal/domain"
	"github.com/nmhoang/taskflow/internal/ordering"
)

const memberColumns = `id, name, date_of_birth, unit, team, file_name, storage_ref, display_order, created_at`

// SQLiteMemberRepo implements MemberRepo using a SQLite database.
type SQLiteMemberRepo struct {
	db *sql.DB
}

func NewSQLiteMemberRepo(db *sql.DB) *SQLiteMemberRepo {
	return &SQLiteMemberRepo{db: db}
}

func (r *SQLiteMemberRepo) Create(ctx context.Context, m *domain.Member) error {
	query := `INSERT INTO members (` + memberColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		m.ID,
		m.Name,
		m.DateOfBirth.Format(dateLayout),
		m.Unit,
		m.Team,
		m.FileName,
		m.StorageRef,
		0,
		m.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting member: %w", err)
	}
	return nil
}

func (r *SQLiteMemberRepo) GetByID(ctx context.Context, id string) (*domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE id = ?`
	return scanMember(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteMemberRepo) List(ctx context.Context) ([]*domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members
		ORDER BY display_order, created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing members: %w", err)
	}
	defer rows.Close()

	var members []*domain.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *SQLiteMemberRepo) Update(ctx context.Context, m *domain.Member) error {
	query := `UPDATE members SET name = ?, date_of_birth = ?, unit = ?, team = ?,
		file_name = ?, storage_ref = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		m.Name,
		m.DateOfBirth.Format(dateLayout),
		m.Unit,
		m.Team,
		m.FileName,
		m.StorageRef,
		m.ID,
	)
	if err != nil {
		return fmt.Errorf("updating member: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteMemberRepo) UpdateOrder(ctx context.Context, ranks []ordering.Rank) error {
	return updateDisplayOrder(ctx, r.db, "members", ranks)
}

func (r *SQLiteMemberRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM members WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting member: %w", err)
	}
	return requireRow(res)
}

func scanMember(row rowScanner) (*domain.Member, error) {
	var m domain.Member
	var dob, createdAt string
	var displayOrder int

	err := row.Scan(
		&m.ID,
		&m.Name,
		&dob,
		&m.Unit,
		&m.Team,
		&m.FileName,
		&m.StorageRef,
		&displayOrder,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning member: %w", err)
	}

	m.DateOfBirth = parseTime(dob, dateLayout)
	m.CreatedAt = parseTime(createdAt, timeLayout)
	return &m, nil
}
