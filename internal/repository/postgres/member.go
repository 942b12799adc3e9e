package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"youthorg-backend-trusted/internal/domain"
	"youthorg-backend-trusted/internal/logger"
	"youthorg-backend-trusted/internal/repository"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const memberColumns = `id, unit, COALESCE(holy_name, ''), full_name, birth_date, COALESCE(phone, ''), COALESCE(parent_name, ''), status, created_on, updated_on`

type memberRepository struct {
	db *sql.DB
}

func NewMemberRepository(db *sql.DB) repository.MemberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) Create(ctx context.Context, m *domain.Member) error {
	logger.EnterMethod("memberRepository.Create", "unit", m.Unit)

	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	m.CreatedOn = now
	m.UpdatedOn = now

	query := `INSERT INTO members (id, unit, holy_name, full_name, birth_date, phone, parent_name, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.db.ExecContext(ctx, query, m.ID, m.Unit, m.HolyName, m.FullName, m.BirthDate, m.Phone, m.ParentName, m.Status, m.CreatedOn, m.UpdatedOn)
	if err != nil {
		logger.ExitMethodWithError("memberRepository.Create", err, "memberID", m.ID)
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: member %s already exists", domain.ErrValidation, m.ID)
		}
		return err
	}

	logger.ExitMethod("memberRepository.Create", "memberID", m.ID)
	return nil
}

func (r *memberRepository) GetByID(ctx context.Context, id string) (*domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE id = $1`
	m, err := scanMember(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: member %s", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Update replaces every column of the row, unit included, in one statement.
func (r *memberRepository) Update(ctx context.Context, m *domain.Member) error {
	logger.EnterMethod("memberRepository.Update", "memberID", m.ID, "unit", m.Unit)

	m.UpdatedOn = time.Now().UTC()
	query := `UPDATE members SET unit = $1, holy_name = $2, full_name = $3, birth_date = $4, phone = $5, parent_name = $6, status = $7, updated_on = $8
	          WHERE id = $9`
	res, err := r.db.ExecContext(ctx, query, m.Unit, m.HolyName, m.FullName, m.BirthDate, m.Phone, m.ParentName, m.Status, m.UpdatedOn, m.ID)
	if err != nil {
		logger.ExitMethodWithError("memberRepository.Update", err, "memberID", m.ID)
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%w: member %s", domain.ErrNotFound, m.ID)
	}

	logger.ExitMethod("memberRepository.Update", "memberID", m.ID)
	return nil
}

func (r *memberRepository) List(ctx context.Context) ([]domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members ORDER BY created_on, id`
	logger.DatabaseCall("SELECT", "members")
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.DatabaseResult("SELECT", 0, err)
		return nil, err
	}
	defer rows.Close()
	return collectMembers(rows)
}

func (r *memberRepository) ListByUnits(ctx context.Context, units []domain.OrgUnit) ([]domain.Member, error) {
	if len(units) == 0 {
		return nil, nil
	}
	codes := make([]string, len(units))
	for i, u := range units {
		codes[i] = string(u)
	}

	query := `SELECT ` + memberColumns + ` FROM members WHERE unit = ANY($1) ORDER BY created_on, id`
	logger.DatabaseCall("SELECT", "members", "units", codes)
	rows, err := r.db.QueryContext(ctx, query, pq.Array(codes))
	if err != nil {
		logger.DatabaseResult("SELECT", 0, err, "units", codes)
		return nil, err
	}
	defer rows.Close()
	return collectMembers(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMember(row rowScanner) (*domain.Member, error) {
	var m domain.Member
	var birth sql.NullTime
	if err := row.Scan(&m.ID, &m.Unit, &m.HolyName, &m.FullName, &birth, &m.Phone, &m.ParentName, &m.Status, &m.CreatedOn, &m.UpdatedOn); err != nil {
		return nil, err
	}
	if birth.Valid {
		m.BirthDate = &birth.Time
	}
	return &m, nil
}

func collectMembers(rows *sql.Rows) ([]domain.Member, error) {
	var members []domain.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	logger.DatabaseResult("SELECT", int64(len(members)), nil)
	return members, nil
}
