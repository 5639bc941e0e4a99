package sqlite

import (
	"context"
	"database/sql"

	"github.com/warakornp/go-shortlink/pkg/core/domain"
	"github.com/warakornp/go-shortlink/pkg/ports"
)

type LinkRepository struct {
	db *sql.DB
}

func NewLinkRepository(db *sql.DB) *LinkRepository {
	return &LinkRepository{db: db}
}

func (r *LinkRepository) Create(ctx context.Context, link *domain.Link) error {
	query := `INSERT INTO links (slug, destination, author, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?)`

	res, err := r.db.ExecContext(ctx, query,
		link.Slug, link.Destination, link.Author, link.CreatedAt, link.UpdatedAt)
	if err != nil {
		return mapConstraintError(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	link.ID = id
	return nil
}

func (r *LinkRepository) GetBySlug(ctx context.Context, slug string) (*domain.Link, error) {
	return r.get(ctx, `WHERE slug = ?`, slug)
}

func (r *LinkRepository) GetByID(ctx context.Context, id int64) (*domain.Link, error) {
	return r.get(ctx, `WHERE id = ?`, id)
}

func (r *LinkRepository) get(ctx context.Context, where string, arg any) (*domain.Link, error) {
	query := `SELECT id, slug, destination, author, created_at, updated_at
			  FROM links ` + where

	var link domain.Link
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&link.ID, &link.Slug, &link.Destination, &link.Author,
		&link.CreatedAt, &link.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *LinkRepository) Update(ctx context.Context, link *domain.Link) error {
	query := `UPDATE links SET slug = ?, destination = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, link.Slug, link.Destination, link.UpdatedAt, link.ID)
	return mapConstraintError(err)
}

func (r *LinkRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM links WHERE id = ?`, id)
	return err
}

func (r *LinkRepository) List(ctx context.Context, limit, offset int, sort string) ([]domain.Link, error) {
	order := "DESC"
	if sort == "asc" {
		order = "ASC"
	}
	query := `SELECT id, slug, destination, author, created_at, updated_at
			  FROM links ORDER BY created_at ` + order + `, id ` + order + ` LIMIT ? OFFSET ?`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []domain.Link
	for rows.Next() {
		var l domain.Link
		if err := rows.Scan(&l.ID, &l.Slug, &l.Destination, &l.Author, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, err
		}
		links = append(links, l)
	}
	return links, rows.Err()
}

func (r *LinkRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM links`).Scan(&count)
	return count, err
}

func (r *LinkRepository) Dump(ctx context.Context) ([]domain.Link, error) {
	return r.List(ctx, -1, 0, "asc")
}

// Ensure interface compliance
var _ ports.LinkRepository = (*LinkRepository)(nil)
