package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"notes-hub/apperr"
	"notes-hub/models"
)

const companyColumns = "SELECT company_id, name, location, type, added_date, active FROM companies"

type Companies struct {
	db execer
}

func NewCompanies(conn *sql.DB) *Companies {
	return &Companies{db: conn}
}

func scanCompany(sc interface{ Scan(...interface{}) error }) (models.Company, error) {
	var c models.Company
	err := sc.Scan(&c.ID, &c.Name, &c.Location, &c.Type, &c.AddedDate, &c.Active)
	return c, err
}

func (s *Companies) List(ctx context.Context) ([]models.Company, error) {
	defer observe("list", "companies", time.Now())

	rows, err := s.db.QueryContext(ctx, companyColumns+" ORDER BY company_id")
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	companies := []models.Company{}
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		companies = append(companies, c)
	}
	return companies, rows.Err()
}

func (s *Companies) Find(ctx context.Context, id int) (*models.Company, error) {
	defer observe("find", "companies", time.Now())

	c, err := scanCompany(s.db.QueryRowContext(ctx, companyColumns+" WHERE company_id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find company %d: %w", id, err)
	}
	return &c, nil
}

// Insert stamps AddedDate; it is refreshed again by every Update.
func (s *Companies) Insert(ctx context.Context, c *models.Company) error {
	defer observe("insert", "companies", time.Now())

	ts := now()
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO companies (name, location, type, added_date, active) VALUES (?, ?, ?, ?, ?)",
		c.Name, c.Location, c.Type, ts, c.Active)
	if err != nil {
		return fmt.Errorf("insert company: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert company: %w", err)
	}
	c.ID = int(id)
	c.AddedDate = ts
	return nil
}

func (s *Companies) Update(ctx context.Context, c *models.Company) error {
	defer observe("update", "companies", time.Now())

	ts := now()
	_, err := s.db.ExecContext(ctx,
		"UPDATE companies SET name = ?, location = ?, type = ?, added_date = ?, active = ? WHERE company_id = ?",
		c.Name, c.Location, c.Type, ts, c.Active, c.ID)
	if err != nil {
		return fmt.Errorf("update company %d: %w", c.ID, err)
	}
	c.AddedDate = ts
	return nil
}

func (s *Companies) Delete(ctx context.Context, id int) error {
	defer observe("delete", "companies", time.Now())
	return execDelete(ctx, s.db, "company", id, "DELETE FROM companies WHERE company_id = ?", []interface{}{id})
}
