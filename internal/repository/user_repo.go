package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"parkspot/internal/db"
)

type UserRepository struct {
	DB *sql.DB
}

func NewUserRepository(database *sql.DB) *UserRepository {
	return &UserRepository{DB: database}
}

const userColumns = `id, first_name, username, password_hash, role, registration_type,
	full_name, contact_address, phone_number, email, id_type, id_number, photo_url, id_url, created_at`

func (r *UserRepository) Create(u *db.User) error {
	query := `
		INSERT INTO users
		(id, first_name, username, password_hash, role, registration_type, full_name,
		 contact_address, phone_number, email, id_type, id_number, photo_url, id_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING created_at`
	err := r.DB.QueryRow(query,
		u.ID, u.FirstName, u.Username, u.PasswordHash, u.Role, u.RegistrationType, u.FullName,
		u.ContactAddress, u.PhoneNumber, u.Email, u.IDType, u.IDNumber, u.PhotoURL, u.IDURL,
	).Scan(&u.CreatedAt)
	if err != nil {
		return fmt.Errorf("error inserting user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(id string) (*db.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanUser(r.DB.QueryRow(query, id))
}

func (r *UserRepository) GetByUsername(username string) (*db.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return r.scanUser(r.DB.QueryRow(query, username))
}

func (r *UserRepository) List() ([]db.User, error) {
	rows, err := r.DB.Query(`SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("error querying users: %w", err)
	}
	defer rows.Close()

	var users []db.User
	for rows.Next() {
		var u db.User
		err := rows.Scan(
			&u.ID, &u.FirstName, &u.Username, &u.PasswordHash, &u.Role, &u.RegistrationType,
			&u.FullName, &u.ContactAddress, &u.PhoneNumber, &u.Email, &u.IDType, &u.IDNumber,
			&u.PhotoURL, &u.IDURL, &u.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning user row: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepository) Delete(id string) error {
	result, err := r.DB.Exec(`DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting user: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepository) scanUser(row *sql.Row) (*db.User, error) {
	var u db.User
	err := row.Scan(
		&u.ID, &u.FirstName, &u.Username, &u.PasswordHash, &u.Role, &u.RegistrationType,
		&u.FullName, &u.ContactAddress, &u.PhoneNumber, &u.Email, &u.IDType, &u.IDNumber,
		&u.PhotoURL, &u.IDURL, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error querying user: %w", err)
	}
	return &u, nil
}
