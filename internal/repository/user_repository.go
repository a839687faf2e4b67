package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/user-profile-service/internal/model"
	"github.com/iliyamo/user-profile-service/internal/utils"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "id,name,email,password_hash,dob,gender,profile_image,created_at,updated_at"

// Create hashes the password and inserts a new user, returning its ID.
// Email is stored exactly as given; uniqueness is enforced by the
// database and reported as ErrEmailExists.
func (r *UserRepo) Create(ctx context.Context, name, email, dob, gender, password string, cost int) (uint64, error) {
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (name, email, password_hash, dob, gender) VALUES (?,?,?,?,?)",
		name, email, hash, dob, gender)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by exact email match.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	return r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", email))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id))
}

// UpdateProfile overwrites the mutable profile fields of one user. The id
// always comes from a verified session token, never from client input.
func (r *UserRepo) UpdateProfile(ctx context.Context, id uint64, name, dob, gender string, profileImage *string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET name=?, dob=?, gender=?, profile_image=? WHERE id=?",
		name, dob, gender, profileImage, id)
	return err
}

// SetProfileImage records the stored image path for a user.
func (r *UserRepo) SetProfileImage(ctx context.Context, id uint64, path string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET profile_image=? WHERE id=?", path, id)
	return err
}

// ClearProfileImage nulls out the stored image path for a user.
func (r *UserRepo) ClearProfileImage(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET profile_image=NULL WHERE id=?", id)
	return err
}

func (r *UserRepo) scanOne(row *sql.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.DOB, &u.Gender,
		&u.ProfileImage, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrNotFound
	}
	return u, err
}
