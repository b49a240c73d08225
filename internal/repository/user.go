package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/accountly/accountly-go/internal/model"
	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserStore is the persistence boundary for user records. The email
// uniqueness guarantee lives behind this interface (a unique index in the
// MySQL implementation).
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateProfile(ctx context.Context, user *model.User) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

// UserRepository is the MySQL-backed UserStore.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user, assigning a fresh ID. The ID never changes
// afterwards.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	user.ID = uuid.New().String()

	query := `INSERT INTO users (id, name, email, password_hash, photo, phone, bio)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Name, user.Email, user.PasswordHash,
		user.Photo, user.Phone, user.Bio,
	)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrDuplicateEmail
		}
		return err
	}

	return nil
}

// GetByID retrieves a user by their ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	return r.getUser(ctx, `SELECT id, name, email, password_hash, photo, phone, bio, created_at, updated_at
		FROM users WHERE id = ?`, id)
}

// GetByEmail retrieves a user by their email address.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getUser(ctx, `SELECT id, name, email, password_hash, photo, phone, bio, created_at, updated_at
		FROM users WHERE email = ?`, email)
}

func (r *UserRepository) getUser(ctx context.Context, query string, arg any) (*model.User, error) {
	user := &model.User{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash,
		&user.Photo, &user.Phone, &user.Bio, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}

// UpdateProfile persists the mutable profile fields. Email is deliberately
// not part of the statement.
func (r *UserRepository) UpdateProfile(ctx context.Context, user *model.User) error {
	query := `UPDATE users SET name = ?, phone = ?, bio = ?, photo = ? WHERE id = ?`

	_, err := r.db.ExecContext(ctx, query,
		user.Name, user.Phone, user.Bio, user.Photo, user.ID,
	)
	return err
}

// UpdatePassword replaces the stored password hash for a user.
func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE users SET password_hash = ? WHERE id = ?`, passwordHash, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// isDuplicateEntryError checks if a MySQL error is a duplicate entry error (code 1062).
func isDuplicateEntryError(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}
