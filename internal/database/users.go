package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"oakvale/server/internal/models"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
)

// CreateUser stores a new account. Emails are matched case-insensitively.
func (d *Database) CreateUser(ctx context.Context, u *models.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = models.RoleClient
	}
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))

	if err := d.db.WithContext(ctx).Create(u).Error; err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return ErrEmailTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (d *Database) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := d.db.WithContext(ctx).
		First(&u, "email = ?", strings.ToLower(strings.TrimSpace(email))).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (d *Database) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := d.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}
