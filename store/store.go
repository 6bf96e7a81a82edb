// Package store persists users and posts. The Mongo implementation is the
// production store; the in-memory one backs local runs and tests.
package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"feedboard/models"
)

// ErrNotFound is returned by every lookup that matches no document.
var ErrNotFound = errors.New("not found")

type Users interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Insert(ctx context.Context, user *models.User) (primitive.ObjectID, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error
	PushPost(ctx context.Context, userID, postID primitive.ObjectID) error
	PullPost(ctx context.Context, userID, postID primitive.ObjectID) error
}

type Posts interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	FindPage(ctx context.Context, skip, limit int64) ([]models.Post, error)
	Count(ctx context.Context) (int64, error)
	Insert(ctx context.Context, post *models.Post) (primitive.ObjectID, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}
