package store

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"feedboard/models"
)

// Memory bundles the in-memory stores. Used when no MONGODB_URI is
// configured, and as the store double in tests. Each store is guarded by
// its own mutex; the two-step post/user mutations stay non-atomic across
// stores, same as the Mongo contract.
type Memory struct {
	Users *MemoryUsers
	Posts *MemoryPosts
}

type MemoryUsers struct {
	mu   sync.RWMutex
	byID map[primitive.ObjectID]models.User
}

type MemoryPosts struct {
	mu    sync.RWMutex
	byID  map[primitive.ObjectID]models.Post
	order []primitive.ObjectID
}

func NewMemory() *Memory {
	return &Memory{
		Users: &MemoryUsers{byID: make(map[primitive.ObjectID]models.User)},
		Posts: &MemoryPosts{byID: make(map[primitive.ObjectID]models.Post)},
	}
}

func copyUser(u models.User) *models.User {
	out := u
	out.Posts = append([]primitive.ObjectID(nil), u.Posts...)
	return &out
}

func (s *MemoryUsers) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyUser(user), nil
}

func (s *MemoryUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.byID {
		if user.Email == email {
			return copyUser(user), nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryUsers) Insert(_ context.Context, user *models.User) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.Posts == nil {
		user.Posts = []primitive.ObjectID{}
	}
	s.byID[user.ID] = *copyUser(*user)
	return user.ID, nil
}

func (s *MemoryUsers) UpdateStatus(_ context.Context, id primitive.ObjectID, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.byID[id]
	if !ok {
		return ErrNotFound
	}
	user.Status = status
	s.byID[id] = user
	return nil
}

func (s *MemoryUsers) PushPost(_ context.Context, userID, postID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.byID[userID]
	if !ok {
		return ErrNotFound
	}
	user.Posts = append(append([]primitive.ObjectID(nil), user.Posts...), postID)
	s.byID[userID] = user
	return nil
}

func (s *MemoryUsers) PullPost(_ context.Context, userID, postID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.byID[userID]
	if !ok {
		return ErrNotFound
	}
	kept := make([]primitive.ObjectID, 0, len(user.Posts))
	for _, id := range user.Posts {
		if id != postID {
			kept = append(kept, id)
		}
	}
	user.Posts = kept
	s.byID[userID] = user
	return nil
}

func (s *MemoryPosts) FindByID(_ context.Context, id primitive.ObjectID) (*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	post, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := post
	return &out, nil
}

// FindPage slices posts in insertion order, the store-default order.
func (s *MemoryPosts) FindPage(_ context.Context, skip, limit int64) ([]models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if skip >= int64(len(s.order)) {
		return nil, nil
	}
	end := skip + limit
	if end > int64(len(s.order)) {
		end = int64(len(s.order))
	}

	posts := make([]models.Post, 0, end-skip)
	for _, id := range s.order[skip:end] {
		posts = append(posts, s.byID[id])
	}
	return posts, nil
}

func (s *MemoryPosts) Count(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.order)), nil
}

func (s *MemoryPosts) Insert(_ context.Context, post *models.Post) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if post.ID.IsZero() {
		post.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	post.CreatedAt = now
	post.UpdatedAt = now

	s.byID[post.ID] = *post
	s.order = append(s.order, post.ID)
	return post.ID, nil
}

func (s *MemoryPosts) Update(_ context.Context, post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[post.ID]; !ok {
		return ErrNotFound
	}
	post.UpdatedAt = time.Now().UTC()
	s.byID[post.ID] = *post
	return nil
}

func (s *MemoryPosts) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return ErrNotFound
	}
	delete(s.byID, id)
	for i, ordered := range s.order {
		if ordered == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}
