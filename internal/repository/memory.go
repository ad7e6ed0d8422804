package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Dan9191/blog-service/internal/models"
)

// MemoryRepository is a map-backed Repository used in tests and for local
// runs without postgres.
type MemoryRepository struct {
	mu    sync.RWMutex
	users map[string]models.User
	posts map[string]models.Post
	seq   []string // post ids in insertion order, for stable tie-breaks
}

// NewMemoryRepository initializes an empty in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		users: make(map[string]models.User),
		posts: make(map[string]models.Post),
	}
}

func (r *MemoryRepository) CreateUser(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return ErrDuplicateEmail
		}
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID] = *user
	return nil
}

func (r *MemoryRepository) FindUserByID(_ context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (r *MemoryRepository) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryRepository) FindAllUsers(_ context.Context) ([]*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	users := make([]*models.User, 0, len(r.users))
	for _, u := range r.users {
		user := u
		users = append(users, &user)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})
	return users, nil
}

func (r *MemoryRepository) CreatePost(_ context.Context, post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now
	stored := *post
	stored.Author = nil
	r.posts[post.ID] = stored
	r.seq = append(r.seq, post.ID)
	return nil
}

func (r *MemoryRepository) FindPostByID(_ context.Context, id string) (*models.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (r *MemoryRepository) FindPostWithAuthor(_ context.Context, id string) (*models.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return r.withAuthor(p)
}

func (r *MemoryRepository) FindAllPostsWithAuthor(_ context.Context) ([]*models.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.listPosts(func(models.Post) bool { return true })
}

func (r *MemoryRepository) FindPostsByAuthorWithAuthor(_ context.Context, authorID string) ([]*models.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.listPosts(func(p models.Post) bool { return p.AuthorID == authorID })
}

func (r *MemoryRepository) FindPostsCreatedSince(_ context.Context, since time.Time) ([]*models.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.listPosts(func(p models.Post) bool { return p.CreatedAt.After(since) })
}

func (r *MemoryRepository) UpdatePost(_ context.Context, post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.posts[post.ID]
	if !ok {
		return ErrNotFound
	}
	stored.Title = post.Title
	stored.Content = post.Content
	stored.UpdatedAt = time.Now()
	r.posts[post.ID] = stored
	post.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r *MemoryRepository) DeletePost(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[id]; !ok {
		return ErrNotFound
	}
	delete(r.posts, id)
	return nil
}

// listPosts returns matching posts newest-first with authors resolved.
// Callers hold at least the read lock.
func (r *MemoryRepository) listPosts(match func(models.Post) bool) ([]*models.Post, error) {
	var posts []*models.Post
	for i := len(r.seq) - 1; i >= 0; i-- {
		p, ok := r.posts[r.seq[i]]
		if !ok || !match(p) {
			continue
		}
		post, err := r.withAuthor(p)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts, nil
}

func (r *MemoryRepository) withAuthor(p models.Post) (*models.Post, error) {
	author, ok := r.users[p.AuthorID]
	if !ok {
		return nil, ErrNotFound
	}
	post := p
	post.Author = &author
	return &post, nil
}
