package application

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/oksasatya/artflow-api/internal/domain/entity"
	repo "github.com/oksasatya/artflow-api/internal/domain/repository"
	"github.com/oksasatya/artflow-api/pkg/mailer"
)

// memStore backs users, artists and the follow relation so both sides of a
// follow can be checked together.
type memStore struct {
	mu      sync.Mutex
	seq     int
	users   map[string]entity.User
	artists map[string]entity.Artist
}

func newMemStore() *memStore {
	return &memStore{users: map[string]entity.User{}, artists: map[string]entity.Artist{}}
}

func (m *memStore) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s%d", prefix, m.seq)
}

func (m *memStore) addArtist(a entity.Artist) entity.Artist {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a.ID == "" {
		a.ID = m.nextID("a")
	}
	m.artists[a.ID] = a
	return a
}

func (m *memStore) addUser(u entity.User) entity.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u.ID == "" {
		u.ID = m.nextID("u")
	}
	m.users[u.ID] = u
	return u
}

// users

type memUsers struct{ *memStore }

func (r memUsers) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, x := range r.users {
		if x.Email == u.Email {
			return &repo.ErrDuplicate{Field: "email"}
		}
		if x.Mobile == u.Mobile {
			return &repo.ErrDuplicate{Field: "mobile"}
		}
	}
	u.ID = r.nextID("u")
	u.CreatedAt = time.Now()
	r.users[u.ID] = *u
	return nil
}

func (r memUsers) find(pred func(entity.User) bool) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if pred(u) {
			cp := u
			cp.Followings = slices.Clone(u.Followings)
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.ID == id })
}

func (r memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.Email == email })
}

func (r memUsers) GetByMobile(_ context.Context, mobile string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.Mobile == mobile })
}

func (r memUsers) Update(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.users[u.ID]
	if !ok {
		return repo.ErrNotFound
	}
	next := *u
	next.Followings = cur.Followings
	r.users[u.ID] = next
	return nil
}

func (r memUsers) SetOTP(_ context.Context, email, code string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, u := range r.users {
		if u.Email == email {
			u.OTP = entity.OTP{Code: code, GeneratedAt: &at}
			r.users[id] = u
			return nil
		}
	}
	return repo.ErrNotFound
}

func (r memUsers) DeleteByEmail(_ context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, u := range r.users {
		if u.Email == email {
			delete(r.users, id)
			return nil
		}
	}
	return repo.ErrNotFound
}

// artists and follows

type memArtists struct{ *memStore }

func (r memArtists) GetByID(_ context.Context, id string) (*entity.Artist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.artists[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	a.Followers = slices.Clone(a.Followers)
	return &a, nil
}

func (r memArtists) GetByIDs(_ context.Context, ids []string) ([]entity.Artist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Artist
	for _, id := range ids {
		if a, ok := r.artists[id]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r memArtists) listable() []entity.Artist {
	var out []entity.Artist
	for _, a := range r.artists {
		if a.Listable() {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Rating != out[j].Rating {
			return out[i].Rating > out[j].Rating
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (r memArtists) ListListable(_ context.Context, q repo.ArtistQuery) ([]entity.Artist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := r.listable()
	if q.Offset >= len(all) {
		return nil, nil
	}
	end := min(q.Offset+q.Limit, len(all))
	return all[q.Offset:end], nil
}

func (r memArtists) CountListable(context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.listable()), nil
}

func (r memArtists) SearchByName(_ context.Context, q string, limit int) ([]entity.Artist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Artist
	for _, a := range r.listable() {
		if strings.Contains(strings.ToLower(a.Name), strings.ToLower(q)) && len(out) < limit {
			out = append(out, a)
		}
	}
	return out, nil
}

type memFollows struct{ *memStore }

func addToSet(set []string, v string) []string {
	if slices.Contains(set, v) {
		return set
	}
	return append(set, v)
}

func removeFromSet(set []string, v string) []string {
	return slices.DeleteFunc(slices.Clone(set), func(x string) bool { return x == v })
}

func (r memFollows) Follow(_ context.Context, userID, artistID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, aok := r.artists[artistID]
	u, uok := r.users[userID]
	if !aok || !uok {
		return repo.ErrNotFound
	}
	a.Followers = addToSet(a.Followers, userID)
	u.Followings = addToSet(u.Followings, artistID)
	r.artists[artistID], r.users[userID] = a, u
	return nil
}

func (r memFollows) Unfollow(_ context.Context, userID, artistID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, aok := r.artists[artistID]
	u, uok := r.users[userID]
	if !aok || !uok {
		return repo.ErrNotFound
	}
	a.Followers = removeFromSet(a.Followers, userID)
	u.Followings = removeFromSet(u.Followings, artistID)
	r.artists[artistID], r.users[userID] = a, u
	return nil
}

func (r memFollows) ListFollowers(_ context.Context, artistID string) ([]entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.User
	for _, id := range r.artists[artistID].Followers {
		out = append(out, r.users[id])
	}
	return out, nil
}

func (r memFollows) ListFollowings(_ context.Context, userID string) ([]entity.Artist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Artist
	for _, id := range r.users[userID].Followings {
		out = append(out, r.artists[id])
	}
	return out, nil
}

// posts

type memPosts struct {
	mu    sync.Mutex
	seq   int
	posts map[string]*entity.Post
}

func newMemPosts(posts ...entity.Post) *memPosts {
	m := &memPosts{posts: map[string]*entity.Post{}}
	for i := range posts {
		p := posts[i]
		m.posts[p.ID] = &p
	}
	return m
}

func clonePost(p *entity.Post) entity.Post {
	cp := *p
	cp.Likes = slices.Clone(p.Likes)
	cp.Comments = slices.Clone(p.Comments)
	return cp
}

func (r *memPosts) GetByID(_ context.Context, id string) (*entity.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := clonePost(p)
	return &cp, nil
}

func (r *memPosts) GetByIDs(_ context.Context, ids []string) ([]entity.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Post
	for _, id := range ids {
		if p, ok := r.posts[id]; ok {
			out = append(out, clonePost(p))
		}
	}
	return out, nil
}

func (r *memPosts) List(_ context.Context, authors []string) ([]entity.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Post
	for _, p := range r.posts {
		if authors == nil || slices.Contains(authors, p.PostedBy) {
			out = append(out, clonePost(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memPosts) AddLike(_ context.Context, postID, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[postID]
	if !ok {
		return false, repo.ErrNotFound
	}
	if slices.Contains(p.Likes, userID) {
		return false, nil
	}
	p.Likes = append(p.Likes, userID)
	return true, nil
}

func (r *memPosts) RemoveLike(_ context.Context, postID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[postID]
	if !ok {
		return repo.ErrNotFound
	}
	p.Likes = removeFromSet(p.Likes, userID)
	return nil
}

func (r *memPosts) AddComment(_ context.Context, postID string, c *entity.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[postID]
	if !ok {
		return repo.ErrNotFound
	}
	r.seq++
	c.ID = fmt.Sprintf("c%d", r.seq)
	p.Comments = append(p.Comments, *c)
	return nil
}

func (r *memPosts) DeleteComment(_ context.Context, postID, commentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[postID]
	if !ok {
		return repo.ErrNotFound
	}
	before := len(p.Comments)
	p.Comments = slices.DeleteFunc(p.Comments, func(c entity.Comment) bool { return c.ID == commentID })
	if len(p.Comments) == before {
		return repo.ErrNotFound
	}
	return nil
}

// notifications, chats, banners

type memNotifications struct {
	mu        sync.Mutex
	seq       int
	items     []entity.Notification
	createErr error
	unseenMsg map[string]int
}

func (r *memNotifications) Create(_ context.Context, n *entity.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	r.seq++
	n.ID = fmt.Sprintf("n%d", r.seq)
	r.items = append(r.items, *n)
	return nil
}

func (r *memNotifications) MarkAllSeen(_ context.Context, receiverID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ReceiverID == receiverID {
			r.items[i].Seen = true
		}
	}
	return nil
}

func (r *memNotifications) ListByReceiver(_ context.Context, receiverID string) ([]entity.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Notification
	for _, n := range r.items {
		if n.ReceiverID == receiverID {
			out = append(out, n)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r *memNotifications) CountUnseen(_ context.Context, receiverID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, x := range r.items {
		if x.ReceiverID == receiverID && !x.Seen {
			n++
		}
	}
	return n, nil
}

func (r *memNotifications) DeleteSeen(_ context.Context, receiverID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var deleted int64
	r.items = slices.DeleteFunc(r.items, func(n entity.Notification) bool {
		if n.ReceiverID == receiverID && n.Seen {
			deleted++
			return true
		}
		return false
	})
	return deleted, nil
}

func (r *memNotifications) Delete(_ context.Context, id, receiverID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	before := len(r.items)
	r.items = slices.DeleteFunc(r.items, func(n entity.Notification) bool { return n.ID == id && n.ReceiverID == receiverID })
	if len(r.items) == before {
		return repo.ErrNotFound
	}
	return nil
}

func (r *memNotifications) CountUnseenByUser(_ context.Context, userID string) (int, error) {
	return r.unseenMsg[userID], nil
}

func (r *memNotifications) forReceiver(id string) []entity.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Notification
	for _, n := range r.items {
		if n.ReceiverID == id {
			out = append(out, n)
		}
	}
	return out
}

type memBanners struct{ items []entity.Banner }

func (r memBanners) ListActive(context.Context) ([]entity.Banner, error) { return r.items, nil }

// mail

type captureMailer struct {
	mu   sync.Mutex
	sent []mailer.Message
	err  error
}

func (m *captureMailer) Send(_ context.Context, msg mailer.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *captureMailer) last() mailer.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sent) == 0 {
		return mailer.Message{}
	}
	return m.sent[len(m.sent)-1]
}

var errBoom = errors.New("boom")
