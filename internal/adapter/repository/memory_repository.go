package repository

import (
	"context"
	"sort"
	"sync"

	"unisell/internal/domain/entity"
	"unisell/internal/domain/repository"
	"unisell/pkg/errors"
)

// MemoryStore keeps every collection in process memory. Records are copied on the
// way in and out so callers never share state with the store.
type MemoryStore struct {
	mu           sync.RWMutex
	universities map[string]entity.University
	users        map[string]entity.User
	items        map[string]entity.Item
	itemOrder    []string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		universities: make(map[string]entity.University),
		users:        make(map[string]entity.User),
		items:        make(map[string]entity.Item),
	}
}

func (s *MemoryStore) Universities() repository.UniversityRepository {
	return &memoryUniversityRepository{s}
}

func (s *MemoryStore) Users() repository.UserRepository {
	return &memoryUserRepository{s}
}

func (s *MemoryStore) Items() repository.ItemRepository {
	return &memoryItemRepository{s}
}

func errNoMatch(what string) error {
	return errors.Persistence("could not "+what+": no matching document", nil)
}

type memoryUniversityRepository struct {
	s *MemoryStore
}

func (r *memoryUniversityRepository) Create(_ context.Context, university *entity.University) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, exists := r.s.universities[university.ID]; exists {
		return errors.Persistence("could not add university: id exists", nil)
	}
	r.s.universities[university.ID] = *university
	return nil
}

func (r *memoryUniversityRepository) GetByID(_ context.Context, id string) (*entity.University, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.universities[id]
	if !ok {
		return nil, errors.NotFound("University", nil)
	}
	return &u, nil
}

func (r *memoryUniversityRepository) List(_ context.Context) ([]*entity.University, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.University, 0, len(r.s.universities))
	for _, u := range r.s.universities {
		u := u
		out = append(out, &u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memoryUniversityRepository) Update(_ context.Context, university *entity.University) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.universities[university.ID]; !ok {
		return errNoMatch("update university")
	}
	r.s.universities[university.ID] = *university
	return nil
}

type memoryUserRepository struct {
	s *MemoryStore
}

func copyUser(u entity.User) *entity.User {
	u.Ratings = append([]entity.Rating{}, u.Ratings...)
	return &u
}

func (r *memoryUserRepository) Create(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, exists := r.s.users[user.ID]; exists {
		return errors.Persistence("could not add user: id exists", nil)
	}
	r.s.users[user.ID] = *copyUser(*user)
	return nil
}

func (r *memoryUserRepository) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	return copyUser(u), nil
}

func (r *memoryUserRepository) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Username == username {
			return copyUser(u), nil
		}
	}
	return nil, errors.NotFound("User", nil)
}

func (r *memoryUserRepository) modify(id, what string, fn func(*entity.User)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return errNoMatch(what)
	}
	fn(&u)
	r.s.users[id] = u
	return nil
}

func (r *memoryUserRepository) UpdateProfile(_ context.Context, id string, update repository.ProfileUpdate) error {
	return r.modify(id, "update user", func(u *entity.User) {
		u.Username = update.Username
		u.Name = update.Name
		u.Email = update.Email
		u.ProfileImageURL = update.ProfileImageURL
		u.Bio = update.Bio
	})
}

func (r *memoryUserRepository) UpdatePasswordHash(_ context.Context, id, hash string) error {
	return r.modify(id, "update password", func(u *entity.User) { u.PasswordHash = hash })
}

func (r *memoryUserRepository) SetSuperAdmin(_ context.Context, id string, isSuperAdmin bool) error {
	return r.modify(id, "update super admin flag", func(u *entity.User) { u.IsSuperAdmin = isSuperAdmin })
}

func (r *memoryUserRepository) AppendRating(_ context.Context, userID string, rating entity.Rating) error {
	return r.modify(userID, "add rating", func(u *entity.User) {
		u.Ratings = append(append([]entity.Rating{}, u.Ratings...), rating)
	})
}

type memoryItemRepository struct {
	s *MemoryStore
}

func copyItem(i entity.Item) *entity.Item {
	i.Keywords = append([]string{}, i.Keywords...)
	i.Photos = append([]entity.Photo{}, i.Photos...)
	i.Comments = append([]entity.Comment{}, i.Comments...)
	i.Bids = append([]entity.Bid{}, i.Bids...)
	return &i
}

func (r *memoryItemRepository) Create(_ context.Context, item *entity.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, exists := r.s.items[item.ID]; exists {
		return errors.Persistence("could not add item: id exists", nil)
	}
	normalizeItem(item)
	r.s.items[item.ID] = *copyItem(*item)
	r.s.itemOrder = append(r.s.itemOrder, item.ID)
	return nil
}

func (r *memoryItemRepository) GetByID(_ context.Context, id string) (*entity.Item, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	i, ok := r.s.items[id]
	if !ok {
		return nil, errors.NotFound("Item", nil)
	}
	return copyItem(i), nil
}

func (r *memoryItemRepository) List(_ context.Context, filter repository.ItemFilter) ([]*entity.Item, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Item
	for _, id := range r.s.itemOrder {
		item := r.s.items[id]
		if filter.UniversityID != "" && item.UniversityID != filter.UniversityID {
			continue
		}
		if filter.Sold != nil && item.Sold != *filter.Sold {
			continue
		}
		if filter.Keyword != "" && !item.HasKeyword(filter.Keyword) {
			continue
		}
		if filter.AcceptedBidderID != "" && !hasAcceptedBidBy(&item, filter.AcceptedBidderID) {
			continue
		}
		out = append(out, copyItem(item))
	}
	return out, nil
}

// modify applies fn to a copy of the stored item and saves it when fn reports a match.
func (r *memoryItemRepository) modify(id, what string, fn func(*entity.Item) bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.items[id]
	if !ok {
		return errNoMatch(what)
	}
	item := copyItem(stored)
	if !fn(item) {
		return errNoMatch(what)
	}
	r.s.items[id] = *item
	return nil
}

func (r *memoryItemRepository) Update(_ context.Context, id string, fields repository.ItemFields) error {
	return r.modify(id, "update item", func(i *entity.Item) bool {
		i.Title = fields.Title
		i.Description = fields.Description
		i.Keywords = append([]string{}, fields.Keywords...)
		i.Price = fields.Price
		i.PickUpMethod = fields.PickUpMethod
		i.Sold = fields.Sold
		if fields.Photos != nil {
			i.Photos = append([]entity.Photo{}, fields.Photos...)
		}
		return true
	})
}

func (r *memoryItemRepository) AppendComment(_ context.Context, itemID string, comment entity.Comment) error {
	return r.modify(itemID, "add comment", func(i *entity.Item) bool {
		i.Comments = append(i.Comments, comment)
		return true
	})
}

func (r *memoryItemRepository) AppendPhoto(_ context.Context, itemID string, photo entity.Photo) error {
	return r.modify(itemID, "add photo", func(i *entity.Item) bool {
		i.Photos = append(i.Photos, photo)
		return true
	})
}

func (r *memoryItemRepository) UpdatePhoto(_ context.Context, itemID string, photo entity.Photo) error {
	return r.modify(itemID, "update photo", func(i *entity.Item) bool {
		p, ok := i.FindPhoto(photo.ID)
		if ok {
			*p = photo
		}
		return ok
	})
}

func (r *memoryItemRepository) AppendBid(_ context.Context, itemID string, bid entity.Bid) error {
	return r.modify(itemID, "add bid", func(i *entity.Item) bool {
		i.Bids = append(i.Bids, bid)
		return true
	})
}

func (r *memoryItemRepository) SetBidAccepted(_ context.Context, itemID, bidID string, accepted bool) error {
	return r.modify(itemID, "update bid", func(i *entity.Item) bool {
		b, ok := i.FindBid(bidID)
		if ok {
			b.Accepted = accepted
		}
		return ok
	})
}
