package usecase

import (
	"context"
	"strings"
	"sync"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"unisell/internal/adapter/repository"
	"unisell/internal/domain/entity"
	"unisell/internal/domain/service"
)

// plainHasher prefixes instead of hashing so tests stay fast.
type plainHasher struct{}

func (plainHasher) Hash(p string) (string, error) { return "hashed:" + p, nil }

func (plainHasher) Compare(p, digest string) (bool, error) {
	return strings.TrimPrefix(digest, "hashed:") == p, nil
}

type notification struct {
	userID string
	event  service.BidEvent
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []notification
}

func (n *recordingNotifier) NotifyUser(_ context.Context, userID string, event service.BidEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, notification{userID: userID, event: event})
}

// marketSuite wires every use case over a fresh in-memory store per test.
type marketSuite struct {
	suite.Suite
	ctx      context.Context
	store    *repository.MemoryStore
	notifier *recordingNotifier

	universities *UniversityUseCase
	users        *UserUseCase
	items        *ItemUseCase
	bids         *BidUseCase
	ratings      *RatingUseCase
}

func (s *marketSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = repository.NewMemoryStore()
	s.notifier = &recordingNotifier{}

	s.universities = NewUniversityUseCase(s.store.Universities())
	s.users = NewUserUseCase(s.store.Users(), s.store.Universities(), s.store.Items(), plainHasher{})
	s.items = NewItemUseCase(s.store.Items(), s.store.Users())
	s.bids = NewBidUseCase(s.store.Items(), s.store.Users(), s.notifier)
	s.ratings = NewRatingUseCase(s.store.Users())
}

func (s *marketSuite) university(name, domain string) *entity.University {
	u, err := s.universities.Create(s.ctx, name, domain)
	require.NoError(s.T(), err)
	return u
}

func (s *marketSuite) user(university *entity.University, username string) *entity.User {
	_, err := s.users.Create(s.ctx, CreateUserInput{
		UniversityID:         university.ID,
		Username:             username,
		Password:             "secret1",
		PasswordConfirmation: "secret1",
		Name:                 strings.ToUpper(username[:1]) + username[1:],
		Email:                username + "@" + university.EmailDomain,
		Bio:                  "student",
	})
	require.NoError(s.T(), err)
	u, err := s.users.GetByUsername(s.ctx, username)
	require.NoError(s.T(), err)
	return u
}

func (s *marketSuite) item(owner *entity.User, title, keywords string) *entity.Item {
	item, err := s.items.Create(s.ctx, CreateItemInput{
		Title:        title,
		Description:  title + " in good condition",
		Keywords:     keywords,
		Price:        "40",
		Username:     owner.Username,
		PickUpMethod: "campus center",
	})
	require.NoError(s.T(), err)
	return item
}

func (s *marketSuite) bid(item *entity.Item, bidder *entity.User, price int) string {
	view, err := s.bids.CreateBid(s.ctx, item.ID, price, bidder.ID)
	require.NoError(s.T(), err)
	return view.BidID
}
