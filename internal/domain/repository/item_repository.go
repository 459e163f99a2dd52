package repository

import (
	"context"

	"unisell/internal/domain/entity"
)

// ItemFilter narrows ItemRepository.List. Zero fields do not filter.
type ItemFilter struct {
	UniversityID string
	Keyword      string
	Sold         *bool
	// AcceptedBidderID keeps items holding an accepted bid by this user.
	AcceptedBidderID string
}

// ItemFields are the fields replaced by ItemRepository.Update.
type ItemFields struct {
	Title        string
	Description  string
	Keywords     []string
	Price        string
	PickUpMethod string
	Sold         bool
	// Photos replaces the photo list when non-nil.
	Photos []entity.Photo
}

// ItemRepository stores items with their embedded photos, comments and bids.
// Updates that match no document fail with a PERSISTENCE_ERROR.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	List(ctx context.Context, filter ItemFilter) ([]*entity.Item, error)
	Update(ctx context.Context, id string, fields ItemFields) error
	AppendComment(ctx context.Context, itemID string, comment entity.Comment) error
	AppendPhoto(ctx context.Context, itemID string, photo entity.Photo) error
	UpdatePhoto(ctx context.Context, itemID string, photo entity.Photo) error
	AppendBid(ctx context.Context, itemID string, bid entity.Bid) error
	SetBidAccepted(ctx context.Context, itemID, bidID string, accepted bool) error
}
