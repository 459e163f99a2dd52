package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"unisell/internal/domain/entity"
	"unisell/internal/domain/repository"
	"unisell/pkg/errors"
)

const itemsCollection = "items"

type firestoreItemRepository struct {
	client *firestore.Client
}

func NewFirestoreItemRepository(client *firestore.Client) repository.ItemRepository {
	return &firestoreItemRepository{
		client: client,
	}
}

func (r *firestoreItemRepository) Create(ctx context.Context, item *entity.Item) error {
	normalizeItem(item)
	_, err := r.client.Collection(itemsCollection).Doc(item.ID).Create(ctx, item)
	if err != nil {
		return errors.Persistence("could not add item", err)
	}
	return nil
}

func (r *firestoreItemRepository) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	doc, err := r.client.Collection(itemsCollection).Doc(id).Get(ctx)
	if err != nil {
		return nil, getErr("Item", err)
	}
	return decodeItem(doc)
}

func (r *firestoreItemRepository) List(ctx context.Context, filter repository.ItemFilter) ([]*entity.Item, error) {
	query := r.client.Collection(itemsCollection).Query
	if filter.UniversityID != "" {
		query = query.Where("universityId", "==", filter.UniversityID)
	}
	if filter.Sold != nil {
		query = query.Where("sold", "==", *filter.Sold)
	}
	if filter.Keyword != "" {
		query = query.Where("keywords", "array-contains", filter.Keyword)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var items []*entity.Item
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Persistence("failed to list items", err)
		}

		item, err := decodeItem(doc)
		if err != nil {
			return nil, err
		}
		// Bids are embedded maps, which Firestore cannot filter on.
		if filter.AcceptedBidderID != "" && !hasAcceptedBidBy(item, filter.AcceptedBidderID) {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *firestoreItemRepository) Update(ctx context.Context, id string, fields repository.ItemFields) error {
	updates := []firestore.Update{
		{Path: "title", Value: fields.Title},
		{Path: "description", Value: fields.Description},
		{Path: "keywords", Value: fields.Keywords},
		{Path: "price", Value: fields.Price},
		{Path: "pickUpMethod", Value: fields.PickUpMethod},
		{Path: "sold", Value: fields.Sold},
	}
	if fields.Photos != nil {
		updates = append(updates, firestore.Update{Path: "photos", Value: fields.Photos})
	}
	_, err := r.client.Collection(itemsCollection).Doc(id).Update(ctx, updates)
	return updateErr("update item", err)
}

func (r *firestoreItemRepository) AppendComment(ctx context.Context, itemID string, comment entity.Comment) error {
	_, err := r.client.Collection(itemsCollection).Doc(itemID).Update(ctx, []firestore.Update{
		{Path: "comments", Value: firestore.ArrayUnion(comment)},
	})
	return updateErr("add comment", err)
}

func (r *firestoreItemRepository) AppendPhoto(ctx context.Context, itemID string, photo entity.Photo) error {
	_, err := r.client.Collection(itemsCollection).Doc(itemID).Update(ctx, []firestore.Update{
		{Path: "photos", Value: firestore.ArrayUnion(photo)},
	})
	return updateErr("add photo", err)
}

func (r *firestoreItemRepository) AppendBid(ctx context.Context, itemID string, bid entity.Bid) error {
	_, err := r.client.Collection(itemsCollection).Doc(itemID).Update(ctx, []firestore.Update{
		{Path: "bids", Value: firestore.ArrayUnion(bid)},
	})
	return updateErr("add bid", err)
}

// UpdatePhoto rewrites a single photo inside the embedded list.
func (r *firestoreItemRepository) UpdatePhoto(ctx context.Context, itemID string, photo entity.Photo) error {
	return r.mutate(ctx, itemID, "update photo", func(item *entity.Item) ([]firestore.Update, bool) {
		existing, ok := item.FindPhoto(photo.ID)
		if !ok {
			return nil, false
		}
		*existing = photo
		return []firestore.Update{{Path: "photos", Value: item.Photos}}, true
	})
}

func (r *firestoreItemRepository) SetBidAccepted(ctx context.Context, itemID, bidID string, accepted bool) error {
	return r.mutate(ctx, itemID, "update bid", func(item *entity.Item) ([]firestore.Update, bool) {
		bid, ok := item.FindBid(bidID)
		if !ok {
			return nil, false
		}
		bid.Accepted = accepted
		return []firestore.Update{{Path: "bids", Value: item.Bids}}, true
	})
}

// mutate runs a read-modify-write of one item in a transaction. apply reports
// whether the targeted sub-record was matched.
func (r *firestoreItemRepository) mutate(ctx context.Context, itemID, what string, apply func(*entity.Item) ([]firestore.Update, bool)) error {
	ref := r.client.Collection(itemsCollection).Doc(itemID)
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			return err
		}
		item, err := decodeItem(doc)
		if err != nil {
			return err
		}
		updates, matched := apply(item)
		if !matched {
			return errors.Persistence("could not "+what+": no matching document", nil)
		}
		return tx.Update(ref, updates)
	})
	if err == nil {
		return nil
	}
	if _, ok := errors.As(err); ok {
		return err
	}
	if status.Code(err) == codes.NotFound {
		return errors.Persistence("could not "+what+": no matching document", err)
	}
	return errors.Persistence("could not "+what, err)
}

func decodeItem(doc *firestore.DocumentSnapshot) (*entity.Item, error) {
	var item entity.Item
	if err := doc.DataTo(&item); err != nil {
		return nil, errors.Persistence("failed to decode item", err)
	}
	normalizeItem(&item)
	return &item, nil
}
