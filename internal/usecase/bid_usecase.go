package usecase

import (
	"context"

	"golang.org/x/sync/errgroup"

	"unisell/internal/domain/entity"
	"unisell/internal/domain/repository"
	"unisell/internal/domain/service"
	"unisell/pkg/errors"
	"unisell/pkg/ids"
	"unisell/pkg/validation"
)

// sellerLookupLimit bounds concurrent bidder lookups in ListForSeller.
const sellerLookupLimit = 8

// BidUseCase runs the bid lifecycle on items. A bid is proposed when created,
// becomes accepted through AcceptBid and returns to proposed through ResetBid.
type BidUseCase struct {
	itemRepo repository.ItemRepository
	userRepo repository.UserRepository
	notifier service.BidNotifier
	locks    *keyedMutex
}

func NewBidUseCase(itemRepo repository.ItemRepository, userRepo repository.UserRepository, notifier service.BidNotifier) *BidUseCase {
	if notifier == nil {
		notifier = service.NopBidNotifier{}
	}
	return &BidUseCase{
		itemRepo: itemRepo,
		userRepo: userRepo,
		notifier: notifier,
		locks:    newKeyedMutex(),
	}
}

// CreateBid appends a proposed bid. Repeat bids and bids on one's own item are allowed.
func (uc *BidUseCase) CreateBid(ctx context.Context, itemID string, price int, userID string) (entity.BuyerBidView, error) {
	itemID, err := ids.Parse("itemId", itemID)
	if err != nil {
		return entity.BuyerBidView{}, err
	}
	userID, err = ids.Parse("userId", userID)
	if err != nil {
		return entity.BuyerBidView{}, err
	}
	if err := validation.BidPrice(price); err != nil {
		return entity.BuyerBidView{}, err
	}

	bidder, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return entity.BuyerBidView{}, err
	}
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return entity.BuyerBidView{}, err
	}

	bid := entity.Bid{
		ID:           ids.New(),
		ItemID:       itemID,
		BidderUserID: userID,
		Price:        price,
		Accepted:     false,
	}
	if err := uc.itemRepo.AppendBid(ctx, itemID, bid); err != nil {
		return entity.BuyerBidView{}, err
	}

	uc.notifier.NotifyUser(ctx, item.OwnerUserID, service.BidEvent{
		Type:   service.BidEventPlaced,
		ItemID: itemID,
		BidID:  bid.ID,
		Price:  price,
	})
	return buyerBidView(bid, bidder), nil
}

// ListForSeller returns every bid on the item enriched with its bidder, in bid order.
func (uc *BidUseCase) ListForSeller(ctx context.Context, itemID string) ([]entity.SellerBidView, error) {
	item, err := uc.item(ctx, itemID)
	if err != nil {
		return nil, err
	}

	views := make([]entity.SellerBidView, len(item.Bids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(sellerLookupLimit)
	for i, bid := range item.Bids {
		i, bid := i, bid
		g.Go(func() error {
			bidder, err := uc.userRepo.GetByID(gctx, bid.BidderUserID)
			if err != nil {
				return err
			}
			views[i] = entity.SellerBidView{
				ItemID:   item.ID,
				BidID:    bid.ID,
				Photo:    bidder.ImageOr(entity.BlankProfileURL),
				Username: bidder.Username,
				Price:    bid.Price,
				Accepted: bid.Accepted,
				Rating:   bidder.AverageRating(),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return views, nil
}

// ListForBuyer returns only the bids userID placed on the item.
func (uc *BidUseCase) ListForBuyer(ctx context.Context, itemID, userID string) ([]entity.BuyerBidView, error) {
	userID, err := ids.Parse("userId", userID)
	if err != nil {
		return nil, err
	}
	item, err := uc.item(ctx, itemID)
	if err != nil {
		return nil, err
	}

	views := []entity.BuyerBidView{}
	var bidder *entity.User
	for _, bid := range item.Bids {
		if bid.BidderUserID != userID {
			continue
		}
		if bidder == nil {
			if bidder, err = uc.userRepo.GetByID(ctx, userID); err != nil {
				return nil, err
			}
		}
		views = append(views, buyerBidView(bid, bidder))
	}
	return views, nil
}

// HighestBid is the largest bid price, or 0 when there are no bids.
func (uc *BidUseCase) HighestBid(ctx context.Context, itemID string) (int, error) {
	item, err := uc.item(ctx, itemID)
	if err != nil {
		return 0, err
	}
	highest := 0
	for _, bid := range item.Bids {
		if bid.Price > highest {
			highest = bid.Price
		}
	}
	return highest, nil
}

func (uc *BidUseCase) GetBid(ctx context.Context, itemID, bidID string) (entity.BidDetail, error) {
	bidID, err := ids.Parse("bidId", bidID)
	if err != nil {
		return entity.BidDetail{}, err
	}
	item, err := uc.item(ctx, itemID)
	if err != nil {
		return entity.BidDetail{}, err
	}
	bid, err := findBid(item, bidID)
	if err != nil {
		return entity.BidDetail{}, err
	}
	owner, err := uc.userRepo.GetByID(ctx, item.OwnerUserID)
	if err != nil {
		return entity.BidDetail{}, err
	}
	return entity.BidDetail{
		BidID:         bid.ID,
		OwnerUsername: owner.Username,
		OwnerEmail:    owner.Email,
		BidderUserID:  bid.BidderUserID,
		Price:         bid.Price,
		Accepted:      bid.Accepted,
	}, nil
}

// AcceptBid resets every bid on the item and then accepts bidID. Calls for the
// same item are serialized so the reset pass and the set never interleave
// with another acceptance in this process.
func (uc *BidUseCase) AcceptBid(ctx context.Context, itemID, bidID string) error {
	itemID, err := ids.Parse("itemId", itemID)
	if err != nil {
		return err
	}
	bidID, err = ids.Parse("bidId", bidID)
	if err != nil {
		return err
	}

	unlock := uc.locks.Lock(itemID)
	defer unlock()

	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return err
	}
	target, err := findBid(item, bidID)
	if err != nil {
		return err
	}
	for _, bid := range item.Bids {
		if err := uc.ResetBid(ctx, itemID, bid.ID); err != nil {
			return err
		}
	}
	if err := uc.itemRepo.SetBidAccepted(ctx, itemID, bidID, true); err != nil {
		return err
	}

	uc.notifier.NotifyUser(ctx, target.BidderUserID, service.BidEvent{
		Type:   service.BidEventAccepted,
		ItemID: itemID,
		BidID:  bidID,
		Price:  target.Price,
	})
	return nil
}

// ResetBid marks the bid proposed again. Resetting a proposed bid is a no-op.
func (uc *BidUseCase) ResetBid(ctx context.Context, itemID, bidID string) error {
	bidID, err := ids.Parse("bidId", bidID)
	if err != nil {
		return err
	}
	item, err := uc.item(ctx, itemID)
	if err != nil {
		return err
	}
	if _, err := findBid(item, bidID); err != nil {
		return err
	}
	return uc.itemRepo.SetBidAccepted(ctx, item.ID, bidID, false)
}

// HasAcceptedBidFor reports whether userID holds the accepted bid on the item.
func (uc *BidUseCase) HasAcceptedBidFor(ctx context.Context, itemID, userID string) (entity.RatingEligibility, error) {
	userID, err := ids.Parse("userId", userID)
	if err != nil {
		return entity.Ineligible(), err
	}
	item, err := uc.item(ctx, itemID)
	if err != nil {
		return entity.Ineligible(), err
	}
	for _, bid := range item.Bids {
		if !bid.Accepted || bid.BidderUserID != userID {
			continue
		}
		owner, err := uc.userRepo.GetByID(ctx, item.OwnerUserID)
		if err != nil {
			return entity.Ineligible(), err
		}
		return entity.EligibleFor(acceptedBidRecord(item, owner, bid)), nil
	}
	return entity.Ineligible(), nil
}

func (uc *BidUseCase) item(ctx context.Context, itemID string) (*entity.Item, error) {
	itemID, err := ids.Parse("itemId", itemID)
	if err != nil {
		return nil, err
	}
	return uc.itemRepo.GetByID(ctx, itemID)
}

func findBid(item *entity.Item, bidID string) (*entity.Bid, error) {
	if len(item.Bids) == 0 {
		return nil, errors.NotFoundMessage("No bids for that item!")
	}
	bid, ok := item.FindBid(bidID)
	if !ok {
		return nil, errors.Mismatch("Bid is not under that item")
	}
	return bid, nil
}

func buyerBidView(bid entity.Bid, bidder *entity.User) entity.BuyerBidView {
	return entity.BuyerBidView{
		BidID:    bid.ID,
		Photo:    bidder.ImageOr(entity.BlankProfileURL),
		Username: bidder.Username,
		Price:    bid.Price,
		Accepted: bid.Accepted,
	}
}
