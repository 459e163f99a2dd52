package repository

import "unisell/internal/domain/entity"

// normalizeItem replaces nil embedded lists so they are stored and returned as empty arrays.
func normalizeItem(item *entity.Item) {
	if item.Keywords == nil {
		item.Keywords = []string{}
	}
	if item.Photos == nil {
		item.Photos = []entity.Photo{}
	}
	if item.Comments == nil {
		item.Comments = []entity.Comment{}
	}
	if item.Bids == nil {
		item.Bids = []entity.Bid{}
	}
}

func hasAcceptedBidBy(item *entity.Item, userID string) bool {
	for _, bid := range item.Bids {
		if bid.Accepted && bid.BidderUserID == userID {
			return true
		}
	}
	return false
}
