package service

import "context"

const (
	BidEventPlaced   = "bid_placed"
	BidEventAccepted = "bid_accepted"
)

type BidEvent struct {
	Type   string `json:"type"`
	ItemID string `json:"itemId"`
	BidID  string `json:"bidId"`
	Price  int    `json:"price"`
}

// BidNotifier pushes bid events to a connected user. Delivery is best effort.
type BidNotifier interface {
	NotifyUser(ctx context.Context, userID string, event BidEvent)
}

// NopBidNotifier drops every event.
type NopBidNotifier struct{}

func (NopBidNotifier) NotifyUser(context.Context, string, BidEvent) {}
