package entity

// ItemView is an item without its bids. Bids only leave the service through
// SellerBidView and BuyerBidView.
type ItemView struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Keywords     []string  `json:"keywords"`
	Price        string    `json:"price"`
	OwnerUserID  string    `json:"ownerUserId"`
	UniversityID string    `json:"universityId"`
	Photos       []Photo   `json:"photos"`
	Sold         bool      `json:"sold"`
	PickUpMethod string    `json:"pickUpMethod"`
	Comments     []Comment `json:"comments"`
}

func NewItemView(i *Item) ItemView {
	return ItemView{
		ID:           i.ID,
		Title:        i.Title,
		Description:  i.Description,
		Keywords:     i.Keywords,
		Price:        i.Price,
		OwnerUserID:  i.OwnerUserID,
		UniversityID: i.UniversityID,
		Photos:       i.Photos,
		Sold:         i.Sold,
		PickUpMethod: i.PickUpMethod,
		Comments:     i.Comments,
	}
}

// ItemSummary is an unsold item as shown in listings.
type ItemSummary struct {
	ItemView
	ImageURL string `json:"imageUrl"`
}

// CommentView is a comment joined with its author.
type CommentView struct {
	ID       string `json:"id"`
	Photo    string `json:"photo"`
	Text     string `json:"text"`
	Username string `json:"username"`
}

// SellerBidView is what an item owner sees for each bid.
type SellerBidView struct {
	ItemID   string  `json:"id"`
	BidID    string  `json:"bidId"`
	Photo    string  `json:"photo"`
	Username string  `json:"username"`
	Price    int     `json:"price"`
	Accepted bool    `json:"accepted"`
	Rating   float64 `json:"rating"`
}

// BuyerBidView is a bidder's own bid.
type BuyerBidView struct {
	BidID    string `json:"bidId"`
	Photo    string `json:"photo"`
	Username string `json:"username"`
	Price    int    `json:"price"`
	Accepted bool   `json:"accepted"`
}

// BidDetail names the bidder of a single bid together with the item owner.
type BidDetail struct {
	BidID         string `json:"bidId"`
	OwnerUsername string `json:"username"`
	OwnerEmail    string `json:"email"`
	BidderUserID  string `json:"bidOwner"`
	Price         int    `json:"price"`
	Accepted      bool   `json:"accepted"`
}

// AcceptedBidRecord names both sides of a completed sale for the rating flow.
type AcceptedBidRecord struct {
	ItemID             string `json:"itemId"`
	ItemTitle          string `json:"itemTitle"`
	OwnerUsername      string `json:"username"`
	OwnerEmail         string `json:"email"`
	UserGettingRatedID string `json:"userGettingRatedId"`
	UserGivingRatingID string `json:"userGivingRatingId"`
	Price              int    `json:"price"`
}

// RatingEligibility is either ineligible (zero value) or carries the accepted bid.
type RatingEligibility struct {
	Eligible bool               `json:"eligible"`
	Record   *AcceptedBidRecord `json:"record,omitempty"`
}

func Ineligible() RatingEligibility {
	return RatingEligibility{}
}

func EligibleFor(record AcceptedBidRecord) RatingEligibility {
	return RatingEligibility{Eligible: true, Record: &record}
}

// PendingRatings lists unsold items on which a user holds an accepted bid.
type PendingRatings struct {
	Items []AcceptedBidRecord `json:"items"`
}

func (p PendingRatings) Any() bool {
	return len(p.Items) > 0
}
