package entity

const (
	// NoImageURL is shown for items without photos.
	NoImageURL = "/public/images/no_image_yet.jpg"
	// BlankProfileURL is shown for users without a profile image.
	BlankProfileURL = "/public/images/blank.jpg"
)

type Photo struct {
	ID          string `json:"id" firestore:"id"`
	Description string `json:"description" firestore:"description"`
	ImageURL    string `json:"imageUrl" firestore:"imageUrl"`
}

type Comment struct {
	ID           string `json:"id" firestore:"id"`
	AuthorUserID string `json:"commentAuthorUserId" firestore:"commentAuthorUserId"`
	Text         string `json:"text" firestore:"text"`
}

type Bid struct {
	ID           string `json:"id" firestore:"id"`
	ItemID       string `json:"itemId" firestore:"itemId"`
	BidderUserID string `json:"bidderUserId" firestore:"bidderUserId"`
	Price        int    `json:"price" firestore:"price"`
	Accepted     bool   `json:"accepted" firestore:"accepted"`
}

type Item struct {
	ID           string    `json:"id" firestore:"id"`
	Title        string    `json:"title" firestore:"title"`
	Description  string    `json:"description" firestore:"description"`
	Keywords     []string  `json:"keywords" firestore:"keywords"`
	Price        string    `json:"price" firestore:"price"`
	OwnerUserID  string    `json:"ownerUserId" firestore:"ownerUserId"`
	UniversityID string    `json:"universityId" firestore:"universityId"`
	Photos       []Photo   `json:"photos" firestore:"photos"`
	Sold         bool      `json:"sold" firestore:"sold"`
	PickUpMethod string    `json:"pickUpMethod" firestore:"pickUpMethod"`
	Comments     []Comment `json:"comments" firestore:"comments"`
	Bids         []Bid     `json:"bids" firestore:"bids"`
}

// DisplayImageURL is the first photo's URL or the placeholder.
func (i *Item) DisplayImageURL() string {
	if len(i.Photos) == 0 || i.Photos[0].ImageURL == "" {
		return NoImageURL
	}
	return i.Photos[0].ImageURL
}

func (i *Item) FindBid(bidID string) (*Bid, bool) {
	for idx := range i.Bids {
		if i.Bids[idx].ID == bidID {
			return &i.Bids[idx], true
		}
	}
	return nil, false
}

func (i *Item) FindPhoto(photoID string) (*Photo, bool) {
	for idx := range i.Photos {
		if i.Photos[idx].ID == photoID {
			return &i.Photos[idx], true
		}
	}
	return nil, false
}

func (i *Item) HasKeyword(keyword string) bool {
	for _, kw := range i.Keywords {
		if kw == keyword {
			return true
		}
	}
	return false
}
