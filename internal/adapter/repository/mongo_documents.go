package repository

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"unisell/internal/domain/entity"
	"unisell/pkg/ids"
)

// Mongo keeps identifiers as native ObjectIDs. These documents mirror the
// entities with bson tags and convert at the adapter boundary.

type universityDocument struct {
	ID          primitive.ObjectID `bson:"_id"`
	Name        string             `bson:"name"`
	EmailDomain string             `bson:"emailDomain"`
}

type ratingDocument struct {
	ID          primitive.ObjectID `bson:"_id"`
	RaterUserID primitive.ObjectID `bson:"ratersUserId"`
	Value       int                `bson:"rating"`
}

type userDocument struct {
	ID              primitive.ObjectID `bson:"_id"`
	UniversityID    primitive.ObjectID `bson:"universityId"`
	Username        string             `bson:"username"`
	PasswordHash    string             `bson:"hashedPassword"`
	Name            string             `bson:"name"`
	Email           string             `bson:"email"`
	ProfileImageURL string             `bson:"profileImageUrl"`
	Bio             string             `bson:"bio"`
	IsSuperAdmin    bool               `bson:"super_admin"`
	Ratings         []ratingDocument   `bson:"ratings"`
}

type photoDocument struct {
	ID          primitive.ObjectID `bson:"_id"`
	Description string             `bson:"description"`
	ImageURL    string             `bson:"imageUrl"`
}

type commentDocument struct {
	ID           primitive.ObjectID `bson:"_id"`
	AuthorUserID primitive.ObjectID `bson:"commentersUserId"`
	Text         string             `bson:"text"`
}

type bidDocument struct {
	ID           primitive.ObjectID `bson:"_id"`
	ItemID       primitive.ObjectID `bson:"itemId"`
	BidderUserID primitive.ObjectID `bson:"userId"`
	Price        int                `bson:"price"`
	Accepted     bool               `bson:"accepted"`
}

type itemDocument struct {
	ID           primitive.ObjectID `bson:"_id"`
	Title        string             `bson:"title"`
	Description  string             `bson:"description"`
	Keywords     []string           `bson:"keywords"`
	Price        string             `bson:"price"`
	OwnerUserID  primitive.ObjectID `bson:"userId"`
	UniversityID primitive.ObjectID `bson:"universityId"`
	Photos       []photoDocument    `bson:"photos"`
	Sold         bool               `bson:"sold"`
	PickUpMethod string             `bson:"pickUpMethod"`
	Comments     []commentDocument  `bson:"comments"`
	Bids         []bidDocument      `bson:"bids"`
}

// oid converts a stored string id. Ids reaching the adapter were validated by
// the use case, so a malformed one maps to the zero ObjectID and matches nothing.
func oid(id string) primitive.ObjectID {
	o, err := ids.ObjectID("id", id)
	if err != nil {
		return primitive.NilObjectID
	}
	return o
}

func hexOrEmpty(o primitive.ObjectID) string {
	if o.IsZero() {
		return ""
	}
	return o.Hex()
}

func toUniversityDocument(u *entity.University) universityDocument {
	return universityDocument{ID: oid(u.ID), Name: u.Name, EmailDomain: u.EmailDomain}
}

func (d universityDocument) entity() *entity.University {
	return &entity.University{ID: d.ID.Hex(), Name: d.Name, EmailDomain: d.EmailDomain}
}

func toRatingDocument(r entity.Rating) ratingDocument {
	return ratingDocument{ID: oid(r.ID), RaterUserID: oid(r.RaterUserID), Value: r.Value}
}

func toUserDocument(u *entity.User) userDocument {
	ratings := make([]ratingDocument, 0, len(u.Ratings))
	for _, r := range u.Ratings {
		ratings = append(ratings, toRatingDocument(r))
	}
	return userDocument{
		ID:              oid(u.ID),
		UniversityID:    oid(u.UniversityID),
		Username:        u.Username,
		PasswordHash:    u.PasswordHash,
		Name:            u.Name,
		Email:           u.Email,
		ProfileImageURL: u.ProfileImageURL,
		Bio:             u.Bio,
		IsSuperAdmin:    u.IsSuperAdmin,
		Ratings:         ratings,
	}
}

func (d userDocument) entity() *entity.User {
	ratings := make([]entity.Rating, 0, len(d.Ratings))
	for _, r := range d.Ratings {
		ratings = append(ratings, entity.Rating{ID: r.ID.Hex(), RaterUserID: hexOrEmpty(r.RaterUserID), Value: r.Value})
	}
	return &entity.User{
		ID:              d.ID.Hex(),
		UniversityID:    hexOrEmpty(d.UniversityID),
		Username:        d.Username,
		PasswordHash:    d.PasswordHash,
		Name:            d.Name,
		Email:           d.Email,
		ProfileImageURL: d.ProfileImageURL,
		Bio:             d.Bio,
		IsSuperAdmin:    d.IsSuperAdmin,
		Ratings:         ratings,
	}
}

func toPhotoDocument(p entity.Photo) photoDocument {
	return photoDocument{ID: oid(p.ID), Description: p.Description, ImageURL: p.ImageURL}
}

func toPhotoDocuments(photos []entity.Photo) []photoDocument {
	out := make([]photoDocument, 0, len(photos))
	for _, p := range photos {
		out = append(out, toPhotoDocument(p))
	}
	return out
}

func toCommentDocument(c entity.Comment) commentDocument {
	return commentDocument{ID: oid(c.ID), AuthorUserID: oid(c.AuthorUserID), Text: c.Text}
}

func toBidDocument(b entity.Bid) bidDocument {
	return bidDocument{
		ID:           oid(b.ID),
		ItemID:       oid(b.ItemID),
		BidderUserID: oid(b.BidderUserID),
		Price:        b.Price,
		Accepted:     b.Accepted,
	}
}

func toItemDocument(i *entity.Item) itemDocument {
	comments := make([]commentDocument, 0, len(i.Comments))
	for _, c := range i.Comments {
		comments = append(comments, toCommentDocument(c))
	}
	bids := make([]bidDocument, 0, len(i.Bids))
	for _, b := range i.Bids {
		bids = append(bids, toBidDocument(b))
	}
	keywords := i.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	return itemDocument{
		ID:           oid(i.ID),
		Title:        i.Title,
		Description:  i.Description,
		Keywords:     keywords,
		Price:        i.Price,
		OwnerUserID:  oid(i.OwnerUserID),
		UniversityID: oid(i.UniversityID),
		Photos:       toPhotoDocuments(i.Photos),
		Sold:         i.Sold,
		PickUpMethod: i.PickUpMethod,
		Comments:     comments,
		Bids:         bids,
	}
}

func (d itemDocument) entity() *entity.Item {
	item := &entity.Item{
		ID:           d.ID.Hex(),
		Title:        d.Title,
		Description:  d.Description,
		Keywords:     d.Keywords,
		Price:        d.Price,
		OwnerUserID:  hexOrEmpty(d.OwnerUserID),
		UniversityID: hexOrEmpty(d.UniversityID),
		Sold:         d.Sold,
		PickUpMethod: d.PickUpMethod,
	}
	for _, p := range d.Photos {
		item.Photos = append(item.Photos, entity.Photo{ID: p.ID.Hex(), Description: p.Description, ImageURL: p.ImageURL})
	}
	for _, c := range d.Comments {
		item.Comments = append(item.Comments, entity.Comment{ID: c.ID.Hex(), AuthorUserID: hexOrEmpty(c.AuthorUserID), Text: c.Text})
	}
	for _, b := range d.Bids {
		item.Bids = append(item.Bids, entity.Bid{
			ID:           b.ID.Hex(),
			ItemID:       hexOrEmpty(b.ItemID),
			BidderUserID: hexOrEmpty(b.BidderUserID),
			Price:        b.Price,
			Accepted:     b.Accepted,
		})
	}
	normalizeItem(item)
	return item
}
