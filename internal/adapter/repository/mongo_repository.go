package repository

import (
	"context"
	stderrors "errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"unisell/internal/domain/entity"
	"unisell/internal/domain/repository"
	"unisell/pkg/errors"
)

// checkUpdate turns a failed or zero-match update into a PERSISTENCE_ERROR.
func checkUpdate(what string, res *mongo.UpdateResult, err error) error {
	if err != nil {
		return errors.Persistence("could not "+what, err)
	}
	if res.MatchedCount == 0 && res.ModifiedCount == 0 {
		return errors.Persistence("could not "+what+": no matching document", nil)
	}
	return nil
}

func findErr(resource string, err error) error {
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return errors.NotFound(resource, err)
	}
	return errors.Persistence("failed to read "+resource, err)
}

type mongoUniversityRepository struct {
	collection *mongo.Collection
}

func NewMongoUniversityRepository(db *mongo.Database) repository.UniversityRepository {
	return &mongoUniversityRepository{collection: db.Collection(universitiesCollection)}
}

func (r *mongoUniversityRepository) Create(ctx context.Context, university *entity.University) error {
	if _, err := r.collection.InsertOne(ctx, toUniversityDocument(university)); err != nil {
		return errors.Persistence("could not add university", err)
	}
	return nil
}

func (r *mongoUniversityRepository) GetByID(ctx context.Context, id string) (*entity.University, error) {
	var doc universityDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid(id)}).Decode(&doc); err != nil {
		return nil, findErr("University", err)
	}
	return doc.entity(), nil
}

func (r *mongoUniversityRepository) List(ctx context.Context) ([]*entity.University, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, errors.Persistence("failed to list universities", err)
	}
	var docs []universityDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, errors.Persistence("failed to decode universities", err)
	}
	out := make([]*entity.University, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.entity())
	}
	return out, nil
}

func (r *mongoUniversityRepository) Update(ctx context.Context, university *entity.University) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": oid(university.ID)},
		bson.M{"$set": bson.M{"name": university.Name, "emailDomain": university.EmailDomain}},
	)
	return checkUpdate("update university", res, err)
}

type mongoUserRepository struct {
	collection *mongo.Collection
}

func NewMongoUserRepository(db *mongo.Database) repository.UserRepository {
	return &mongoUserRepository{collection: db.Collection(usersCollection)}
}

func (r *mongoUserRepository) Create(ctx context.Context, user *entity.User) error {
	if _, err := r.collection.InsertOne(ctx, toUserDocument(user)); err != nil {
		return errors.Persistence("could not add user", err)
	}
	return nil
}

func (r *mongoUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var doc userDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid(id)}).Decode(&doc); err != nil {
		return nil, findErr("User", err)
	}
	return doc.entity(), nil
}

func (r *mongoUserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	var doc userDocument
	if err := r.collection.FindOne(ctx, bson.M{"username": username}).Decode(&doc); err != nil {
		return nil, findErr("User", err)
	}
	return doc.entity(), nil
}

func (r *mongoUserRepository) UpdateProfile(ctx context.Context, id string, update repository.ProfileUpdate) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid(id)}, bson.M{"$set": bson.M{
		"username":        update.Username,
		"name":            update.Name,
		"email":           update.Email,
		"profileImageUrl": update.ProfileImageURL,
		"bio":             update.Bio,
	}})
	return checkUpdate("update user", res, err)
}

func (r *mongoUserRepository) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid(id)}, bson.M{"$set": bson.M{"hashedPassword": hash}})
	return checkUpdate("update password", res, err)
}

func (r *mongoUserRepository) SetSuperAdmin(ctx context.Context, id string, isSuperAdmin bool) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid(id)}, bson.M{"$set": bson.M{"super_admin": isSuperAdmin}})
	return checkUpdate("update super admin flag", res, err)
}

func (r *mongoUserRepository) AppendRating(ctx context.Context, userID string, rating entity.Rating) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid(userID)}, bson.M{"$push": bson.M{"ratings": toRatingDocument(rating)}})
	return checkUpdate("add rating", res, err)
}

type mongoItemRepository struct {
	collection *mongo.Collection
}

func NewMongoItemRepository(db *mongo.Database) repository.ItemRepository {
	return &mongoItemRepository{collection: db.Collection(itemsCollection)}
}

func (r *mongoItemRepository) Create(ctx context.Context, item *entity.Item) error {
	normalizeItem(item)
	if _, err := r.collection.InsertOne(ctx, toItemDocument(item)); err != nil {
		return errors.Persistence("could not add item", err)
	}
	return nil
}

func (r *mongoItemRepository) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	var doc itemDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid(id)}).Decode(&doc); err != nil {
		return nil, findErr("Item", err)
	}
	return doc.entity(), nil
}

func (r *mongoItemRepository) List(ctx context.Context, filter repository.ItemFilter) ([]*entity.Item, error) {
	query := bson.M{}
	if filter.UniversityID != "" {
		query["universityId"] = oid(filter.UniversityID)
	}
	if filter.Sold != nil {
		query["sold"] = *filter.Sold
	}
	if filter.Keyword != "" {
		// Equality against an array field matches any element exactly.
		query["keywords"] = filter.Keyword
	}
	if filter.AcceptedBidderID != "" {
		query["bids"] = bson.M{"$elemMatch": bson.M{"userId": oid(filter.AcceptedBidderID), "accepted": true}}
	}

	cursor, err := r.collection.Find(ctx, query)
	if err != nil {
		return nil, errors.Persistence("failed to list items", err)
	}
	var docs []itemDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, errors.Persistence("failed to decode items", err)
	}
	out := make([]*entity.Item, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.entity())
	}
	return out, nil
}

func (r *mongoItemRepository) Update(ctx context.Context, id string, fields repository.ItemFields) error {
	set := bson.M{
		"title":        fields.Title,
		"description":  fields.Description,
		"keywords":     fields.Keywords,
		"price":        fields.Price,
		"pickUpMethod": fields.PickUpMethod,
		"sold":         fields.Sold,
	}
	if fields.Photos != nil {
		set["photos"] = toPhotoDocuments(fields.Photos)
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid(id)}, bson.M{"$set": set})
	return checkUpdate("update item", res, err)
}

func (r *mongoItemRepository) push(ctx context.Context, itemID, field, what string, value interface{}) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid(itemID)}, bson.M{"$push": bson.M{field: value}})
	return checkUpdate(what, res, err)
}

func (r *mongoItemRepository) AppendComment(ctx context.Context, itemID string, comment entity.Comment) error {
	return r.push(ctx, itemID, "comments", "add comment", toCommentDocument(comment))
}

func (r *mongoItemRepository) AppendPhoto(ctx context.Context, itemID string, photo entity.Photo) error {
	return r.push(ctx, itemID, "photos", "add photo", toPhotoDocument(photo))
}

func (r *mongoItemRepository) AppendBid(ctx context.Context, itemID string, bid entity.Bid) error {
	return r.push(ctx, itemID, "bids", "add bid", toBidDocument(bid))
}

func (r *mongoItemRepository) UpdatePhoto(ctx context.Context, itemID string, photo entity.Photo) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": oid(itemID), "photos._id": oid(photo.ID)},
		bson.M{"$set": bson.M{
			"photos.$.description": photo.Description,
			"photos.$.imageUrl":    photo.ImageURL,
		}},
	)
	return checkUpdate("update photo", res, err)
}

func (r *mongoItemRepository) SetBidAccepted(ctx context.Context, itemID, bidID string, accepted bool) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": oid(itemID), "bids._id": oid(bidID)},
		bson.M{"$set": bson.M{"bids.$.accepted": accepted}},
	)
	return checkUpdate("update bid", res, err)
}
