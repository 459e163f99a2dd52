package usecase

import (
	"context"

	"unisell/internal/domain/entity"
	"unisell/internal/domain/repository"
	"unisell/pkg/errors"
	"unisell/pkg/ids"
	"unisell/pkg/validation"
)

type ItemUseCase struct {
	itemRepo repository.ItemRepository
	userRepo repository.UserRepository
}

func NewItemUseCase(itemRepo repository.ItemRepository, userRepo repository.UserRepository) *ItemUseCase {
	return &ItemUseCase{
		itemRepo: itemRepo,
		userRepo: userRepo,
	}
}

type PhotoInput struct {
	Description string
	ImageURL    string
}

type CreateItemInput struct {
	Title        string
	Description  string
	Keywords     string
	Price        string
	Username     string
	Photos       []PhotoInput
	PickUpMethod string
}

type UpdateItemInput struct {
	Title        string
	Description  string
	Keywords     string
	Price        string
	PickUpMethod string
	Sold         string
	// Photos replaces the item's photos when non-nil.
	Photos []PhotoInput
}

func (uc *ItemUseCase) ListByUniversity(ctx context.Context, universityID string) ([]entity.ItemSummary, error) {
	return uc.list(ctx, universityID, "")
}

// ListByUniversityAndKeyword matches keyword exactly against each stored keyword.
func (uc *ItemUseCase) ListByUniversityAndKeyword(ctx context.Context, universityID, keyword string) ([]entity.ItemSummary, error) {
	keyword, err := validation.String("keyword", keyword)
	if err != nil {
		return nil, err
	}
	return uc.list(ctx, universityID, keyword)
}

func (uc *ItemUseCase) list(ctx context.Context, universityID, keyword string) ([]entity.ItemSummary, error) {
	universityID, err := ids.Parse("universityId", universityID)
	if err != nil {
		return nil, err
	}
	unsold := false
	items, err := uc.itemRepo.List(ctx, repository.ItemFilter{
		UniversityID: universityID,
		Keyword:      keyword,
		Sold:         &unsold,
	})
	if err != nil {
		return nil, err
	}

	summaries := make([]entity.ItemSummary, 0, len(items))
	for _, item := range items {
		// Stores may return more than asked for; never leak sold or foreign items.
		if item.Sold || item.UniversityID != universityID {
			continue
		}
		summaries = append(summaries, entity.ItemSummary{ItemView: entity.NewItemView(item), ImageURL: item.DisplayImageURL()})
	}
	return summaries, nil
}

func (uc *ItemUseCase) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	id, err := ids.Parse("itemId", id)
	if err != nil {
		return nil, err
	}
	return uc.itemRepo.GetByID(ctx, id)
}

// GetVisibleItem loads an item for viewer, refusing items of another university.
func (uc *ItemUseCase) GetVisibleItem(ctx context.Context, id string, viewer *entity.User) (*entity.Item, error) {
	item, err := uc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if viewer == nil || item.UniversityID != viewer.UniversityID {
		return nil, errors.Forbidden("Item does not belong to your university", nil)
	}
	return item, nil
}

func (uc *ItemUseCase) Create(ctx context.Context, input CreateItemInput) (*entity.Item, error) {
	title, description, keywords, price, pickUp, err := validateItemFields(input.Title, input.Description, input.Keywords, input.Price, input.PickUpMethod)
	if err != nil {
		return nil, err
	}
	photos, err := buildPhotos(input.Photos)
	if err != nil {
		return nil, err
	}
	username, err := validation.String("username", input.Username)
	if err != nil {
		return nil, err
	}

	owner, err := uc.userRepo.GetByUsername(ctx, normalizeUsername(username))
	if err != nil {
		return nil, err
	}

	item := &entity.Item{
		ID:           ids.New(),
		Title:        title,
		Description:  description,
		Keywords:     keywords,
		Price:        price,
		OwnerUserID:  owner.ID,
		UniversityID: owner.UniversityID,
		Photos:       photos,
		Sold:         false,
		PickUpMethod: pickUp,
		Comments:     []entity.Comment{},
		Bids:         []entity.Bid{},
	}
	if err := uc.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Update replaces every editable field. The owner and university never change.
func (uc *ItemUseCase) Update(ctx context.Context, id string, input UpdateItemInput) (*entity.Item, error) {
	id, err := ids.Parse("itemId", id)
	if err != nil {
		return nil, err
	}
	title, description, keywords, price, pickUp, err := validateItemFields(input.Title, input.Description, input.Keywords, input.Price, input.PickUpMethod)
	if err != nil {
		return nil, err
	}
	sold, err := validation.SoldFlag(input.Sold)
	if err != nil {
		return nil, err
	}
	var photos []entity.Photo
	if input.Photos != nil {
		if photos, err = buildPhotos(input.Photos); err != nil {
			return nil, err
		}
	}

	if _, err := uc.itemRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	err = uc.itemRepo.Update(ctx, id, repository.ItemFields{
		Title:        title,
		Description:  description,
		Keywords:     keywords,
		Price:        price,
		PickUpMethod: pickUp,
		Sold:         sold,
		Photos:       photos,
	})
	if err != nil {
		return nil, err
	}
	return uc.itemRepo.GetByID(ctx, id)
}

func (uc *ItemUseCase) AddComment(ctx context.Context, itemID, username, text string) (entity.CommentView, error) {
	itemID, err := ids.Parse("itemId", itemID)
	if err != nil {
		return entity.CommentView{}, err
	}
	username, err = validation.String("username", username)
	if err != nil {
		return entity.CommentView{}, err
	}
	text, err = validation.String("text", text)
	if err != nil {
		return entity.CommentView{}, err
	}

	author, err := uc.userRepo.GetByUsername(ctx, normalizeUsername(username))
	if err != nil {
		return entity.CommentView{}, err
	}
	comment := entity.Comment{ID: ids.New(), AuthorUserID: author.ID, Text: text}
	if err := uc.itemRepo.AppendComment(ctx, itemID, comment); err != nil {
		return entity.CommentView{}, err
	}
	return commentView(comment, author), nil
}

// ListComments resolves each comment's author. A missing author fails the call.
func (uc *ItemUseCase) ListComments(ctx context.Context, itemID string) ([]entity.CommentView, error) {
	item, err := uc.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	views := make([]entity.CommentView, 0, len(item.Comments))
	for _, c := range item.Comments {
		author, err := uc.userRepo.GetByID(ctx, c.AuthorUserID)
		if err != nil {
			return nil, err
		}
		views = append(views, commentView(c, author))
	}
	return views, nil
}

func (uc *ItemUseCase) ListPhotos(ctx context.Context, itemID string) ([]entity.Photo, error) {
	item, err := uc.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return item.Photos, nil
}

func (uc *ItemUseCase) GetPhoto(ctx context.Context, itemID, photoID string) (entity.Photo, error) {
	photoID, err := ids.Parse("photoId", photoID)
	if err != nil {
		return entity.Photo{}, err
	}
	item, err := uc.GetByID(ctx, itemID)
	if err != nil {
		return entity.Photo{}, err
	}
	photo, ok := item.FindPhoto(photoID)
	if !ok {
		return entity.Photo{}, errors.NotFoundMessage("Photo does not exist!")
	}
	return *photo, nil
}

func (uc *ItemUseCase) AddPhoto(ctx context.Context, itemID string, input PhotoInput) (entity.Photo, error) {
	itemID, err := ids.Parse("itemId", itemID)
	if err != nil {
		return entity.Photo{}, err
	}
	photo, err := buildPhoto(ids.New(), input)
	if err != nil {
		return entity.Photo{}, err
	}
	if err := uc.itemRepo.AppendPhoto(ctx, itemID, photo); err != nil {
		return entity.Photo{}, err
	}
	return photo, nil
}

func (uc *ItemUseCase) EditPhoto(ctx context.Context, itemID, photoID string, input PhotoInput) (entity.Photo, error) {
	itemID, err := ids.Parse("itemId", itemID)
	if err != nil {
		return entity.Photo{}, err
	}
	photoID, err = ids.Parse("photoId", photoID)
	if err != nil {
		return entity.Photo{}, err
	}
	photo, err := buildPhoto(photoID, input)
	if err != nil {
		return entity.Photo{}, err
	}
	if _, err := uc.GetPhoto(ctx, itemID, photoID); err != nil {
		return entity.Photo{}, err
	}
	if err := uc.itemRepo.UpdatePhoto(ctx, itemID, photo); err != nil {
		return entity.Photo{}, err
	}
	return photo, nil
}

func validateItemFields(title, description, keywordsCSV, price, pickUpMethod string) (string, string, []string, string, string, error) {
	title, err := validation.String("title", title)
	if err != nil {
		return "", "", nil, "", "", err
	}
	description, err = validation.String("description", description)
	if err != nil {
		return "", "", nil, "", "", err
	}
	keywords, err := validation.Keywords(keywordsCSV)
	if err != nil {
		return "", "", nil, "", "", err
	}
	price, _, err = validation.Price("price", price)
	if err != nil {
		return "", "", nil, "", "", err
	}
	pickUpMethod, err = validation.String("pickUpMethod", pickUpMethod)
	if err != nil {
		return "", "", nil, "", "", err
	}
	return title, description, keywords, price, pickUpMethod, nil
}

func buildPhoto(id string, input PhotoInput) (entity.Photo, error) {
	description, err := validation.String("description", input.Description)
	if err != nil {
		return entity.Photo{}, err
	}
	imageURL, err := validation.ImageURL(input.ImageURL)
	if err != nil {
		return entity.Photo{}, err
	}
	return entity.Photo{ID: id, Description: description, ImageURL: imageURL}, nil
}

func buildPhotos(inputs []PhotoInput) ([]entity.Photo, error) {
	photos := make([]entity.Photo, 0, len(inputs))
	for _, in := range inputs {
		photo, err := buildPhoto(ids.New(), in)
		if err != nil {
			return nil, err
		}
		photos = append(photos, photo)
	}
	return photos, nil
}

func commentView(c entity.Comment, author *entity.User) entity.CommentView {
	return entity.CommentView{
		ID:       c.ID,
		Photo:    author.ImageOr(entity.BlankProfileURL),
		Text:     c.Text,
		Username: author.Username,
	}
}
