package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"unisell/internal/domain/entity"
	"unisell/internal/domain/repository"
	"unisell/pkg/errors"
)

const universitiesCollection = "universities"

type firestoreUniversityRepository struct {
	client *firestore.Client
}

func NewFirestoreUniversityRepository(client *firestore.Client) repository.UniversityRepository {
	return &firestoreUniversityRepository{
		client: client,
	}
}

func (r *firestoreUniversityRepository) Create(ctx context.Context, university *entity.University) error {
	_, err := r.client.Collection(universitiesCollection).Doc(university.ID).Create(ctx, university)
	if err != nil {
		return errors.Persistence("could not add university", err)
	}
	return nil
}

func (r *firestoreUniversityRepository) GetByID(ctx context.Context, id string) (*entity.University, error) {
	doc, err := r.client.Collection(universitiesCollection).Doc(id).Get(ctx)
	if err != nil {
		return nil, getErr("University", err)
	}

	var university entity.University
	if err := doc.DataTo(&university); err != nil {
		return nil, errors.Persistence("failed to decode university", err)
	}
	return &university, nil
}

func (r *firestoreUniversityRepository) List(ctx context.Context) ([]*entity.University, error) {
	iter := r.client.Collection(universitiesCollection).OrderBy("name", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var universities []*entity.University
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Persistence("failed to list universities", err)
		}

		var university entity.University
		if err := doc.DataTo(&university); err != nil {
			return nil, errors.Persistence("failed to decode university", err)
		}
		universities = append(universities, &university)
	}
	return universities, nil
}

func (r *firestoreUniversityRepository) Update(ctx context.Context, university *entity.University) error {
	_, err := r.client.Collection(universitiesCollection).Doc(university.ID).Update(ctx, []firestore.Update{
		{Path: "name", Value: university.Name},
		{Path: "emailDomain", Value: university.EmailDomain},
	})
	return updateErr("update university", err)
}
