// Command seed loads the sample universities, a super admin and a listed item.
// Each step logs its failure and moves on, so running it twice is harmless.
package main

import (
	"context"
	"log"
	"os"

	"unisell/internal/domain/entity"
	"unisell/internal/infrastructure/datastore"
	"unisell/internal/infrastructure/security"
	"unisell/internal/usecase"
	"unisell/pkg/config"
	"unisell/pkg/logger"
)

const (
	stevensDomain  = "stevens.edu"
	adminUsername  = "superadmin"
	imageBucketURL = "https://cs546-ws-final-project-images.s3.amazonaws.com/"
)

var futonPhotos = []usecase.PhotoInput{
	{Description: "Front shot of futon - flat", ImageURL: imageBucketURL + "1651857177915dacb8aeb-a57d-457f-af4c-a1ca8ad49545.89ea393db35e9dda0dac13ab644cc422.jpeg"},
	{Description: "Front shot of futon - regular", ImageURL: imageBucketURL + "1651857224514630e3b02-55d2-4958-b75f-d640bdf26476.c54b41d458cf89d2f92df908e9717f02.jpeg"},
	{Description: "Futon no background - flat", ImageURL: imageBucketURL + "165185725714321291a86-862c-46c6-bcc6-40da57cb55ef.d5698a62ff02d0018775bd51540fb26c.jpeg"},
	{Description: "Side shot of futon", ImageURL: imageBucketURL + "16518572834506e40a9bc-179e-41b8-a310-90f164ce6a96.85d926d8107ebb97b13ee0c19173b09a.jpeg"},
	{Description: "Leg of futon", ImageURL: imageBucketURL + "1651857309792b0652921-0ece-4a17-b65e-b51a61674a27.4ca14558e66a5ca3670520a3f09f617e.jpeg"},
	{Description: "One side up", ImageURL: imageBucketURL + "1651857324350c516b030-3581-4043-9ba2-dc9780059403.e2bfc8ec4edcc6f9b327e4875d8685ca.jpeg"},
	{Description: "Dimensions", ImageURL: imageBucketURL + "165185736230914d470ae-e27d-43de-96dc-84548681269c.6225b4203e6e9e8bd6a0c784fb3c8fd3.jpeg"},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger.Configure(cfg.Environment, cfg.LogLevel)

	ctx := context.Background()
	store, err := datastore.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open %s store: %v", cfg.StoreDriver, err)
	}
	defer store.Close(ctx)

	universities := usecase.NewUniversityUseCase(store.Universities)
	users := usecase.NewUserUseCase(store.Users, store.Universities, store.Items, security.NewBcryptHasher(cfg.BcryptCost))
	items := usecase.NewItemUseCase(store.Items, store.Users)

	seedUniversities(ctx, universities)
	stevens := findUniversity(ctx, universities, stevensDomain)
	if stevens == nil {
		log.Fatalf("University %s is missing after seeding", stevensDomain)
	}
	seedAdmin(ctx, users, stevens)
	seedItems(ctx, items)

	logger.Info("Done seeding %s store", cfg.StoreDriver)
}

func seedUniversities(ctx context.Context, universities *usecase.UniversityUseCase) {
	if _, err := universities.Create(ctx, "Stevens Institute", stevensDomain); err != nil {
		logger.Warn("create Stevens: %v", err)
	}
	if _, err := universities.Create(ctx, "Fashion Institute of Technology", "fit.edu"); err != nil {
		logger.Warn("create FIT: %v", err)
	}

	if stevens := findUniversity(ctx, universities, stevensDomain); stevens != nil {
		if _, err := universities.Update(ctx, stevens.ID, "Stevens Institute of Technology", stevensDomain); err != nil {
			logger.Warn("rename Stevens: %v", err)
		}
	}
}

func findUniversity(ctx context.Context, universities *usecase.UniversityUseCase, domain string) *entity.University {
	all, err := universities.ListAll(ctx)
	if err != nil {
		logger.Error("list universities: %v", err)
		return nil
	}
	for _, u := range all {
		if u.EmailDomain == domain {
			return u
		}
	}
	return nil
}

func seedAdmin(ctx context.Context, users *usecase.UserUseCase, university *entity.University) {
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "super_admin_password"
	}

	_, err := users.Create(ctx, usecase.CreateUserInput{
		UniversityID:         university.ID,
		Username:             adminUsername,
		Password:             password,
		PasswordConfirmation: password,
		Name:                 "Super Admin User",
		Email:                "super_admin@" + university.EmailDomain,
		ImageURL:             imageBucketURL + "1651856921475successful-college-student-lg.png",
		Bio:                  "This is my bio. I am an admin.",
	})
	if err != nil {
		logger.Warn("create %s: %v", adminUsername, err)
	}
	if err := users.MakeSuperAdmin(ctx, adminUsername); err != nil {
		logger.Warn("promote %s: %v", adminUsername, err)
	}
}

func seedItems(ctx context.Context, items *usecase.ItemUseCase) {
	item, err := items.Create(ctx, usecase.CreateItemInput{
		Title:        "Black futon",
		Description:  "A black futon that can serve as a couch or bed. Futon is 72x34x32. Originally paid 170 for it.",
		Keywords:     "futon, black, couch, bed, furniture",
		Price:        "100",
		Username:     adminUsername,
		Photos:       futonPhotos,
		PickUpMethod: "Need to grab it from Dorm E Room 204. Call me at 215-245-2002",
	})
	if err != nil {
		logger.Warn("create futon: %v", err)
		return
	}
	logger.Info("Seeded item %s with %d photos", item.ID, len(item.Photos))
}
