package seed

import (
	"log"

	"pawsgram/models"

	"gorm.io/gorm"
)

var users = []models.User{
	{
		Name:     "Steven Victor",
		Username: "steven",
		Email:    "steven@example.com",
		Password: "password",
		Bio:      "Dog person. Mostly here for the pugs.",
	},
	{
		Name:     "Martin Luther",
		Username: "martin",
		Email:    "luther@example.com",
		Password: "password",
		Bio:      "Cat pictures only.",
	},
}

var posts = []models.Post{
	{
		Caption:   "First walk of the spring",
		ImagePath: "/uploads/seed-dog-walk.jpg",
	},
	{
		Caption:   "Caught mid-yawn",
		ImagePath: "/uploads/seed-cat-yawn.jpg",
	},
}

// Load drops and recreates the schema with a couple of demo accounts.
// Development only.
func Load(db *gorm.DB) {
	err := db.Migrator().DropTable(
		&models.Like{},
		&models.Save{},
		&models.Follow{},
		&models.PasswordReset{},
		&models.Post{},
		&models.User{},
	)
	if err != nil {
		log.Fatalf("cannot drop tables: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Like{},
		&models.Save{},
		&models.Follow{},
		&models.PasswordReset{},
	)
	if err != nil {
		log.Fatalf("cannot migrate tables: %v", err)
	}

	for i := range users {
		users[i].Prepare()
		if err := users[i].HashPassword(); err != nil {
			log.Fatalf("cannot hash seed password: %v", err)
		}
		if err := db.Create(&users[i]).Error; err != nil {
			log.Fatalf("cannot seed users table: %v", err)
		}

		posts[i].AuthorID = users[i].ID
		posts[i].Prepare()
		if err := db.Create(&posts[i]).Error; err != nil {
			log.Fatalf("cannot seed posts table: %v", err)
		}
	}

	// steven follows martin so the demo feed shows a relationship.
	follow := models.Follow{FollowerID: users[0].ID, FollowedID: users[1].ID}
	if err := db.Create(&follow).Error; err != nil {
		log.Fatalf("cannot seed follows table: %v", err)
	}
}
