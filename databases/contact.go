package databases

// go generate: mockery --name ContactDatabase

import (
	"context"

	"gorm.io/gorm"

	"github.com/legalbridge/legalbridge-api/models"
)

// ContactDatabase contains the methods to use with the contacts table
type ContactDatabase interface {
	InsertOne(ctx context.Context, contact models.Contact) (uint, error)
}

type contactDatabase struct {
	db *gorm.DB
}

// NewContactDatabase initializes a new instance of contact database with the provided db connection
func NewContactDatabase(db *gorm.DB) ContactDatabase {
	return &contactDatabase{
		db: db,
	}
}

func (c *contactDatabase) InsertOne(ctx context.Context, contact models.Contact) (uint, error) {
	contact.ID = 0
	if err := c.db.WithContext(ctx).Create(&contact).Error; err != nil {
		return 0, err
	}
	return contact.ID, nil
}
