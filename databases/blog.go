package databases

// go generate: mockery --name BlogDatabase

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/legalbridge/legalbridge-api/models"
)

// ErrBlogNotFound is returned when no blog post has the requested id
var ErrBlogNotFound = errors.New("blog not found")

// BlogDatabase contains the methods to use with the blogs table
type BlogDatabase interface {
	FindOne(ctx context.Context, id uint) (*models.Blog, error)
	Find(ctx context.Context) ([]models.Blog, error)
	InsertOne(ctx context.Context, blog models.Blog) (uint, error)
}

type blogDatabase struct {
	db *gorm.DB
}

// NewBlogDatabase initializes a new instance of blog database with the provided db connection
func NewBlogDatabase(db *gorm.DB) BlogDatabase {
	return &blogDatabase{
		db: db,
	}
}

func (c *blogDatabase) FindOne(ctx context.Context, id uint) (*models.Blog, error) {
	blog := &models.Blog{}
	err := c.db.WithContext(ctx).First(blog, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBlogNotFound
	}
	if err != nil {
		return nil, err
	}
	return blog, nil
}

// Find returns every post, newest first
func (c *blogDatabase) Find(ctx context.Context) ([]models.Blog, error) {
	blogs := []models.Blog{}
	if err := c.db.WithContext(ctx).Order("id DESC").Find(&blogs).Error; err != nil {
		return nil, err
	}
	return blogs, nil
}

func (c *blogDatabase) InsertOne(ctx context.Context, blog models.Blog) (uint, error) {
	blog.ID = 0
	if err := c.db.WithContext(ctx).Create(&blog).Error; err != nil {
		return 0, err
	}
	return blog.ID, nil
}
