package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/bjarke-xyz/app-tracker/internal/domain"
)

type firestoreCategoryRepository struct {
	client *firestore.Client
}

func NewFirestoreCategory(client *firestore.Client) domain.CategoryRepository {
	return &firestoreCategoryRepository{client: client}
}

type categoryDoc struct {
	Name       string    `firestore:"name"`
	FrontendID string    `firestore:"frontendId"`
	CreatedAt  time.Time `firestore:"createdAt"`
}

func mapCategoryDoc(doc categoryDoc) domain.Category {
	return domain.Category{
		Name:       doc.Name,
		FrontendID: doc.FrontendID,
		CreatedAt:  doc.CreatedAt,
	}
}

// GetByName implements domain.CategoryRepository.
func (f *firestoreCategoryRepository) GetByName(ctx context.Context, name string) (domain.Category, error) {
	snap, err := f.client.Collection(categoriesCollection).Doc(docID(name)).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return domain.Category{}, domain.ErrNotFound
		}
		return domain.Category{}, err
	}
	var doc categoryDoc
	if err := snap.DataTo(&doc); err != nil {
		return domain.Category{}, err
	}
	return mapCategoryDoc(doc), nil
}

// Create implements domain.CategoryRepository.
func (f *firestoreCategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	doc := categoryDoc{
		Name:       category.Name,
		FrontendID: category.FrontendID,
		CreatedAt:  category.CreatedAt,
	}
	_, err := f.client.Collection(categoriesCollection).Doc(docID(category.Name)).Create(ctx, doc)
	if err != nil && !isAlreadyExists(err) {
		return err
	}
	return nil
}

// List implements domain.CategoryRepository.
func (f *firestoreCategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	snaps, err := f.client.Collection(categoriesCollection).Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	categories := make([]domain.Category, 0, len(snaps))
	for _, snap := range snaps {
		var doc categoryDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, err
		}
		categories = append(categories, mapCategoryDoc(doc))
	}
	return categories, nil
}

// Delete implements domain.CategoryRepository.
func (f *firestoreCategoryRepository) Delete(ctx context.Context, name string) error {
	_, err := f.client.Collection(categoriesCollection).Doc(docID(name)).Delete(ctx, firestore.Exists)
	if isNotFound(err) {
		return domain.ErrNotFound
	}
	return err
}
