package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/bjarke-xyz/app-tracker/internal/domain"
)

type firestoreAppRepository struct {
	client *firestore.Client
}

func NewFirestoreApp(client *firestore.Client) domain.ApplicationRepository {
	return &firestoreAppRepository{client: client}
}

type applicationDoc struct {
	ID              string    `firestore:"id"`
	FrontendID      string    `firestore:"frontendId"`
	JobTitle        string    `firestore:"jobTitle"`
	CompanyName     string    `firestore:"companyName"`
	ApplicationDate string    `firestore:"applicationDate"`
	Status          string    `firestore:"status"`
	CategoryName    string    `firestore:"categoryName"`
	OwnerUserID     string    `firestore:"ownerUserId"`
	CreatedAt       time.Time `firestore:"createdAt"`
}

// Create implements domain.ApplicationRepository.
func (f *firestoreAppRepository) Create(ctx context.Context, app *domain.Application) error {
	doc := applicationDoc{
		ID:              app.ID,
		FrontendID:      app.FrontendID,
		JobTitle:        app.JobTitle,
		CompanyName:     app.CompanyName,
		ApplicationDate: app.ApplicationDate,
		Status:          app.Status,
		CategoryName:    app.CategoryName,
		OwnerUserID:     app.OwnerUserID,
		CreatedAt:       app.CreatedAt,
	}
	_, err := f.client.Collection(applicationsCollection).Doc(app.ID).Create(ctx, doc)
	return err
}

// GetByUserID implements domain.ApplicationRepository.
func (f *firestoreAppRepository) GetByUserID(ctx context.Context, userId string) ([]domain.Application, error) {
	snaps, err := f.client.Collection(applicationsCollection).
		Where("ownerUserId", "==", userId).
		Documents(ctx).
		GetAll()
	if err != nil {
		return nil, err
	}
	apps := make([]domain.Application, 0, len(snaps))
	for _, snap := range snaps {
		var doc applicationDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, err
		}
		apps = append(apps, domain.Application{
			ID:              doc.ID,
			FrontendID:      doc.FrontendID,
			JobTitle:        doc.JobTitle,
			CompanyName:     doc.CompanyName,
			ApplicationDate: doc.ApplicationDate,
			Status:          doc.Status,
			CategoryName:    doc.CategoryName,
			OwnerUserID:     doc.OwnerUserID,
			CreatedAt:       doc.CreatedAt,
		})
	}
	return apps, nil
}

// Delete implements domain.ApplicationRepository. It does nothing.
func (f *firestoreAppRepository) Delete(ctx context.Context, appID string) error {
	return nil
}
