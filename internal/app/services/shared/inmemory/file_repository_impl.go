package inmemory

import (
	"context"
	"telemed-service/internal/app/contracts"
	"telemed-service/internal/app/models"
	"time"
)

type consultationFileRepository struct {
	store *Store
}

func NewConsultationFileRepository(store *Store) contracts.ConsultationFileRepository {
	return &consultationFileRepository{store: store}
}

func (r *consultationFileRepository) Create(ctx context.Context, file *models.ConsultationFile) error {
	unlock := r.store.acquire(ctx)
	defer unlock()

	file.UploadedAt = time.Now()
	r.store.files[file.ID] = *file
	r.store.fileOrder = append(r.store.fileOrder, file.ID)
	return nil
}

func (r *consultationFileRepository) FindByID(ctx context.Context, fileID string) (*models.ConsultationFile, error) {
	unlock := r.store.acquire(ctx)
	defer unlock()

	file, ok := r.store.files[fileID]
	if !ok {
		return nil, nil
	}
	return &file, nil
}

func (r *consultationFileRepository) FindByConsultationID(ctx context.Context, consultationID string) ([]models.ConsultationFile, error) {
	unlock := r.store.acquire(ctx)
	defer unlock()

	var files []models.ConsultationFile
	for _, id := range r.store.fileOrder {
		if file := r.store.files[id]; file.ConsultationID == consultationID {
			files = append(files, file)
		}
	}
	return files, nil
}
