package contracts

import (
	"context"
	"telemed-service/internal/app/models"
	"telemed-service/internal/pkg/dto/requests"
	"telemed-service/internal/pkg/dto/responses"
)

type ConsultationFileRepository interface {
	Create(ctx context.Context, file *models.ConsultationFile) error
	FindByID(ctx context.Context, fileID string) (*models.ConsultationFile, error)
	FindByConsultationID(ctx context.Context, consultationID string) ([]models.ConsultationFile, error)
}

type ConsultationFileUsecase interface {
	Upload(ctx context.Context, identity models.Identity, request *requests.UploadConsultationFile) (*responses.ConsultationFile, error)
	List(ctx context.Context, identity models.Identity, consultationID string) ([]responses.ConsultationFile, error)
	DownloadURL(ctx context.Context, identity models.Identity, fileID string) (string, error)
}
