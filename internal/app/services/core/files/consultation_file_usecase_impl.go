package files

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"telemed-service/internal/app/config"
	"telemed-service/internal/app/contracts"
	"telemed-service/internal/app/models"
	"telemed-service/internal/pkg/constvars"
	"telemed-service/internal/pkg/dto/requests"
	"telemed-service/internal/pkg/dto/responses"
	"telemed-service/internal/pkg/exceptions"
	"telemed-service/internal/pkg/utils"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type consultationFileUsecase struct {
	FileRepository      contracts.ConsultationFileRepository
	ConsultationUsecase contracts.ConsultationUsecase
	Storage             contracts.Storage
	Rooms               contracts.RoomBroadcaster
	InternalConfig      *config.InternalConfig
	Log                 *zap.Logger
}

func NewConsultationFileUsecase(
	fileRepository contracts.ConsultationFileRepository,
	consultationUsecase contracts.ConsultationUsecase,
	storage contracts.Storage,
	rooms contracts.RoomBroadcaster,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.ConsultationFileUsecase {
	return &consultationFileUsecase{
		FileRepository:      fileRepository,
		ConsultationUsecase: consultationUsecase,
		Storage:             storage,
		Rooms:               rooms,
		InternalConfig:      internalConfig,
		Log:                 logger,
	}
}

func (uc *consultationFileUsecase) Upload(ctx context.Context, identity models.Identity, request *requests.UploadConsultationFile) (*responses.ConsultationFile, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("consultationFileUsecase.Upload called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingConsultationIDKey, request.ConsultationID),
		zap.String(constvars.LoggingUserIDKey, identity.UserID),
		zap.Int64("size", request.Size),
	)

	maxBytes := uc.InternalConfig.Minio.ConsultationFileMaxSizeInMB * 1024 * 1024
	if request.Size > maxBytes {
		return nil, exceptions.ErrFileTooLarge(request.Size, maxBytes)
	}

	consultation, _, err := uc.ConsultationUsecase.Authorize(ctx, identity, request.ConsultationID)
	if err != nil {
		return nil, err
	}

	fileID := uuid.NewString()
	objectName := fmt.Sprintf("consultations/%s/%s%s", consultation.ID, fileID, filepath.Ext(request.FileName))
	bucketName := uc.InternalConfig.Minio.BucketName

	_, err = uc.Storage.UploadFile(ctx, request.Content, request.Size, request.FileType, bucketName, objectName)
	if err != nil {
		uc.Log.Error("consultationFileUsecase.Upload error uploading to storage",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingBucketNameKey, bucketName),
			zap.String(constvars.LoggingObjectNameKey, objectName),
			zap.Error(err),
		)
		return nil, err
	}

	file := &models.ConsultationFile{
		ID:             fileID,
		ConsultationID: consultation.ID,
		ObjectName:     objectName,
		FileName:       request.FileName,
		FileType:       request.FileType,
		Size:           request.Size,
		Description:    request.Description,
		UploadedByID:   identity.UserID,
	}
	err = uc.FileRepository.Create(ctx, file)
	if err != nil {
		return nil, err
	}

	response := uc.toResponse(file)

	senderName := identity.DisplayName
	if senderName == "" {
		senderName = identity.Role.String()
	}
	uc.Rooms.BroadcastEvent(ctx, consultation.ID, constvars.RoomMessageFile, responses.ConsultationFileEvent{
		ID:          file.ID,
		FileName:    file.FileName,
		FileType:    file.FileType,
		DownloadURL: response.DownloadURL,
		UploadedAt:  file.UploadedAt,
		SenderID:    identity.UserID,
		SenderName:  senderName,
	})

	utils.LogBusinessEvent(uc.Log, "consultation_file_uploaded", requestID,
		zap.String(constvars.LoggingConsultationIDKey, consultation.ID),
		zap.String(constvars.LoggingFileIDKey, file.ID),
	)
	return &response, nil
}

func (uc *consultationFileUsecase) List(ctx context.Context, identity models.Identity, consultationID string) ([]responses.ConsultationFile, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("consultationFileUsecase.List called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingConsultationIDKey, consultationID),
	)

	if _, _, err := uc.ConsultationUsecase.Authorize(ctx, identity, consultationID); err != nil {
		return nil, err
	}

	files, err := uc.FileRepository.FindByConsultationID(ctx, consultationID)
	if err != nil {
		return nil, err
	}

	result := make([]responses.ConsultationFile, 0, len(files))
	for i := range files {
		result = append(result, uc.toResponse(&files[i]))
	}
	return result, nil
}

func (uc *consultationFileUsecase) DownloadURL(ctx context.Context, identity models.Identity, fileID string) (string, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("consultationFileUsecase.DownloadURL called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingFileIDKey, fileID),
	)

	file, err := uc.FileRepository.FindByID(ctx, fileID)
	if err != nil {
		return "", err
	}
	if file == nil {
		return "", exceptions.ErrFileNotFound(fileID)
	}

	if _, _, err := uc.ConsultationUsecase.Authorize(ctx, identity, file.ConsultationID); err != nil {
		return "", err
	}

	expiry := time.Duration(uc.InternalConfig.Minio.PreSignedUrlExpiryTimeInMinute) * time.Minute
	return uc.Storage.GetObjectUrlWithExpiryTime(ctx, uc.InternalConfig.Minio.BucketName, file.ObjectName, expiry)
}

func (uc *consultationFileUsecase) toResponse(file *models.ConsultationFile) responses.ConsultationFile {
	// BaseUrl is the bare host; the router mounts everything under prefix/version.
	apiBase := fmt.Sprintf("%s/%s/%s",
		strings.TrimRight(uc.InternalConfig.App.BaseUrl, "/"),
		uc.InternalConfig.App.EndpointPrefix,
		uc.InternalConfig.App.Version,
	)
	return responses.ConsultationFile{
		ID:             file.ID,
		ConsultationID: file.ConsultationID,
		FileName:       file.FileName,
		FileType:       file.FileType,
		UploadedByID:   file.UploadedByID,
		UploadedAt:     file.UploadedAt,
		DownloadURL:    fmt.Sprintf(constvars.ConsultationFileDownloadURLFormat, apiBase, file.ID),
	}
}
