package files

import (
	"context"
	"database/sql"
	"telemed-service/internal/app/contracts"
	"telemed-service/internal/app/models"
	"telemed-service/internal/app/services/shared/transactor"
	"telemed-service/internal/pkg/exceptions"
	"telemed-service/internal/pkg/queries"
)

type consultationFilePostgresRepository struct {
	DB *sql.DB
}

func NewConsultationFilePostgresRepository(db *sql.DB) contracts.ConsultationFileRepository {
	return &consultationFilePostgresRepository{
		DB: db,
	}
}

func (repo *consultationFilePostgresRepository) Create(ctx context.Context, file *models.ConsultationFile) error {
	executor := transactor.GetExecutor(ctx, repo.DB)
	err := executor.QueryRowContext(ctx, queries.InsertConsultationFile,
		file.ID,
		file.ConsultationID,
		file.ObjectName,
		file.FileName,
		file.FileType,
		file.Size,
		file.Description,
		file.UploadedByID,
	).Scan(&file.UploadedAt)
	if err != nil {
		return exceptions.ErrPostgresDBInsertData(err)
	}
	return nil
}

func (repo *consultationFilePostgresRepository) FindByID(ctx context.Context, fileID string) (*models.ConsultationFile, error) {
	executor := transactor.GetExecutor(ctx, repo.DB)
	file, err := scanFile(executor.QueryRowContext(ctx, queries.GetConsultationFileByID, fileID))
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return file, nil
}

func (repo *consultationFilePostgresRepository) FindByConsultationID(ctx context.Context, consultationID string) ([]models.ConsultationFile, error) {
	executor := transactor.GetExecutor(ctx, repo.DB)
	rows, err := executor.QueryContext(ctx, queries.GetConsultationFilesByConsultationID, consultationID)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	var files []models.ConsultationFile
	for rows.Next() {
		file, err := scanFile(rows)
		if err != nil {
			return nil, exceptions.ErrPostgresDBFindData(err)
		}
		files = append(files, *file)
	}
	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return files, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanFile(row rowScanner) (*models.ConsultationFile, error) {
	var file models.ConsultationFile
	err := row.Scan(
		&file.ID,
		&file.ConsultationID,
		&file.ObjectName,
		&file.FileName,
		&file.FileType,
		&file.Size,
		&file.Description,
		&file.UploadedByID,
		&file.UploadedAt,
	)
	if err != nil {
		return nil, err
	}
	return &file, nil
}
