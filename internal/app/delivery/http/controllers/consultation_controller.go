package controllers

import (
	"net/http"
	"telemed-service/internal/app/config"
	"telemed-service/internal/app/contracts"
	"telemed-service/internal/app/models"
	"telemed-service/internal/pkg/constvars"
	"telemed-service/internal/pkg/dto/requests"
	"telemed-service/internal/pkg/exceptions"
	"telemed-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const multipartMemoryInBytes = 8 << 20

type ConsultationController struct {
	Log                     *zap.Logger
	ConsultationUsecase     contracts.ConsultationUsecase
	ConsultationFileUsecase contracts.ConsultationFileUsecase
	InternalConfig          *config.InternalConfig
}

func NewConsultationController(
	logger *zap.Logger,
	consultationUsecase contracts.ConsultationUsecase,
	consultationFileUsecase contracts.ConsultationFileUsecase,
	internalConfig *config.InternalConfig,
) *ConsultationController {
	return &ConsultationController{
		Log:                     logger,
		ConsultationUsecase:     consultationUsecase,
		ConsultationFileUsecase: consultationFileUsecase,
		InternalConfig:          internalConfig,
	}
}

func (ctrl *ConsultationController) Book(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	request := new(requests.BookConsultation)
	if err := decodeAndValidate(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	consultation, err := ctrl.ConsultationUsecase.Book(r.Context(), identity.UserID, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.BookConsultationSuccessMessage, consultation)
}

func (ctrl *ConsultationController) History(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	pagination, err := utils.BuildPaginationRequest(r, constvars.DefaultConsultationHistoryLimit)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	consultations, err := ctrl.ConsultationUsecase.History(r.Context(), identity, pagination)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, constvars.GetConsultationsSuccessMessage, buildPagination(pagination, len(consultations)), consultations)
}

func (ctrl *ConsultationController) Get(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	detail, err := ctrl.ConsultationUsecase.Get(r.Context(), identity, chi.URLParam(r, constvars.URLParamConsultationID))
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetConsultationSuccessMessage, detail)
}

func (ctrl *ConsultationController) Start(w http.ResponseWriter, r *http.Request) {
	consultationID, ok := ctrl.authorizeParticipant(w, r)
	if !ok {
		return
	}

	consultation, err := ctrl.ConsultationUsecase.Start(r.Context(), consultationID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.StartConsultationSuccessMessage, consultation)
}

func (ctrl *ConsultationController) Complete(w http.ResponseWriter, r *http.Request) {
	consultationID, ok := ctrl.authorizeParticipant(w, r)
	if !ok {
		return
	}

	consultation, err := ctrl.ConsultationUsecase.Complete(r.Context(), consultationID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.CompleteConsultationSuccessMessage, consultation)
}

func (ctrl *ConsultationController) Cancel(w http.ResponseWriter, r *http.Request) {
	request := new(requests.CancelConsultation)
	if err := decodeOptionalAndValidate(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	consultationID, ok := ctrl.authorizeParticipant(w, r)
	if !ok {
		return
	}

	consultation, err := ctrl.ConsultationUsecase.Cancel(r.Context(), consultationID, request.Reason)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.CancelConsultationSuccessMessage, consultation)
}

// authorizeParticipant only lets the consultation's doctor or patient through.
func (ctrl *ConsultationController) authorizeParticipant(w http.ResponseWriter, r *http.Request) (string, bool) {
	identity, err := identityFromRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return "", false
	}

	consultationID := chi.URLParam(r, constvars.URLParamConsultationID)
	_, role, err := ctrl.ConsultationUsecase.Authorize(r.Context(), identity, consultationID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return "", false
	}
	if role == models.RoleAdmin {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrNotParticipant(identity.UserID, consultationID))
		return "", false
	}
	return consultationID, true
}

func (ctrl *ConsultationController) UploadFile(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	maxBytes := ctrl.InternalConfig.Minio.ConsultationFileMaxSizeInMB * 1024 * 1024
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+multipartMemoryInBytes)
	if err := r.ParseMultipartForm(multipartMemoryInBytes); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseMultipartForm(err))
		return
	}

	file, header, err := r.FormFile(constvars.FormFieldFile)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseMultipartForm(err))
		return
	}
	defer file.Close()

	request := &requests.UploadConsultationFile{
		ConsultationID: chi.URLParam(r, constvars.URLParamConsultationID),
		FileName:       header.Filename,
		FileType:       header.Header.Get(constvars.HeaderContentType),
		Size:           header.Size,
		Description:    r.FormValue(constvars.FormFieldDescription),
		Content:        file,
	}
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	uploaded, err := ctrl.ConsultationFileUsecase.Upload(r.Context(), identity, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.UploadFileSuccessMessage, uploaded)
}

func (ctrl *ConsultationController) ListFiles(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	files, err := ctrl.ConsultationFileUsecase.List(r.Context(), identity, chi.URLParam(r, constvars.URLParamConsultationID))
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetFilesSuccessMessage, files)
}

// DownloadFile redirects to a short-lived presigned object URL.
func (ctrl *ConsultationController) DownloadFile(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	url, err := ctrl.ConsultationFileUsecase.DownloadURL(r.Context(), identity, chi.URLParam(r, constvars.URLParamFileID))
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	http.Redirect(w, r, url, constvars.StatusFound)
}

func (ctrl *ConsultationController) AdminCreate(w http.ResponseWriter, r *http.Request) {
	request := new(requests.AdminCreateConsultation)
	if err := decodeAndValidate(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	consultation, err := ctrl.ConsultationUsecase.AdminCreate(r.Context(), request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.BookConsultationSuccessMessage, consultation)
}

func (ctrl *ConsultationController) AdminUpdateStatus(w http.ResponseWriter, r *http.Request) {
	request := new(requests.AdminUpdateConsultationStatus)
	if err := decodeAndValidate(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	consultation, err := ctrl.ConsultationUsecase.AdminUpdateStatus(r.Context(), chi.URLParam(r, constvars.URLParamConsultationID), request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UpdateConsultationSuccessMessage, consultation)
}
