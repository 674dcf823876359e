package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_IDENTITY_KEY             ContextKey = "identity"
)

const (
	AppEnvDevelopment = "development"
	AppEnvProduction  = "production"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

const (
	DefaultTransactionListLimit      = 50
	DefaultAdminTransactionListLimit = 100
	DefaultConsultationHistoryLimit  = 20
	MaxListLimit                     = 500
)

const (
	URLParamConsultationID = "consultationID"
	URLParamSlotID         = "slotID"
	URLParamDoctorID       = "doctorID"
	URLParamWithdrawalID   = "withdrawalID"
	URLParamNotificationID = "notificationID"
	URLParamFileID         = "fileID"
	URLParamRecordID       = "recordID"
	URLParamPatientID      = "patientID"

	QueryParamLimit         = "limit"
	QueryParamOffset        = "offset"
	QueryParamToken         = "token"
	QueryParamUnreadOnly    = "unread_only"
	QueryParamAvailableOnly = "available_only"

	FormFieldFile        = "file"
	FormFieldDescription = "description"
)
