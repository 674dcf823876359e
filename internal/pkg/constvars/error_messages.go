package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required":         "is required",
	"email":            "must be a valid email",
	"min":              "must be at least %s",
	"max":              "must be at most %s",
	"gt":               "must be greater than %s",
	"gte":              "must be greater than or equal to %s",
	"oneof":            "must be one of [%s]",
	"uuid":             "must be a valid UUID",
	"gtfield":          "must be after %s",
	"positive_decimal": "must be a positive amount",
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientNotLoggedIn                   = "your session ended, please login again"
	ErrClientInsufficientFunds             = "not enough points in your wallet"
	ErrClientInsufficientFrozenFunds       = "not enough reserved points to settle this operation"
	ErrClientInvalidAmount                 = "amount must be greater than zero"
	ErrClientSlotUnavailable               = "the selected time slot is no longer available"
	ErrClientSlotOverlap                   = "the doctor already has a slot in this time range"
	ErrClientSlotInUse                     = "the slot is booked and cannot be removed"
	ErrClientInvalidTransition             = "this action is not allowed in the current consultation status"
	ErrClientResourceNotFound              = "the requested resource was not found"
	ErrClientDoctorNotVerified             = "doctor profile has not been approved yet"
	ErrClientWithdrawalBelowMinimum        = "withdrawal amount is below the minimum of %s"
	ErrClientWithdrawalInvalidTransition   = "this action is not allowed in the current withdrawal status"
	ErrClientFileTooLarge                  = "the uploaded file is too large"
)

// Error messages for developers
const (
	ErrDevInvalidInput               = "invalid input"
	ErrDevValidationFailed           = "validation failed"
	ErrDevCannotParseJSON            = "cannot parse JSON"
	ErrDevCannotMarshalJSON          = "cannot marshal JSON"
	ErrDevCannotParseMultipartForm   = "cannot parse multipart form"
	ErrDevURLParamValidationFailed   = "url param %s validation failed"
	ErrDevQueryParamValidationFailed = "query param %s validation failed"
	ErrDevServerDeadlineExceeded     = "server deadline exceeded"
	ErrDevMissingRequestID           = "request id missing from context"

	ErrDevAuthTokenMissing          = "auth token missing"
	ErrDevAuthTokenInvalidOrExpired = "auth token invalid or expired"
	ErrDevAuthRoleNotAllowed        = "role %s is not allowed to access this resource"
	ErrDevAuthUnknownRole           = "unknown role %q"
	ErrDevNotParticipant            = "user %s is not a participant of consultation %s"

	ErrDevInsufficientFunds         = "wallet %s balance %s is lower than %s"
	ErrDevInsufficientFrozenFunds   = "wallet %s frozen balance %s is lower than %s"
	ErrDevInvalidAmount             = "amount %s must be positive"
	ErrDevSlotUnavailable           = "slot %s is reserved or unavailable"
	ErrDevSlotOverlap               = "slot [%s, %s) overlaps an existing slot of doctor %s"
	ErrDevSlotInvalidRange          = "slot start %s is not before end %s"
	ErrDevSlotInUse                 = "slot %s is reserved or referenced by a consultation"
	ErrDevSlotNotOwned              = "slot %s does not belong to doctor %s"
	ErrDevInvalidTransition         = "consultation %s cannot move from %s to %s"
	ErrDevConsultationNotFound      = "consultation %s not found"
	ErrDevSlotNotFound              = "slot %s not found"
	ErrDevUserNotFound              = "user %s not found"
	ErrDevWithdrawalNotFound        = "withdrawal %s not found"
	ErrDevNotificationNotFound      = "notification %s not found"
	ErrDevFileNotFound              = "file %s not found"
	ErrDevDoctorNotVerified         = "doctor %s is not verified"
	ErrDevRoleMismatch              = "user %s has role %s, expected %s"
	ErrDevWithdrawalBelowMinimum    = "withdrawal amount %s is below minimum %s"
	ErrDevInsufficientEarnings      = "doctor %s available balance %s is lower than %s"
	ErrDevWithdrawalInvalidStatus   = "withdrawal %s cannot move from %s to %s"
	ErrDevSettlementAlreadyRecorded = "settlement for consultation %s already recorded"
	ErrDevUnsupportedStatusUpdate   = "unsupported status update %q"
	ErrDevFileTooLarge              = "file size %d exceeds limit %d"
	ErrDevMedicalRecordNotFound     = "medical record %s not found"
	ErrDevMedicalRecordAccess       = "user %s with role %s cannot access medical records of patient %s"

	ErrDevDBFailedToFindData    = "failed to find data in postgres"
	ErrDevDBFailedToInsertData  = "failed to insert data into postgres"
	ErrDevDBFailedToUpdateData  = "failed to update data in postgres"
	ErrDevDBFailedToDeleteData  = "failed to delete data from postgres"
	ErrDevDBFailedToBeginTx     = "failed to begin postgres transaction"
	ErrDevDBFailedToCommitTx    = "failed to commit postgres transaction"
	ErrDevRedisSet              = "failed to set redis key"
	ErrDevRedisGet              = "failed to get redis key %s"
	ErrDevRedisDelete           = "failed to delete redis key"
	ErrDevRedisExpire           = "failed to refresh redis key ttl"
	ErrDevRedisSetNX            = "failed to set redis key if absent"
	ErrDevRedisUnlock           = "failed to release redis lock"
	ErrDevRabbitMQPublish       = "failed to publish message to queue %s"
	ErrDevMinioCreateObject     = "failed to create object in bucket %s"
	ErrDevMinioPresignObjectURL = "failed to presign object url in bucket %s"
)
