package constvars

const (
	LoggingRequestIDKey      = "request_id"
	LoggingDataKey           = "data"
	LoggingRequestKey        = "request"
	LoggingResponseKey       = "response"
	LoggingMethodKey         = "method"
	LoggingEndpointKey       = "endpoint"
	LoggingRemoteAddrKey     = "remote_addr"
	LoggingUserAgentKey      = "user_agent"
	LoggingQueryKey          = "query"
	LoggingStatusCodeKey     = "status_code"
	LoggingDurationKey       = "duration"
	LoggingSuccessKey        = "success"
	LoggingOperationKey      = "operation"
	LoggingErrorTypeKey      = "error_type"
	LoggingErrorCodeKey      = "error_code"
	LoggingErrorMessageKey   = "error_message"
	LoggingRedisKey          = "redis_key"
	LoggingCountKey          = "count"
	LoggingLimitKey          = "limit"
	LoggingOffsetKey         = "offset"
	LoggingQueueNameKey      = "queue_name"
	LoggingBucketNameKey     = "bucket_name"
	LoggingObjectNameKey     = "object_name"
	LoggingCronSpecKey       = "cron_spec"
	LoggingLockValueKey      = "lock_value"
	LoggingLockExpirationKey = "lock_expiration"
	LoggingLockStoredKey     = "lock_stored_value"
	LoggingLockExpectedKey   = "lock_expected_value"

	LoggingUserIDKey           = "user_id"
	LoggingRoleKey             = "role"
	LoggingWalletIDKey         = "wallet_id"
	LoggingTransactionTypeKey  = "transaction_type"
	LoggingAmountKey           = "amount"
	LoggingBalanceBeforeKey    = "balance_before"
	LoggingBalanceAfterKey     = "balance_after"
	LoggingSlotIDKey           = "slot_id"
	LoggingDoctorIDKey         = "doctor_id"
	LoggingPatientIDKey        = "patient_id"
	LoggingConsultationIDKey   = "consultation_id"
	LoggingConsultationStatus  = "consultation_status"
	LoggingPointsCostKey       = "points_cost"
	LoggingCommissionKey       = "commission"
	LoggingDoctorIncomeKey     = "doctor_income"
	LoggingReasonKey           = "reason"
	LoggingWithdrawalIDKey     = "withdrawal_id"
	LoggingWithdrawalStatusKey = "withdrawal_status"
	LoggingNotificationIDKey   = "notification_id"
	LoggingFileIDKey           = "file_id"
	LoggingRecordIDKey         = "record_id"
	LoggingRoomSizeKey         = "room_size"
	LoggingMessageTypeKey      = "message_type"
	LoggingCloseCodeKey        = "close_code"
	LoggingTriggerKey          = "trigger"
)
