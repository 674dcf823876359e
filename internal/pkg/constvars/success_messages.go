package constvars

const (
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"

	HealthCheckSuccessMessage = "service is healthy"

	GetWalletSuccessMessage       = "get wallet successfully"
	GetTransactionsSuccessMessage = "get wallet transactions successfully"
	TopUpWalletSuccessMessage     = "wallet topped up successfully"

	PublishSlotSuccessMessage = "slot published successfully"
	GetSlotsSuccessMessage    = "get slots successfully"
	GetSlotSuccessMessage     = "get slot successfully"
	DeleteSlotSuccessMessage  = "slot deleted successfully"

	BookConsultationSuccessMessage     = "consultation booked successfully"
	GetConsultationSuccessMessage      = "get consultation successfully"
	GetConsultationsSuccessMessage     = "get consultations successfully"
	StartConsultationSuccessMessage    = "consultation started successfully"
	CompleteConsultationSuccessMessage = "consultation completed successfully"
	CancelConsultationSuccessMessage   = "consultation cancelled successfully"
	UpdateConsultationSuccessMessage   = "consultation status updated successfully"
	UploadFileSuccessMessage           = "file uploaded successfully"
	GetFilesSuccessMessage             = "get consultation files successfully"

	GetEarningsSuccessMessage        = "get earnings successfully"
	RequestWithdrawalSuccessMessage  = "withdrawal requested successfully"
	GetWithdrawalsSuccessMessage     = "get withdrawals successfully"
	ApproveWithdrawalSuccessMessage  = "withdrawal approved successfully"
	CompleteWithdrawalSuccessMessage = "withdrawal completed successfully"
	RejectWithdrawalSuccessMessage   = "withdrawal rejected successfully"
	CancelWithdrawalSuccessMessage   = "withdrawal cancelled successfully"

	GetNotificationsSuccessMessage = "get notifications successfully"
	ReadNotificationSuccessMessage = "notification marked as read"

	CreateMedicalRecordSuccessMessage = "medical record created successfully"
	UpdateMedicalRecordSuccessMessage = "medical record updated successfully"
	GetMedicalRecordSuccessMessage    = "get medical record successfully"
	GetMedicalRecordsSuccessMessage   = "get medical records successfully"
)
