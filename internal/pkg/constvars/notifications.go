package constvars

const (
	NotificationTypePush  = "push"
	NotificationTypeEmail = "email"
)

const (
	NotificationTitleConsultationBooked    = "Consultation booked"
	NotificationTitleNewConsultation       = "New consultation booking"
	NotificationTitleConsultationCancelled = "Consultation cancelled"
	NotificationTitleConsultationCompleted = "Consultation completed"
	NotificationTitleWithdrawalRequested   = "New withdrawal request"
	NotificationTitleWithdrawalCreated     = "Withdrawal request created"
	NotificationTitleWithdrawalApproved    = "Withdrawal approved"
	NotificationTitleWithdrawalCompleted   = "Withdrawal completed"
	NotificationTitleWithdrawalRejected    = "Withdrawal rejected"
	NotificationTitleMedicalRecordAdded    = "New medical record"

	NotificationMessageConsultationBookedFormat    = "Your consultation with %s is scheduled for %s"
	NotificationMessageNewConsultationFormat       = "%s booked a consultation for %s"
	NotificationMessageConsultationCancelledFormat = "Consultation scheduled for %s was cancelled. Reason: %s"
	NotificationMessageConsultationCompletedFormat = "Consultation completed, %s points credited"
	NotificationMessageWithdrawalRequestedFormat   = "%s requested a withdrawal of %s"
	NotificationMessageWithdrawalCreatedFormat     = "Your withdrawal of %s is under review"
	NotificationMessageWithdrawalApprovedFormat    = "Your withdrawal of %s was approved"
	NotificationMessageWithdrawalCompletedFormat   = "%s was transferred to your bank account"
	NotificationMessageWithdrawalRejectedFormat    = "Your withdrawal was rejected. Reason: %s"
	NotificationMessageMedicalRecordAddedFormat    = "%s added a record to your medical history"
)

const (
	WalletDescriptionBookingFormat    = "Booking consultation with %s"
	WalletDescriptionSettlement       = "Consultation settlement"
	WalletDescriptionIncomeFormat     = "Consultation income (platform commission: %s)"
	WalletDescriptionRefundFormat     = "Refund for cancelled consultation. Reason: %s"
	WalletDescriptionAdminTopUp       = "Admin top-up"
	WalletDescriptionAutoTopUp        = "Admin top-up for consultation booking"
	ConsultationExpiredReason         = "expired: no show"
	ConsultationCancelledNoReason     = "not specified"
	ConsultationDefaultDoctorName     = "Doctor"
	ConsultationDefaultPatientName    = "Patient"
	ConsultationFileDownloadURLFormat = "%s/consultations/files/%s/download"
)

const ConsultationTimeLayout = "2006-01-02 15:04 MST"
