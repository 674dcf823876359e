package exceptions

import (
	"fmt"
	"telemed-service/internal/pkg/constvars"
)

const (
	CodeInsufficientFunds       Code = "INSUFFICIENT_FUNDS"
	CodeInsufficientFrozenFunds Code = "INSUFFICIENT_FROZEN_FUNDS"
	CodeInvalidAmount           Code = "INVALID_AMOUNT"
	CodeSlotUnavailable         Code = "SLOT_UNAVAILABLE"
	CodeSlotOverlap             Code = "SLOT_OVERLAP"
	CodeSlotInUse               Code = "SLOT_IN_USE"
	CodeSlotInvalidRange        Code = "SLOT_INVALID_RANGE"
	CodeSlotNotOwned            Code = "SLOT_NOT_OWNED"
	CodeInvalidTransition       Code = "INVALID_TRANSITION"
	CodeNotFound                Code = "NOT_FOUND"
	CodeNotParticipant          Code = "NOT_PARTICIPANT"
	CodeDoctorNotVerified       Code = "DOCTOR_NOT_VERIFIED"
	CodeRoleMismatch            Code = "ROLE_MISMATCH"
	CodeWithdrawalBelowMinimum  Code = "WITHDRAWAL_BELOW_MINIMUM"
	CodeInsufficientEarnings    Code = "INSUFFICIENT_EARNINGS"
	CodeSettlementRecorded      Code = "SETTLEMENT_ALREADY_RECORDED"
	CodeUnsupportedStatus       Code = "UNSUPPORTED_STATUS_UPDATE"
	CodeFileTooLarge            Code = "FILE_TOO_LARGE"
	CodeRecordAccessDenied      Code = "RECORD_ACCESS_DENIED"
)

var (
	// Ledger
	ErrInsufficientFunds = func(walletID, balance, amount string) *CustomError {
		return buildCodedError(CodeInsufficientFunds, constvars.StatusBadRequest, constvars.ErrClientInsufficientFunds, fmt.Sprintf(constvars.ErrDevInsufficientFunds, walletID, balance, amount))
	}
	ErrInsufficientFrozenFunds = func(walletID, frozen, amount string) *CustomError {
		return buildCodedError(CodeInsufficientFrozenFunds, constvars.StatusBadRequest, constvars.ErrClientInsufficientFrozenFunds, fmt.Sprintf(constvars.ErrDevInsufficientFrozenFunds, walletID, frozen, amount))
	}
	ErrInvalidAmount = func(amount string) *CustomError {
		return buildCodedError(CodeInvalidAmount, constvars.StatusBadRequest, constvars.ErrClientInvalidAmount, fmt.Sprintf(constvars.ErrDevInvalidAmount, amount))
	}

	// Slot registry
	ErrSlotUnavailable = func(slotID string) *CustomError {
		return buildCodedError(CodeSlotUnavailable, constvars.StatusConflict, constvars.ErrClientSlotUnavailable, fmt.Sprintf(constvars.ErrDevSlotUnavailable, slotID))
	}
	ErrSlotOverlap = func(doctorID, start, end string) *CustomError {
		return buildCodedError(CodeSlotOverlap, constvars.StatusConflict, constvars.ErrClientSlotOverlap, fmt.Sprintf(constvars.ErrDevSlotOverlap, start, end, doctorID))
	}
	ErrSlotInUse = func(slotID string) *CustomError {
		return buildCodedError(CodeSlotInUse, constvars.StatusConflict, constvars.ErrClientSlotInUse, fmt.Sprintf(constvars.ErrDevSlotInUse, slotID))
	}
	ErrSlotInvalidRange = func(start, end string) *CustomError {
		return buildCodedError(CodeSlotInvalidRange, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, fmt.Sprintf(constvars.ErrDevSlotInvalidRange, start, end))
	}
	ErrSlotNotOwned = func(slotID, doctorID string) *CustomError {
		return buildCodedError(CodeSlotNotOwned, constvars.StatusForbidden, constvars.ErrClientNotAuthorized, fmt.Sprintf(constvars.ErrDevSlotNotOwned, slotID, doctorID))
	}

	// Consultation lifecycle
	ErrInvalidTransition = func(consultationID, from, to string) *CustomError {
		return buildCodedError(CodeInvalidTransition, constvars.StatusConflict, constvars.ErrClientInvalidTransition, fmt.Sprintf(constvars.ErrDevInvalidTransition, consultationID, from, to))
	}
	ErrNotParticipant = func(userID, consultationID string) *CustomError {
		return buildCodedError(CodeNotParticipant, constvars.StatusForbidden, constvars.ErrClientNotAuthorized, fmt.Sprintf(constvars.ErrDevNotParticipant, userID, consultationID))
	}
	ErrDoctorNotVerified = func(doctorID string) *CustomError {
		return buildCodedError(CodeDoctorNotVerified, constvars.StatusBadRequest, constvars.ErrClientDoctorNotVerified, fmt.Sprintf(constvars.ErrDevDoctorNotVerified, doctorID))
	}
	ErrRoleMismatch = func(userID, actual, expected string) *CustomError {
		return buildCodedError(CodeRoleMismatch, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, fmt.Sprintf(constvars.ErrDevRoleMismatch, userID, actual, expected))
	}
	ErrSettlementAlreadyRecorded = func(consultationID string) *CustomError {
		return buildCodedError(CodeSettlementRecorded, constvars.StatusConflict, constvars.ErrClientInvalidTransition, fmt.Sprintf(constvars.ErrDevSettlementAlreadyRecorded, consultationID))
	}
	ErrUnsupportedStatusUpdate = func(status string) *CustomError {
		return buildCodedError(CodeUnsupportedStatus, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, fmt.Sprintf(constvars.ErrDevUnsupportedStatusUpdate, status))
	}
	ErrFileTooLarge = func(size, limit int64) *CustomError {
		return buildCodedError(CodeFileTooLarge, constvars.StatusRequestEntityTooBig, constvars.ErrClientFileTooLarge, fmt.Sprintf(constvars.ErrDevFileTooLarge, size, limit))
	}

	// Medical records
	ErrMedicalRecordAccessDenied = func(userID, role, patientID string) *CustomError {
		return buildCodedError(CodeRecordAccessDenied, constvars.StatusForbidden, constvars.ErrClientNotAuthorized, fmt.Sprintf(constvars.ErrDevMedicalRecordAccess, userID, role, patientID))
	}

	// Not found
	ErrConsultationNotFound = func(consultationID string) *CustomError {
		return buildCodedError(CodeNotFound, constvars.StatusNotFound, constvars.ErrClientResourceNotFound, fmt.Sprintf(constvars.ErrDevConsultationNotFound, consultationID))
	}
	ErrSlotNotFound = func(slotID string) *CustomError {
		return buildCodedError(CodeNotFound, constvars.StatusNotFound, constvars.ErrClientResourceNotFound, fmt.Sprintf(constvars.ErrDevSlotNotFound, slotID))
	}
	ErrUserNotFound = func(userID string) *CustomError {
		return buildCodedError(CodeNotFound, constvars.StatusNotFound, constvars.ErrClientResourceNotFound, fmt.Sprintf(constvars.ErrDevUserNotFound, userID))
	}
	ErrWithdrawalNotFound = func(withdrawalID string) *CustomError {
		return buildCodedError(CodeNotFound, constvars.StatusNotFound, constvars.ErrClientResourceNotFound, fmt.Sprintf(constvars.ErrDevWithdrawalNotFound, withdrawalID))
	}
	ErrNotificationNotFound = func(notificationID string) *CustomError {
		return buildCodedError(CodeNotFound, constvars.StatusNotFound, constvars.ErrClientResourceNotFound, fmt.Sprintf(constvars.ErrDevNotificationNotFound, notificationID))
	}
	ErrFileNotFound = func(fileID string) *CustomError {
		return buildCodedError(CodeNotFound, constvars.StatusNotFound, constvars.ErrClientResourceNotFound, fmt.Sprintf(constvars.ErrDevFileNotFound, fileID))
	}
	ErrMedicalRecordNotFound = func(recordID string) *CustomError {
		return buildCodedError(CodeNotFound, constvars.StatusNotFound, constvars.ErrClientResourceNotFound, fmt.Sprintf(constvars.ErrDevMedicalRecordNotFound, recordID))
	}

	// Withdrawals
	ErrWithdrawalBelowMinimum = func(amount, minimum string) *CustomError {
		return buildCodedError(CodeWithdrawalBelowMinimum, constvars.StatusBadRequest, fmt.Sprintf(constvars.ErrClientWithdrawalBelowMinimum, minimum), fmt.Sprintf(constvars.ErrDevWithdrawalBelowMinimum, amount, minimum))
	}
	ErrInsufficientEarnings = func(doctorID, available, amount string) *CustomError {
		return buildCodedError(CodeInsufficientEarnings, constvars.StatusBadRequest, constvars.ErrClientInsufficientFunds, fmt.Sprintf(constvars.ErrDevInsufficientEarnings, doctorID, available, amount))
	}
	ErrWithdrawalInvalidTransition = func(withdrawalID, from, to string) *CustomError {
		return buildCodedError(CodeInvalidTransition, constvars.StatusConflict, constvars.ErrClientWithdrawalInvalidTransition, fmt.Sprintf(constvars.ErrDevWithdrawalInvalidStatus, withdrawalID, from, to))
	}
)
