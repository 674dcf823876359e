package models

import "time"

type ScheduleSlot struct {
	ID          string    `json:"id"`
	DoctorID    string    `json:"doctor_id"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	IsAvailable bool      `json:"is_available"`
	IsReserved  bool      `json:"is_reserved"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Overlaps uses half-open intervals, so back-to-back slots do not collide.
func (s *ScheduleSlot) Overlaps(start, end time.Time) bool {
	return s.StartTime.Before(end) && s.EndTime.After(start)
}

func (s *ScheduleSlot) IsReservable() bool {
	return s.IsAvailable && !s.IsReserved
}
