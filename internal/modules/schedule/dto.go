package schedule

type GenerateRequest struct {
	FieldID        int64  `json:"field_id" binding:"required"`
	StartDate      string `json:"start_date" binding:"required,dateonly"`
	EndDate        string `json:"end_date" binding:"required,dateonly"`
	DailyStartTime string `json:"daily_start_time" binding:"required,clock"`
	DailyEndTime   string `json:"daily_end_time" binding:"required,clock"`
	Notes          string `json:"notes"`
}

type GenerateResult struct {
	CreatedCount int `json:"created_count"`
	// DuplicateDates holds the already-scheduled dates collapsed into
	// contiguous dd/MM ranges, e.g. "03/01–05/01; 09/01".
	DuplicateDates string `json:"duplicate_dates,omitempty"`
}
