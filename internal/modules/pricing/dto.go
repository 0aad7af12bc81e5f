package pricing

type CreateRuleRequest struct {
	FieldID   int64   `json:"field_id" binding:"required"`
	StartTime string  `json:"start_time" binding:"required,clock"`
	EndTime   string  `json:"end_time" binding:"required,clock"`
	Price     float64 `json:"price" binding:"gte=0"`
}

type UpdateRuleRequest struct {
	StartTime string  `json:"start_time" binding:"required,clock"`
	EndTime   string  `json:"end_time" binding:"required,clock"`
	Price     float64 `json:"price" binding:"gte=0"`
}

// SlotPriceUpdate is pushed to facility watchers after a rule change
// rewrites slot prices.
type SlotPriceUpdate struct {
	Type       string        `json:"type"`
	FacilityID int64         `json:"facility_id"`
	FieldID    int64         `json:"field_id"`
	Slots      []UpdatedSlot `json:"slots"`
}

type UpdatedSlot struct {
	SlotID    int64   `json:"slot_id"`
	Date      string  `json:"date"`
	StartTime string  `json:"start_time"`
	EndTime   string  `json:"end_time"`
	Price     float64 `json:"price"`
}
