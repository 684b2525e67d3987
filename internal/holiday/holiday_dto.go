package holiday

type CreateHolidayRequest struct {
	HolidayDate string `json:"holiday_date" binding:"required"`
	Name        string `json:"name" binding:"required,max=120"`
}

type HolidayResponse struct {
	ID          string `json:"id"`
	HolidayDate string `json:"holiday_date"`
	Name        string `json:"name"`
}
