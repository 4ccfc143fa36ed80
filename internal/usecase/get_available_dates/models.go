package get_available_dates

import "time"

// Request модель запроса на получение дат с доступными слотами
type Request struct {
	HostID int64
	From   time.Time
	To     time.Time
}

// Response модель ответа
type Response struct {
	HostID int64
	From   time.Time
	To     time.Time
	Dates  []time.Time
}
