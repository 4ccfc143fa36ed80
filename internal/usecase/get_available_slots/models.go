package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SessionBooking/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	UserID          int64     // ID пользователя (для логирования, не влияет на результат)
	HostID          int64     // ID хоста
	Date            time.Time // Дата для получения слотов (без времени)
	DurationMinutes int       // Длительность сессии для проверки пересечений с бронированиями (0 - шаг слота)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date   time.Time
	HostID int64
	Slots  []types.TimeString
}
