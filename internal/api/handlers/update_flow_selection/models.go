package update_flow_selection

import (
	"github.com/m04kA/SMC-SessionBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SessionBooking/internal/domain"
	"github.com/m04kA/SMC-SessionBooking/internal/workflow"
	"github.com/m04kA/SMC-SessionBooking/pkg/types"
)

// UpdateSelectionRequest HTTP request model
// Переданные поля применяются по порядку: дата, время, тариф, услуги.
// Запрос применяется целиком или не применяется вовсе
type UpdateSelectionRequest struct {
	Date            *string         `json:"date,omitempty"`
	Time            *string         `json:"time,omitempty"`
	DurationMinutes *int            `json:"durationMinutes,omitempty" validate:"omitempty,min=0"`
	AddOns          map[string]bool `json:"addOns,omitempty"`
}

// IsEmpty возвращает true, если запрос ничего не меняет
func (r *UpdateSelectionRequest) IsEmpty() bool {
	return r.Date == nil && r.Time == nil && r.DurationMinutes == nil && len(r.AddOns) == 0
}

// ToUpdate конвертирует запрос в изменения процесса
func (r *UpdateSelectionRequest) ToUpdate() (workflow.SelectionUpdate, error) {
	update := workflow.SelectionUpdate{DurationMinutes: r.DurationMinutes}

	if r.Date != nil {
		date, err := handlers.ParseDate(*r.Date)
		if err != nil {
			return workflow.SelectionUpdate{}, err
		}
		update.Date = &date
	}

	if r.Time != nil {
		t := types.TimeString(*r.Time)
		update.Time = &t
	}

	if len(r.AddOns) > 0 {
		update.AddOns = make(map[domain.AddOn]bool, len(r.AddOns))
		for name, selected := range r.AddOns {
			addOn, err := domain.ParseAddOn(name)
			if err != nil {
				return workflow.SelectionUpdate{}, err
			}
			update.AddOns[addOn] = selected
		}
	}

	return update, nil
}

// Apply применяет изменения к процессу одной операцией
func (r *UpdateSelectionRequest) Apply(flow *workflow.Workflow) error {
	update, err := r.ToUpdate()
	if err != nil {
		return err
	}
	return flow.Update(update)
}
