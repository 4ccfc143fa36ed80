package domain

import (
	"errors"
	"fmt"
)

// Классы ошибок. Ошибки пакетов оборачивают один из них,
// поэтому errors.Is(err, domain.ErrValidation) работает на любом уровне
var (
	// ErrValidation некорректные данные или не выполнено условие перехода
	ErrValidation = errors.New("validation error")

	// ErrCapacity превышен лимит (например, активных тарифов)
	ErrCapacity = errors.New("capacity exceeded")

	// ErrConfigurationGated функция выключена настройками платформы
	ErrConfigurationGated = errors.New("disabled by platform configuration")

	// ErrExternalOperation ошибка внешнего источника (хранилище, платёжный провайдер)
	ErrExternalOperation = errors.New("external operation failed")

	// ErrInvalidTransition переход не разрешён из текущего состояния
	ErrInvalidTransition = errors.New("invalid state transition")

	// ErrOperationInFlight предыдущая операция ещё выполняется
	ErrOperationInFlight = errors.New("operation already in progress")
)

var (
	// ErrInvalidRule правило доступности содержит некорректное время
	ErrInvalidRule = fmt.Errorf("%w: invalid availability rule", ErrValidation)

	// ErrInvalidAddOn неизвестная дополнительная услуга
	ErrInvalidAddOn = fmt.Errorf("%w: unknown add-on", ErrValidation)
)
