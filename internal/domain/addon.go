package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// AddOn дополнительная платная услуга к сессии
type AddOn string

const (
	AddOnScreenSharing AddOn = "screen_sharing"
	AddOnTranslation   AddOn = "translation"
	AddOnRecording     AddOn = "recording"
	AddOnTranscription AddOn = "transcription"
)

// AllAddOns все дополнительные услуги в каноническом порядке
var AllAddOns = []AddOn{
	AddOnScreenSharing,
	AddOnTranslation,
	AddOnRecording,
	AddOnTranscription,
}

// ParseAddOn конвертирует строку в AddOn
func ParseAddOn(s string) (AddOn, error) {
	for _, a := range AllAddOns {
		if string(a) == s {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidAddOn, s)
}

// AddOnSet набор выбранных дополнительных услуг
type AddOnSet map[AddOn]bool

// NewAddOnSet создает набор из перечисленных услуг
func NewAddOnSet(addOns ...AddOn) AddOnSet {
	set := make(AddOnSet, len(addOns))
	for _, a := range addOns {
		set[a] = true
	}
	return set
}

// Has возвращает true, если услуга выбрана
func (s AddOnSet) Has(a AddOn) bool {
	return s[a]
}

// List возвращает выбранные услуги в каноническом порядке
func (s AddOnSet) List() []AddOn {
	list := make([]AddOn, 0, len(s))
	for _, a := range AllAddOns {
		if s[a] {
			list = append(list, a)
		}
	}
	return list
}

// Clone возвращает независимую копию набора
func (s AddOnSet) Clone() AddOnSet {
	return NewAddOnSet(s.List()...)
}

// AddOnPriceTable цены дополнительных услуг, настраиваются на уровне платформы
type AddOnPriceTable struct {
	ScreenSharing decimal.Decimal
	Translation   decimal.Decimal
	Recording     decimal.Decimal
	Transcription decimal.Decimal
}

// Price возвращает цену услуги
func (t AddOnPriceTable) Price(a AddOn) decimal.Decimal {
	switch a {
	case AddOnScreenSharing:
		return t.ScreenSharing
	case AddOnTranslation:
		return t.Translation
	case AddOnRecording:
		return t.Recording
	case AddOnTranscription:
		return t.Transcription
	default:
		return decimal.Zero
	}
}
