package pricing

import (
	"fmt"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SessionBooking/internal/domain"
)

// Policy ограничения платформы, которые каталог применяет при активации
type Policy struct {
	AllowFreeCalls          bool
	FreeCallDurationMinutes int
}

// Flags включенные в тариф дополнительные услуги
type Flags struct {
	ScreenSharing bool
	Translation   bool
	Recording     bool
	Transcription bool
}

// FlagsFromSet конвертирует набор услуг во флаги
func FlagsFromSet(set domain.AddOnSet) Flags {
	return Flags{
		ScreenSharing: set.Has(domain.AddOnScreenSharing),
		Translation:   set.Has(domain.AddOnTranslation),
		Recording:     set.Has(domain.AddOnRecording),
		Transcription: set.Has(domain.AddOnTranscription),
	}
}

func (f Flags) apply(t *domain.PricingTier) {
	t.IncludesScreenSharing = f.ScreenSharing
	t.IncludesTranslation = f.Translation
	t.IncludesRecording = f.Recording
	t.IncludesTranscription = f.Transcription
}

// ActivateRequest параметры активации тарифа
// Price и Flags опциональны для существующего тарифа: nil сохраняет текущие значения
type ActivateRequest struct {
	DurationMinutes int
	Price           *decimal.Decimal
	Flags           *Flags
	IsCustom        *bool
}

// Catalog снимок тарифов одного хоста
// Методы не потокобезопасны: каталог живёт в пределах одной операции
type Catalog struct {
	hostID int64
	policy Policy
	tiers  map[int]*domain.PricingTier
}

// NewCatalog создает каталог из сохранённых тарифов
func NewCatalog(hostID int64, tiers []domain.PricingTier, policy Policy) *Catalog {
	c := &Catalog{
		hostID: hostID,
		policy: policy,
		tiers:  make(map[int]*domain.PricingTier, len(tiers)),
	}
	for i := range tiers {
		tier := tiers[i]
		c.tiers[tier.DurationMinutes] = &tier
	}
	return c
}

// HostID возвращает владельца каталога
func (c *Catalog) HostID() int64 {
	return c.hostID
}

// Policy возвращает ограничения платформы, с которыми построен каталог
func (c *Catalog) Policy() Policy {
	return c.policy
}

// Activate активирует (и при необходимости создаёт) тариф с указанной длительностью
//
// Лимит domain.MaxActiveTiers проверяется в момент активации: считаются все активные тарифы,
// кроме изменяемого. При любой ошибке каталог не меняется
func (c *Catalog) Activate(req ActivateRequest) (domain.PricingTier, error) {
	if req.DurationMinutes < domain.MinTierDurationMinutes || req.DurationMinutes > domain.MaxTierDurationMinutes {
		return domain.PricingTier{}, fmt.Errorf("%w: duration must be between %d and %d minutes",
			ErrInvalidTier, domain.MinTierDurationMinutes, domain.MaxTierDurationMinutes)
	}
	if req.Price != nil && req.Price.IsNegative() {
		return domain.PricingTier{}, fmt.Errorf("%w: price must not be negative", ErrInvalidTier)
	}

	existing, exists := c.tiers[req.DurationMinutes]

	isFree := req.DurationMinutes == c.policy.FreeCallDurationMinutes
	if isFree && !c.policy.AllowFreeCalls {
		return domain.PricingTier{}, ErrFreeCallsDisabled
	}

	if c.activeCountExcluding(req.DurationMinutes)+1 > domain.MaxActiveTiers {
		return domain.PricingTier{}, ErrTooManyActiveTiers
	}

	var tier domain.PricingTier
	if exists {
		tier = *existing
	} else {
		if req.Price == nil && !isFree {
			return domain.PricingTier{}, ErrPriceRequired
		}
		tier = domain.PricingTier{
			HostID:          c.hostID,
			DurationMinutes: req.DurationMinutes,
			Price:           decimal.Zero,
			IsCustom:        !domain.IsStandardDuration(req.DurationMinutes),
		}
		// Новый тариф получает услуги, которые хост уже включил на остальных тарифах
		FlagsFromSet(c.HostServices()).apply(&tier)
	}

	if req.Price != nil {
		tier.Price = *req.Price
	}
	if isFree && !tier.Price.IsZero() {
		return domain.PricingTier{}, fmt.Errorf("%w: free consultation must have zero price", ErrInvalidTier)
	}
	if req.Flags != nil {
		req.Flags.apply(&tier)
	}
	if req.IsCustom != nil {
		tier.IsCustom = *req.IsCustom
	}
	tier.IsActive = true

	c.tiers[tier.DurationMinutes] = &tier
	return tier, nil
}

// Deactivate выключает тариф, не удаляя его: цена сохраняется для повторной активации
// Возвращает изменённый тариф и false, если тарифа с такой длительностью нет
func (c *Catalog) Deactivate(durationMinutes int) (domain.PricingTier, bool) {
	tier, ok := c.tiers[durationMinutes]
	if !ok {
		return domain.PricingTier{}, false
	}
	tier.IsActive = false
	return *tier, true
}

// SetAddOnInclusion применяет флаг услуги ко всем активным тарифам хоста
// Возвращает изменённые тарифы одной пачкой для сохранения
func (c *Catalog) SetAddOnInclusion(addOn domain.AddOn, included bool) []domain.PricingTier {
	changed := make([]domain.PricingTier, 0, domain.MaxActiveTiers)
	for _, duration := range c.sortedDurations() {
		tier := c.tiers[duration]
		if !tier.IsActive {
			continue
		}
		tier.SetIncludes(addOn, included)
		changed = append(changed, *tier)
	}
	return changed
}

// Tiers возвращает все тарифы (включая выключенные) по возрастанию длительности
func (c *Catalog) Tiers() []domain.PricingTier {
	result := make([]domain.PricingTier, 0, len(c.tiers))
	for _, duration := range c.sortedDurations() {
		result = append(result, *c.tiers[duration])
	}
	return result
}

// ActiveTiers возвращает тарифы, доступные клиенту для выбора
// Бесплатный тариф скрывается, если платформа запретила бесплатные звонки
func (c *Catalog) ActiveTiers() []domain.PricingTier {
	result := make([]domain.PricingTier, 0, domain.MaxActiveTiers)
	for _, duration := range c.sortedDurations() {
		tier := c.tiers[duration]
		if c.offered(tier) {
			result = append(result, *tier)
		}
	}
	return result
}

// Tier возвращает тариф по длительности независимо от активности
func (c *Catalog) Tier(durationMinutes int) (domain.PricingTier, bool) {
	tier, ok := c.tiers[durationMinutes]
	if !ok {
		return domain.PricingTier{}, false
	}
	return *tier, true
}

// ActiveTier возвращает активный тариф по длительности
func (c *Catalog) ActiveTier(durationMinutes int) (domain.PricingTier, bool) {
	tier, ok := c.tiers[durationMinutes]
	if !ok || !c.offered(tier) {
		return domain.PricingTier{}, false
	}
	return *tier, true
}

// ActiveCount количество активных тарифов (для лимита)
func (c *Catalog) ActiveCount() int {
	return c.activeCountExcluding(-1)
}

// HostServices услуги, которые хост включил на своих активных тарифах
func (c *Catalog) HostServices() domain.AddOnSet {
	set := make(domain.AddOnSet)
	for _, tier := range c.tiers {
		if !tier.IsActive {
			continue
		}
		for a := range tier.IncludedAddOns() {
			set[a] = true
		}
	}
	return set
}

func (c *Catalog) offered(tier *domain.PricingTier) bool {
	if !tier.IsActive {
		return false
	}
	if tier.IsFree(c.policy.FreeCallDurationMinutes) && !c.policy.AllowFreeCalls {
		return false
	}
	return true
}

func (c *Catalog) activeCountExcluding(durationMinutes int) int {
	count := 0
	for duration, tier := range c.tiers {
		if tier.IsActive && duration != durationMinutes {
			count++
		}
	}
	return count
}

func (c *Catalog) sortedDurations() []int {
	durations := make([]int, 0, len(c.tiers))
	for d := range c.tiers {
		durations = append(durations, d)
	}
	slices.Sort(durations)
	return durations
}
