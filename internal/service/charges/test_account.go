package charges

// TestAccountPolicy обнуляет цены для служебного QA-аккаунта
// Проверка только по точному id аккаунта клиента; 0 выключает политику
type TestAccountPolicy struct {
	accountID int64
	logger    Logger
}

// NewTestAccountPolicy создает политику для аккаунта accountID
func NewTestAccountPolicy(accountID int64, logger Logger) *TestAccountPolicy {
	return &TestAccountPolicy{
		accountID: accountID,
		logger:    logger,
	}
}

// Enabled возвращает true, если тестовый аккаунт настроен
func (p *TestAccountPolicy) Enabled() bool {
	return p != nil && p.accountID > 0
}

// Applies возвращает true, если клиент является тестовым аккаунтом
// Каждое срабатывание логируется на уровне warn
func (p *TestAccountPolicy) Applies(clientID int64) bool {
	if !p.Enabled() || clientID != p.accountID {
		return false
	}
	p.logger.Warn("TestAccountPolicy: prices zeroed for test account=%d", clientID)
	return true
}
