package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SessionBooking/internal/domain"
	"github.com/m04kA/SMC-SessionBooking/pkg/types"
)

// Service читает правила доступности хоста и разворачивает их в слоты
type Service struct {
	ruleRepo  RuleRepository
	txManager TransactionManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(ruleRepo RuleRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		ruleRepo:  ruleRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// GetRules читает еженедельные и датированные правила хоста одним снимком
// (read-only транзакция repeatable read)
func (s *Service) GetRules(ctx context.Context, hostID int64) (domain.RuleSet, error) {
	if hostID <= 0 {
		return domain.RuleSet{}, fmt.Errorf("%w: hostID must be positive", ErrInvalidInput)
	}

	var rules domain.RuleSet
	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		rules, err = s.ruleRepo.GetRuleSet(txCtx, hostID)
		return err
	})
	if err != nil {
		s.logger.Error("GetRules: failed to load rules for host=%d: %v", hostID, err)
		return domain.RuleSet{}, fmt.Errorf("%w: host=%d: %v", ErrRulesUnavailable, hostID, err)
	}

	s.logger.Info("GetRules: host=%d weekly=%d dated=%d", hostID, len(rules.Weekly), len(rules.Dates))
	return rules, nil
}

// GetSlots читает правила хоста и возвращает слоты на дату
func (s *Service) GetSlots(ctx context.Context, hostID int64, date time.Time) ([]types.TimeString, error) {
	rules, err := s.GetRules(ctx, hostID)
	if err != nil {
		return nil, err
	}

	slots, err := ResolveSlots(date, rules)
	if err != nil {
		s.logger.Error("GetSlots: host=%d has misconfigured rules: %v", hostID, err)
		return nil, err
	}
	return slots, nil
}
