package rules

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SessionBooking/internal/domain"
	"github.com/m04kA/SMC-SessionBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SessionBooking/pkg/psqlbuilder"
)

const (
	weeklyRulesTable = "host_weekly_rules"
	dateRulesTable   = "host_date_rules"
)

// Repository репозиторий правил доступности хостов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория правил
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetRuleSet читает все правила хоста
// Для согласованного снимка вызывается внутри read-only транзакции
func (r *Repository) GetRuleSet(ctx context.Context, hostID int64) (domain.RuleSet, error) {
	weekly, err := r.getWeekly(ctx, hostID)
	if err != nil {
		return domain.RuleSet{}, err
	}

	dates, err := r.getDates(ctx, hostID)
	if err != nil {
		return domain.RuleSet{}, err
	}

	return domain.RuleSet{Weekly: weekly, Dates: dates}, nil
}

func (r *Repository) getWeekly(ctx context.Context, hostID int64) ([]domain.WeeklyRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "host_id", "day_of_week", "start_time", "end_time").
		From(weeklyRulesTable).
		Where(squirrel.Eq{"host_id": hostID}).
		OrderBy("day_of_week", "start_time").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getWeekly - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getWeekly - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rules := make([]domain.WeeklyRule, 0)
	for rows.Next() {
		var rule domain.WeeklyRule
		if err := rows.Scan(&rule.ID, &rule.HostID, &rule.DayOfWeek, &rule.StartTime, &rule.EndTime); err != nil {
			return nil, fmt.Errorf("%w: getWeekly - scan row: %v", ErrScanRow, err)
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getWeekly - rows error: %v", ErrScanRow, err)
	}

	return rules, nil
}

func (r *Repository) getDates(ctx context.Context, hostID int64) ([]domain.DateRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "host_id", "rule_date", "start_time", "end_time").
		From(dateRulesTable).
		Where(squirrel.Eq{"host_id": hostID}).
		OrderBy("rule_date", "start_time").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getDates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getDates - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rules := make([]domain.DateRule, 0)
	for rows.Next() {
		var rule domain.DateRule
		var date sql.NullTime
		if err := rows.Scan(&rule.ID, &rule.HostID, &date, &rule.StartTime, &rule.EndTime); err != nil {
			return nil, fmt.Errorf("%w: getDates - scan row: %v", ErrScanRow, err)
		}
		rule.Date = domain.DateOnly(date.Time)
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getDates - rows error: %v", ErrScanRow, err)
	}

	return rules, nil
}
