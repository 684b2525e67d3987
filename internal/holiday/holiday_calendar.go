package holiday

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go-payroll/internal/leave"
	"go-payroll/internal/tenant"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	CalendarKeyPrefix = "holidays:"
	calendarTTL       = time.Hour
)

func GetCalendarKey(companyID string, year int) string {
	return fmt.Sprintf("%s%s:%d", CalendarKeyPrefix, companyID, year)
}

// TenantResolver supplies weekly off days.
type TenantResolver interface {
	Resolve(ctx context.Context, companyID string) (tenant.Resolved, error)
}

//go:generate mockgen -source=holiday_calendar.go -destination=mock/holiday_calendar_mock.go -package=mock
type Calendar interface {
	IsHoliday(ctx context.Context, companyID string, date time.Time) (bool, error)
	// Holidays returns the non-working dates in [start, end]: declared
	// holidays plus the tenant's weekly off days, keyed by leave.DateKey.
	Holidays(ctx context.Context, companyID string, start, end time.Time) (map[string]struct{}, error)
	Invalidate(ctx context.Context, companyID string, year int)
}

type calendar struct {
	repo    Repository
	tenants TenantResolver
	rdb     redis.UniversalClient
	sf      *singleflight.Group
	logger  *zap.Logger
}

func NewCalendar(repo Repository, tenants TenantResolver, rdb redis.UniversalClient, logger ...*zap.Logger) Calendar {
	l := zap.L().Named("holiday.calendar")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("holiday.calendar")
	}
	return &calendar{
		repo:    repo,
		tenants: tenants,
		rdb:     rdb,
		sf:      &singleflight.Group{},
		logger:  l,
	}
}

func (c *calendar) IsHoliday(ctx context.Context, companyID string, date time.Time) (bool, error) {
	days, err := c.Holidays(ctx, companyID, date, date)
	if err != nil {
		return false, err
	}
	_, ok := days[leave.DateKey(date)]
	return ok, nil
}

func (c *calendar) Holidays(ctx context.Context, companyID string, start, end time.Time) (map[string]struct{}, error) {
	settings, err := c.tenants.Resolve(ctx, companyID)
	if err != nil {
		return nil, err
	}

	offs := make(map[time.Weekday]bool, len(settings.WeeklyOffs))
	for _, d := range settings.WeeklyOffs {
		offs[d] = true
	}

	days := make(map[string]struct{})
	for year := start.Year(); year <= end.Year(); year++ {
		declared, err := c.declaredForYear(ctx, companyID, year)
		if err != nil {
			return nil, err
		}
		for _, k := range declared {
			days[k] = struct{}{}
		}
	}

	lo := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	hi := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	result := make(map[string]struct{})
	for d := lo; !d.After(hi); d = d.AddDate(0, 0, 1) {
		key := leave.DateKey(d)
		if _, ok := days[key]; ok || offs[d.Weekday()] {
			result[key] = struct{}{}
		}
	}
	return result, nil
}

func (c *calendar) declaredForYear(ctx context.Context, companyID string, year int) ([]string, error) {
	cacheKey := GetCalendarKey(companyID, year)

	if c.rdb != nil {
		if cached, err := c.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var dates []string
			if json.Unmarshal([]byte(cached), &dates) == nil {
				return dates, nil
			}
		}
	}

	v, err, _ := c.sf.Do(cacheKey, func() (interface{}, error) {
		start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
		holidays, err := c.repo.FindBetween(ctx, companyID, start, end)
		if err != nil {
			return nil, err
		}

		dates := make([]string, 0, len(holidays))
		for _, h := range holidays {
			dates = append(dates, leave.DateKey(h.HolidayDate))
		}

		if c.rdb != nil {
			if body, err := json.Marshal(dates); err == nil {
				if err := c.rdb.Set(ctx, cacheKey, body, calendarTTL).Err(); err != nil {
					c.logger.Warn("cache holidays failed", zap.String("key", cacheKey), zap.Error(err))
				}
			}
		}
		return dates, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]string), nil
}

func (c *calendar) Invalidate(ctx context.Context, companyID string, year int) {
	if c.rdb == nil {
		return
	}
	cacheKey := GetCalendarKey(companyID, year)
	if err := c.rdb.Del(ctx, cacheKey).Err(); err != nil {
		c.logger.Error("failed to invalidate holiday cache",
			zap.String("key", cacheKey),
			zap.Error(err),
		)
	}
}
