package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/smallwins/internal/logging"
	"github.com/smallwins/internal/nutrition"
	"gorm.io/gorm"
)

// Today 是某用户当天的完整视图：存储中的状态加上一次重算的结果
type Today struct {
	Date     time.Time
	Settings UserSettings
	Entries  []nutrition.Entry
	Wellness Wellness
	Snapshot nutrition.Snapshot
}

// TrackerService 串联各存储与 nutrition 纯函数。
// 每次变更之后显式调用 recompute；同一用户的写操作串行执行。
type TrackerService struct {
	entries   *EntryService
	favorites *FavoriteService
	settings  *SettingService
	wellness  *WellnessService
	badges    *BadgeService
	rules     []nutrition.Rule
	logger    logging.Logger
	now       func() time.Time

	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

// NewTrackerService 构造 TrackerService
func NewTrackerService(gdb *gorm.DB, logger logging.Logger) *TrackerService {
	if logger == nil {
		logger = logging.Discard()
	}
	return &TrackerService{
		entries:   NewEntryService(gdb),
		favorites: NewFavoriteService(gdb),
		settings:  NewSettingService(gdb),
		wellness:  NewWellnessService(gdb),
		badges:    NewBadgeService(gdb),
		rules:     nutrition.DefaultRules,
		logger:    logger,
		now:       time.Now,
		locks:     make(map[uint]*sync.Mutex),
	}
}

// SetClock 替换时间来源，主要面向测试场景。
func (t *TrackerService) SetClock(now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	t.now = now
	t.entries.now = now
	t.badges.now = now
}

// Favorites 暴露收藏服务供 handler 使用
func (t *TrackerService) Favorites() *FavoriteService {
	return t.favorites
}

// Settings 读取用户设置
func (t *TrackerService) Settings(userID uint) (UserSettings, error) {
	return t.settings.GetSettings(userID)
}

// Today 重算并返回当天视图
func (t *TrackerService) Today(ctx context.Context, userID uint) (*Today, error) {
	unlock := t.lock(userID)
	defer unlock()

	return t.recompute(ctx, userID)
}

// AddEntry 校验候选条目、按家庭模式缩放一次后写入，并返回重算后的当天视图
func (t *TrackerService) AddEntry(ctx context.Context, userID uint, candidate nutrition.Candidate) (*nutrition.Entry, *Today, error) {
	unlock := t.lock(userID)
	defer unlock()

	settings, err := t.settings.GetSettings(userID)
	if err != nil {
		return nil, nil, err
	}

	resolved, err := candidate.Resolve(settings.Settings)
	if err != nil {
		return nil, nil, err
	}
	resolved.CreatedAt = t.now()

	created, err := t.entries.Create(userID, resolved)
	if err != nil {
		return nil, nil, err
	}

	t.logger.Info(ctx, "entry_logged",
		"user_id", userID,
		"entry_id", created.ID,
		"meal", created.Meal,
		"calories", created.Calories,
		"family_mode", settings.FamilyMode,
	)

	today, err := t.recompute(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return created, today, nil
}

// QuickAdd 把收藏作为候选条目记录，餐次按当前时间推断
func (t *TrackerService) QuickAdd(ctx context.Context, userID uint, favoriteID string) (*nutrition.Entry, *Today, error) {
	fav, err := t.favorites.Get(userID, favoriteID)
	if err != nil {
		return nil, nil, err
	}
	return t.AddEntry(ctx, userID, fav.Food.Candidate(nutrition.InferMeal(t.now())))
}

// RemoveEntry 删除条目；已获得的徽章不会因此撤销
func (t *TrackerService) RemoveEntry(ctx context.Context, userID uint, entryID string) (*Today, error) {
	unlock := t.lock(userID)
	defer unlock()

	if err := t.entries.Delete(userID, entryID); err != nil {
		return nil, err
	}
	t.logger.Info(ctx, "entry_removed", "user_id", userID, "entry_id", entryID)

	return t.recompute(ctx, userID)
}

// AdjustWater 调整当天饮水杯数
func (t *TrackerService) AdjustWater(ctx context.Context, userID uint, delta int) (*Today, error) {
	unlock := t.lock(userID)
	defer unlock()

	if _, err := t.wellness.AdjustWater(userID, t.now(), delta); err != nil {
		return nil, err
	}
	return t.recompute(ctx, userID)
}

// SetMood 记录当天心情
func (t *TrackerService) SetMood(ctx context.Context, userID uint, mood int) (*Today, error) {
	unlock := t.lock(userID)
	defer unlock()

	if _, err := t.wellness.SetMood(userID, t.now(), mood); err != nil {
		return nil, err
	}
	return t.recompute(ctx, userID)
}

// UpdateSettings 保存设置并重算；已记录条目的数值不会被重新缩放
func (t *TrackerService) UpdateSettings(ctx context.Context, userID uint, input SettingsInput) (*Today, error) {
	unlock := t.lock(userID)
	defer unlock()

	if _, err := t.settings.UpdateSettings(userID, input); err != nil {
		return nil, err
	}
	return t.recompute(ctx, userID)
}

func (t *TrackerService) recompute(ctx context.Context, userID uint) (*Today, error) {
	now := t.now()

	settings, err := t.settings.GetSettings(userID)
	if err != nil {
		return nil, err
	}
	entries, err := t.entries.ListForDay(userID, now)
	if err != nil {
		return nil, err
	}
	wellness, err := t.wellness.Get(userID, now)
	if err != nil {
		return nil, err
	}
	held, err := t.badges.ListForDay(userID, now)
	if err != nil {
		return nil, err
	}

	snapshot, err := nutrition.RecomputeWithRules(nutrition.DayState{
		Settings: settings.Settings,
		Entries:  entries,
		Water:    wellness.WaterCups,
		Badges:   held,
	}, t.rules)
	if err != nil {
		if errors.Is(err, nutrition.ErrMalformedEntry) {
			t.logger.Error(ctx, "stored entry rejected by aggregator", "user_id", userID, "error", err)
		}
		return nil, fmt.Errorf("recompute day: %w", err)
	}

	if err := t.badges.Record(userID, now, snapshot.NewBadges); err != nil {
		return nil, err
	}
	for _, b := range snapshot.NewBadges {
		t.logger.Info(ctx, "badge_earned", "user_id", userID, "badge", b.Key)
	}

	return &Today{
		Date:     normalizeToDate(now),
		Settings: settings,
		Entries:  entries,
		Wellness: wellness,
		Snapshot: snapshot,
	}, nil
}

func (t *TrackerService) lock(userID uint) func() {
	t.mu.Lock()
	m, ok := t.locks[userID]
	if !ok {
		m = &sync.Mutex{}
		t.locks[userID] = m
	}
	t.mu.Unlock()

	m.Lock()
	return m.Unlock
}
