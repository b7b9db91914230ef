package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"ev-chart-station/pkg/idgen"
	"ev-chart-station/pkg/station"
)

// Open 按驱动名打开数据库
// 开启 TranslateError，唯一索引冲突统一为 gorm.ErrDuplicatedKey
func Open(driver, dsn string, log *zap.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "sqlite":
		dialector = sqlite.Open(dsn)
	case "mysql":
		dialector = mysql.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}

	cfg := &gorm.Config{TranslateError: true}
	if log != nil {
		cfg.Logger = gormlogger.New(zap.NewStdLog(log.Named("gorm")), gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		})
	} else {
		cfg.Logger = gormlogger.Discard
	}

	db, err := gorm.Open(dialector, cfg)
	if err != nil {
		return nil, fmt.Errorf("repository: open %s: %w", driver, err)
	}
	return db, nil
}

// Migrate 建表
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&StationModel{})
}

// StationStore 站点持久化
type StationStore struct {
	db  *gorm.DB
	ids idgen.Generator
}

func NewStationStore(db *gorm.DB, ids idgen.Generator) *StationStore {
	return &StationStore{db: db, ids: ids}
}

// Create 保存新站点
// 唯一键已存在时返回 ErrDuplicateStation
func (s *StationStore) Create(ctx context.Context, orgID string, r *station.Record) (*StationModel, error) {
	m := FromRecord(orgID, r)

	exists, err := s.exists(ctx, m.StationID, m.NetworkProvider, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateStation
	}

	id, err := idgen.Next(s.ids)
	if err != nil {
		return nil, fmt.Errorf("repository: generate id: %w", err)
	}
	m.ID = id
	// 创建时间取自 ID，两者一致
	m.CreatedAt = id.Time()

	if err := s.db.WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateStation
		}
		return nil, fmt.Errorf("repository: create station: %w", err)
	}
	return m, nil
}

// Update 覆盖已有站点
func (s *StationStore) Update(ctx context.Context, orgID string, id idgen.ID, r *station.Record) (*StationModel, error) {
	m, err := s.Get(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	exists, err := s.exists(ctx, r.StationID, r.NetworkProvider, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateStation
	}

	m.apply(r)
	if err := s.db.WithContext(ctx).Save(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateStation
		}
		return nil, fmt.Errorf("repository: update station %s: %w", id, err)
	}
	return m, nil
}

// Get 读取本机构的站点
func (s *StationStore) Get(ctx context.Context, orgID string, id idgen.ID) (*StationModel, error) {
	var m StationModel
	err := s.db.WithContext(ctx).
		Where("id = ? AND org_id = ?", id, orgID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStationNotFound
		}
		return nil, fmt.Errorf("repository: get station %s: %w", id, err)
	}
	return &m, nil
}

// List 本机构的全部站点，按创建顺序
func (s *StationStore) List(ctx context.Context, orgID string) ([]StationModel, error) {
	var list []StationModel
	err := s.db.WithContext(ctx).
		Where("org_id = ?", orgID).
		Order("id").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("repository: list stations: %w", err)
	}
	return list, nil
}

// exists 唯一键是否被其他站点占用，exclude 为 0 时不排除
func (s *StationStore) exists(ctx context.Context, stationID, provider string, exclude idgen.ID) (bool, error) {
	q := s.db.WithContext(ctx).Model(&StationModel{}).
		Where("station_id = ? AND network_provider = ?", stationID, provider)
	if exclude != 0 {
		q = q.Where("id <> ?", exclude)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, fmt.Errorf("repository: check duplicate: %w", err)
	}
	return n > 0, nil
}
