package service

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/smallwins/internal/db"
	"github.com/smallwins/internal/nutrition"
	"gorm.io/gorm"
)

var (
	// ErrFavoriteNotFound 在收藏不存在时返回
	ErrFavoriteNotFound = errors.New("favorite not found")
	// ErrFavoriteInvalid 在收藏名称为空或数值非法时返回
	ErrFavoriteInvalid = errors.New("invalid favorite")
)

// FavoriteService 负责收藏的增删改查，不参与当日统计
type FavoriteService struct {
	db *gorm.DB
}

// FavoriteInput 定义创建/更新收藏时的字段
type FavoriteInput struct {
	Name     string
	Calories float64
	Protein  float64
}

// Favorite 是对外暴露的收藏视图
type Favorite struct {
	ID string
	nutrition.Food
}

// NewFavoriteService 构造 FavoriteService
func NewFavoriteService(gdb *gorm.DB) *FavoriteService {
	return &FavoriteService{db: gdb}
}

// List 返回用户的收藏，最新创建的在前
func (s *FavoriteService) List(userID uint) ([]Favorite, error) {
	var rows []db.Favorite
	if err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}

	items := make([]Favorite, 0, len(rows))
	for _, row := range rows {
		items = append(items, toFavorite(row))
	}
	return items, nil
}

// Get 根据 ID 获取收藏
func (s *FavoriteService) Get(userID uint, id string) (*Favorite, error) {
	var row db.Favorite
	if err := s.db.Where("user_id = ? AND id = ?", userID, id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFavoriteNotFound
		}
		return nil, fmt.Errorf("get favorite: %w", err)
	}
	fav := toFavorite(row)
	return &fav, nil
}

// Create 新建收藏
func (s *FavoriteService) Create(userID uint, input FavoriteInput) (*Favorite, error) {
	if err := validateFavoriteInput(input); err != nil {
		return nil, err
	}

	row := db.Favorite{
		ID:       uuid.NewString(),
		UserID:   userID,
		Name:     strings.TrimSpace(input.Name),
		Calories: input.Calories,
		Protein:  input.Protein,
	}
	if err := s.db.Create(&row).Error; err != nil {
		return nil, fmt.Errorf("create favorite: %w", err)
	}

	fav := toFavorite(row)
	return &fav, nil
}

// Update 更新收藏
func (s *FavoriteService) Update(userID uint, id string, input FavoriteInput) (*Favorite, error) {
	if err := validateFavoriteInput(input); err != nil {
		return nil, err
	}

	var existing db.Favorite
	if err := s.db.Where("user_id = ? AND id = ?", userID, id).First(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFavoriteNotFound
		}
		return nil, fmt.Errorf("find favorite: %w", err)
	}

	existing.Name = strings.TrimSpace(input.Name)
	existing.Calories = input.Calories
	existing.Protein = input.Protein

	if err := s.db.Save(&existing).Error; err != nil {
		return nil, fmt.Errorf("update favorite: %w", err)
	}

	fav := toFavorite(existing)
	return &fav, nil
}

// Delete 删除收藏
func (s *FavoriteService) Delete(userID uint, id string) error {
	result := s.db.Where("user_id = ? AND id = ?", userID, id).Delete(&db.Favorite{})
	if result.Error != nil {
		return fmt.Errorf("delete favorite: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}

// SeedStarters 为新用户写入默认收藏
func (s *FavoriteService) SeedStarters(userID uint) error {
	rows := make([]db.Favorite, 0, len(nutrition.StarterFavorites))
	for _, food := range nutrition.StarterFavorites {
		rows = append(rows, db.Favorite{
			ID:       uuid.NewString(),
			UserID:   userID,
			Name:     food.Name,
			Calories: food.Calories,
			Protein:  food.Protein,
		})
	}
	if err := s.db.Create(&rows).Error; err != nil {
		return fmt.Errorf("seed favorites: %w", err)
	}
	return nil
}

func validateFavoriteInput(input FavoriteInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrFavoriteInvalid)
	}
	if !validNumber(input.Calories) || !validNumber(input.Protein) {
		return fmt.Errorf("%w: calories and protein must be non-negative", ErrFavoriteInvalid)
	}
	return nil
}

func validNumber(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

func toFavorite(row db.Favorite) Favorite {
	return Favorite{
		ID:   row.ID,
		Food: nutrition.Food{Name: row.Name, Calories: row.Calories, Protein: row.Protein},
	}
}
