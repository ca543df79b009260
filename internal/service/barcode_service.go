package service

import (
	"errors"
	"strings"

	"github.com/smallwins/internal/nutrition"
)

// ErrBarcodeNotFound 条码不在食物目录中
var ErrBarcodeNotFound = errors.New("barcode not found")

// BarcodeService 按条码查询食物，结果作为普通候选条目使用
type BarcodeService struct{}

// NewBarcodeService 构造 BarcodeService
func NewBarcodeService() *BarcodeService {
	return &BarcodeService{}
}

// Lookup 查询条码
func (s *BarcodeService) Lookup(code string) (nutrition.Food, error) {
	if strings.TrimSpace(code) == "" {
		return nutrition.Food{}, ErrBarcodeNotFound
	}
	food, ok := nutrition.LookupBarcode(code)
	if !ok {
		return nutrition.Food{}, ErrBarcodeNotFound
	}
	return food, nil
}
