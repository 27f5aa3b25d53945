package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/dreamspell/dreamspell/internal/usecase"
)

// Table layout mirrors the original catalog schema: glyphs and tones carry
// preview/description, kins do not.

type Glyph struct {
	ID          uint      `gorm:"column:id;primaryKey"`
	Num         int       `gorm:"column:num;type:int;not null"`
	Name        string    `gorm:"column:name;type:varchar(255);not null"`
	Image       string    `gorm:"column:image;type:varchar(255);not null;default:''"`
	Preview     string    `gorm:"column:preview;type:text"`
	Description string    `gorm:"column:description;type:text"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (Glyph) TableName() string { return "glyphs" }

type Tone struct {
	ID          uint      `gorm:"column:id;primaryKey"`
	Num         int       `gorm:"column:num;type:int;not null"`
	Name        string    `gorm:"column:name;type:varchar(255);not null"`
	Image       string    `gorm:"column:image;type:varchar(255);not null;default:''"`
	Preview     string    `gorm:"column:preview;type:text"`
	Description string    `gorm:"column:description;type:text"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (Tone) TableName() string { return "tones" }

type Kin struct {
	ID        uint      `gorm:"column:id;primaryKey"`
	Num       int       `gorm:"column:num;type:int;not null"`
	Name      string    `gorm:"column:name;type:varchar(255);not null"`
	Image     string    `gorm:"column:image;type:varchar(255);not null;default:''"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Kin) TableName() string { return "kins" }

func (g *Glyph) fill(s usecase.NewSymbol) {
	g.Num = s.Num
	g.Name = s.Name
	g.Image = s.Image
	g.Preview = s.Preview
	g.Description = s.Description
}

func (g *Glyph) convertToUsecase() usecase.Symbol {
	return usecase.Symbol{
		ID:          g.ID,
		Num:         g.Num,
		Name:        g.Name,
		Image:       g.Image,
		Preview:     g.Preview,
		Description: g.Description,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}
}

func (t *Tone) fill(s usecase.NewSymbol) {
	t.Num = s.Num
	t.Name = s.Name
	t.Image = s.Image
	t.Preview = s.Preview
	t.Description = s.Description
}

func (t *Tone) convertToUsecase() usecase.Symbol {
	return usecase.Symbol{
		ID:          t.ID,
		Num:         t.Num,
		Name:        t.Name,
		Image:       t.Image,
		Preview:     t.Preview,
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func (k *Kin) fill(s usecase.NewSymbol) {
	k.Num = s.Num
	k.Name = s.Name
	k.Image = s.Image
}

func (k *Kin) convertToUsecase() usecase.Symbol {
	return usecase.Symbol{
		ID:        k.ID,
		Num:       k.Num,
		Name:      k.Name,
		Image:     k.Image,
		CreatedAt: k.CreatedAt,
		UpdatedAt: k.UpdatedAt,
	}
}

// symbolRow lets one generic CRUD implementation serve all three tables.
type symbolRow[R any] interface {
	*R
	fill(usecase.NewSymbol)
	convertToUsecase() usecase.Symbol
}

func listSymbols[R any, P symbolRow[R]](ctx context.Context, db *gorm.DB) ([]usecase.Symbol, error) {
	var rows []R
	if err := db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]usecase.Symbol, 0, len(rows))
	for i := range rows {
		out = append(out, P(&rows[i]).convertToUsecase())
	}
	return out, nil
}

func getSymbol[R any, P symbolRow[R]](ctx context.Context, db *gorm.DB, id uint) (usecase.Symbol, error) {
	var row R
	if err := db.WithContext(ctx).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return usecase.Symbol{}, usecase.ErrNotFound
		}
		return usecase.Symbol{}, err
	}
	return P(&row).convertToUsecase(), nil
}

func createSymbol[R any, P symbolRow[R]](ctx context.Context, db *gorm.DB, s usecase.NewSymbol) (usecase.Symbol, error) {
	var row R
	P(&row).fill(s)
	if err := db.WithContext(ctx).Create(&row).Error; err != nil {
		return usecase.Symbol{}, err
	}
	return P(&row).convertToUsecase(), nil
}

// updateSymbol is a full replacement: every column is overwritten with the
// incoming value. Merge decisions happen in the usecase layer before the
// call, so an empty field here really means empty.
func updateSymbol[R any, P symbolRow[R]](ctx context.Context, db *gorm.DB, id uint, s usecase.NewSymbol) (usecase.Symbol, error) {
	var row R
	if err := db.WithContext(ctx).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return usecase.Symbol{}, usecase.ErrNotFound
		}
		return usecase.Symbol{}, err
	}

	P(&row).fill(s)
	if err := db.WithContext(ctx).Save(&row).Error; err != nil {
		return usecase.Symbol{}, err
	}
	return P(&row).convertToUsecase(), nil
}

func deleteSymbol[R any, P symbolRow[R]](ctx context.Context, db *gorm.DB, id uint) (usecase.Symbol, error) {
	var row R
	if err := db.WithContext(ctx).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return usecase.Symbol{}, usecase.ErrNotFound
		}
		return usecase.Symbol{}, err
	}

	if err := db.WithContext(ctx).Delete(&row).Error; err != nil {
		return usecase.Symbol{}, err
	}
	return P(&row).convertToUsecase(), nil
}

func (s *service) ListSymbols(ctx context.Context, k usecase.Kind) ([]usecase.Symbol, error) {
	switch k {
	case usecase.KindGlyph:
		return listSymbols[Glyph](ctx, s.db)
	case usecase.KindTone:
		return listSymbols[Tone](ctx, s.db)
	case usecase.KindKin:
		return listSymbols[Kin](ctx, s.db)
	}
	return nil, fmt.Errorf("unknown symbol kind %q", k)
}

func (s *service) GetSymbol(ctx context.Context, k usecase.Kind, id uint) (usecase.Symbol, error) {
	switch k {
	case usecase.KindGlyph:
		return getSymbol[Glyph](ctx, s.db, id)
	case usecase.KindTone:
		return getSymbol[Tone](ctx, s.db, id)
	case usecase.KindKin:
		return getSymbol[Kin](ctx, s.db, id)
	}
	return usecase.Symbol{}, fmt.Errorf("unknown symbol kind %q", k)
}

func (s *service) CreateSymbol(ctx context.Context, k usecase.Kind, sym usecase.NewSymbol) (usecase.Symbol, error) {
	switch k {
	case usecase.KindGlyph:
		return createSymbol[Glyph](ctx, s.db, sym)
	case usecase.KindTone:
		return createSymbol[Tone](ctx, s.db, sym)
	case usecase.KindKin:
		return createSymbol[Kin](ctx, s.db, sym)
	}
	return usecase.Symbol{}, fmt.Errorf("unknown symbol kind %q", k)
}

func (s *service) UpdateSymbol(ctx context.Context, k usecase.Kind, id uint, sym usecase.NewSymbol) (usecase.Symbol, error) {
	switch k {
	case usecase.KindGlyph:
		return updateSymbol[Glyph](ctx, s.db, id, sym)
	case usecase.KindTone:
		return updateSymbol[Tone](ctx, s.db, id, sym)
	case usecase.KindKin:
		return updateSymbol[Kin](ctx, s.db, id, sym)
	}
	return usecase.Symbol{}, fmt.Errorf("unknown symbol kind %q", k)
}

func (s *service) DeleteSymbol(ctx context.Context, k usecase.Kind, id uint) (usecase.Symbol, error) {
	switch k {
	case usecase.KindGlyph:
		return deleteSymbol[Glyph](ctx, s.db, id)
	case usecase.KindTone:
		return deleteSymbol[Tone](ctx, s.db, id)
	case usecase.KindKin:
		return deleteSymbol[Kin](ctx, s.db, id)
	}
	return usecase.Symbol{}, fmt.Errorf("unknown symbol kind %q", k)
}

// ListReferencedImages returns the non-empty image names the kind's table
// currently references. The sweep treats the union across kinds as live.
func (s *service) ListReferencedImages(ctx context.Context, k usecase.Kind) ([]string, error) {
	var names []string
	err := s.db.WithContext(ctx).
		Table(k.Table()).
		Where("image <> ''").
		Pluck("image", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}
