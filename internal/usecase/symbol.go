package usecase

import (
	"context"
	"log/slog"
	"time"
)

// Kind identifies one of the three catalog tables. Glyphs and tones carry
// preview/description columns, kins do not.
type Kind struct {
	name       string
	table      string
	hasDetails bool
}

var (
	KindGlyph = Kind{name: "glyph", table: "glyphs", hasDetails: true}
	KindTone  = Kind{name: "tone", table: "tones", hasDetails: true}
	KindKin   = Kind{name: "kin", table: "kins"}
)

func Kinds() []Kind {
	return []Kind{KindGlyph, KindTone, KindKin}
}

func (k Kind) String() string   { return k.name }
func (k Kind) Table() string    { return k.table }
func (k Kind) HasDetails() bool { return k.hasDetails }

type Symbol struct {
	ID          uint
	Num         int
	Name        string
	Image       string
	Preview     string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewSymbol is a fully ingested submission. Image is either empty (no new
// upload) or a generated file name that is already durable in storage.
type NewSymbol struct {
	Num         int
	Name        string
	Image       string
	Preview     string
	Description string
}

func (u Usecase) ListSymbols(ctx context.Context, k Kind) ([]Symbol, error) {
	return u.repo.ListSymbols(ctx, k)
}

func (u Usecase) GetSymbol(ctx context.Context, k Kind, id uint) (Symbol, error) {
	return u.repo.GetSymbol(ctx, k, id)
}

// CreateSymbol persists a new record. The image file, if any, was written
// during ingestion, so the row is the only remaining side effect.
func (u Usecase) CreateSymbol(ctx context.Context, k Kind, in NewSymbol) (Symbol, error) {
	return u.repo.CreateSymbol(ctx, k, in)
}

// UpdateSymbol replaces every field of the record. An empty incoming image
// means the edit form posted no replacement: the stored name is kept and no
// file is touched. A non-empty image adopts the new name and deletes the old
// file once the row is persisted. That delete is best-effort; the row already
// references the new file, so a leftover is an orphan for the sweep, not an
// error.
func (u Usecase) UpdateSymbol(ctx context.Context, k Kind, id uint, in NewSymbol) (Symbol, error) {
	old, err := u.repo.GetSymbol(ctx, k, id)
	if err != nil {
		return Symbol{}, err
	}

	replacing := in.Image != ""
	if !replacing {
		in.Image = old.Image
	}

	updated, err := u.repo.UpdateSymbol(ctx, k, id, in)
	if err != nil {
		return Symbol{}, err
	}

	if replacing {
		if derr := u.fileStorageProvider.Delete(ctx, old.Image); derr != nil {
			u.logger.WarnContext(ctx, "orphaned replaced asset",
				slog.String("kind", k.String()),
				slog.String("file", old.Image),
				slog.String("err", derr.Error()))
		}
	}

	return updated, nil
}

// DeleteSymbol removes the row and then its image file. The file delete is
// best-effort with the same policy as UpdateSymbol.
func (u Usecase) DeleteSymbol(ctx context.Context, k Kind, id uint) (Symbol, error) {
	deleted, err := u.repo.DeleteSymbol(ctx, k, id)
	if err != nil {
		return Symbol{}, err
	}

	if derr := u.fileStorageProvider.Delete(ctx, deleted.Image); derr != nil {
		u.logger.WarnContext(ctx, "orphaned asset of deleted record",
			slog.String("kind", k.String()),
			slog.String("file", deleted.Image),
			slog.String("err", derr.Error()))
	}

	return deleted, nil
}
