package usecase

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUsecase(repo *fakeRepo, fsp *fakeStorage) Usecase {
	return New(repo, fsp, nil, []byte("test-secret"), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func mustCreateWithImage(t *testing.T, u Usecase, fsp *fakeStorage, k Kind, in NewSymbol, original string) Symbol {
	t.Helper()
	name := fsp.NameWithPrefix(original)
	require.NoError(t, fsp.Save(context.Background(), name, strings.NewReader("png")))
	in.Image = name
	s, err := u.CreateSymbol(context.Background(), k, in)
	require.NoError(t, err)
	return s
}

func TestCreateSymbolWithImage(t *testing.T) {
	repo, fsp := newFakeRepo(), newFakeStorage()
	u := newTestUsecase(repo, fsp)

	s := mustCreateWithImage(t, u, fsp, KindKin, NewSymbol{Num: 1, Name: "Imix"}, "imix.png")

	got, err := u.GetSymbol(context.Background(), KindKin, s.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, got.Image)
	assert.NotEqual(t, "imix.png", got.Image)
	assert.True(t, fsp.has(got.Image))
}

func TestUpdateSymbolKeepsImageWhenNoneSubmitted(t *testing.T) {
	repo, fsp := newFakeRepo(), newFakeStorage()
	u := newTestUsecase(repo, fsp)
	ctx := context.Background()

	s := mustCreateWithImage(t, u, fsp, KindKin, NewSymbol{Num: 1, Name: "Imix"}, "imix.png")

	updated, err := u.UpdateSymbol(ctx, KindKin, s.ID, NewSymbol{Num: 1, Name: "Imix Prime"})
	require.NoError(t, err)

	assert.Equal(t, "Imix Prime", updated.Name)
	assert.Equal(t, s.Image, updated.Image)
	assert.Empty(t, fsp.deletes)
	assert.True(t, fsp.has(s.Image))
}

func TestUpdateSymbolReplacesImageAndDeletesOld(t *testing.T) {
	repo, fsp := newFakeRepo(), newFakeStorage()
	u := newTestUsecase(repo, fsp)
	ctx := context.Background()

	s := mustCreateWithImage(t, u, fsp, KindKin, NewSymbol{Num: 1, Name: "Imix"}, "imix.png")

	newName := fsp.NameWithPrefix("imix2.png")
	require.NoError(t, fsp.Save(ctx, newName, strings.NewReader("png2")))

	updated, err := u.UpdateSymbol(ctx, KindKin, s.ID, NewSymbol{Num: 1, Name: "Imix", Image: newName})
	require.NoError(t, err)

	assert.Equal(t, newName, updated.Image)
	assert.False(t, fsp.has(s.Image))
	assert.True(t, fsp.has(newName))
	assert.Equal(t, []string{s.Image}, fsp.deletes)
}

func TestUpdateSymbolNotFound(t *testing.T) {
	repo, fsp := newFakeRepo(), newFakeStorage()
	u := newTestUsecase(repo, fsp)

	_, err := u.UpdateSymbol(context.Background(), KindGlyph, 99, NewSymbol{Name: "Ghost"})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, fsp.deletes)
}

func TestUpdateSymbolSurvivesCleanupFailure(t *testing.T) {
	repo, fsp := newFakeRepo(), newFakeStorage()
	u := newTestUsecase(repo, fsp)
	ctx := context.Background()

	s := mustCreateWithImage(t, u, fsp, KindTone, NewSymbol{Num: 5, Name: "Overtone"}, "overtone.png")

	newName := fsp.NameWithPrefix("overtone2.png")
	require.NoError(t, fsp.Save(ctx, newName, strings.NewReader("png2")))
	fsp.failDelete = true

	updated, err := u.UpdateSymbol(ctx, KindTone, s.ID, NewSymbol{Num: 5, Name: "Overtone", Image: newName})
	require.NoError(t, err)
	assert.Equal(t, newName, updated.Image)

	// record state already moved on, the old file is an orphan for the sweep
	got, err := u.GetSymbol(ctx, KindTone, s.ID)
	require.NoError(t, err)
	assert.Equal(t, newName, got.Image)
}

func TestRepeatedEditWithoutImage(t *testing.T) {
	repo, fsp := newFakeRepo(), newFakeStorage()
	u := newTestUsecase(repo, fsp)
	ctx := context.Background()

	s := mustCreateWithImage(t, u, fsp, KindGlyph, NewSymbol{Num: 3, Name: "Akbal"}, "akbal.png")
	filesBefore := len(fsp.files)

	for range 2 {
		updated, err := u.UpdateSymbol(ctx, KindGlyph, s.ID, NewSymbol{Num: 3, Name: "Akbal"})
		require.NoError(t, err)
		assert.Equal(t, s.Image, updated.Image)
	}

	assert.Empty(t, fsp.deletes)
	assert.Len(t, fsp.files, filesBefore)
}

func TestDeleteSymbolRemovesRowAndFile(t *testing.T) {
	repo, fsp := newFakeRepo(), newFakeStorage()
	u := newTestUsecase(repo, fsp)
	ctx := context.Background()

	s := mustCreateWithImage(t, u, fsp, KindKin, NewSymbol{Num: 1, Name: "Imix"}, "imix.png")

	deleted, err := u.DeleteSymbol(ctx, KindKin, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.ID, deleted.ID)
	assert.False(t, fsp.has(s.Image))

	_, err = u.GetSymbol(ctx, KindKin, s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteSymbolWithoutImage(t *testing.T) {
	repo, fsp := newFakeRepo(), newFakeStorage()
	u := newTestUsecase(repo, fsp)
	ctx := context.Background()

	s, err := u.CreateSymbol(ctx, KindKin, NewSymbol{Num: 2, Name: "Ik"})
	require.NoError(t, err)

	_, err = u.DeleteSymbol(ctx, KindKin, s.ID)
	require.NoError(t, err)
	assert.Empty(t, fsp.deletes, "no file delete should be attempted for an imageless record")
}

func TestDeleteSymbolNotFound(t *testing.T) {
	repo, fsp := newFakeRepo(), newFakeStorage()
	u := newTestUsecase(repo, fsp)

	_, err := u.DeleteSymbol(context.Background(), KindKin, 404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSweepOrphanAssets(t *testing.T) {
	repo, fsp := newFakeRepo(), newFakeStorage()
	u := newTestUsecase(repo, fsp)
	ctx := context.Background()

	live := mustCreateWithImage(t, u, fsp, KindGlyph, NewSymbol{Num: 1, Name: "Imix"}, "imix.png")
	require.NoError(t, fsp.Save(ctx, "orphan1.png", strings.NewReader("x")))
	require.NoError(t, fsp.Save(ctx, "orphan2.png", strings.NewReader("y")))

	removed, err := u.SweepOrphanAssets(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, removed)
	assert.True(t, fsp.has(live.Image))
	assert.False(t, fsp.has("orphan1.png"))
	assert.False(t, fsp.has("orphan2.png"))
}

func TestSweepKeepsImagesAcrossKinds(t *testing.T) {
	repo, fsp := newFakeRepo(), newFakeStorage()
	u := newTestUsecase(repo, fsp)
	ctx := context.Background()

	glyph := mustCreateWithImage(t, u, fsp, KindGlyph, NewSymbol{Num: 1, Name: "Imix"}, "a.png")
	tone := mustCreateWithImage(t, u, fsp, KindTone, NewSymbol{Num: 1, Name: "Magnetic"}, "b.png")
	kin := mustCreateWithImage(t, u, fsp, KindKin, NewSymbol{Num: 1, Name: "Imix"}, "c.png")

	removed, err := u.SweepOrphanAssets(ctx)
	require.NoError(t, err)
	assert.Zero(t, removed)
	for _, name := range []string{glyph.Image, tone.Image, kin.Image} {
		assert.True(t, fsp.has(name))
	}
}
