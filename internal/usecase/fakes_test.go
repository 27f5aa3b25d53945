package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"
)

// fakeRepo is an in-memory Repository keyed by kind and id.
type fakeRepo struct {
	nextID  uint
	records map[Kind]map[uint]Symbol
	users   map[string]User
}

func newFakeRepo() *fakeRepo {
	records := make(map[Kind]map[uint]Symbol)
	for _, k := range Kinds() {
		records[k] = make(map[uint]Symbol)
	}
	return &fakeRepo{records: records, users: make(map[string]User)}
}

func (r *fakeRepo) Health() map[string]string { return map[string]string{"status": "up"} }
func (r *fakeRepo) Close() error              { return nil }

func (r *fakeRepo) ListSymbols(_ context.Context, k Kind) ([]Symbol, error) {
	out := make([]Symbol, 0, len(r.records[k]))
	for _, s := range r.records[k] {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeRepo) GetSymbol(_ context.Context, k Kind, id uint) (Symbol, error) {
	s, ok := r.records[k][id]
	if !ok {
		return Symbol{}, ErrNotFound
	}
	return s, nil
}

func (r *fakeRepo) CreateSymbol(_ context.Context, k Kind, in NewSymbol) (Symbol, error) {
	r.nextID++
	s := Symbol{
		ID:          r.nextID,
		Num:         in.Num,
		Name:        in.Name,
		Image:       in.Image,
		Preview:     in.Preview,
		Description: in.Description,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	r.records[k][s.ID] = s
	return s, nil
}

func (r *fakeRepo) UpdateSymbol(_ context.Context, k Kind, id uint, in NewSymbol) (Symbol, error) {
	s, ok := r.records[k][id]
	if !ok {
		return Symbol{}, ErrNotFound
	}
	s.Num = in.Num
	s.Name = in.Name
	s.Image = in.Image
	s.Preview = in.Preview
	s.Description = in.Description
	s.UpdatedAt = time.Now()
	r.records[k][id] = s
	return s, nil
}

func (r *fakeRepo) DeleteSymbol(_ context.Context, k Kind, id uint) (Symbol, error) {
	s, ok := r.records[k][id]
	if !ok {
		return Symbol{}, ErrNotFound
	}
	delete(r.records[k], id)
	return s, nil
}

func (r *fakeRepo) ListReferencedImages(_ context.Context, k Kind) ([]string, error) {
	var names []string
	for _, s := range r.records[k] {
		if s.Image != "" {
			names = append(names, s.Image)
		}
	}
	return names, nil
}

func (r *fakeRepo) GetUserByName(_ context.Context, name string) (User, error) {
	u, ok := r.users[name]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

// fakeStorage is an in-memory FileStorageProvider with a deterministic
// prefix source and an optional forced delete failure.
type fakeStorage struct {
	n          int
	files      map[string][]byte
	deletes    []string
	failDelete bool
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{files: make(map[string][]byte)}
}

func (f *fakeStorage) NameWithPrefix(original string) string {
	f.n++
	return fmt.Sprintf("p%d_%s", f.n, original)
}

func (f *fakeStorage) Save(_ context.Context, name string, r io.Reader) error {
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		return err
	}
	f.files[name] = buf.Bytes()
	return nil
}

func (f *fakeStorage) Delete(_ context.Context, name string) error {
	if name == "" {
		return nil
	}
	f.deletes = append(f.deletes, name)
	if f.failDelete {
		return errors.New("disk on fire")
	}
	delete(f.files, name)
	return nil
}

func (f *fakeStorage) List(_ context.Context, _ time.Duration) ([]string, error) {
	var names []string
	for name := range f.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (f *fakeStorage) has(name string) bool {
	_, ok := f.files[name]
	return ok
}
