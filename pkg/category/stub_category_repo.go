package category

import (
	"context"
	"sort"
)

type StubCategoryRepo struct {
	data map[string]Category
}

func NewStubCategoryRepo(categories ...Category) *StubCategoryRepo {
	data := map[string]Category{}
	for _, c := range categories {
		data[c.ID] = c
	}
	return &StubCategoryRepo{data: data}
}

func (s *StubCategoryRepo) GetAll(ctx context.Context) ([]Category, error) {
	categories := make([]Category, 0, len(s.data))
	for _, c := range s.data {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories, nil
}

func (s *StubCategoryRepo) GetByID(ctx context.Context, id string) (Category, error) {
	c, ok := s.data[id]
	if !ok {
		return Category{}, ErrCategoryNotFound
	}
	return c, nil
}

func (s *StubCategoryRepo) Add(c Category) {
	s.data[c.ID] = c
}

func (s *StubCategoryRepo) Cleanup() {
	s.data = map[string]Category{}
}
