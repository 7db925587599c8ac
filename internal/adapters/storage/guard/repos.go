package guard

import (
	"context"

	"github.com/mkoskela/qualcore/internal/domain"
	"github.com/mkoskela/qualcore/internal/ports"
)

// Compile-time interface checks.
var (
	_ ports.CodeRepository     = (*codeRepo)(nil)
	_ ports.CategoryRepository = (*categoryRepo)(nil)
	_ ports.CodingRepository   = (*codingRepo)(nil)
	_ ports.IDAllocator        = (*allocator)(nil)
)

// Codes decorates a code repository with the guard.
func Codes(g *Guard, inner ports.CodeRepository) ports.CodeRepository {
	return &codeRepo{g: g, inner: inner}
}

type codeRepo struct {
	g     *Guard
	inner ports.CodeRepository
}

func (r *codeRepo) GetAll(ctx context.Context) ([]domain.Code, error) {
	v, err := r.g.execute(ctx, "codes.get_all", func() (any, error) {
		return r.inner.GetAll(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Code), nil
}

func (r *codeRepo) GetByID(ctx context.Context, id int64) (*domain.Code, error) {
	v, err := r.g.execute(ctx, "codes.get_by_id", func() (any, error) {
		return r.inner.GetByID(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Code), nil
}

func (r *codeRepo) Save(ctx context.Context, code domain.Code) error {
	_, err := r.g.execute(ctx, "codes.save", func() (any, error) {
		return nil, r.inner.Save(ctx, code)
	})
	return err
}

func (r *codeRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.g.execute(ctx, "codes.delete", func() (any, error) {
		return nil, r.inner.Delete(ctx, id)
	})
	return err
}

// Categories decorates a category repository with the guard.
func Categories(g *Guard, inner ports.CategoryRepository) ports.CategoryRepository {
	return &categoryRepo{g: g, inner: inner}
}

type categoryRepo struct {
	g     *Guard
	inner ports.CategoryRepository
}

func (r *categoryRepo) GetAll(ctx context.Context) ([]domain.Category, error) {
	v, err := r.g.execute(ctx, "categories.get_all", func() (any, error) {
		return r.inner.GetAll(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Category), nil
}

func (r *categoryRepo) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	v, err := r.g.execute(ctx, "categories.get_by_id", func() (any, error) {
		return r.inner.GetByID(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Category), nil
}

func (r *categoryRepo) Save(ctx context.Context, category domain.Category) error {
	_, err := r.g.execute(ctx, "categories.save", func() (any, error) {
		return nil, r.inner.Save(ctx, category)
	})
	return err
}

func (r *categoryRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.g.execute(ctx, "categories.delete", func() (any, error) {
		return nil, r.inner.Delete(ctx, id)
	})
	return err
}

// Codings decorates a coding repository with the guard.
func Codings(g *Guard, inner ports.CodingRepository) ports.CodingRepository {
	return &codingRepo{g: g, inner: inner}
}

type codingRepo struct {
	g     *Guard
	inner ports.CodingRepository
}

func (r *codingRepo) GetAll(ctx context.Context) ([]domain.Coding, error) {
	v, err := r.g.execute(ctx, "codings.get_all", func() (any, error) {
		return r.inner.GetAll(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Coding), nil
}

func (r *codingRepo) GetByID(ctx context.Context, id int64) (*domain.Coding, error) {
	v, err := r.g.execute(ctx, "codings.get_by_id", func() (any, error) {
		return r.inner.GetByID(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Coding), nil
}

func (r *codingRepo) Save(ctx context.Context, coding domain.Coding) error {
	_, err := r.g.execute(ctx, "codings.save", func() (any, error) {
		return nil, r.inner.Save(ctx, coding)
	})
	return err
}

func (r *codingRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.g.execute(ctx, "codings.delete", func() (any, error) {
		return nil, r.inner.Delete(ctx, id)
	})
	return err
}

func (r *codingRepo) SourceIDs(ctx context.Context) ([]int64, error) {
	v, err := r.g.execute(ctx, "codings.source_ids", func() (any, error) {
		return r.inner.SourceIDs(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]int64), nil
}

// Allocator decorates an ID allocator with the guard.
func Allocator(g *Guard, inner ports.IDAllocator) ports.IDAllocator {
	return &allocator{g: g, inner: inner}
}

type allocator struct {
	g     *Guard
	inner ports.IDAllocator
}

func (a *allocator) NextID(ctx context.Context, kind string) (int64, error) {
	v, err := a.g.execute(ctx, "ids.next", func() (any, error) {
		return a.inner.NextID(ctx, kind)
	})
	if err != nil {
		return 0, err
	}
	return v.(int64), nil
}
