package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/samber/lo"
	"github.com/shandysiswandi/orgdesk/internal/department/entity"
	"github.com/shandysiswandi/orgdesk/internal/pkg/cache"
)

type OptionsOutput struct {
	Options []entity.Option
}

// Options lists departments for pickers, served from cache when possible.
func (s *Usecase) Options(ctx context.Context) (*OptionsOutput, error) {
	ctx, span := s.startSpan(ctx, "Options")
	defer span.End()

	var cached []entity.Option
	err := s.cache.Get(ctx, keyOptions, &cached)
	if err == nil {
		return &OptionsOutput{Options: cached}, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		slog.WarnContext(ctx, "failed to read department options from cache", "error", err)
	}

	list, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	options := lo.Map(list.Departments, func(d entity.Department, _ int) entity.Option {
		return entity.Option{ID: d.ID, Name: d.Name}
	})

	ttl := s.cfg.GetSecond("cache.departments.ttl_seconds")
	if ttl <= 0 {
		ttl = defaultOptionsTTL
	}
	if err := s.cache.Set(ctx, keyOptions, options, ttl); err != nil {
		slog.WarnContext(ctx, "failed to write department options to cache", "error", err)
	}

	return &OptionsOutput{Options: options}, nil
}

// InvalidateOptions drops the cached department options.
func (s *Usecase) InvalidateOptions(ctx context.Context) error {
	return s.cache.Delete(ctx, keyOptions)
}
