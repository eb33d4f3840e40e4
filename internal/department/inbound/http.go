package inbound

import (
	"context"

	"github.com/shandysiswandi/orgdesk/internal/department/usecase"
	"github.com/shandysiswandi/orgdesk/internal/pkg/router"
)

type uc interface {
	List(ctx context.Context) (*usecase.ListOutput, error)
	Detail(ctx context.Context, in usecase.DetailInput) (*usecase.DetailOutput, error)
	Create(ctx context.Context, in usecase.CreateInput) (*usecase.CreateOutput, error)
	Update(ctx context.Context, in usecase.UpdateInput) (*usecase.UpdateOutput, error)
	Delete(ctx context.Context, in usecase.DeleteInput) (*usecase.DeleteOutput, error)
	Options(ctx context.Context) (*usecase.OptionsOutput, error)

	ConsumeRecordChanged(ctx context.Context, in usecase.ConsumeRecordChangedInput) error
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.GET("/api/v1/departments", end.List)
	r.POST("/api/v1/departments", end.Create)
	r.GET("/api/v1/departments/:id", end.Detail)
	r.PATCH("/api/v1/departments/:id", end.Update)
	r.DELETE("/api/v1/departments/:id", end.Delete)

	r.GET("/api/v1/department-options", end.Options)
}
