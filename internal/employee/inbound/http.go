package inbound

import (
	"context"

	"github.com/shandysiswandi/orgdesk/internal/employee/usecase"
	"github.com/shandysiswandi/orgdesk/internal/pkg/router"
)

type uc interface {
	List(ctx context.Context, in usecase.ListInput) (*usecase.ListOutput, error)
	Detail(ctx context.Context, in usecase.DetailInput) (*usecase.DetailOutput, error)
	Form(ctx context.Context, in usecase.FormInput) (*usecase.FormOutput, error)
	Create(ctx context.Context, in usecase.CreateInput) (*usecase.CreateOutput, error)
	Update(ctx context.Context, in usecase.UpdateInput) (*usecase.UpdateOutput, error)
	Delete(ctx context.Context, in usecase.DeleteInput) (*usecase.DeleteOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.GET("/api/v1/employees", end.List)
	r.POST("/api/v1/employees", end.Create)
	r.GET("/api/v1/employees/:id", end.Detail)
	r.GET("/api/v1/employees/:id/form", end.Form)
	r.PATCH("/api/v1/employees/:id", end.Update)
	r.DELETE("/api/v1/employees/:id", end.Delete)
}
