package inbound

import (
	"context"

	"github.com/shandysiswandi/orgdesk/internal/pkg/router"
	"github.com/shandysiswandi/orgdesk/internal/pkg/validator"
	"github.com/shandysiswandi/orgdesk/internal/validation/usecase"
)

type uc interface {
	Validate(ctx context.Context, in usecase.ValidateInput) validator.Result
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/api/v1/validate/:entity/:operation", end.Validate)
}
