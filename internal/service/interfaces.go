package service

import (
	"context"

	"github.com/alexanderramin/dasha/internal/contract"
	"github.com/alexanderramin/dasha/internal/importer"
	"github.com/alexanderramin/dasha/internal/navigation"
)

// ChartService answers questions about one chart file. The file is read on
// every call so edits are picked up without restarting.
type ChartService interface {
	Load(ctx context.Context) (*importer.Chart, error)
	Now(ctx context.Context, req contract.NowRequest) (*contract.NowResponse, error)
	Tree(ctx context.Context, req contract.TreeRequest) (*contract.TreeResponse, error)
	Validate(ctx context.Context) (*contract.ValidateResponse, error)
	Navigator(ctx context.Context) (*navigation.Navigator, error)
	Path() string
}

// PeriodService computes periods that do not depend on a chart.
type PeriodService interface {
	Subdivide(ctx context.Context, req contract.SubdivideRequest) (*contract.SubdivideResponse, error)
	Cycle(ctx context.Context, req contract.CycleRequest) (*contract.CycleResponse, error)
}
