package service

import (
	"context"

	"github.com/alexanderramin/dasha/internal/contract"
	"github.com/alexanderramin/dasha/internal/domain"
	"github.com/alexanderramin/dasha/internal/engine"
)

type periodService struct {
	observer UseCaseObserver
}

func NewPeriodService(observers ...UseCaseObserver) PeriodService {
	return &periodService{observer: useCaseObserverOrNoop(observers)}
}

func (s *periodService) Subdivide(ctx context.Context, req contract.SubdivideRequest) (resp *contract.SubdivideResponse, err error) {
	fields := map[string]any{"lord": req.Lord.String(), "level": req.Level.Label()}
	defer observe(ctx, s.observer, "subdivide", fields, &err)()

	periods, err := engine.Subdivide(req.Start, req.End, req.Lord, req.Level)
	if err != nil {
		return nil, &contract.Error{Code: contract.ErrInvalidInput, Message: "subdividing period", Err: err}
	}
	return &contract.SubdivideResponse{
		Parent: contract.NewPeriodView(&domain.DashaNode{
			Lord:  req.Lord,
			Start: req.Start,
			End:   req.End,
			Level: req.Level,
		}, req.Start),
		Periods: contract.PeriodViews(periods, req.Start),
	}, nil
}

func (s *periodService) Cycle(ctx context.Context, req contract.CycleRequest) (resp *contract.CycleResponse, err error) {
	fields := map[string]any{"lord": req.Lord.String()}
	defer observe(ctx, s.observer, "cycle", fields, &err)()

	periods, err := engine.FullCycle(req.Start, req.Lord)
	if err != nil {
		return nil, &contract.Error{Code: contract.ErrInvalidInput, Message: "building cycle", Err: err}
	}
	return &contract.CycleResponse{
		Start:   periods[0].Start,
		End:     periods[len(periods)-1].End,
		Periods: contract.PeriodViews(periods, req.Start),
	}, nil
}
