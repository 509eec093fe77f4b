package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/dasha/internal/contract"
	"github.com/alexanderramin/dasha/internal/domain"
	"github.com/alexanderramin/dasha/internal/engine"
	"github.com/alexanderramin/dasha/internal/importer"
	"github.com/alexanderramin/dasha/internal/logger"
	"github.com/alexanderramin/dasha/internal/navigation"
)

// ChartOptions controls how a chart file is turned into a tree.
type ChartOptions struct {
	Import       importer.Options
	Memoize      bool
	GapTolerance time.Duration
}

type chartService struct {
	path     string
	opts     ChartOptions
	log      *logger.Logger
	observer UseCaseObserver
	clock    func() time.Time
}

func NewChartService(
	path string,
	opts ChartOptions,
	log *logger.Logger,
	observers ...UseCaseObserver,
) ChartService {
	if log == nil {
		log = logger.Nop()
	}
	return &chartService{
		path:     path,
		opts:     opts,
		log:      log,
		observer: useCaseObserverOrNoop(observers),
		clock:    time.Now,
	}
}

func (s *chartService) Path() string { return s.path }

func (s *chartService) Load(ctx context.Context) (*importer.Chart, error) {
	return s.load(s.opts.Import)
}

func (s *chartService) load(opts importer.Options) (*importer.Chart, error) {
	if s.path == "" {
		return nil, &contract.Error{Code: contract.ErrNoChart, Message: "no chart file configured (use --chart or DASHA_CHART)"}
	}
	records, err := importer.LoadChart(s.path)
	if err != nil {
		return nil, &contract.Error{Code: contract.ErrInvalidChart, Message: "loading " + s.path, Err: err}
	}
	chart, err := importer.Convert(records, opts)
	if err != nil {
		return nil, &contract.Error{Code: contract.ErrInvalidChart, Message: "converting " + s.path, Err: err}
	}
	for _, issue := range chart.Issues {
		s.log.Warn("skipped chart record", "path", issue.Path, "error", issue.Err.Error())
	}
	s.log.Debug("chart loaded", "file", s.path, "roots", len(chart.Roots), "issues", len(chart.Issues))
	return chart, nil
}

func (s *chartService) now(override *time.Time) time.Time {
	if override != nil {
		return override.UTC()
	}
	return s.clock().UTC()
}

func (s *chartService) Now(ctx context.Context, req contract.NowRequest) (resp *contract.NowResponse, err error) {
	at := s.now(req.Now)
	fields := map[string]any{"at": at.Format(time.DateOnly)}
	defer observe(ctx, s.observer, "now", fields, &err)()

	var chart *importer.Chart
	chart, err = s.Load(ctx)
	if err != nil {
		return nil, err
	}

	res := engine.Resolve(chart.Roots, at)
	fields["depth"] = len(res.Path)
	return &contract.NowResponse{
		At:        at,
		Path:      contract.PeriodViews(res.Path, at),
		Progress:  res.Progress,
		Remaining: res.Remaining(at),
	}, nil
}

func (s *chartService) Tree(ctx context.Context, req contract.TreeRequest) (resp *contract.TreeResponse, err error) {
	at := s.now(req.Now)
	fields := map[string]any{"depth": req.Depth}
	defer observe(ctx, s.observer, "tree", fields, &err)()

	if req.Depth < 1 || req.Depth > int(domain.MaxLevel)+1 {
		err = &contract.Error{
			Code:    contract.ErrInvalidInput,
			Message: fmt.Sprintf("depth must be between 1 and %d, got %d", int(domain.MaxLevel)+1, req.Depth),
		}
		return nil, err
	}

	var chart *importer.Chart
	chart, err = s.Load(ctx)
	if err != nil {
		return nil, err
	}

	return &contract.TreeResponse{
		At:     at,
		Roots:  engine.ExpandAll(chart.Roots, req.Depth-1),
		Active: engine.Resolve(chart.Roots, at).Path,
	}, nil
}

// Validate always collects every issue, regardless of the configured
// conversion mode.
func (s *chartService) Validate(ctx context.Context) (resp *contract.ValidateResponse, err error) {
	fields := map[string]any{"file": s.path}
	defer observe(ctx, s.observer, "validate", fields, &err)()

	opts := s.opts.Import
	opts.SkipInvalid = true
	var chart *importer.Chart
	chart, err = s.load(opts)
	if err != nil {
		return nil, err
	}

	tolerance := s.opts.GapTolerance
	if tolerance == 0 {
		tolerance = importer.DefaultGapTolerance
	}

	resp = &contract.ValidateResponse{
		Path:        s.path,
		PeriodCount: countPeriods(chart.Roots),
		Problems:    importer.ValidateTree(chart.Roots, tolerance),
	}
	for _, issue := range chart.Issues {
		resp.Issues = append(resp.Issues, issue)
	}
	fields["issues"] = len(resp.Issues)
	fields["problems"] = len(resp.Problems)
	return resp, nil
}

func (s *chartService) Navigator(ctx context.Context) (*navigation.Navigator, error) {
	chart, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	if len(chart.Roots) == 0 {
		return nil, &contract.Error{Code: contract.ErrInvalidChart, Message: s.path + " has no periods"}
	}
	return navigation.New(chart.Roots,
		navigation.WithLogger(s.log),
		navigation.WithMemoize(s.opts.Memoize),
	), nil
}

func countPeriods(nodes []*domain.DashaNode) int {
	n := len(nodes)
	for _, node := range nodes {
		n += countPeriods(node.Children)
	}
	return n
}

// IsChartMissing reports whether err means no chart file was configured.
func IsChartMissing(err error) bool {
	var cerr *contract.Error
	return errors.As(err, &cerr) && cerr.Code == contract.ErrNoChart
}
