package navigation

import (
	"bytes"
	"testing"
	"time"

	"github.com/alexanderramin/dasha/internal/domain"
	"github.com/alexanderramin/dasha/internal/logger"
	"github.com/alexanderramin/dasha/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNavigator(t *testing.T, opts ...Option) *Navigator {
	t.Helper()
	roots := testutil.NewMahaSequence(testutil.Date(1980, time.January, 1), domain.LordRahu, 9)
	return New(roots, opts...)
}

func TestNavigator_StartsAtMahaLevel(t *testing.T) {
	nav := newTestNavigator(t)

	assert.Equal(t, 0, nav.Depth())
	assert.Equal(t, "Maha", nav.LevelLabel())
	assert.Len(t, nav.CurrentLevelNodes(), 9)
	assert.Same(t, nav.Roots()[0], nav.CurrentLevelNodes()[0])
	assert.NotEmpty(t, nav.SessionID())
}

func TestNavigator_DrillGeneratesAndAttaches(t *testing.T) {
	nav := newTestNavigator(t)
	maha := nav.CurrentLevelNodes()[1]

	require.True(t, nav.CanDrill(maha))
	require.NoError(t, nav.DrillInto(maha))

	assert.Equal(t, 1, nav.Depth())
	assert.Equal(t, "Antar", nav.LevelLabel())
	assert.Equal(t, domain.ChildrenMaterialized, maha.ChildState)
	require.Len(t, nav.CurrentLevelNodes(), domain.LordCount)
	assert.Equal(t, maha.Lord, nav.CurrentLevelNodes()[0].Lord)
	assert.Same(t, maha.Children[0], nav.CurrentLevelNodes()[0])
}

func TestNavigator_DrillIsIdempotent(t *testing.T) {
	nav := newTestNavigator(t)
	maha := nav.CurrentLevelNodes()[0]

	require.NoError(t, nav.DrillInto(maha))
	first := maha.Children
	require.NoError(t, nav.DrillUpTo(0))
	require.NoError(t, nav.DrillInto(maha))

	require.Len(t, maha.Children, domain.LordCount, "no duplicate synthesis")
	for i := range first {
		assert.Same(t, first[i], maha.Children[i])
	}
}

func TestNavigator_DrillToPranaAndStop(t *testing.T) {
	nav := newTestNavigator(t)

	for depth := 0; depth < int(domain.MaxLevel); depth++ {
		node := nav.CurrentLevelNodes()[2]
		require.NoError(t, nav.DrillInto(node), "depth %d", depth)
	}
	assert.Equal(t, 4, nav.Depth())
	assert.Equal(t, "Prana", nav.LevelLabel())

	prana := nav.CurrentLevelNodes()[0]
	assert.Equal(t, domain.LevelPrana, prana.Level)
	assert.False(t, nav.CanDrill(prana))

	err := nav.DrillInto(prana)
	assert.ErrorIs(t, err, domain.ErrMaxDepthExceeded)
	assert.Equal(t, 4, nav.Depth(), "state unchanged")
}

func TestNavigator_DrillRefusals(t *testing.T) {
	d := testutil.Date
	terminal := testutil.NewTestNode(domain.LordSun, d(2000, 1, 1), d(2006, 1, 1), testutil.WithNoChildren())
	degenerate := testutil.NewTestNode(domain.LordMoon, d(2006, 1, 1), d(2006, 1, 1))
	nav := New([]*domain.DashaNode{terminal, degenerate})

	assert.ErrorIs(t, nav.DrillInto(terminal), domain.ErrNotDrillable)
	assert.ErrorIs(t, nav.DrillInto(degenerate), domain.ErrDegenerateInterval)
	assert.Nil(t, degenerate.Children)

	stranger := testutil.NewTestNode(domain.LordMars, d(2000, 1, 1), d(2007, 1, 1))
	assert.ErrorIs(t, nav.DrillInto(stranger), domain.ErrNodeNotInLevel)
	assert.ErrorIs(t, nav.DrillInto(nil), domain.ErrNodeNotInLevel)
	assert.False(t, nav.CanDrill(stranger))

	assert.Equal(t, 0, nav.Depth())
}

func TestNavigator_MaterializedEmptyIsTerminal(t *testing.T) {
	d := testutil.Date
	empty := testutil.NewTestNode(domain.LordKetu, d(2000, 1, 1), d(2007, 1, 1), testutil.WithChildren())
	nav := New([]*domain.DashaNode{empty})

	assert.False(t, nav.CanDrill(empty))
	assert.ErrorIs(t, nav.DrillInto(empty), domain.ErrNotDrillable)
	assert.Empty(t, empty.Children, "children are not synthesized over an empty list")
	assert.Equal(t, domain.ChildrenMaterialized, empty.ChildState)
	assert.Equal(t, 0, nav.Depth())

	res := nav.Current(d(2003, 1, 1))
	require.Len(t, res.Path, 1, "resolver agrees the node is a leaf")
}

func TestNavigator_DrillUpTo(t *testing.T) {
	nav := newTestNavigator(t)
	require.NoError(t, nav.DrillInto(nav.CurrentLevelNodes()[0]))
	require.NoError(t, nav.DrillInto(nav.CurrentLevelNodes()[3]))
	require.NoError(t, nav.DrillInto(nav.CurrentLevelNodes()[4]))
	crumbs := nav.Breadcrumbs()

	err := nav.DrillUpTo(4)
	assert.ErrorIs(t, err, domain.ErrIndexOutOfRange)
	assert.ErrorIs(t, nav.DrillUpTo(-1), domain.ErrIndexOutOfRange)
	assert.Equal(t, 3, nav.Depth(), "state unchanged on error")

	require.NoError(t, nav.DrillUpTo(3), "index equal to depth is a no-op")
	require.NoError(t, nav.DrillUpTo(1))
	assert.Equal(t, "Antar", nav.LevelLabel())
	assert.Same(t, crumbs[0].Children[0], nav.CurrentLevelNodes()[0])

	nav.Reset()
	assert.Equal(t, 0, nav.Depth())
	assert.Equal(t, "Maha", nav.LevelLabel())
}

func TestNavigator_BreadcrumbsAreCopies(t *testing.T) {
	nav := newTestNavigator(t)
	require.NoError(t, nav.DrillInto(nav.CurrentLevelNodes()[0]))

	crumbs := nav.Breadcrumbs()
	crumbs[0] = nil
	assert.NotNil(t, nav.Breadcrumbs()[0])
}

func TestNavigator_CurrentWithoutMemoizeLeavesTree(t *testing.T) {
	nav := newTestNavigator(t)
	now := testutil.Date(2011, time.August, 19)

	res := nav.Current(now)
	require.Len(t, res.Path, 5)
	for _, r := range nav.Roots() {
		assert.Equal(t, domain.ChildrenUnmaterialized, r.ChildState)
	}
}

func TestNavigator_CurrentWithMemoizeAttachesPath(t *testing.T) {
	nav := newTestNavigator(t, WithMemoize(true))
	now := testutil.Date(2011, time.August, 19)

	res := nav.Current(now)
	require.Len(t, res.Path, 5)

	for i := 0; i+1 < len(res.Path); i++ {
		parent := res.Path[i]
		assert.Equal(t, domain.ChildrenMaterialized, parent.ChildState)
		assert.Contains(t, parent.Children, res.Path[i+1], "path node is attached to its parent")
	}

	again := nav.Current(now)
	for i := range res.Path {
		assert.Same(t, res.Path[i], again.Path[i], "second resolution reuses attached nodes")
	}

	// Drilling follows the memoized nodes.
	require.NoError(t, nav.DrillInto(res.Path[0]))
	assert.Contains(t, nav.CurrentLevelNodes(), res.Path[1])
}

func TestNavigator_JumpTo(t *testing.T) {
	nav := newTestNavigator(t)
	now := testutil.Date(2011, time.August, 19)

	target := nav.JumpTo(now)
	require.NotNil(t, target)
	assert.Equal(t, domain.LevelPrana, target.Level)
	assert.Equal(t, 4, nav.Depth())
	assert.Contains(t, nav.CurrentLevelNodes(), target)
	assert.True(t, target.Contains(now))

	for _, crumb := range nav.Breadcrumbs() {
		assert.True(t, crumb.Contains(now))
	}
}

func TestNavigator_JumpToOutsideTreeKeepsState(t *testing.T) {
	nav := newTestNavigator(t)
	require.NoError(t, nav.DrillInto(nav.CurrentLevelNodes()[0]))

	assert.Nil(t, nav.JumpTo(testutil.Date(1900, time.January, 1)))
	assert.Equal(t, 1, nav.Depth())
}

func TestNavigator_LogsWithSession(t *testing.T) {
	var buf bytes.Buffer
	nav := newTestNavigator(t, WithLogger(logger.NewWriter(&buf)))

	require.NoError(t, nav.DrillInto(nav.CurrentLevelNodes()[0]))
	assert.Contains(t, buf.String(), nav.SessionID())
	assert.Contains(t, buf.String(), "materialized sub-periods")
}
