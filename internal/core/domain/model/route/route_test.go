package route_test

import (
	"testing"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/route"
	"shipping/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	t0 = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	t1 = t0.Add(26 * time.Hour)
	t2 = t1.Add(30 * time.Hour)
	t3 = t2.Add(12 * time.Hour)
)

func testPoints() []route.Point {
	return []route.Point{
		{
			Coordinates: kernel.MustLatLng(40.7128, -74.0060),
			Address:     route.Address{Country: "United States", CountryCode: "us", ISORegion: "US-NY", City: "New York", State: "New York"},
		},
		{
			Coordinates: kernel.MustLatLng(35.2271, -80.8431),
			Address:     route.Address{Country: "United States", CountryCode: "us", ISORegion: "US-NC", City: "Charlotte", State: "North Carolina"},
		},
		{
			Coordinates: kernel.MustLatLng(51.4700, -0.4543),
			Address:     route.Address{Country: "United Kingdom", CountryCode: "gb", ISORegion: "GB-HIL", Town: "Hounslow", State: "England"},
		},
		{
			Coordinates: kernel.MustLatLng(48.8566, 2.3522),
			Address:     route.Address{Country: "France", CountryCode: "fr", ISORegion: "FR-75C", City: "Paris", State: "Ile-de-France"},
		},
	}
}

func mustInitialize(t *testing.T) route.Route {
	t.Helper()
	r, err := route.Initialize(testPoints(), t0)
	require.NoError(t, err)
	return r
}

func assertMonotonic(t *testing.T, r route.Route) {
	t.Helper()
	statuses := r.Statuses()
	require.Len(t, statuses, route.Length)

	current := r.CurrentIndex()
	require.GreaterOrEqual(t, current, 0)
	for i, s := range statuses {
		switch {
		case i < current:
			assert.Equal(t, route.Completed, s, "waypoint %d", i)
		case i == current:
			assert.Equal(t, route.Current, s, "waypoint %d", i)
		default:
			assert.Equal(t, route.Upcoming, s, "waypoint %d", i)
		}
	}

	for i, w := range r.Waypoints() {
		_, ok := w.Timestamp()
		assert.Equal(t, w.Status() != route.Upcoming, ok, "timestamp presence of waypoint %d", i)
	}
}

func TestInitialize(t *testing.T) {
	t.Run("first stop is current and the rest upcoming", func(t *testing.T) {
		r := mustInitialize(t)

		require.NoError(t, r.Validate())
		assert.Equal(t, []route.Status{route.Current, route.Upcoming, route.Upcoming, route.Upcoming}, r.Statuses())
		assert.Equal(t, 0, r.CurrentIndex())

		ts, ok := r.Origin().Timestamp()
		require.True(t, ok)
		assert.Equal(t, t0, ts)
		for _, w := range r.Waypoints()[1:] {
			_, ok := w.Timestamp()
			assert.False(t, ok)
		}
		assertMonotonic(t, r)
	})

	t.Run("origin and destination follow journey order", func(t *testing.T) {
		r := mustInitialize(t)

		assert.Equal(t, "New York", r.Origin().Address().City)
		assert.Equal(t, "Paris", r.Destination().Address().City)
	})

	t.Run("wrong length", func(t *testing.T) {
		for _, n := range []int{0, 1, 3, 5} {
			points := make([]route.Point, 0, n)
			for i := range n {
				points = append(points, testPoints()[i%route.Length])
			}

			_, err := route.Initialize(points, t0)
			require.ErrorIs(t, err, route.ErrInvalidRouteLength, "length %d", n)
		}
	})

	t.Run("invalid points are reported", func(t *testing.T) {
		points := testPoints()
		points[2].Address.Country = ""
		points[3].Coordinates = kernel.LatLng{}

		_, err := route.Initialize(points, t0)
		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "waypoint 2")
		assert.Contains(t, err.Error(), "waypoint 3")
	})
}

func TestRoute_AdvanceTo(t *testing.T) {
	t.Run("advance to the third stop", func(t *testing.T) {
		r := mustInitialize(t)

		next, err := r.AdvanceTo(2, t1)
		require.NoError(t, err)

		assert.Equal(t, []route.Status{route.Completed, route.Completed, route.Current, route.Upcoming}, next.Statuses())

		w := next.Waypoints()
		tsA, ok := w[0].Timestamp()
		require.True(t, ok)
		assert.Equal(t, t0, tsA, "origin keeps its original timestamp")

		tsB, ok := w[1].Timestamp()
		require.True(t, ok)
		assert.Equal(t, t1, tsB, "skipped stop is stamped")

		tsC, ok := w[2].Timestamp()
		require.True(t, ok)
		assert.Equal(t, t1, tsC)

		_, ok = w[3].Timestamp()
		assert.False(t, ok)
		assertMonotonic(t, next)
	})

	t.Run("receiver is not modified", func(t *testing.T) {
		r := mustInitialize(t)
		before := r.Waypoints()

		_, err := r.AdvanceTo(3, t1)
		require.NoError(t, err)

		assert.Equal(t, before, r.Waypoints())
		assert.Equal(t, 0, r.CurrentIndex())
	})

	t.Run("idempotent and never overwrites timestamps", func(t *testing.T) {
		r := mustInitialize(t)

		once, err := r.AdvanceTo(1, t1)
		require.NoError(t, err)
		twice, err := once.AdvanceTo(1, t2)
		require.NoError(t, err)

		assert.Equal(t, once.Waypoints(), twice.Waypoints())
		ts, _ := twice.Waypoints()[1].Timestamp()
		assert.Equal(t, t1, ts)
	})

	t.Run("moving back clears later timestamps", func(t *testing.T) {
		r := mustInitialize(t)

		forward, err := r.AdvanceTo(3, t1)
		require.NoError(t, err)
		back, err := forward.AdvanceTo(1, t2)
		require.NoError(t, err)

		assert.Equal(t, []route.Status{route.Completed, route.Current, route.Upcoming, route.Upcoming}, back.Statuses())
		ts, ok := back.Waypoints()[1].Timestamp()
		require.True(t, ok)
		assert.Equal(t, t1, ts, "current stop keeps the timestamp it got when first reached")
		assertMonotonic(t, back)

		again, err := back.AdvanceTo(3, t3)
		require.NoError(t, err)
		tsC, _ := again.Waypoints()[2].Timestamp()
		tsD, _ := again.Waypoints()[3].Timestamp()
		assert.Equal(t, t3, tsC, "regressed stops are stamped afresh")
		assert.Equal(t, t3, tsD)
	})

	t.Run("every index keeps the sequence monotonic", func(t *testing.T) {
		r := mustInitialize(t)
		for _, i := range []int{3, 0, 2, 2, 1, 3, 0} {
			var err error
			r, err = r.AdvanceTo(i, t1)
			require.NoError(t, err)
			assert.Equal(t, i, r.CurrentIndex())
			assertMonotonic(t, r)
		}
	})

	t.Run("index out of range", func(t *testing.T) {
		r := mustInitialize(t)
		for _, i := range []int{-1, 4, 100} {
			_, err := r.AdvanceTo(i, t1)
			require.ErrorIs(t, err, route.ErrIndexOutOfRange)
			require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		}
		assert.Equal(t, 0, r.CurrentIndex())
	})

	t.Run("zero value route", func(t *testing.T) {
		var r route.Route
		_, err := r.AdvanceTo(1, t1)
		require.ErrorIs(t, err, route.ErrRouteIsNotConstructed)
	})
}

func TestRoute_IsDelivered(t *testing.T) {
	r := mustInitialize(t)
	assert.False(t, r.IsDelivered())

	r, err := r.AdvanceTo(route.Length-1, t1)
	require.NoError(t, err)
	assert.True(t, r.IsDelivered())
	assert.Equal(t, "Paris", r.Current().Address().City)
}

func TestRestore(t *testing.T) {
	points := testPoints()
	stamp := func(ts time.Time) *time.Time { return &ts }

	restore := func(t *testing.T, statuses []route.Status, stamps []*time.Time) (route.Route, error) {
		t.Helper()
		waypoints := make([]route.Waypoint, 0, len(statuses))
		for i, s := range statuses {
			w, err := route.RestoreWaypoint(points[i], s, stamps[i])
			require.NoError(t, err)
			waypoints = append(waypoints, w)
		}
		return route.Restore(waypoints)
	}

	t.Run("valid persisted route", func(t *testing.T) {
		r, err := restore(t,
			[]route.Status{route.Completed, route.Current, route.Upcoming, route.Upcoming},
			[]*time.Time{stamp(t0), stamp(t1), nil, nil})
		require.NoError(t, err)

		assert.Equal(t, 1, r.CurrentIndex())
		assertMonotonic(t, r)

		original := mustInitialize(t)
		advanced, err := original.AdvanceTo(1, t1)
		require.NoError(t, err)
		assert.Equal(t, advanced.Waypoints(), r.Waypoints())
	})

	t.Run("rejects two current stops", func(t *testing.T) {
		_, err := restore(t,
			[]route.Status{route.Current, route.Current, route.Upcoming, route.Upcoming},
			[]*time.Time{stamp(t0), stamp(t1), nil, nil})
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects completed after current", func(t *testing.T) {
		_, err := restore(t,
			[]route.Status{route.Current, route.Completed, route.Upcoming, route.Upcoming},
			[]*time.Time{stamp(t0), stamp(t1), nil, nil})
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects upcoming before current", func(t *testing.T) {
		_, err := restore(t,
			[]route.Status{route.Upcoming, route.Current, route.Upcoming, route.Upcoming},
			[]*time.Time{nil, stamp(t1), nil, nil})
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects a route without current stop", func(t *testing.T) {
		_, err := restore(t,
			[]route.Status{route.Completed, route.Completed, route.Completed, route.Completed},
			[]*time.Time{stamp(t0), stamp(t0), stamp(t0), stamp(t0)})
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects wrong length", func(t *testing.T) {
		_, err := route.Restore(nil)
		require.ErrorIs(t, err, route.ErrInvalidRouteLength)
	})

	t.Run("rejects zero-value waypoints", func(t *testing.T) {
		_, err := route.Restore(make([]route.Waypoint, route.Length))
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestRoute_Describe(t *testing.T) {
	r := mustInitialize(t)
	r, err := r.AdvanceTo(1, t1)
	require.NoError(t, err)

	views := r.Describe()
	require.Len(t, views, route.Length)

	assert.Equal(t, "New York, United States", views[0].Label)
	assert.Equal(t, "New York, New York, United States", views[0].FullLabel)
	assert.Equal(t, "https://flagcdn.com/w40/us.png", views[0].FlagURL)
	assert.Equal(t, route.Completed, views[0].Status)
	require.NotNil(t, views[0].Timestamp)
	assert.Equal(t, t0, *views[0].Timestamp)

	assert.Equal(t, route.Current, views[1].Status)
	assert.Equal(t, "US-NC", views[1].ISORegion)

	assert.Equal(t, "Hounslow, United Kingdom", views[2].Label)
	assert.Nil(t, views[2].Timestamp)

	assert.Equal(t, [2]float64{48.8566, 2.3522}, views[3].Coordinates)
	assert.Equal(t, 3, views[3].Index)
}
