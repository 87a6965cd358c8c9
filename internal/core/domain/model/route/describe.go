package route

import "time"

// StopView is the display projection of one waypoint.
type StopView struct {
	Index       int
	Label       string
	FullLabel   string
	CountryCode string
	ISORegion   string
	FlagURL     string
	Coordinates [2]float64
	Status      Status
	Timestamp   *time.Time
}

// Describe projects every waypoint for display surfaces. It does not mutate the route.
func (r Route) Describe() []StopView {
	views := make([]StopView, 0, Length)
	for i, w := range r.stops {
		addr := w.Address()
		view := StopView{
			Index:       i,
			Label:       addr.CityCountry(),
			FullLabel:   addr.CityStateCountry(),
			CountryCode: addr.CountryCode,
			ISORegion:   addr.ISORegion,
			FlagURL:     addr.FlagURL(FlagWidth),
			Coordinates: w.Coordinates().Pair(),
			Status:      w.status,
		}
		if ts, ok := w.Timestamp(); ok {
			view.Timestamp = &ts
		}
		views = append(views, view)
	}
	return views
}
