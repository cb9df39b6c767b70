package ports

// Activity receives a notification when a traced operation starts and ends.
// Subject is the zone key or quest id the operation works on.
//
//go:generate mockgen -source=activity.go -destination=mocks/mock_activity.go -package=mocks
type Activity interface {
	OnStart(operation, subject string)
	OnEnd(operation, subject string, err error)
}
