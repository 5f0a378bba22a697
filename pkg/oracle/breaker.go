package oracle

import (
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"evol-jewels-io/stylist/pkg/util"
)

const breakerFailureThreshold = 3

// newBreaker opens after consecutive failures and probes again after timeout.
func newBreaker(name string, timeout time.Duration) *gobreaker.CircuitBreaker[string] {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerFailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			util.Logger().Info().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("oracle circuit breaker state change")
		},
	})
}
