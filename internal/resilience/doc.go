/*
Package resilience provides a circuit breaker for one remote end.

The breaker counts consecutive transport failures. Once Threshold is reached
it opens and rejects requests without touching the network; after Cooldown
it lets Probes requests through and closes again if they all succeed.

	breaker := resilience.New(resilience.Settings{Threshold: 3, Cooldown: 10 * time.Second})
	if err := breaker.Allow(); err != nil {
		return err
	}
	resp, err := send()
	breaker.Record(err == nil)

Responses from the remote end, including error statuses, count as
successes: the breaker only guards reachability.
*/
package resilience
