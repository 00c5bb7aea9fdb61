/*
Package remote issues W3C WebDriver commands over HTTP.

A Connection resolves a command name to a method and URL template, fills
the template from the parameters, sends the remaining parameters as a JSON
body and normalizes the reply:

	conn, err := remote.New("http://localhost:4444",
		remote.WithTimeout(30*time.Second),
		remote.WithBearerToken(token),
	)
	if err != nil {
		return err
	}
	defer conn.Close()

	resp, err := conn.Execute(ctx, remote.CmdNewSession, map[string]any{
		"capabilities": map[string]any{"alwaysMatch": map[string]any{"browserName": "chrome"}},
	})
	if err != nil {
		return err // transport, protocol or argument failure
	}
	value, err := resp.Unwrap() // err is the remote *wderr.CommandExecutionError

# Transport

Each Connection lazily builds a ConnectionManager: a resty client over a
pooled http.Transport that is direct, routed through an HTTP proxy, or
dialed through SOCKS5, depending on the proxy resolved for the remote
address. Changing the timeout or certificate settings, or a change in the
resolved proxy, replaces the manager on the next command.

PoolOverrides pass low-level settings through: split connect/read
timeouts, a retry policy, pool size and blocking, and a client-side rate
limit.
*/
package remote
