package cli

import (
	"fmt"
	"io"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/wdremote/internal/remote"
)

func newExecCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "exec <command> [json-params]",
		Short: "Execute one WebDriver command",
		Long: `Execute a named command against the remote end and print the result
envelope as JSON. URL placeholders such as $sessionId are filled from the
parameters; the rest is sent as the request body.

Example:
  wdctl exec status
  wdctl exec newSession '{"capabilities": {"alwaysMatch": {"browserName": "firefox"}}}'
  wdctl exec get '{"sessionId": "abc", "url": "https://example.com"}'`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.runExec(cmd, args)
		},
	}
}

func (o *options) runExec(cmd *cobra.Command, args []string) error {
	params, err := parseParams(args[1:])
	if err != nil {
		return err
	}

	rt, err := o.runtime(cmd)
	if err != nil {
		return err
	}
	defer rt.close()

	conn, err := remote.New(rt.cfg.Remote.URL, rt.options...)
	if err != nil {
		return err
	}
	defer conn.Close()

	resp, err := conn.Execute(cmd.Context(), args[0], params)
	if err != nil {
		return err
	}
	if err := rt.dumpMetrics(cmd.ErrOrStderr()); err != nil {
		return err
	}
	if !resp.OK() {
		return resp.Err
	}
	return writeJSON(cmd.OutOrStdout(), envelope(resp))
}

func parseParams(args []string) (map[string]any, error) {
	if len(args) == 0 || args[0] == "" {
		return nil, nil
	}
	var params map[string]any
	if err := sonic.ConfigStd.Unmarshal([]byte(args[0]), &params); err != nil {
		return nil, fmt.Errorf("parameters must be a JSON object: %w", err)
	}
	return params, nil
}

func envelope(resp *remote.Response) map[string]any {
	out := map[string]any{
		"status": resp.Status,
		"value":  resp.Value,
	}
	if resp.SessionID != "" {
		out["sessionId"] = resp.SessionID
	}
	return out
}

func writeJSON(w io.Writer, v any) error {
	data, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
