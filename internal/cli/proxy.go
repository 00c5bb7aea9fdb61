package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/wdremote/internal/remote"
)

func newProxyCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "proxy [url]",
		Short: "Show how the remote end would be reached",
		Long: `Resolve the proxy for a URL (default: the configured remote end) and
print the connection manager that would be built for it. Nothing is sent.

Example:
  wdctl proxy
  HTTPS_PROXY=http://corp:3128 wdctl proxy https://grid:4444`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.runProxy(cmd, args)
		},
	}
}

func (o *options) runProxy(cmd *cobra.Command, args []string) error {
	rt, err := o.runtime(cmd)
	if err != nil {
		return err
	}
	defer rt.close()

	target := rt.cfg.Remote.URL
	if len(args) > 0 {
		target = args[0]
	}

	cfg, err := remote.NewClientConfig(target, rt.options...)
	if err != nil {
		return err
	}
	_, auth, err := cfg.SeparateProxyAuth()
	if err != nil {
		return err
	}
	mgr, err := remote.BuildManager(cfg, rt.logger)
	if err != nil {
		return err
	}
	defer mgr.Close()

	proxyURL, authState := "-", "-"
	if mgr.Proxy != nil {
		proxyURL = mgr.Proxy.String()
		authState = "no"
		if auth != "" {
			authState = "yes"
		}
	}
	timeout := "none"
	if mgr.Timeout > 0 {
		timeout = mgr.Timeout.String()
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "target:\t%s\n", target)
	fmt.Fprintf(tw, "route:\t%s\n", mgr.Kind)
	fmt.Fprintf(tw, "proxy:\t%s\n", proxyURL)
	fmt.Fprintf(tw, "proxy auth:\t%s\n", authState)
	fmt.Fprintf(tw, "certificates:\t%s\n", mgr.CertReqs)
	fmt.Fprintf(tw, "timeout:\t%s\n", timeout)
	return tw.Flush()
}
