// Package proxy decides whether a WebDriver request goes through a proxy.
//
// Resolution is a pure function of the target URL, an optional explicit
// Descriptor, the ignore flag and an environment snapshot:
//
//	raw, err := proxy.Resolve(target, cfg.Proxy, cfg.IgnoreProxy, proxy.OSEnv())
//
// Hosts listed in no_proxy/NO_PROXY (or Descriptor.NoProxy for manual
// proxies) are matched by the predicates in Rules: "*", exact host,
// subdomain suffix, leading-"*" wildcard, CIDR prefix and loopback aliases.
package proxy
