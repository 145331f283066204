package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/netip"
	"net/url"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// maxListingBytes caps how much of a listing page is read.
const maxListingBytes = 5 << 20

// ErrBlockedHost is returned when a listing URL points at a non-public
// address such as loopback or a private range.
var ErrBlockedHost = errors.New("listing host is not a public address")

// sharedAddressSpace is the carrier-grade NAT range (RFC 6598).
var sharedAddressSpace = netip.MustParsePrefix("100.64.0.0/10")

// ListingFetcher downloads listing pages and parses them.
type ListingFetcher struct {
	httpClient   *http.Client
	userAgent    string
	allowPrivate bool
	logger       *zap.Logger
}

// FetcherOption configures a ListingFetcher.
type FetcherOption func(*ListingFetcher)

// AllowPrivateHosts lets the fetcher reach loopback and private addresses.
// Meant for local tooling and tests, never for a public server.
func AllowPrivateHosts(allow bool) FetcherOption {
	return func(f *ListingFetcher) { f.allowPrivate = allow }
}

// NewListingFetcher creates a fetcher with the given per-request timeout.
// Unless AllowPrivateHosts is set, connections are only made to public
// addresses; the check runs on the resolved IP of every dial, redirects included.
func NewListingFetcher(timeout time.Duration, userAgent string, logger *zap.Logger, opts ...FetcherOption) *ListingFetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	f := &ListingFetcher{
		userAgent: userAgent,
		logger:    logger.Named("ingest"),
	}
	for _, opt := range opts {
		opt(f)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if !f.allowPrivate {
		// A proxy would hide the target address from the dial check.
		transport.Proxy = nil
		transport.DialContext = (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
			Control:   publicOnly,
		}).DialContext
	}
	f.httpClient = &http.Client{Timeout: timeout, Transport: transport}
	return f
}

// IsPublicAddr reports whether ip is routable on the public internet.
func IsPublicAddr(ip netip.Addr) bool {
	ip = ip.Unmap()
	switch {
	case !ip.IsValid(),
		ip.IsUnspecified(),
		ip.IsLoopback(),
		ip.IsPrivate(),
		ip.IsLinkLocalUnicast(),
		ip.IsLinkLocalMulticast(),
		ip.IsInterfaceLocalMulticast(),
		ip.IsMulticast(),
		sharedAddressSpace.Contains(ip):
		return false
	}
	return true
}

func publicOnly(network, address string, _ syscall.RawConn) error {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return err
	}
	ip, err := netip.ParseAddr(host)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrBlockedHost, host)
	}
	if !IsPublicAddr(ip) {
		return fmt.Errorf("%w: %s", ErrBlockedHost, ip)
	}
	return nil
}

// Fetch downloads the listing at rawURL and parses it. industryHint is passed
// through to ParseListingHTML.
func (f *ListingFetcher) Fetch(ctx context.Context, rawURL, industryHint string) (*ListingImport, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid listing url %q", rawURL)
	}
	if !f.allowPrivate {
		if ip, err := netip.ParseAddr(u.Hostname()); err == nil && !IsPublicAddr(ip) {
			return nil, fmt.Errorf("%w: %s", ErrBlockedHost, ip)
		}
	}

	html, err := f.fetchHTML(ctx, u.String())
	if err != nil {
		return nil, err
	}

	imp, err := ParseListingHTML(html, industryHint)
	if imp != nil {
		imp.SourceURL = u.String()
	}
	if err != nil {
		return imp, err
	}
	f.logger.Info("imported listing",
		zap.String("url", u.String()),
		zap.String("industry", imp.Input.Industry),
		zap.Int("fields", len(imp.Fields)))
	return imp, nil
}

func (f *ListingFetcher) fetchHTML(ctx context.Context, target string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", err
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}
	req.Header.Set("Accept", "text/html")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch listing: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("listing site returned status %d for %s", resp.StatusCode, target)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxListingBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read listing: %w", err)
	}
	return string(body), nil
}
