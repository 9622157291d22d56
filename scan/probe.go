package scan

import (
	"context"
	"net"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// NoBanner is reported when a host accepted the connection but sent nothing
// readable before the banner timeout.
const NoBanner = "(no banner)"

// bannerBufSize is enough to capture the first line of the protocol
// banners this tool cares about (SSH-2.0-..., RFB 003.008, SMTP 220 ...).
const bannerBufSize = 256

// Prober probes a single (address, port) pair. Implementations must be
// safe for concurrent use.
type Prober interface {
	Probe(ctx context.Context, addr Address, port int) Result
}

// TCPProber performs a full TCP connect, optionally reading a service
// banner from the accepted connection.
type TCPProber struct {
	// ConnectTimeout bounds the dial.
	ConnectTimeout time.Duration

	// BannerTimeout bounds the banner read. Zero disables the read
	// entirely and the Result carries an empty banner.
	BannerTimeout time.Duration
}

// Probe dials addr:port. Every connect failure (timeout, refused,
// unreachable) folds into Result{Open: false}. The connection is closed
// before returning on every path.
func (p *TCPProber) Probe(ctx context.Context, addr Address, port int) Result {
	result := Result{Addr: addr}

	dialer := net.Dialer{Timeout: p.ConnectTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(addr.String(), strconv.Itoa(port)))
	if err != nil {
		return result
	}
	defer conn.Close()

	result.Open = true
	if p.BannerTimeout > 0 {
		result.Banner = readBanner(conn, p.BannerTimeout)
	}
	return result
}

func readBanner(conn net.Conn, timeout time.Duration) string {
	if err := conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return NoBanner
	}

	buf := make([]byte, bannerBufSize)
	n, _ := conn.Read(buf)
	if n == 0 {
		return NoBanner
	}

	banner := firstLine(buf[:n])
	if banner == "" {
		return NoBanner
	}
	return banner
}

// firstLine extracts the first text line from raw banner bytes, scrubbing
// anything that is not printable UTF-8.
func firstLine(b []byte) string {
	s := string(b)
	if idx := strings.IndexAny(s, "\r\n"); idx != -1 {
		s = s[:idx]
	}
	s = strings.ToValidUTF8(s, "")
	s = strings.Map(func(r rune) rune {
		if !unicode.IsPrint(r) {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}
