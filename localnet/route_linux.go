//go:build linux

package localnet

import (
	"net"

	"github.com/google/gopacket/routing"
)

// defaultRouteInterface names the interface carrying the default route, or
// "" when the routing table cannot be read.
func defaultRouteInterface() string {
	router, err := routing.New()
	if err != nil {
		return ""
	}
	iface, _, _, err := router.Route(net.IPv4(1, 1, 1, 1))
	if err != nil || iface == nil {
		return ""
	}
	return iface.Name
}
