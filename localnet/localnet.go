// Package localnet determines which IPv4 subnets the scanning host sits on,
// for invocations that name no subnet explicitly.
package localnet

import (
	"errors"
	"net"

	log "github.com/sirupsen/logrus"
)

// maxAutoPrefixSpan rejects auto-detected networks wider than /16: a
// misconfigured /8 on an interface would otherwise queue sixteen million
// probes without the operator asking for any of them.
const maxAutoPrefixSpan = 16

// Discover returns the CIDR subnets attached to the host's up, non-loopback
// interfaces. Networks on the default-route interface come first. It errors
// only when no usable subnet exists at all.
func Discover() ([]string, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}

	if preferred := defaultRouteInterface(); preferred != "" {
		log.Debugf("default route is on %s", preferred)
		for i, iface := range ifaces {
			if iface.Name == preferred && i > 0 {
				ifaces[0], ifaces[i] = ifaces[i], ifaces[0]
				break
			}
		}
	}

	var subnets []string
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			log.Debugf("skipping %s: %s", iface.Name, err)
			continue
		}
		for _, subnet := range usableSubnets(addrs) {
			log.Debugf("found %s on %s", subnet, iface.Name)
			subnets = append(subnets, subnet)
		}
	}

	if len(subnets) == 0 {
		return nil, errors.New("no local subnet could be determined")
	}
	return subnets, nil
}

// usableSubnets filters interface addresses down to scannable IPv4
// networks: no loopback, no link-local, nothing wider than /16.
func usableSubnets(addrs []net.Addr) []string {
	var subnets []string
	for _, addr := range addrs {
		ipnet, ok := addr.(*net.IPNet)
		if !ok {
			continue
		}
		ip := ipnet.IP.To4()
		if ip == nil || ip.IsLoopback() || ip.IsLinkLocalUnicast() {
			continue
		}
		ones, bits := ipnet.Mask.Size()
		if bits != 32 || ones < maxAutoPrefixSpan {
			continue
		}
		network := &net.IPNet{IP: ip.Mask(ipnet.Mask), Mask: ipnet.Mask}
		subnets = append(subnets, network.String())
	}
	return subnets
}
