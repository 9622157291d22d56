//go:build !linux

package localnet

// Route table lookup is only wired up on Linux; elsewhere interfaces are
// considered in enumeration order.
func defaultRouteInterface() string {
	return ""
}
