package netc

import (
	"fmt"
	"net"
	"net/netip"
)

// LocalAddrs returns the host's non-loopback unicast addresses. It is used to
// report the URLs a server bound to all interfaces is reachable at.
func LocalAddrs() ([]netip.Addr, error) {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return nil, fmt.Errorf("interface addrs: %w", err)
	}

	var localAddrs []netip.Addr
	for _, addr := range addrs {
		var ip net.IP
		switch ipAddr := addr.(type) {
		case *net.IPAddr:
			ip = ipAddr.IP
		case *net.IPNet:
			ip = ipAddr.IP
		default:
			continue
		}
		if ip.IsLoopback() {
			continue
		}
		if naddr, ok := netip.AddrFromSlice(ip); ok {
			localAddrs = append(localAddrs, naddr.Unmap())
		}
	}

	return localAddrs, nil
}
