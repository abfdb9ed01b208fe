package common

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

// ParseCidrs parses `cidrs` into networks, bare addresses are treated
// as /32s. Unparseable entries are skipped and reported as warnings
func ParseCidrs(cidrs []string) (validCidrs []*net.IPNet, warnings []string, err error) {
	for _, cidr := range cidrs {
		if !strings.Contains(cidr, "/") {
			cidr = cidr + "/32"
		}
		_, network, parseErr := net.ParseCIDR(cidr)
		if parseErr != nil {
			warnings = append(warnings, fmt.Sprintf("provided cidr[%s] is invalid, it was skipped", cidr))
			continue
		}
		validCidrs = append(validCidrs, network)
	}
	if len(cidrs) > 0 && len(validCidrs) == 0 {
		return nil, warnings, errors.New("no valid cidrs were provided")
	}
	return validCidrs, warnings, nil
}

// GetRequestIp returns the caller's address, preferring the first
// entry of X-Forwarded-For over the connection's remote address
func GetRequestIp(r *http.Request) (net.IP, error) {
	forwardedForHeader := r.Header.Get("X-Forwarded-For")
	if forwardedForHeader != "" {
		parts := strings.Split(forwardedForHeader, ",")
		if parsed := net.ParseIP(strings.TrimSpace(parts[0])); parsed != nil {
			return parsed, nil
		}
	}
	remoteIp, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return nil, err
	}
	parsed := net.ParseIP(remoteIp)
	if parsed == nil {
		return nil, errors.New("invalid remote ip")
	}
	return parsed, nil
}

func isIpAllowed(ip net.IP, cidrs []*net.IPNet) bool {
	for _, cidr := range cidrs {
		if cidr.Contains(ip) {
			return true
		}
	}
	return false
}
