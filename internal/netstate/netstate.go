// Package netstate reports whether the host appears to have network
// connectivity at all.
package netstate

import (
	"net"
	"time"

	"github.com/stahnma/gh-reposearch/internal/cache"
)

// DefaultTTL is how long a probe answer is reused.
const DefaultTTL = 5 * time.Second

const onlineKey = "online"

// Probe answers Online from the host's network interfaces, memoised for a
// short TTL.
type Probe struct {
	cache *cache.Cache
	check func() bool
}

// NewProbe creates a Probe that inspects the host interfaces.
func NewProbe(ttl time.Duration) *Probe {
	return newProbe(ttl, interfacesUp)
}

func newProbe(ttl time.Duration, check func() bool) *Probe {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Probe{cache: cache.New(ttl), check: check}
}

// Online reports whether any non-loopback interface is up with an address.
func (p *Probe) Online() bool {
	if online, ok := p.cache.GetBool(onlineKey); ok {
		return online
	}
	online := p.check()
	p.cache.Set(onlineKey, online)
	return online
}

// Static is a fixed connectivity answer.
type Static bool

// Online returns the fixed answer.
func (s Static) Online() bool {
	return bool(s)
}

func interfacesUp() bool {
	ifaces, err := net.Interfaces()
	if err != nil {
		// Unknown is treated as online so failures are not mislabelled.
		return true
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err == nil && len(addrs) > 0 {
			return true
		}
	}
	return false
}
