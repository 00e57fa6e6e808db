package domain

import (
	"context"
	"maps"
	"net"
	"net/netip"

	"github.com/pkg/errors"
)

var ErrDomainNotFound = errors.New("domain not found")

type Lookuper interface {
	LookupIP(ctx context.Context, domain string) (addrs []netip.Addr, err error)
}

type mapLookuper struct {
	set map[string][]netip.Addr
}

var _ Lookuper = (*mapLookuper)(nil)

func NewMapLookuper(set map[string][]netip.Addr) *mapLookuper {
	if set == nil {
		set = make(map[string][]netip.Addr)
	}
	return &mapLookuper{set: maps.Clone(set)}
}

func (m *mapLookuper) LookupIP(ctx context.Context, domain string) (addrs []netip.Addr, err error) {
	addrs, ok := m.set[domain]
	if !ok {
		return nil, ErrDomainNotFound
	}
	return addrs, nil
}

func (m *mapLookuper) Set(domain string, addrs []netip.Addr) {
	if len(addrs) == 0 {
		return
	}
	m.set[domain] = addrs
}

func (m *mapLookuper) Del(domain string) { delete(m.set, domain) }

// netLookuper resolves IPv4 addresses only.
type netLookuper struct {
	resolver *net.Resolver
}

var _ Lookuper = (*netLookuper)(nil)

func NewNetLookuper(resolver *net.Resolver) *netLookuper {
	if resolver == nil {
		resolver = net.DefaultResolver
	}
	return &netLookuper{resolver: resolver}
}

func (n *netLookuper) LookupIP(ctx context.Context, domain string) ([]netip.Addr, error) {
	addrs, err := n.resolver.LookupNetIP(ctx, "ip4", domain)
	if err != nil {
		var dnsErr *net.DNSError
		if errors.As(err, &dnsErr) && dnsErr.IsNotFound {
			return nil, errors.Wrap(ErrDomainNotFound, dnsErr.Error())
		}
		return nil, errors.Wrapf(err, "resolving %s", domain)
	}

	out := make([]netip.Addr, 0, len(addrs))
	for _, addr := range addrs {
		if addr = addr.Unmap(); addr.Is4() {
			out = append(out, addr)
		}
	}

	if len(out) == 0 {
		return nil, ErrDomainNotFound
	}

	return out, nil
}
