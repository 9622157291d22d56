package scan

import (
	"fmt"
	"math/bits"
	"sort"
	"strconv"
	"strings"
)

// Address is an IPv4 host address as a 32-bit unsigned integer.
type Address uint32

func (a Address) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", byte(a>>24), byte(a>>16), byte(a>>8), byte(a))
}

// ParseAddress converts a dotted-quad string to an Address.
func ParseAddress(s string) (Address, error) {
	octets := strings.Split(s, ".")
	if len(octets) != 4 {
		return 0, &InvalidSpecError{Spec: s, Reason: "expected four dotted octets"}
	}
	var addr Address
	for _, o := range octets {
		n, err := strconv.Atoi(o)
		if err != nil || n < 0 || n > 255 {
			return 0, &InvalidSpecError{Spec: s, Reason: fmt.Sprintf("bad octet '%s'", o)}
		}
		addr = addr<<8 | Address(n)
	}
	return addr, nil
}

// CIDRBlock is a contiguous block of 2^(32-Prefix) addresses starting at
// Base. Base always has its host bits cleared.
type CIDRBlock struct {
	Base   Address
	Prefix int
}

func (b CIDRBlock) String() string {
	if b.Prefix == 32 {
		return b.Base.String()
	}
	return fmt.Sprintf("%s/%d", b.Base, b.Prefix)
}

// Size returns the number of addresses in the block.
func (b CIDRBlock) Size() uint64 {
	return uint64(1) << (32 - b.Prefix)
}

// Contains reports whether addr falls inside the block.
func (b CIDRBlock) Contains(addr Address) bool {
	return addr&mask(b.Prefix) == b.Base
}

func mask(prefix int) Address {
	if prefix == 0 {
		return 0
	}
	return Address(^uint32(0) << (32 - prefix))
}

// ParseCIDR parses "ip" or "ip/prefix" into a CIDRBlock. A bare address is
// treated as a /32. Host bits below the prefix are cleared, so
// "192.168.0.5/24" normalizes to 192.168.0.0/24.
func ParseCIDR(spec string) (CIDRBlock, error) {
	ipPart := spec
	prefix := 32

	if idx := strings.Index(spec, "/"); idx != -1 {
		ipPart = spec[:idx]
		n, err := strconv.Atoi(spec[idx+1:])
		if err != nil || n < 0 || n > 32 {
			return CIDRBlock{}, &InvalidSpecError{Spec: spec, Reason: fmt.Sprintf("bad prefix '%s'", spec[idx+1:])}
		}
		prefix = n
	}

	base, err := ParseAddress(ipPart)
	if err != nil {
		return CIDRBlock{}, &InvalidSpecError{Spec: spec, Reason: "bad address"}
	}

	return CIDRBlock{Base: base & mask(prefix), Prefix: prefix}, nil
}

// Expand returns the union of the given blocks as a sorted, deduplicated
// address slice. Overlapping and adjacent blocks collapse to set semantics.
// A /0 block expands to the entire IPv4 space; bounding input size is the
// caller's job.
func Expand(blocks []CIDRBlock) []Address {
	var total uint64
	for _, b := range blocks {
		total += b.Size()
	}

	addrs := make([]Address, 0, total)
	for _, b := range blocks {
		for i := uint64(0); i < b.Size(); i++ {
			addrs = append(addrs, b.Base+Address(i))
		}
	}

	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })

	out := addrs[:0]
	for i, a := range addrs {
		if i == 0 || a != out[len(out)-1] {
			out = append(out, a)
		}
	}
	return out
}

// Compress is the inverse of Expand: it covers a sorted, deduplicated
// address slice with the fewest aligned CIDR blocks. Each maximal run of
// consecutive addresses is consumed greedily, taking the largest
// power-of-two block that starts aligned at the run's front and fits in
// what remains.
func Compress(addrs []Address) []CIDRBlock {
	var blocks []CIDRBlock

	for i := 0; i < len(addrs); {
		j := i + 1
		for j < len(addrs) && addrs[j] == addrs[j-1]+1 {
			j++
		}

		base := addrs[i]
		remaining := uint64(j - i)
		for remaining > 0 {
			k := bits.TrailingZeros32(uint32(base))
			if base == 0 {
				k = 32
			}
			if fit := bits.Len64(remaining) - 1; k > fit {
				k = fit
			}
			blocks = append(blocks, CIDRBlock{Base: base, Prefix: 32 - k})
			base += Address(uint64(1) << k)
			remaining -= uint64(1) << k
		}

		i = j
	}

	return blocks
}
