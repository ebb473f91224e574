package chaincfg

import (
	"encoding/binary"
	"math/bits"
	"math/rand/v2"
	"net"
	"time"

	"github.com/bsv-blockchain/go-wire"
	"github.com/kpango/fastime"
)

const (
	oneWeek        = 7 * 24 * time.Hour
	oneWeekSeconds = int64(oneWeek / time.Second)
)

// TimeSource returns the current time.
type TimeSource func() time.Time

// RandSource returns a uniformly distributed value in [0, n).
type RandSource func(n int64) int64

// DefaultTimeSource uses the cached clock from fastime.
func DefaultTimeSource() time.Time {
	return fastime.Now()
}

func DefaultRandSource(n int64) int64 {
	return rand.Int64N(n) //nolint:gosec // seed timestamps only need to be spread, not unpredictable
}

// DNSSeed is a labelled host resolved for peer discovery.
type DNSSeed struct {
	Name string
	Host string
}

func (d DNSSeed) String() string {
	return d.Host
}

// PackedSeedToIP turns a fixed seed word into an IPv4-mapped address. Seed
// words are stored with the first octet in the low byte, so the word is
// byte-swapped into network order first.
func PackedSeedToIP(packed uint32) net.IP {
	var b [4]byte

	binary.BigEndian.PutUint32(b[:], bits.ReverseBytes32(packed))

	return net.IPv4(b[0], b[1], b[2], b[3])
}

// ConvertSeeds turns the packed fixed seed table into peer address records,
// one per entry and in the same order. Each record gets a last-seen time drawn
// uniformly from [now - 2 weeks, now - 1 week) so seeds never look fresher
// than addresses learned from live peers. Address timestamps carry whole
// seconds only, so the start of the window is rounded up to the next second.
func ConvertSeeds(data []uint32, port uint16, now TimeSource, rnd RandSource) []*wire.NetAddress {
	if now == nil {
		now = DefaultTimeSource
	}

	if rnd == nil {
		rnd = DefaultRandSource
	}

	addrs := make([]*wire.NetAddress, 0, len(data))

	for _, packed := range data {
		lastSeen := time.Unix(windowStartSeconds(now())+rnd(oneWeekSeconds), 0)

		addrs = append(addrs, wire.NewNetAddressTimestamp(lastSeen, wire.SFNodeNetwork, PackedSeedToIP(packed), port))
	}

	return addrs
}

func windowStartSeconds(now time.Time) int64 {
	start := now.Add(-2 * oneWeek)

	sec := start.Unix()
	if start.Nanosecond() != 0 {
		sec++
	}

	return sec
}
