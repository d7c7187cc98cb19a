package device

import (
	"context"
	"io"

	"golang.org/x/time/rate"
)

// minBurst keeps small limits from degenerating into byte-sized reads
const minBurst = 64 * 1024

// Limiter paces bytes through a token bucket shared by every copy through one device.
// A nil *Limiter does not limit.
type Limiter struct {
	bytesPerSecond int64
	burst          int
	limiter        *rate.Limiter
}

// NewLimiter creates a limiter for bytesPerSecond. Zero or less means unlimited.
func NewLimiter(bytesPerSecond int64) *Limiter {
	if bytesPerSecond <= 0 {
		return nil
	}
	burst := minBurst
	if bytesPerSecond > int64(burst) {
		burst = int(bytesPerSecond)
	}
	return &Limiter{
		bytesPerSecond: bytesPerSecond,
		burst:          burst,
		limiter:        rate.NewLimiter(rate.Limit(bytesPerSecond), burst),
	}
}

// BytesPerSecond returns the configured rate, 0 when unlimited
func (l *Limiter) BytesPerSecond() int64 {
	if l == nil {
		return 0
	}
	return l.bytesPerSecond
}

// throttledReader paces reads through a limiter
type throttledReader struct {
	ctx     context.Context
	reader  io.Reader
	limiter *Limiter
}

func throttle(ctx context.Context, r io.Reader, l *Limiter) io.Reader {
	if l == nil {
		return r
	}
	return &throttledReader{ctx: ctx, reader: r, limiter: l}
}

func (t *throttledReader) Read(p []byte) (int, error) {
	if err := t.ctx.Err(); err != nil {
		return 0, err
	}
	if len(p) > t.limiter.burst {
		p = p[:t.limiter.burst]
	}
	n, err := t.reader.Read(p)
	if n > 0 {
		if werr := t.limiter.limiter.WaitN(t.ctx, n); werr != nil {
			return n, werr
		}
	}
	return n, err
}
