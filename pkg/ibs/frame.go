package ibs

import (
	"fmt"
	"sync"

	"github.com/taurusgroup/vbnn-ibs/internal/params"
	"github.com/taurusgroup/vbnn-ibs/pkg/math/curve"
)

// frame is the scratch buffer in which challenge inputs are concatenated.
type frame struct {
	buf []byte
}

var framePool = sync.Pool{
	New: func() interface{} {
		return &frame{buf: make([]byte, 0, params.FrameCapacity)}
	},
}

func acquireFrame() *frame {
	return framePool.Get().(*frame)
}

// release zeroes f and returns it to the pool.
// Frames grown past params.MaxPooledFrame are left to the garbage collector.
func (f *frame) release() {
	buf := f.buf[:cap(f.buf)]
	for i := range buf {
		buf[i] = 0
	}
	if cap(f.buf) > params.MaxPooledFrame {
		return
	}
	f.buf = f.buf[:0]
	framePool.Put(f)
}

func (f *frame) write(data []byte) {
	f.buf = append(f.buf, data...)
}

func (f *frame) writePoint(p curve.Point) error {
	data, err := p.MarshalBinary()
	if err != nil {
		return fmt.Errorf("encode point: %w", err)
	}
	f.write(data)
	return nil
}

// challenge returns digest(id ‖ msg ‖ enc(points[0]) ‖ ...) mod n.
//
// Extract and the first step of Verify pass a nil msg.
func (s *Scheme) challenge(id, msg []byte, points ...curve.Point) (curve.Scalar, error) {
	f := acquireFrame()
	defer f.release()

	f.write(id)
	f.write(msg)
	for _, p := range points {
		if err := f.writePoint(p); err != nil {
			return nil, err
		}
	}
	return curve.FromDigest(s.group, s.digest.Sum(f.buf)), nil
}

// checkPoint ensures p is a non nil element of the scheme's group,
// returning missing when p is nil.
func (s *Scheme) checkPoint(name string, p curve.Point, missing error) error {
	if p == nil {
		return fmt.Errorf("%s: %w", name, missing)
	}
	if !curve.Same(p.Curve(), s.group) {
		return fmt.Errorf("%s: %w: expected %s, got %s", name, ErrGroupMismatch, s.group.Name(), p.Curve().Name())
	}
	return nil
}

// checkScalar is the scalar counterpart of checkPoint.
func (s *Scheme) checkScalar(name string, x curve.Scalar, missing error) error {
	if x == nil {
		return fmt.Errorf("%s: %w", name, missing)
	}
	if !curve.Same(x.Curve(), s.group) {
		return fmt.Errorf("%s: %w: expected %s, got %s", name, ErrGroupMismatch, s.group.Name(), x.Curve().Name())
	}
	return nil
}
