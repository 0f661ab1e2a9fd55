package simulation

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/zeebo/xxh3"
)

// Frame is the state of a character at the end of a tick.
type Frame struct {
	Tick     int64
	Location mgl64.Vec3
	Rotation mgl64.Quat
	Velocity mgl64.Vec3
	Grounded bool
}

// Recorder hashes every recorded frame into a running checksum. Two runs of the same scenario produce
// the same checksum only if every frame matches bit for bit.
type Recorder struct {
	hash   *xxh3.Hasher
	buf    [8]byte
	frames []Frame
	keep   bool
}

// NewRecorder returns an empty recorder. Frames are only retained when keep is set.
func NewRecorder(keep bool) *Recorder {
	return &Recorder{hash: xxh3.New(), keep: keep}
}

// Record hashes f and retains it if the recorder keeps frames.
func (r *Recorder) Record(f Frame) {
	r.putUint(uint64(f.Tick))
	r.putVec(f.Location)
	r.putFloat(f.Rotation.W)
	r.putVec(f.Rotation.V)
	r.putVec(f.Velocity)
	if f.Grounded {
		r.putUint(1)
	} else {
		r.putUint(0)
	}
	if r.keep {
		r.frames = append(r.frames, f)
	}
}

// Sum returns the checksum of every frame recorded so far.
func (r *Recorder) Sum() uint64 {
	return r.hash.Sum64()
}

// Frames returns the retained frames.
func (r *Recorder) Frames() []Frame {
	return r.frames
}

func (r *Recorder) putVec(v mgl64.Vec3) {
	for _, c := range v {
		r.putFloat(c)
	}
}

func (r *Recorder) putFloat(f float64) {
	r.putUint(math.Float64bits(f))
}

func (r *Recorder) putUint(n uint64) {
	binary.LittleEndian.PutUint64(r.buf[:], n)
	_, _ = r.hash.Write(r.buf[:])
}
