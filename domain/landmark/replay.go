package landmark

import (
	"bufio"
	"context"
	"fmt"
	"image"
	"io"
	"os"
	"sync"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// maxRecordLine bounds one JSON line; a 478-point face is ~25KB.
const maxRecordLine = 4 << 20

// FrameRecord is one line of a landmark stream: detector output for a frame.
type FrameRecord struct {
	Frame int    `json:"frame"`
	Faces []Face `json:"faces"`
}

// ReadRecords decodes a JSON-lines landmark stream. Blank lines are skipped.
func ReadRecords(r io.Reader) ([]FrameRecord, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxRecordLine)
	var out []FrameRecord
	line := 0
	for sc.Scan() {
		line++
		b := sc.Bytes()
		if len(b) == 0 {
			continue
		}
		var rec FrameRecord
		if err := json.Unmarshal(b, &rec); err != nil {
			return nil, fmt.Errorf("landmark stream line %d: %w", line, err)
		}
		out = append(out, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("landmark stream: %w", err)
	}
	return out, nil
}

// ReplayDetector returns recorded faces, one record per Detect call. Once
// the records are exhausted it reports no faces (or wraps around when Loop
// is set).
type ReplayDetector struct {
	mu      sync.Mutex
	records []FrameRecord
	next    int
	Loop    bool
}

// NewReplayDetector wraps already decoded records.
func NewReplayDetector(records []FrameRecord) *ReplayDetector {
	return &ReplayDetector{records: records}
}

// OpenReplay reads a landmark stream file.
func OpenReplay(path string) (*ReplayDetector, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	recs, err := ReadRecords(f)
	if err != nil {
		return nil, err
	}
	return NewReplayDetector(recs), nil
}

// Len reports the number of recorded frames.
func (d *ReplayDetector) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.records)
}

// Detect ignores the frame contents and returns the next record's faces.
func (d *ReplayDetector) Detect(ctx context.Context, _ *image.RGBA) ([]Face, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.next >= len(d.records) {
		if !d.Loop || len(d.records) == 0 {
			return nil, nil
		}
		d.next = 0
	}
	rec := d.records[d.next]
	d.next++
	return rec.Faces, nil
}

// Rewind restarts playback from the first record.
func (d *ReplayDetector) Rewind() {
	d.mu.Lock()
	d.next = 0
	d.mu.Unlock()
}

var _ Detector = (*ReplayDetector)(nil)

// Recorder writes detector output in the same JSON-lines format that
// ReplayDetector reads.
type Recorder struct {
	mu    sync.Mutex
	w     *bufio.Writer
	frame int
}

// NewRecorder returns a Recorder writing to w. Call Flush when done.
func NewRecorder(w io.Writer) *Recorder {
	return &Recorder{w: bufio.NewWriter(w)}
}

// Write appends one frame record and advances the frame counter.
func (r *Recorder) Write(faces []Face) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if faces == nil {
		faces = []Face{}
	}
	b, err := json.Marshal(FrameRecord{Frame: r.frame, Faces: faces})
	if err != nil {
		return err
	}
	r.frame++
	if _, err := r.w.Write(b); err != nil {
		return err
	}
	return r.w.WriteByte('\n')
}

// Flush writes any buffered records to the underlying writer.
func (r *Recorder) Flush() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.w.Flush()
}

// Recording wraps a detector so that every successful result is also
// written to rec. Recording errors are returned alongside the faces.
func Recording(d Detector, rec *Recorder) Detector {
	return DetectorFunc(func(ctx context.Context, frame *image.RGBA) ([]Face, error) {
		faces, err := d.Detect(ctx, frame)
		if err != nil {
			return nil, err
		}
		if werr := rec.Write(faces); werr != nil {
			return faces, fmt.Errorf("record landmarks: %w", werr)
		}
		return faces, nil
	})
}
