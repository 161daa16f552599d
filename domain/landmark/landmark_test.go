package landmark

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestExtract_IndexesByID(t *testing.T) {
	face := &Face{Keypoints: []Keypoint{
		{ID: 2, X: 20, Y: 21},
		{ID: 0, X: 1, Y: 2},
		{ID: 1, X: 10, Y: 11},
	}}
	set := Extract(face)
	if len(set) != 3 {
		t.Fatalf("expected 3 points, got %d", len(set))
	}
	want := KeypointSet{{1, 2}, {10, 11}, {20, 21}}
	for i := range want {
		if set[i] != want[i] {
			t.Fatalf("point %d: got %+v want %+v", i, set[i], want[i])
		}
	}
}

func TestExtract_EmptyInputs(t *testing.T) {
	if got := Extract(nil); got != nil {
		t.Fatalf("nil face should yield nil, got %v", got)
	}
	if got := Extract(&Face{}); got != nil {
		t.Fatalf("empty face should yield nil, got %v", got)
	}
	if got := Extract(&Face{Keypoints: []Keypoint{{ID: -1, X: 3, Y: 3}}}); got != nil {
		t.Fatalf("only negative ids should yield nil, got %v", got)
	}
}

func TestExtract_DoesNotAliasInput(t *testing.T) {
	face := &Face{Keypoints: []Keypoint{{ID: 0, X: 5, Y: 5}}}
	set := Extract(face)
	face.Keypoints[0].X = 99
	if set[0].X != 5 {
		t.Fatalf("extracted set changed with input: %+v", set[0])
	}
}

func TestFromPoints_RoundTripsThroughExtract(t *testing.T) {
	pts := []Point{{1, 1}, {2, 2}, {3, 3}}
	face := FromPoints(pts)
	set := Extract(&face)
	for i := range pts {
		if set[i] != pts[i] {
			t.Fatalf("point %d: got %+v want %+v", i, set[i], pts[i])
		}
	}
}

func TestPoint_Lerp(t *testing.T) {
	p := Point{0, 0}.Lerp(Point{10, 20}, 0.25)
	if p.X != 2.5 || p.Y != 5 {
		t.Fatalf("unexpected lerp %+v", p)
	}
}

func TestReplayDetector_PlaysRecordsInOrder(t *testing.T) {
	stream := `{"frame":0,"faces":[{"keypoints":[{"id":0,"x":1,"y":2}]}]}

{"frame":1,"faces":[]}
`
	recs, err := ReadRecords(strings.NewReader(stream))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	d := NewReplayDetector(recs)
	ctx := context.Background()
	faces, err := d.Detect(ctx, nil)
	if err != nil || len(faces) != 1 || faces[0].Keypoints[0].Y != 2 {
		t.Fatalf("first frame: faces=%+v err=%v", faces, err)
	}
	faces, _ = d.Detect(ctx, nil)
	if len(faces) != 0 {
		t.Fatalf("second frame should have no faces, got %d", len(faces))
	}
	faces, _ = d.Detect(ctx, nil)
	if faces != nil {
		t.Fatalf("exhausted replay should return nil, got %+v", faces)
	}
	d.Loop = true
	faces, _ = d.Detect(ctx, nil)
	if len(faces) != 1 {
		t.Fatalf("looped replay should restart, got %d faces", len(faces))
	}
}

func TestReplayDetector_CancelledContext(t *testing.T) {
	d := NewReplayDetector([]FrameRecord{{Faces: []Face{{}}}})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := d.Detect(ctx, nil); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestReadRecords_BadLine(t *testing.T) {
	_, err := ReadRecords(strings.NewReader("{\"frame\":0}\nnot json\n"))
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("expected line 2 error, got %v", err)
	}
}

func TestRecorder_OutputReadsBack(t *testing.T) {
	var buf bytes.Buffer
	src := NewReplayDetector([]FrameRecord{
		{Faces: []Face{{Keypoints: []Keypoint{{ID: 0, X: 4, Y: 5}}}}},
		{Faces: nil},
	})
	rec := NewRecorder(&buf)
	d := Recording(src, rec)
	for i := 0; i < 2; i++ {
		if _, err := d.Detect(context.Background(), nil); err != nil {
			t.Fatalf("detect %d: %v", i, err)
		}
	}
	if err := rec.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	recs, err := ReadRecords(&buf)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(recs) != 2 || recs[1].Frame != 1 || recs[0].Faces[0].Keypoints[0].X != 4 {
		t.Fatalf("unexpected records %+v", recs)
	}
}
