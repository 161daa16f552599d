package landmark

// Extract flattens a face into a KeypointSet indexed by landmark id.
// It returns nil when face is nil or has no keypoints with a valid id; the
// caller must skip rendering for that frame. Ids absent from the face keep
// the zero point.
func Extract(face *Face) KeypointSet {
	if face == nil || len(face.Keypoints) == 0 {
		return nil
	}
	maxID := -1
	for _, kp := range face.Keypoints {
		if kp.ID > maxID {
			maxID = kp.ID
		}
	}
	if maxID < 0 {
		return nil
	}
	set := make(KeypointSet, maxID+1)
	for _, kp := range face.Keypoints {
		if kp.ID < 0 {
			continue
		}
		set[kp.ID] = Point{X: kp.X, Y: kp.Y}
	}
	return set
}

// FromPoints builds a face whose keypoint ids are the slice positions. It
// mirrors detectors that report keypoints positionally.
func FromPoints(pts []Point) Face {
	kps := make([]Keypoint, len(pts))
	for i, p := range pts {
		kps[i] = Keypoint{ID: i, X: p.X, Y: p.Y}
	}
	return Face{Keypoints: kps}
}
