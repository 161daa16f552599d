package lipstick

// Lip contours on the 468/478-point MediaPipe FaceMesh topology. Each path
// walks the outer edge from the left mouth corner (61) to the right corner
// (291), then returns along the inner edge back to 61.

// LipPath is a fixed ordered list of landmark ids outlining one lip.
type LipPath []int

var (
	UpperLipPath = LipPath{61, 185, 40, 39, 37, 0, 267, 269, 270, 409, 291, 306, 292, 308, 415, 310, 311, 312, 13, 82, 81, 80, 191, 78, 62, 76, 61}
	LowerLipPath = LipPath{61, 146, 91, 181, 84, 17, 314, 405, 321, 375, 291, 306, 292, 308, 324, 318, 402, 317, 14, 87, 178, 88, 95, 78, 62, 76, 61}
)

// MaxID returns the largest landmark id in p, or -1 for an empty path.
func (p LipPath) MaxID() int {
	m := -1
	for _, id := range p {
		if id > m {
			m = id
		}
	}
	return m
}

// ExtensionMap pairs an outer-contour landmark with the skin landmark just
// beyond it. Expansion pulls the contour toward that target.
type ExtensionMap map[int]int

// Target returns the extension target for id; unmapped ids map to themselves.
func (m ExtensionMap) Target(id int) int {
	if t, ok := m[id]; ok {
		return t
	}
	return id
}

// DefaultExtension pushes the outer upper lip toward the philtrum row and
// the outer lower lip toward the chin row. Corners and inner contour stay.
var DefaultExtension = ExtensionMap{
	185: 186, 40: 92, 39: 165, 37: 167, 0: 164,
	267: 393, 269: 391, 270: 322, 409: 410,
	146: 43, 91: 106, 181: 182, 84: 83, 17: 18,
	314: 313, 405: 406, 321: 335, 375: 273,
}
