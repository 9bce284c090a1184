package game

import (
	"regexp"
	"sort"
	"strings"
)

func captureMark(c Capture) string {
	switch c {
	case CaptureNone:
		return ""
	case CaptureSome:
		return "!"
	case CaptureKing:
		return "!!"
	}
	panic("game: invalid capture classification")
}

func dropNotation(label byte, cell string, prev *Action) string {
	if prev == nil {
		return string(label) + ":" + cell
	}
	return prev.name + "/" + string(label) + ":" + cell
}

func moveCubeNotation(src, dst string, capture Capture, prev *Action) string {
	if prev == nil {
		return src + "-" + dst + captureMark(capture)
	}
	return prev.name + "-" + dst + captureMark(capture)
}

func moveStackNotation(src, dst string, capture Capture, prev *Action) string {
	if prev == nil {
		return src + "=" + dst + captureMark(capture)
	}
	return prev.name + "=" + dst + captureMark(capture)
}

func relocateKingNotation(label byte, cell string, prev *Action) string {
	if prev == nil {
		return string(label) + ":" + cell
	}
	return prev.name + "/" + string(label) + ":" + cell
}

// mirrorDropPair returns the symmetric notation of a double drop with
// equal labels, e.g. "M:a1/M:b1" yields "M:b1/M:a1". Such pairs place
// the same cubes and are interchangeable.
func mirrorDropPair(notation string) (string, bool) {
	if len(notation) != 9 || notation[1] != ':' || notation[6] != ':' {
		return "", false
	}
	label1, label2 := notation[0], notation[5]
	cell1, cell2 := notation[2:4], notation[7:9]
	if label1 != label2 || cell1 == cell2 {
		return "", false
	}
	return string(label1) + ":" + cell2 + "/" + string(label1) + ":" + cell1, true
}

// Simplify strips whitespace and capture marks, leaving the bare
// move text used for matching player input.
func Simplify(notation string) string {
	notation = strings.TrimSpace(notation)
	notation = strings.ReplaceAll(notation, " ", "")
	return strings.ReplaceAll(notation, "!", "")
}

// NotationShape is the syntactic family of a simplified notation.
type NotationShape int

const (
	ShapeInvalid NotationShape = iota
	ShapeDropOne
	ShapeDropTwo
	ShapeMoveCube
	ShapeMoveStack
	ShapeMoveCubeMoveStack
	ShapeMoveStackMoveCube
	ShapeMoveCubeRelocateKing
	ShapeMoveStackRelocateKing
	ShapeMoveCubeMoveStackRelocateKing
	ShapeMoveStackMoveCubeRelocateKing
)

// Pattern returns the shape as a placeholder template, e.g. "xx-xx=xx".
func (s NotationShape) Pattern() string {
	switch s {
	case ShapeDropOne:
		return "x:xx"
	case ShapeDropTwo:
		return "x:xx/x:xx"
	case ShapeMoveCube:
		return "xx-xx"
	case ShapeMoveStack:
		return "xx=xx"
	case ShapeMoveCubeMoveStack:
		return "xx-xx=xx"
	case ShapeMoveStackMoveCube:
		return "xx=xx-xx"
	case ShapeMoveCubeRelocateKing:
		return "xx-xx/x:xx"
	case ShapeMoveStackRelocateKing:
		return "xx=xx/x:xx"
	case ShapeMoveCubeMoveStackRelocateKing:
		return "xx-xx=xx/x:xx"
	case ShapeMoveStackMoveCubeRelocateKing:
		return "xx=xx-xx/x:xx"
	}
	return "invalid"
}

var shapePatterns = []struct {
	shape NotationShape
	re    *regexp.Regexp
}{
	{ShapeDropOne, regexp.MustCompile(`^[KFRPSMWkfrpsmw]:[a-i][1-9]$`)},
	{ShapeDropTwo, regexp.MustCompile(`^[KFRPSMWkfrpsmw]:[a-i][1-9]/[KFRPSMWkfrpsmw]:[a-i][1-9]$`)},
	{ShapeMoveCube, regexp.MustCompile(`^[a-i][1-9]-[a-i][1-9]$`)},
	{ShapeMoveStack, regexp.MustCompile(`^[a-i][1-9]=[a-i][1-9]$`)},
	{ShapeMoveCubeMoveStack, regexp.MustCompile(`^[a-i][1-9]-[a-i][1-9]=[a-i][1-9]$`)},
	{ShapeMoveStackMoveCube, regexp.MustCompile(`^[a-i][1-9]=[a-i][1-9]-[a-i][1-9]$`)},
	{ShapeMoveCubeRelocateKing, regexp.MustCompile(`^[a-i][1-9]-[a-i][1-9]/[Kk]:[a-i][1-9]$`)},
	{ShapeMoveStackRelocateKing, regexp.MustCompile(`^[a-i][1-9]=[a-i][1-9]/[Kk]:[a-i][1-9]$`)},
	{ShapeMoveCubeMoveStackRelocateKing, regexp.MustCompile(`^[a-i][1-9]-[a-i][1-9]=[a-i][1-9]/[Kk]:[a-i][1-9]$`)},
	{ShapeMoveStackMoveCubeRelocateKing, regexp.MustCompile(`^[a-i][1-9]=[a-i][1-9]-[a-i][1-9]/[Kk]:[a-i][1-9]$`)},
}

// ClassifyNotation identifies the shape of a simplified notation.
func ClassifyNotation(notation string) NotationShape {
	for _, p := range shapePatterns {
		if p.re.MatchString(notation) {
			return p.shape
		}
	}
	return ShapeInvalid
}

// ValidateNotation checks player input against the legal action names
// of a position. On failure the message carries hints built from the
// longest prefix of the input that still matches some legal action.
func ValidateNotation(input string, names []string) (bool, string) {
	simplified := Simplify(input)

	for _, name := range names {
		if input == name || simplified == name {
			return true, "validated action"
		}
	}

	shapes := make(map[NotationShape][]string)
	for _, name := range names {
		shape := ClassifyNotation(name)
		shapes[shape] = append(shapes[shape], name)
	}

	inputShape := ClassifyNotation(simplified)

	var message string
	switch {
	case inputShape == ShapeInvalid:
		message = "invalid action syntax !"
	case shapes[inputShape] == nil:
		message = inputShape.Pattern() + " : impossible action !"
	default:
		message = "invalid action !"
	}

	var hints []string
	for shape, shapeNames := range shapes {
		pattern := shape.Pattern()
		upper := min(len(simplified), len(pattern))

		matched := 0
		for _, name := range shapeNames {
			for end := matched; end <= upper; end++ {
				if simplified[:end] != name[:min(end, len(name))] {
					break
				}
				matched = end
			}
		}
		hints = append(hints, simplified[:matched]+pattern[matched:])
	}
	sort.Strings(hints)

	if len(hints) == 1 {
		message += " hint : " + hints[0]
	} else {
		message += " hints : " + strings.Join(hints, "  ")
	}
	return false, message
}
