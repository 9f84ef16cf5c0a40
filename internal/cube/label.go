package cube

import (
	"strconv"
	"strings"
)

// StatePID is the process id carried by state labels.
const StatePID = -1

// Label tags a cube with a text and the id of the process that produced it.
// Action labels carry the process id, state labels carry StatePID.
type Label struct {
	Text string
	PID  int
}

// StateLabel returns the label of a degree-0 cube describing a global state.
func StateLabel(text string) Label {
	return Label{Text: text, PID: StatePID}
}

func (l Label) String() string {
	if l.PID == StatePID {
		return l.Text
	}
	return l.Text + "@" + strconv.Itoa(l.PID)
}

// LabelsEqual reports whether two label words are equal letter by letter.
func LabelsEqual(a, b []Label) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// JoinLabels renders the texts of a label word separated by sep.
func JoinLabels(word []Label, sep string) string {
	texts := make([]string, len(word))
	for i, l := range word {
		texts[i] = l.Text
	}
	return strings.Join(texts, sep)
}
