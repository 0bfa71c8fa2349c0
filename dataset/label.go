package dataset

import (
	"strings"
)

// Label is the class of a sample. Only LabelP and LabelH are valid.
type Label byte

const (
	// LabelP marks a patient sample.
	LabelP Label = 'P'
	// LabelH marks a healthy sample.
	LabelH Label = 'H'
)

// Labels lists the valid labels in a fixed order.
var Labels = [2]Label{LabelP, LabelH}

// String returns the single-character form of the label.
func (l Label) String() string {
	return string(rune(l))
}

// Valid reports whether l is one of the two known labels.
func (l Label) Valid() bool {
	return l == LabelP || l == LabelH
}

// ParseLabel reads a label from its textual column value. Only the first
// character after trimming is significant, so "P", "P\r" and "Patient" all
// parse as LabelP.
func ParseLabel(s string) (Label, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	l := Label(s[0])
	return l, l.Valid()
}
