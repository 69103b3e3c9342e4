package catalog

import (
	"encoding/json"
	"fmt"
)

// Op is the kind of a render instruction.
type Op int

const (
	OpNewPage Op = iota
	OpDrawImage
	OpDrawText
)

var opNames = [...]string{"new_page", "draw_image", "draw_text"}

func (o Op) String() string {
	if o < 0 || int(o) >= len(opNames) {
		return fmt.Sprintf("op(%d)", int(o))
	}
	return opNames[o]
}

// MarshalText encodes the op by name.
func (o Op) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText decodes an op name.
func (o *Op) UnmarshalText(b []byte) error {
	for i, n := range opNames {
		if n == string(b) {
			*o = Op(i)
			return nil
		}
	}
	return fmt.Errorf("unknown op %q", b)
}

// TextRole tells the renderer which band a text instruction belongs to.
type TextRole string

const (
	RoleLabel TextRole = "label"
	RoleNote  TextRole = "note"
)

// Instruction is one step for a renderer. Page is the 0-based page index for
// every op. Ref is set for OpDrawImage, Text and Role for OpDrawText.
type Instruction struct {
	Op    Op       `json:"op"`
	Page  int      `json:"page"`
	Index int      `json:"index"` // input record index; -1 for OpNewPage
	Ref   string   `json:"ref,omitempty"`
	Text  string   `json:"text,omitempty"`
	Role  TextRole `json:"role,omitempty"`
	Rect  Rect     `json:"rect"`
}

// NewPage returns the instruction that starts page.
func NewPage(page int) Instruction {
	return Instruction{Op: OpNewPage, Page: page, Index: -1}
}

// DrawImage returns an instruction placing ref at rect.
func DrawImage(page, index int, ref string, rect Rect) Instruction {
	return Instruction{Op: OpDrawImage, Page: page, Index: index, Ref: ref, Rect: rect}
}

// DrawText returns an instruction writing text into rect.
func DrawText(page, index int, text string, role TextRole, rect Rect) Instruction {
	return Instruction{Op: OpDrawText, Page: page, Index: index, Text: text, Role: role, Rect: rect}
}

// MarshalInstructions encodes a sequence of instructions as a JSON array.
func MarshalInstructions(ins []Instruction) ([]byte, error) {
	if ins == nil {
		ins = []Instruction{}
	}
	return json.MarshalIndent(ins, "", "  ")
}
