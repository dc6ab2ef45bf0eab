package editor

import "github.com/kobzarvs/orged/internal/document"

// Operator is a normal-mode action waiting for a motion or its own
// repeated key.
type Operator int

const (
	OpNone Operator = iota
	OpDelete
	OpYank
	OpIndent
	OpOutdent
	OpFormat
)

func (o Operator) String() string {
	switch o {
	case OpDelete:
		return "d"
	case OpYank:
		return "y"
	case OpIndent:
		return ">"
	case OpOutdent:
		return "<"
	case OpFormat:
		return "="
	default:
		return ""
	}
}

const maxCount = 1_000_000

// CommandState tracks the transient normal-mode grammar: an accumulated
// count, a pending operator, and the visual selection anchor. It is
// cleared whenever a command completes or aborts.
type CommandState struct {
	count     int
	hasCount  bool
	operator  Operator
	anchor    document.Position
	hasAnchor bool
}

// PushDigit accumulates one decimal digit into the count. A leading zero
// is rejected so that "0" stays a motion.
func (c *CommandState) PushDigit(d int) bool {
	if d < 0 || d > 9 {
		return false
	}
	if d == 0 && !c.hasCount {
		return false
	}
	next := c.count*10 + d
	if next > maxCount {
		next = maxCount
	}
	c.count = next
	c.hasCount = true
	return true
}

func (c *CommandState) HasCount() bool { return c.hasCount }

// TakeCount consumes the pending count, defaulting to 1.
func (c *CommandState) TakeCount() int {
	n := c.count
	c.count = 0
	c.hasCount = false
	if n < 1 {
		return 1
	}
	return n
}

func (c *CommandState) Operator() Operator { return c.operator }

func (c *CommandState) SetOperator(op Operator) { c.operator = op }

func (c *CommandState) ClearOperator() { c.operator = OpNone }

func (c *CommandState) SetAnchor(p document.Position) {
	c.anchor = p
	c.hasAnchor = true
}

func (c *CommandState) Anchor() (document.Position, bool) {
	return c.anchor, c.hasAnchor
}

func (c *CommandState) ClearAnchor() { c.hasAnchor = false }

// Clear aborts any in-flight command.
func (c *CommandState) Clear() {
	c.count = 0
	c.hasCount = false
	c.operator = OpNone
	c.hasAnchor = false
}

func (c *CommandState) IsEmpty() bool {
	return !c.hasCount && c.operator == OpNone && !c.hasAnchor
}
