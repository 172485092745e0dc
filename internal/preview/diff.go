package preview

// OpKind classifies a diff line.
type OpKind int

const (
	// OpSame is a line present in both versions.
	OpSame OpKind = iota
	// OpDelete is a line removed from the original.
	OpDelete
	// OpInsert is a line added by the replacement.
	OpInsert
)

// Op is one line of a diff.
type Op struct {
	Kind OpKind
	Text string
}

// Marker returns the gutter character for the op.
func (o Op) Marker() byte {
	switch o.Kind {
	case OpDelete:
		return '-'
	case OpInsert:
		return '+'
	default:
		return ' '
	}
}

// Diff compares two line slices. Unchanged leading and trailing lines become
// OpSame; the differing middle becomes the original's deletions followed by
// the replacement's insertions.
func Diff(before, after []string) []Op {
	prefix := 0
	for prefix < len(before) && prefix < len(after) && before[prefix] == after[prefix] {
		prefix++
	}

	suffix := 0
	for suffix < len(before)-prefix && suffix < len(after)-prefix &&
		before[len(before)-1-suffix] == after[len(after)-1-suffix] {
		suffix++
	}

	ops := make([]Op, 0, len(before)+len(after))
	for _, line := range before[:prefix] {
		ops = append(ops, Op{Kind: OpSame, Text: line})
	}
	for _, line := range before[prefix : len(before)-suffix] {
		ops = append(ops, Op{Kind: OpDelete, Text: line})
	}
	for _, line := range after[prefix : len(after)-suffix] {
		ops = append(ops, Op{Kind: OpInsert, Text: line})
	}
	for _, line := range before[len(before)-suffix:] {
		ops = append(ops, Op{Kind: OpSame, Text: line})
	}
	return ops
}

// Changed reports whether the diff contains any insertion or deletion.
func Changed(ops []Op) bool {
	for _, op := range ops {
		if op.Kind != OpSame {
			return true
		}
	}
	return false
}
