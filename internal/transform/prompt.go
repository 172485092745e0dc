package transform

import (
	"fmt"
	"strings"
)

// Prompt renders a request into a system instruction and a user message for
// chat-style model providers.
func Prompt(req Request) (system, user string) {
	var sys strings.Builder
	sys.WriteString("You rewrite text exactly as instructed. ")
	sys.WriteString("Reply with only the rewritten text: no explanations, no markdown fences.")
	if req.Filetype != "" {
		fmt.Fprintf(&sys, " The text is %s source code.", req.Filetype)
	}
	if req.Path != "" {
		fmt.Fprintf(&sys, " It comes from the file %s.", req.Path)
	}

	user = fmt.Sprintf("Instruction: %s\n\nText:\n%s", req.Instruction, req.Text)
	return sys.String(), user
}
