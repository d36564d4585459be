// Package parse turns an accumulated keystroke sequence into a command AST.
//
// Parsing is pure and stateless: the driver re-invokes Parse with the full
// accumulated sequence on every keystroke. Sequences are short and bounded,
// so the re-parse stays within one event-loop turn. The grammar:
//
//	Command            := [Register][Count](Action | OperatorInvocation | Motion)
//	Register           := '"' key
//	Count              := nonZeroDigit{digit}
//	OperatorInvocation := Operator (Operator | [Count][ForcedKind](TextObject|Motion))
//	TextObject         := ('i'|'a') objectKey
//	ForcedKind         := 'v' | 'V' | '<C-v>'
//
// Four result shapes cover the streaming contract: a complete command, an
// incomplete prefix awaiting more keystrokes, a request for one literal
// character (find/till/replace/mark), and an invalid sequence with a reason.
// A complete result always consumes every input keystroke; structurally
// complete sub-parses with trailing keys are invalid, never truncated.
package parse
