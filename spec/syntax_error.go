package spec

import "fmt"

type SyntaxError struct {
	message string
}

func newSyntaxError(message string) *SyntaxError {
	return &SyntaxError{
		message: message,
	}
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error: %s", e.message)
}

var (
	// lexical errors
	synErrInvalidToken   = newSyntaxError("invalid token")
	synErrUnclosedString = newSyntaxError("unclosed string literal")
	synErrInvalidNumber  = newSyntaxError("invalid number literal")

	// syntax errors
	synErrNoModel         = newSyntaxError("a program must have a model block")
	synErrNoModelName     = newSyntaxError("a model name is missing")
	synErrNoModelBody     = newSyntaxError("a model block must be enclosed in braces")
	synErrUnclosedBlock   = newSyntaxError("unclosed block; a closing brace is missing")
	synErrNoColon         = newSyntaxError("a colon must follow the keyword")
	synErrNoInput         = newSyntaxError("a model must have an input block")
	synErrDupInput        = newSyntaxError("a model can have just one input block")
	synErrNoInputSize     = newSyntaxError("an input block needs a size")
	synErrNoShape         = newSyntaxError("an input block in the configuration form needs a shape")
	synErrNoShapeDim      = newSyntaxError("a shape needs at least one dimension")
	synErrNoLayerUnits    = newSyntaxError("a layer block needs a unit count")
	synErrNoAttrValue     = newSyntaxError("an attribute needs a value")
	synErrNoCallArgValue  = newSyntaxError("a parameter needs a value")
	synErrUnclosedCall    = newSyntaxError("unclosed parameter list; a closing parenthesis is missing")
	synErrUnclosedList    = newSyntaxError("unclosed list; a closing bracket is missing")
	synErrNoTrainBody     = newSyntaxError("a train block must be enclosed in braces")
	synErrTrailingContent = newSyntaxError("a program must end after the train block")
)
