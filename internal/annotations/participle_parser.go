package annotations

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Prefix marks a comment line as a binding annotation
const Prefix = "bind::"

// Annotation is the grammar of one annotation line:
//
//	//bind::<kind> <param> [<name>] [-Flag[=value]]...
type Annotation struct {
	Pos    lexer.Position
	Kind   string  `parser:"Comment Prefix @Ident"`
	Target string  `parser:"@Ident?"`
	Name   *string `parser:"(@Ident | @String)?"`
	Flags  []*Flag `parser:"@@*"`
}

// Flag is a -Key or -Key=value option
type Flag struct {
	Pos   lexer.Position
	Key   string  `parser:"'-' @Ident"`
	Value *string `parser:"('=' (@Ident | @String))?"`
}

var annotationLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `//`},
	{Name: "Prefix", Pattern: `bind::`},
	{Name: "String", Pattern: `"(\\"|[^"])*"`},
	{Name: "Ident", Pattern: `[\p{L}_][\p{L}\p{Nd}_.\-]*`},
	{Name: "Punct", Pattern: `[-=]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

// ParticipleParser parses //bind:: annotations with alecthomas/participle
type ParticipleParser struct {
	parser    *participle.Parser[Annotation]
	schemas   SchemaSource
	validator SchemaValidator
}

// NewParticipleParser creates a parser validating against schemas. A nil
// source means DefaultSchemas().
func NewParticipleParser(schemas SchemaSource) *ParticipleParser {
	if schemas == nil {
		schemas = DefaultSchemas()
	}

	parser := participle.MustBuild[Annotation](
		participle.Lexer(annotationLexer),
		participle.Unquote("String"),
		participle.Elide("Whitespace"),
	)

	return &ParticipleParser{
		parser:    parser,
		schemas:   schemas,
		validator: NewValidator(),
	}
}

// IsAnnotation reports whether a comment line is a //bind:: annotation
func IsAnnotation(comment string) bool {
	content := strings.TrimSpace(comment)
	if !strings.HasPrefix(content, "//") {
		return false
	}
	return strings.HasPrefix(strings.TrimSpace(content[2:]), Prefix)
}

// ParseAnnotation parses and validates one annotation line. location points
// at the first character of the comment.
func (p *ParticipleParser) ParseAnnotation(comment string, location SourceLocation) (*ParsedAnnotation, error) {
	comment = strings.TrimSpace(comment)

	ast, err := p.parser.ParseString(location.File, comment)
	if err != nil {
		return nil, p.syntaxError(err, location)
	}

	annotationType, err := ParseAnnotationType(ast.Kind)
	if err != nil {
		return nil, &SchemaError{
			Msg:  fmt.Sprintf("unknown annotation kind '%s'", ast.Kind),
			Loc:  location,
			Hint: fmt.Sprintf("Use one of: %s", strings.Join(annotationKeywords, ", ")),
		}
	}

	schema, err := p.schemas.GetSchema(annotationType)
	if err != nil {
		return nil, &SchemaError{
			Msg:  err.Error(),
			Loc:  location,
			Hint: "Add a schema for this kind to the schema set",
		}
	}

	if ast.Target == "" {
		return nil, &SyntaxError{
			Msg:  fmt.Sprintf("//bind::%s is missing the parameter it binds", annotationType),
			Loc:  location,
			Hint: fmt.Sprintf("Example: %s", schema.Examples[0]),
		}
	}

	parsed := &ParsedAnnotation{
		Type:       annotationType,
		Target:     ast.Target,
		Parameters: make(map[string]interface{}),
		Location:   location,
		Raw:        comment,
	}
	if ast.Name != nil {
		parsed.Name = *ast.Name
	}

	for _, flag := range ast.Flags {
		if _, seen := parsed.Parameters[flag.Key]; seen {
			return nil, &ValidationError{
				Parameter: flag.Key,
				Expected:  "flag given once",
				Actual:    fmt.Sprintf("-%s repeated", flag.Key),
				Loc:       offset(location, flag.Pos),
				Hint:      fmt.Sprintf("Remove the second -%s", flag.Key),
			}
		}
		parsed.Parameters[flag.Key] = p.flagValue(flag, schema)
	}

	if err := p.validator.TransformParameters(parsed, schema); err != nil {
		return nil, err
	}
	if err := p.validator.ApplyDefaults(parsed, schema); err != nil {
		return nil, err
	}
	if err := p.validator.Validate(parsed, schema); err != nil {
		return nil, err
	}

	return parsed, nil
}

// flagValue returns the raw value of a flag; a bare -Flag takes its schema default
func (p *ParticipleParser) flagValue(flag *Flag, schema AnnotationSchema) interface{} {
	if flag.Value != nil {
		return *flag.Value
	}
	if spec, ok := schema.Parameters[flag.Key]; ok && spec.DefaultValue != nil {
		return spec.DefaultValue
	}
	return true
}

func (p *ParticipleParser) syntaxError(err error, location SourceLocation) error {
	var perr participle.Error
	if !errors.As(err, &perr) {
		return &SyntaxError{Msg: err.Error(), Loc: location, Hint: "Check the annotation format"}
	}

	hint := "Expected //bind::<kind> <param> [name] [-ParseJSON] [-Required]"
	msg := perr.Message()
	if strings.Contains(msg, "Prefix") {
		hint = "Annotations must start with //bind::"
	}
	return &SyntaxError{
		Msg:  msg,
		Loc:  offset(location, perr.Position()),
		Hint: hint,
	}
}

// offset moves a comment location to a position inside the comment
func offset(location SourceLocation, pos lexer.Position) SourceLocation {
	if pos.Column > 0 && location.Column > 0 {
		location.Column += pos.Column - 1
	}
	return location
}
