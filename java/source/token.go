package source

type Position struct {
	Offset int
	Line   int
	Column int
}

type Span struct {
	Start Position
	End   Position
}

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenError
	TokenWhitespace
	TokenComment
	TokenDocComment
	TokenLineComment
	TokenMarkdownComment

	TokenIdent
	TokenKeyword
	TokenNumber
	TokenCharLiteral
	TokenStringLiteral
	TokenTextBlock

	// Keywords that open a type declaration
	TokenClass
	TokenInterface
	TokenEnum

	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
	TokenSemicolon
	TokenDot
	TokenAt
	TokenOperator
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:             "EOF",
	TokenError:           "Error",
	TokenWhitespace:      "Whitespace",
	TokenComment:         "Comment",
	TokenDocComment:      "DocComment",
	TokenLineComment:     "LineComment",
	TokenMarkdownComment: "MarkdownComment",
	TokenIdent:           "Ident",
	TokenKeyword:         "Keyword",
	TokenNumber:          "Number",
	TokenCharLiteral:     "CharLiteral",
	TokenStringLiteral:   "StringLiteral",
	TokenTextBlock:       "TextBlock",
	TokenClass:           "class",
	TokenInterface:       "interface",
	TokenEnum:            "enum",
	TokenLParen:          "(",
	TokenRParen:          ")",
	TokenLBrace:          "{",
	TokenRBrace:          "}",
	TokenSemicolon:       ";",
	TokenDot:             ".",
	TokenAt:              "@",
	TokenOperator:        "Operator",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

type Token struct {
	Kind    TokenKind
	Span    Span
	Literal string
}

var keywords = map[string]TokenKind{
	"abstract":     TokenKeyword,
	"assert":       TokenKeyword,
	"boolean":      TokenKeyword,
	"break":        TokenKeyword,
	"byte":         TokenKeyword,
	"case":         TokenKeyword,
	"catch":        TokenKeyword,
	"char":         TokenKeyword,
	"class":        TokenClass,
	"const":        TokenKeyword,
	"continue":     TokenKeyword,
	"default":      TokenKeyword,
	"do":           TokenKeyword,
	"double":       TokenKeyword,
	"else":         TokenKeyword,
	"enum":         TokenEnum,
	"extends":      TokenKeyword,
	"final":        TokenKeyword,
	"finally":      TokenKeyword,
	"float":        TokenKeyword,
	"for":          TokenKeyword,
	"goto":         TokenKeyword,
	"if":           TokenKeyword,
	"implements":   TokenKeyword,
	"import":       TokenKeyword,
	"instanceof":   TokenKeyword,
	"int":          TokenKeyword,
	"interface":    TokenInterface,
	"long":         TokenKeyword,
	"native":       TokenKeyword,
	"new":          TokenKeyword,
	"package":      TokenKeyword,
	"private":      TokenKeyword,
	"protected":    TokenKeyword,
	"public":       TokenKeyword,
	"return":       TokenKeyword,
	"short":        TokenKeyword,
	"static":       TokenKeyword,
	"strictfp":     TokenKeyword,
	"super":        TokenKeyword,
	"switch":       TokenKeyword,
	"synchronized": TokenKeyword,
	"this":         TokenKeyword,
	"throw":        TokenKeyword,
	"throws":       TokenKeyword,
	"transient":    TokenKeyword,
	"try":          TokenKeyword,
	"void":         TokenKeyword,
	"volatile":     TokenKeyword,
	"while":        TokenKeyword,
}

// LookupKeyword returns the token kind for ident. Contextual keywords
// such as record are identifiers here.
func LookupKeyword(ident string) TokenKind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return TokenIdent
}
