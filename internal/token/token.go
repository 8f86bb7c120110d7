// Package token defines the lexical atom shared by the lexer, parser, and
// diagnostics: a Token carries its kind, source lexeme, optional literal
// value, and originating line so later stages can point back at it.
package token

import "fmt"

// Kind identifies the lexical category of a Token.
type Kind int

const (
	// single-character punctuation
	LeftParen Kind = iota
	RightParen
	LeftBrace
	RightBrace
	LeftBracket
	RightBracket
	Comma
	Dot
	Semicolon
	Colon

	// sigils
	Dollar  // $, introduces every function/lambda declaration
	At      // @, marks immutability
	Percent // %, type alias
	Question

	// one/two-character operators
	Minus
	MinusEqual
	Plus
	PlusEqual
	Slash
	SlashEqual
	Star
	StarEqual
	StarStar // **
	PercentEqual
	QuestionQuestion // ??
	Arrow            // =>

	Bang
	BangEqual
	Equal
	EqualEqual
	Greater
	GreaterEqual
	Less
	LessEqual

	AmpAmp // &&
	PipePipe

	// literals
	Identifier
	String
	Number

	// keywords
	And
	Or
	Not
	If
	Else
	True
	False
	Func
	For
	In
	Null
	Return
	Throw
	This
	Var
	Immut
	While
	Class
	Import
	Export
	From
	Try
	Catch
	Match
	Type
	Underscore

	// type keywords
	TString
	TNumber
	TBoolean
	TNull
	TAny
	TVoid
	TArray
	TFunction

	EOF
)

var kindNames = map[Kind]string{
	LeftParen: "(", RightParen: ")", LeftBrace: "{", RightBrace: "}",
	LeftBracket: "[", RightBracket: "]", Comma: ",", Dot: ".",
	Semicolon: ";", Colon: ":", Dollar: "$", At: "@", Percent: "%",
	Question: "?", Minus: "-", MinusEqual: "-=", Plus: "+", PlusEqual: "+=",
	Slash: "/", SlashEqual: "/=", Star: "*", StarEqual: "*=", StarStar: "**",
	PercentEqual: "%=", QuestionQuestion: "??", Arrow: "=>", Bang: "!",
	BangEqual: "!=", Equal: "=", EqualEqual: "==", Greater: ">",
	GreaterEqual: ">=", Less: "<", LessEqual: "<=", AmpAmp: "&&",
	PipePipe: "||", Identifier: "identifier", String: "string",
	Number: "number", And: "and", Or: "or", Not: "not", If: "if",
	Else: "else", True: "true", False: "false", Func: "function", For: "for",
	In: "in", Null: "null", Return: "return", Throw: "throw", This: "this",
	Var: "var", Immut: "immut", While: "while", Class: "class",
	Import: "import", Export: "export", From: "from", Try: "try",
	Catch: "catch", Match: "match", Type: "type", Underscore: "_",
	TString: "string", TNumber: "number", TBoolean: "boolean", TNull: "null",
	TAny: "any", TVoid: "void", TArray: "Array", TFunction: "Function",
	EOF: "end of file",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Keywords maps reserved lexemes to their Kind. $, @, % are sigils handled
// directly by the lexer rather than through this table.
var Keywords = map[string]Kind{
	"and": And, "or": Or, "not": Not, "if": If, "else": Else,
	"true": True, "false": False, "for": For, "in": In, "null": Null,
	"return": Return, "throw": Throw, "this": This, "var": Var,
	"immut": Immut, "while": While, "class": Class, "import": Import,
	"export": Export, "from": From, "try": Try, "catch": Catch,
	"match": Match, "type": Type, "_": Underscore,
	"string": TString, "number": TNumber, "boolean": TBoolean,
	"null_t": TNull, "any": TAny, "void": TVoid, "Array": TArray,
	"Function": TFunction,
}

// Token is an immutable lexical atom. Literal holds the decoded value for
// Number and String tokens (float64 / string respectively); it is nil for
// everything else.
type Token struct {
	Kind    Kind
	Lexeme  string
	Literal interface{}
	Line    int
}

func New(kind Kind, lexeme string, literal interface{}, line int) Token {
	return Token{Kind: kind, Lexeme: lexeme, Literal: literal, Line: line}
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q", t.Kind, t.Lexeme)
}

// Is reports whether the token's kind is one of the given kinds.
func (t Token) Is(kinds ...Kind) bool {
	for _, k := range kinds {
		if t.Kind == k {
			return true
		}
	}
	return false
}
