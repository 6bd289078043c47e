// Copyright 2025 The Athena Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package kind defines the syntax kinds shared by tokens and tree nodes.
//
// Token kinds and node kinds live in a single numbering space, like the kinds
// of a green tree: a leaf of the tree carries a token kind, an interior node
// carries a node kind. Token kinds are numbered first so that a [Set] of
// token kinds fits in a fixed-size bitset.
package kind

import "fmt"

// Kind is a syntax kind.
type Kind uint16

const (
	// Tombstone marks an event placeholder that has no kind (yet). It never
	// appears in a finished tree.
	Tombstone Kind = iota

	EOF   // End of input. Always zero-length.
	Error // An unrecognized token, or a node wrapping skipped input.

	Whitespace // A run of whitespace.
	Comment    // A # comment up to (not including) the newline.

	Ident     // An identifier.
	IntNumber // A decimal integer literal.
	String    // A double-quoted string literal.

	LParen     // (
	RParen     // )
	LBrack     // [
	RBrack     // ]
	LBrace     // {
	RBrace     // }
	Question   // ?
	Tick       // '
	Colon      // :
	Comma      // ,
	Bang       // !
	Semicolon  // ;
	Underscore // _
	Amp        // &
	Pipe       // |
	Tilde      // ~
	Eq         // =
	ColonEq    // :=
	FatArrow   // =>
	ThinArrow  // ->
	Implies    // ==>
	Iff        // <==>

	DomainKw
	DeclareKw
	DefineKw
	AssertKw
	LoadKw
	LambdaKw
	MatchKw
	LetKw
	AssumeKw
	ConcludeKw

	firstNode // Node kinds start here.
)

const (
	SourceFile Kind = iota + firstNode
	Fragment

	Name
	NameRef

	IdentSort
	VarSort
	CompoundSort
	IdentSortDecl
	SortList
	SortSignature

	Literal
	IdentExpr
	Var
	ParenExpr
	AppExpr
	ListExpr
	BinExpr
	PrefixExpr
	LambdaExpr
	ParamList
	MatchExpr
	MatchArm
	LetExpr
	LetBinding

	WildcardPat
	VarPat
	NamePat
	LiteralPat
	CompoundPat
	ListPat

	MethodApp
	AssumeDed
	ConcludeDed
	BlockDed

	DomainDir
	DeclareDir
	DefineDir
	AssertDir
	LoadDir

	total // Not a real kind.
)

// IsToken returns whether k is a token kind. [Error] counts as a token kind,
// even though it is also used for nodes wrapping skipped input.
func (k Kind) IsToken() bool {
	return k > Tombstone && k < firstNode
}

// IsNode returns whether k is a node kind, including [Error].
func (k Kind) IsNode() bool {
	return (k >= firstNode && k < total) || k == Error
}

// IsTrivia returns whether tokens of this kind are invisible to the parser.
func (k Kind) IsTrivia() bool {
	return k == Whitespace || k == Comment
}

// IsKeyword returns whether k is a reserved word.
func (k Kind) IsKeyword() bool {
	return k >= DomainKw && k <= ConcludeKw
}

// IsValid returns whether k is one of the constants in this package.
func (k Kind) IsValid() bool {
	return k < total
}

// Keyword looks up the keyword kind for an identifier's text.
//
// Returns [Ident] if text is not a reserved word.
func Keyword(text string) Kind {
	if k, ok := keywords[text]; ok {
		return k
	}
	return Ident
}

// String implements [fmt.Stringer].
//
// The returned names are the SCREAMING_CASE names used in tree dumps.
func (k Kind) String() string {
	if k.IsValid() {
		if name := names[k]; name != "" {
			return name
		}
	}
	return fmt.Sprintf("kind.Kind(%d)", int(k))
}

// GoString implements [fmt.GoStringer].
func (k Kind) GoString() string {
	return k.String()
}

// Describe returns a human-readable description of k, suitable for use in
// diagnostics, such as "`)`" or "an identifier".
func (k Kind) Describe() string {
	if k.IsValid() {
		if text := punct[k]; text != "" {
			return "`" + text + "`"
		}
		if desc := descriptions[k]; desc != "" {
			return desc
		}
	}
	return k.String()
}

// Punct returns the fixed spelling of a punctuation or keyword kind, or the
// empty string if its tokens do not have a fixed spelling.
func (k Kind) Punct() string {
	if !k.IsValid() {
		return ""
	}
	return punct[k]
}

var keywords = map[string]Kind{
	"domain":   DomainKw,
	"declare":  DeclareKw,
	"define":   DefineKw,
	"assert":   AssertKw,
	"load":     LoadKw,
	"lambda":   LambdaKw,
	"match":    MatchKw,
	"let":      LetKw,
	"assume":   AssumeKw,
	"conclude": ConcludeKw,
}

var punct = [total]string{
	LParen:     "(",
	RParen:     ")",
	LBrack:     "[",
	RBrack:     "]",
	LBrace:     "{",
	RBrace:     "}",
	Question:   "?",
	Tick:       "'",
	Colon:      ":",
	Comma:      ",",
	Bang:       "!",
	Semicolon:  ";",
	Underscore: "_",
	Amp:        "&",
	Pipe:       "|",
	Tilde:      "~",
	Eq:         "=",
	ColonEq:    ":=",
	FatArrow:   "=>",
	ThinArrow:  "->",
	Implies:    "==>",
	Iff:        "<==>",

	DomainKw:   "domain",
	DeclareKw:  "declare",
	DefineKw:   "define",
	AssertKw:   "assert",
	LoadKw:     "load",
	LambdaKw:   "lambda",
	MatchKw:    "match",
	LetKw:      "let",
	AssumeKw:   "assume",
	ConcludeKw: "conclude",
}

var descriptions = [total]string{
	Tombstone:  "tombstone",
	EOF:        "end of input",
	Error:      "unrecognized input",
	Whitespace: "whitespace",
	Comment:    "a comment",
	Ident:      "an identifier",
	IntNumber:  "an integer",
	String:     "a string",

	SourceFile:    "source file",
	Fragment:      "fragment",
	Name:          "a name",
	NameRef:       "a name",
	IdentSort:     "a sort",
	VarSort:       "a sort variable",
	CompoundSort:  "a compound sort",
	IdentSortDecl: "a sort declaration",
	SortList:      "a sort list",
	SortSignature: "a sort signature",
	Literal:       "a literal",
	IdentExpr:     "an identifier expression",
	Var:           "a variable",
	ParenExpr:     "a parenthesized expression",
	AppExpr:       "an application",
	ListExpr:      "a list expression",
	BinExpr:       "an infix expression",
	PrefixExpr:    "a negation",
	LambdaExpr:    "a lambda expression",
	ParamList:     "a parameter list",
	MatchExpr:     "a match expression",
	MatchArm:      "a match arm",
	LetExpr:       "a let expression",
	LetBinding:    "a binding",
	WildcardPat:   "a wildcard pattern",
	VarPat:        "a variable pattern",
	NamePat:       "a name pattern",
	LiteralPat:    "a literal pattern",
	CompoundPat:   "a compound pattern",
	ListPat:       "a list pattern",
	MethodApp:     "a method application",
	AssumeDed:     "an assume deduction",
	ConcludeDed:   "a conclude deduction",
	BlockDed:      "a deduction block",
	DomainDir:     "a domain directive",
	DeclareDir:    "a declare directive",
	DefineDir:     "a define directive",
	AssertDir:     "an assert directive",
	LoadDir:       "a load directive",
}

var names = [total]string{
	Tombstone:  "TOMBSTONE",
	EOF:        "EOF",
	Error:      "ERROR",
	Whitespace: "WHITESPACE",
	Comment:    "COMMENT",
	Ident:      "IDENT",
	IntNumber:  "INT_NUMBER",
	String:     "STRING",
	LParen:     "L_PAREN",
	RParen:     "R_PAREN",
	LBrack:     "L_BRACK",
	RBrack:     "R_BRACK",
	LBrace:     "L_BRACE",
	RBrace:     "R_BRACE",
	Question:   "QUESTION",
	Tick:       "TICK",
	Colon:      "COLON",
	Comma:      "COMMA",
	Bang:       "BANG",
	Semicolon:  "SEMICOLON",
	Underscore: "UNDERSCORE",
	Amp:        "AMP",
	Pipe:       "PIPE",
	Tilde:      "TILDE",
	Eq:         "EQ",
	ColonEq:    "COLON_EQ",
	FatArrow:   "FAT_ARROW",
	ThinArrow:  "THIN_ARROW",
	Implies:    "IMPLIES",
	Iff:        "IFF",
	DomainKw:   "DOMAIN_KW",
	DeclareKw:  "DECLARE_KW",
	DefineKw:   "DEFINE_KW",
	AssertKw:   "ASSERT_KW",
	LoadKw:     "LOAD_KW",
	LambdaKw:   "LAMBDA_KW",
	MatchKw:    "MATCH_KW",
	LetKw:      "LET_KW",
	AssumeKw:   "ASSUME_KW",
	ConcludeKw: "CONCLUDE_KW",

	SourceFile:    "SOURCE_FILE",
	Fragment:      "FRAGMENT",
	Name:          "NAME",
	NameRef:       "NAME_REF",
	IdentSort:     "IDENT_SORT",
	VarSort:       "VAR_SORT",
	CompoundSort:  "COMPOUND_SORT",
	IdentSortDecl: "IDENT_SORT_DECL",
	SortList:      "SORT_LIST",
	SortSignature: "SORT_SIGNATURE",
	Literal:       "LITERAL",
	IdentExpr:     "IDENT_EXPR",
	Var:           "VAR",
	ParenExpr:     "PAREN_EXPR",
	AppExpr:       "APP_EXPR",
	ListExpr:      "LIST_EXPR",
	BinExpr:       "BIN_EXPR",
	PrefixExpr:    "PREFIX_EXPR",
	LambdaExpr:    "LAMBDA_EXPR",
	ParamList:     "PARAM_LIST",
	MatchExpr:     "MATCH_EXPR",
	MatchArm:      "MATCH_ARM",
	LetExpr:       "LET_EXPR",
	LetBinding:    "LET_BINDING",
	WildcardPat:   "WILDCARD_PAT",
	VarPat:        "VAR_PAT",
	NamePat:       "NAME_PAT",
	LiteralPat:    "LITERAL_PAT",
	CompoundPat:   "COMPOUND_PAT",
	ListPat:       "LIST_PAT",
	MethodApp:     "METHOD_APP",
	AssumeDed:     "ASSUME_DED",
	ConcludeDed:   "CONCLUDE_DED",
	BlockDed:      "BLOCK_DED",
	DomainDir:     "DOMAIN_DIR",
	DeclareDir:    "DECLARE_DIR",
	DefineDir:     "DEFINE_DIR",
	AssertDir:     "ASSERT_DIR",
	LoadDir:       "LOAD_DIR",
}
