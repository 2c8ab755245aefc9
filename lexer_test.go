package wisp

import "testing"

func scanOK(t *testing.T, src string) []Token {
	t.Helper()
	toks, err := NewLexer(src).Scan()
	if err != nil {
		t.Fatalf("unexpected lex error for %q: %v", src, err)
	}
	return toks
}

func typesOf(toks []Token) []TokenType {
	out := make([]TokenType, len(toks))
	for i, tok := range toks {
		out[i] = tok.Type
	}
	return out
}

func Test_Lexer_SimplePrint(t *testing.T) {
	toks := scanOK(t, "print(1 + 2)\n")
	want := []TokenType{TokPrint, TokLParen, TokInteger, TokPlus, TokInteger, TokRParen, TokNewline, TokEOF}
	got := typesOf(toks)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func Test_Lexer_IndentDedentBalance(t *testing.T) {
	src := "if x:\n    y = 1\n    z = 2\nprint(y)\n"
	toks := scanOK(t, src)
	indents, dedents := 0, 0
	for _, tok := range toks {
		switch tok.Type {
		case TokIndent:
			indents++
		case TokDedent:
			dedents++
		}
	}
	if indents != dedents {
		t.Fatalf("unbalanced INDENT/DEDENT: %d vs %d", indents, dedents)
	}
	if indents != 1 {
		t.Fatalf("expected exactly one INDENT, got %d", indents)
	}
}

func Test_Lexer_BlankAndCommentLinesProduceNoIndentTokens(t *testing.T) {
	src := "if x:\n    y = 1\n\n    # a comment\n    z = 2\nprint(y)\n"
	toks := scanOK(t, src)
	indents, dedents := 0, 0
	for _, tok := range toks {
		switch tok.Type {
		case TokIndent:
			indents++
		case TokDedent:
			dedents++
		}
	}
	if indents != 1 || dedents != 1 {
		t.Fatalf("blank/comment lines disturbed indentation: indents=%d dedents=%d", indents, dedents)
	}
}

func Test_Lexer_NoConsecutiveNewlines(t *testing.T) {
	src := "x = 1\n\n\ny = 2\n"
	toks := scanOK(t, src)
	for i := 1; i < len(toks); i++ {
		if toks[i].Type == TokNewline && toks[i-1].Type == TokNewline {
			t.Fatalf("found consecutive NEWLINE tokens at index %d", i)
		}
	}
}

func Test_Lexer_KeywordsAlwaysKeywordTokens(t *testing.T) {
	for kw, want := range keywords {
		toks := scanOK(t, kw+"\n")
		if toks[0].Type != want {
			t.Fatalf("expected %q to lex as %v, got %v", kw, want, toks[0].Type)
		}
	}
}

func Test_Lexer_NumericLiterals(t *testing.T) {
	toks := scanOK(t, "1 1.5 1e3 1.5e-2\n")
	wantTypes := []TokenType{TokInteger, TokFloat, TokFloat, TokFloat}
	for i, want := range wantTypes {
		if toks[i].Type != want {
			t.Fatalf("token %d: got %v, want %v", i, toks[i].Type, want)
		}
	}
	if toks[0].Literal.(int64) != 1 {
		t.Fatalf("expected integer literal 1, got %v", toks[0].Literal)
	}
}

func Test_Lexer_StringEscapes(t *testing.T) {
	toks := scanOK(t, `"a\nb\tc\\d\x"` + "\n")
	got := toks[0].Literal.(string)
	want := "a\nb\tc\\dx"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func Test_Lexer_UnterminatedStringErrors(t *testing.T) {
	_, err := NewLexer("\"abc\n").Scan()
	if err == nil {
		t.Fatal("expected a lex error for an unterminated string")
	}
}

func Test_Lexer_InconsistentIndentationErrors(t *testing.T) {
	src := "if x:\n    y = 1\n   z = 2\n"
	_, err := NewLexer(src).Scan()
	if err == nil {
		t.Fatal("expected a lex error for inconsistent indentation")
	}
}

func Test_Lexer_ErrorMessageFormat(t *testing.T) {
	_, err := NewLexer("$\n").Scan()
	if err == nil {
		t.Fatal("expected a lex error")
	}
	want := "Lexer Error [line 1, col 1]: unexpected character '$'"
	if err.Error() != want {
		t.Fatalf("got %q, want %q", err.Error(), want)
	}
}
