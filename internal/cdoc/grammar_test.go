package cdoc

import (
	"errors"
	"testing"

	"cdoc/internal/diag"
)

func TestAttrKeyword(t *testing.T) {
	tests := []struct {
		src  string
		kind AttrKind
		ok   bool
	}{
		{"@param x", AttrParam, true},
		{"@param[in] x", AttrParam, true},
		{"@return", AttrReturn, true},
		{"@returns value", AttrReturn, true},
		{"@deprecated\n", AttrDeprecated, true},
		{"@see\tfoo", AttrSee, true},
		{"@brief x", AttrBrief, true},
		{"@note x", AttrNote, true},
		{"@nodoc", AttrNoDoc, true},
		{"@Param x", 0, false},
		{"@brief[in] x", 0, false},
		{"@params x", 0, false},
		{"@ param", 0, false},
		{"@brief\r\nx", AttrBrief, true},
		{"@brief\rx", 0, false},
		{"@note\vx", 0, false},
		{"@see\fx", 0, false},
		{"param", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			c := NewCursor(tt.src)
			_, kind, err := attrKeyword(&c)
			if tt.ok != (err == nil) {
				t.Fatalf("attrKeyword err = %v, want ok=%v", err, tt.ok)
			}
			if tt.ok && kind != tt.kind {
				t.Fatalf("kind = %s, want %s", kind, tt.kind)
			}
		})
	}
}

func TestParamDir(t *testing.T) {
	tests := []struct {
		src  string
		want ParamDir
		off  uint32
	}{
		{"[in] x", DirIn, 4},
		{"[out] x", DirOut, 5},
		{"[inout] x", DirInOut, 7},
		{" x", DirNone, 0},
		{"[io] x", DirNone, 0},
		{"[in x", DirNone, 0},
	}
	for _, tt := range tests {
		c := NewCursor(tt.src)
		if got := paramDir(&c); got != tt.want || c.Off != tt.off {
			t.Errorf("paramDir(%q) = %s at %d, want %s at %d", tt.src, got, c.Off, tt.want, tt.off)
		}
	}
}

func TestIdent(t *testing.T) {
	tests := []struct {
		src  string
		want string
		ok   bool
	}{
		{"opts rest", "opts", true},
		{"_x1$ y", "_x1$", true},
		{"$ref", "$ref", true},
		{"Buffer", "Buffer", true},
		{"1abc", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		c := NewCursor(tt.src)
		got, ok := ident(&c)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ident(%q) = (%q, %v), want (%q, %v)", tt.src, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseAttr(t *testing.T) {
	tests := []struct {
		src  string
		want Attr
	}{
		{"@param name this is a description\n", ParamAttr(DirNone, "name", "this is a description\n", true)},
		{"@param[inout] buf\n", ParamAttr(DirInOut, "buf", "", false)},
		{"@param[out] err  Error details\n", ParamAttr(DirOut, "err", "Error details\n", true)},
		{"@return\n", ReturnAttr("", false)},
		{"@returns the value\n", ReturnAttr("the value\n", true)},
		{"@see # anchor text here\n", SeeAttr("anchor text here\n")},
		{"@see other\n", SeeAttr("other\n")},
		{"@brief hi\n", BriefAttr("hi\n")},
		{"@note multi\n  line\n", NoteAttr("multi\n  line\n")},
		{"@deprecated\n", DeprecatedAttr()},
		{"@nodoc", NoDocAttr()},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			c := NewCursor(tt.src)
			got, err := parseAttr(&c)
			if err != nil {
				t.Fatalf("parseAttr: %v", err)
			}
			if got != tt.want {
				t.Fatalf("parseAttr = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParseAttrBacktrackRestores(t *testing.T) {
	c := NewCursor("@unknown x\n")
	if _, err := parseAttr(&c); !isBacktrack(err) {
		t.Fatalf("expected backtrack, got %v", err)
	}
	if c.Off != 0 {
		t.Fatalf("cursor moved to %d on backtrack", c.Off)
	}
}

func TestParseAttrFatal(t *testing.T) {
	tests := []struct {
		src     string
		code    diag.Code
		keyword string
	}{
		{"@param\n", diag.DocExpectIdent, "param"},
		{"@param 1x\n", diag.DocExpectIdent, "param"},
		{"@param", diag.DocExpectWhitespace, "param"},
		{"@param[in]x\n", diag.DocExpectWhitespace, "param"},
		{"@brief", diag.DocExpectWhitespace, "brief"},
		{"@brief \n", diag.DocExpectDescription, "brief"},
		{"@note \n@brief x\n", diag.DocExpectDescription, "note"},
		{"@see #\n", diag.DocExpectDescription, "see"},
		{"@return bad\rline\n", diag.DocStrayCarriageReturn, "return"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			c := NewCursor(tt.src)
			_, err := parseAttr(&c)
			var perr *Error
			if !errors.As(err, &perr) {
				t.Fatalf("expected *Error, got %v", err)
			}
			if perr.Code != tt.code || perr.Keyword != tt.keyword {
				t.Fatalf("got %s @%s, want %s @%s", perr.Code.ID(), perr.Keyword, tt.code.ID(), tt.keyword)
			}
		})
	}
}

func TestFatalErrorCarriesAttrStart(t *testing.T) {
	_, _, err := Collect("intro\n\n  @note\n", Options{})
	var perr *Error
	if !errors.As(err, &perr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if perr.Keyword != "note" || perr.Start != 9 || perr.Off != 15 {
		t.Fatalf("unexpected error %+v", perr)
	}
}
