package cdoc

import "fmt"

// EventKind различает два вида событий потока.
type EventKind uint8

const (
	// EventDescription is the free-text preamble before the first attribute.
	EventDescription EventKind = iota + 1
	// EventAttr is one parsed attribute.
	EventAttr
)

func (k EventKind) String() string {
	switch k {
	case EventDescription:
		return "description"
	case EventAttr:
		return "attr"
	default:
		return "unknown"
	}
}

// AttrKind is the closed set of recognised attributes.
type AttrKind uint8

const (
	AttrParam AttrKind = iota + 1
	AttrReturn
	AttrDeprecated
	AttrSee
	AttrBrief
	AttrNote
	AttrNoDoc
)

func (k AttrKind) String() string {
	switch k {
	case AttrParam:
		return "param"
	case AttrReturn:
		return "return"
	case AttrDeprecated:
		return "deprecated"
	case AttrSee:
		return "see"
	case AttrBrief:
		return "brief"
	case AttrNote:
		return "note"
	case AttrNoDoc:
		return "nodoc"
	default:
		return "unknown"
	}
}

// ParamDir is the optional [in]/[out]/[inout] tag of a @param.
type ParamDir uint8

const (
	DirNone ParamDir = iota
	DirIn
	DirOut
	DirInOut
)

func (d ParamDir) String() string {
	switch d {
	case DirIn:
		return "in"
	case DirOut:
		return "out"
	case DirInOut:
		return "inout"
	default:
		return ""
	}
}

// Tag returns the bracketed form used by the renderer ("" for DirNone).
func (d ParamDir) Tag() string {
	if d == DirNone {
		return ""
	}
	return "[" + d.String() + "]"
}

// Attr: одно распознанное @-свойство.
// Desc/Name являются подстроками исходного текста, без копирования и нормализации.
type Attr struct {
	Kind AttrKind
	Dir  ParamDir // only for AttrParam
	Name string   // only for AttrParam
	Desc string
	// HasDesc is false when the optional description of @param/@return is absent.
	// See, Brief and Note always carry a description.
	HasDesc bool
}

// Event is one element of the lazily produced stream.
// Start/End are byte offsets into the comment body.
type Event struct {
	Kind  EventKind
	Text  string // description text, EventDescription only
	Attr  Attr   // EventAttr only
	Start uint32
	End   uint32
}

// Description builds a description event without position information.
func Description(text string) Event {
	return Event{Kind: EventDescription, Text: text}
}

// AttrEvent wraps an attribute into an event without position information.
func AttrEvent(a Attr) Event {
	return Event{Kind: EventAttr, Attr: a}
}

func ParamAttr(dir ParamDir, name, desc string, hasDesc bool) Attr {
	return Attr{Kind: AttrParam, Dir: dir, Name: name, Desc: desc, HasDesc: hasDesc}
}

func ReturnAttr(desc string, hasDesc bool) Attr {
	return Attr{Kind: AttrReturn, Desc: desc, HasDesc: hasDesc}
}

func SeeAttr(desc string) Attr   { return Attr{Kind: AttrSee, Desc: desc, HasDesc: true} }
func BriefAttr(desc string) Attr { return Attr{Kind: AttrBrief, Desc: desc, HasDesc: true} }
func NoteAttr(desc string) Attr  { return Attr{Kind: AttrNote, Desc: desc, HasDesc: true} }

func DeprecatedAttr() Attr { return Attr{Kind: AttrDeprecated} }
func NoDocAttr() Attr      { return Attr{Kind: AttrNoDoc} }

// SameAs compares two events ignoring positions.
func (e Event) SameAs(other Event) bool {
	return e.Kind == other.Kind && e.Text == other.Text && e.Attr == other.Attr
}

func (e Event) String() string {
	switch e.Kind {
	case EventDescription:
		return fmt.Sprintf("Description(%q)", e.Text)
	case EventAttr:
		return "Attr(" + e.Attr.String() + ")"
	default:
		return "Event(?)"
	}
}

func (a Attr) String() string {
	switch a.Kind {
	case AttrParam:
		return fmt.Sprintf("Param{dir:%q, name:%q, desc:%s}", a.Dir.String(), a.Name, optText(a.Desc, a.HasDesc))
	case AttrReturn:
		return fmt.Sprintf("Return{desc:%s}", optText(a.Desc, a.HasDesc))
	case AttrSee, AttrBrief, AttrNote:
		return fmt.Sprintf("%s{desc:%q}", a.Kind, a.Desc)
	default:
		return a.Kind.String()
	}
}

func optText(s string, ok bool) string {
	if !ok {
		return "None"
	}
	return fmt.Sprintf("Some(%q)", s)
}
