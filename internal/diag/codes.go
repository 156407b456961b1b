package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Разбор тела комментария
	DocInfo                Code = 1000
	DocStrayCarriageReturn Code = 1001
	DocExpectWhitespace    Code = 1002
	DocExpectIdent         Code = 1003
	DocExpectDescription   Code = 1004
	DocInputTooLarge       Code = 1005
	DocTrailingText        Code = 1006
	DocNoDoc               Code = 1007

	// Ошибки I/O
	IOLoadFileError  Code = 4001
	IOWriteFileError Code = 4002
	IOCacheError     Code = 4003

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:            "Unknown error",
	DocInfo:                "Doc comment information",
	DocStrayCarriageReturn: "Carriage return without line feed",
	DocExpectWhitespace:    "Expected whitespace after attribute",
	DocExpectIdent:         "Expected parameter name",
	DocExpectDescription:   "Expected attribute description",
	DocInputTooLarge:       "Comment body too large",
	DocTrailingText:        "Unparsed text after attributes",
	DocNoDoc:               "Comment marked @nodoc",
	IOLoadFileError:        "Failed to load file",
	IOWriteFileError:       "Failed to write file",
	IOCacheError:           "Render cache failure",
	ObsInfo:                "Observability information",
	ObsTimings:             "Pipeline timings",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("DOC%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
